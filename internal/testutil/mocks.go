package testutil

import (
	"bytes"
	"sync"

	"github.com/jordan-breton/uws-compat-layer/pkg/streaming/bridge"
)

// MockSink is a test sink with controllable readiness. It records every
// accepted chunk and the terminal signal it receives.
type MockSink struct {
	mu     sync.Mutex
	ready  bool
	budget int // pushes accepted before saturating; <0 means unlimited
	buf    bytes.Buffer
	chunks int
	ends   int
	aborts int
	err    error
}

// NewMockSink creates a MockSink that accepts every push.
func NewMockSink() *MockSink {
	return &MockSink{ready: true, budget: -1}
}

// Push implements bridge.Sink with the configured readiness.
func (ms *MockSink) Push(chunk []byte) bridge.Outcome {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if !ms.ready || ms.budget == 0 {
		return bridge.Saturated
	}
	if ms.budget > 0 {
		ms.budget--
	}

	ms.buf.Write(chunk)
	ms.chunks++
	return bridge.Delivered
}

// End implements bridge.Sink.
func (ms *MockSink) End() {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.ends++
}

// Abort implements bridge.Sink.
func (ms *MockSink) Abort(err error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.aborts++
	ms.err = err
}

// SetReady controls whether pushes are accepted.
func (ms *MockSink) SetReady(ready bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.ready = ready
}

// SetBudget makes the sink accept exactly n more pushes before saturating.
func (ms *MockSink) SetBudget(n int) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.budget = n
}

// Bytes returns the concatenation of every accepted chunk.
func (ms *MockSink) Bytes() []byte {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	out := make([]byte, ms.buf.Len())
	copy(out, ms.buf.Bytes())
	return out
}

// ChunkCount returns the number of accepted chunks.
func (ms *MockSink) ChunkCount() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.chunks
}

// EndCount returns the number of End signals received.
func (ms *MockSink) EndCount() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.ends
}

// AbortCount returns the number of Abort signals received.
func (ms *MockSink) AbortCount() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.aborts
}

// AbortErr returns the error from the last Abort signal.
func (ms *MockSink) AbortErr() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.err
}
