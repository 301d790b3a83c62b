package bridge

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	ucerrors "github.com/jordan-breton/uws-compat-layer/pkg/common/errors"
	"github.com/jordan-breton/uws-compat-layer/pkg/common/validation"
)

// ErrStackedBuffersOverflow is the terminal error raised when a chunk must be
// stacked but the pending queue is already at MaxStackedBuffers.
var ErrStackedBuffersOverflow = fmt.Errorf("stacked buffer limit reached: %w", ucerrors.ErrCapacityExceeded)

// ErrAlreadyAttached is returned when attaching a bridge that already has a source.
var ErrAlreadyAttached = errors.New("bridge is already attached to a source")

// ErrBridgeTerminated is returned when attaching a bridge that has closed or been destroyed.
var ErrBridgeTerminated = fmt.Errorf("bridge is terminated: %w", ucerrors.ErrClosed)

// Outcome is the result of a downstream push attempt.
type Outcome int

const (
	// Delivered means the sink accepted the chunk.
	Delivered Outcome = iota

	// Saturated means the sink refused the chunk because the consumer is
	// not ready for more data. The bridge keeps the chunk queued.
	Saturated
)

// State describes the bridge lifecycle.
type State int32

const (
	// Active accepts chunks and delivers or stacks them.
	Active State = iota

	// Closing has seen the final chunk but still holds stacked chunks.
	Closing

	// Closed delivered end-of-data and released its queue. Terminal.
	Closed

	// Destroyed aborted and discarded its queue. Terminal.
	Destroyed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Closing:
		return "closing"
	case Closed:
		return "closed"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// terminal reports whether no transitions leave this state.
func (s State) terminal() bool {
	return s == Closed || s == Destroyed
}

// Sink is the pull-side consumer of bridged data.
//
// Push hands one non-empty chunk to the consumer and reports whether it was
// accepted. End signals successful end-of-data; Abort signals a terminal
// failure (err may be nil for a plain consumer-requested abort). The bridge
// invokes at most one of End or Abort, exactly once.
//
// Implementations must not call back into the bridge from inside these
// methods; Drain is the re-entry point and may be called from any goroutine.
type Sink interface {
	Push(chunk []byte) Outcome
	End()
	Abort(err error)
}

// PushSource is a data producer that invokes a caller-supplied callback on
// its own schedule. The callback receives one chunk per invocation and a
// flag marking the final chunk; the source must eventually deliver exactly
// one invocation with last set, unless the bridge is destroyed first. The
// source may reuse its chunk buffer after the callback returns.
type PushSource interface {
	Subscribe(fn func(chunk []byte, last bool))
}

// PushSourceFunc adapts a subscription function into a PushSource.
type PushSourceFunc func(fn func(chunk []byte, last bool))

// Subscribe calls f(fn).
func (f PushSourceFunc) Subscribe(fn func(chunk []byte, last bool)) {
	f(fn)
}

// Config holds configuration for a Bridge.
type Config struct {
	// MaxStackedBuffers is the maximum number of chunks held in the pending
	// queue before the bridge destroys itself. Defaults to 25.
	MaxStackedBuffers int

	// Name identifies this bridge in metrics and diagnostics.
	Name string

	// OnOverflow is called when the pending queue overflows, just before
	// the bridge destroys itself.
	OnOverflow func(err error)
}

// DefaultConfig returns a default bridge configuration.
func DefaultConfig() Config {
	return Config{
		MaxStackedBuffers: 25,
	}
}

// Stats holds statistics about bridge activity.
type Stats struct {
	// ChunksIngested is the number of non-empty chunks received from the source.
	ChunksIngested int64

	// ChunksDelivered is the number of chunks accepted by the sink.
	ChunksDelivered int64

	// ChunksStacked is the number of chunks that had to wait in the pending queue.
	ChunksStacked int64

	// BytesIngested is the total payload received from the source.
	BytesIngested int64

	// BytesDelivered is the total payload accepted by the sink.
	BytesDelivered int64

	// PeakStacked is the highest pending queue depth observed.
	PeakStacked int

	// LastIngestTime is the timestamp of the last source callback.
	LastIngestTime time.Time
}

// Bridge adapts a push source into a pull-driven byte stream with bounded
// buffering. Construction is side-effect free; Attach subscribes to the
// source and starts the flow.
type Bridge interface {
	// Attach subscribes the bridge to the source's chunk delivery.
	// It fails if the bridge already has a source or is terminated.
	Attach(source PushSource) error

	// Ingest is the source-facing callback: one chunk, plus a flag marking
	// the final chunk. Chunks arriving after termination are dropped.
	Ingest(chunk []byte, last bool)

	// Drain delivers stacked chunks oldest-first until the sink saturates
	// or the queue empties. The pull side calls it whenever it is ready
	// for more data.
	Drain()

	// Destroy aborts the bridge, discarding stacked chunks. A non-nil err
	// is surfaced to the sink as a terminal failure. Only the first call
	// has effect.
	Destroy(err error)

	// State returns the current lifecycle state.
	State() State

	// Pending returns the current pending queue depth.
	Pending() int

	// Err returns the terminal error, or nil before destruction or after
	// a clean close.
	Err() error

	// Stats returns bridge statistics.
	Stats() Stats
}

// streamBridge is the default Bridge implementation.
type streamBridge struct {
	sink   Sink
	config Config

	mu       sync.Mutex
	pending  [][]byte
	ended    bool // final chunk seen
	attached bool
	termErr  error
	state    int32 // atomic State

	stats   Stats
	statsMu sync.RWMutex
}

// New creates a Bridge with the default configuration.
func New(sink Sink) Bridge {
	return NewWithConfig(sink, DefaultConfig())
}

// NewWithConfig creates a Bridge with the specified configuration.
// A non-positive MaxStackedBuffers falls back to the default.
func NewWithConfig(sink Sink, config Config) Bridge {
	if config.MaxStackedBuffers <= 0 {
		config.MaxStackedBuffers = DefaultConfig().MaxStackedBuffers
	}

	return &streamBridge{
		sink:   sink,
		config: config,
	}
}

// NewSafe creates a Bridge, validating the configuration instead of falling
// back to defaults.
func NewSafe(sink Sink, config Config) (Bridge, error) {
	if sink == nil {
		return nil, validation.ValidateNotNil("bridge", "sink", nil)
	}
	if err := validation.ValidatePositive("bridge", "maxStackedBuffers", config.MaxStackedBuffers); err != nil {
		return nil, err
	}
	return &streamBridge{sink: sink, config: config}, nil
}

// Attach implements Bridge.Attach.
func (b *streamBridge) Attach(source PushSource) error {
	b.mu.Lock()
	if b.loadState().terminal() {
		b.mu.Unlock()
		return ErrBridgeTerminated
	}
	if b.attached {
		b.mu.Unlock()
		return ErrAlreadyAttached
	}
	b.attached = true
	b.mu.Unlock()

	source.Subscribe(b.Ingest)
	return nil
}

// Ingest implements Bridge.Ingest.
func (b *streamBridge) Ingest(chunk []byte, last bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.loadState().terminal() {
		// Late chunks after close or destruction are dropped.
		return
	}

	// The source owns its buffer and may reuse it after we return.
	var owned []byte
	if len(chunk) > 0 {
		owned = make([]byte, len(chunk))
		copy(owned, chunk)
		b.updateStats(func(s *Stats) {
			s.ChunksIngested++
			s.BytesIngested += int64(len(owned))
			s.LastIngestTime = time.Now()
		})
	} else {
		b.updateStats(func(s *Stats) { s.LastIngestTime = time.Now() })
	}

	b.trySendLocked(owned)
	if last {
		b.tryEndLocked()
	}
}

// trySendLocked attempts to hand one chunk to the sink, stacking it on
// saturation. It returns true when the chunk needs no further handling and
// false when it was stacked or discarded by destruction.
func (b *streamBridge) trySendLocked(chunk []byte) bool {
	if len(chunk) == 0 {
		// An empty chunk carries no data; it is an end-of-data signal,
		// covering sources that end with a bare empty chunk instead of
		// a last flag.
		b.tryEndLocked()
		return true
	}

	if b.sink.Push(chunk) == Delivered {
		b.updateStats(func(s *Stats) {
			s.ChunksDelivered++
			s.BytesDelivered += int64(len(chunk))
		})
		return true
	}

	if len(b.pending) >= b.config.MaxStackedBuffers {
		err := fmt.Errorf("%w (max %d)", ErrStackedBuffersOverflow, b.config.MaxStackedBuffers)
		if b.config.OnOverflow != nil {
			b.config.OnOverflow(err)
		}
		b.destroyLocked(err)
		return false
	}

	b.pending = append(b.pending, chunk)
	depth := len(b.pending)
	b.updateStats(func(s *Stats) {
		s.ChunksStacked++
		if depth > s.PeakStacked {
			s.PeakStacked = depth
		}
	})
	return false
}

// tryEndLocked records that no more chunks will arrive and closes once the
// pending queue is empty.
func (b *streamBridge) tryEndLocked() {
	if b.loadState().terminal() {
		return
	}

	b.ended = true
	if len(b.pending) == 0 {
		b.closeLocked()
	} else {
		b.storeState(Closing)
	}
}

// closeLocked signals end-of-data to the sink exactly once and releases the
// queue. Reachable only once per the state invariant.
func (b *streamBridge) closeLocked() {
	b.storeState(Closed)
	b.pending = nil
	b.sink.End()
}

// Drain implements Bridge.Drain.
func (b *streamBridge) Drain() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.loadState().terminal() {
		return
	}

	for len(b.pending) > 0 {
		head := b.pending[0]
		if b.sink.Push(head) == Saturated {
			// Head stays queued; the sink will drain again later.
			break
		}
		b.pending[0] = nil
		b.pending = b.pending[1:]
		b.updateStats(func(s *Stats) {
			s.ChunksDelivered++
			s.BytesDelivered += int64(len(head))
		})
	}

	if b.ended && len(b.pending) == 0 {
		b.closeLocked()
	}
}

// Destroy implements Bridge.Destroy.
func (b *streamBridge) Destroy(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.destroyLocked(err)
}

// destroyLocked clears the queue and surfaces err to the sink. Idempotent.
func (b *streamBridge) destroyLocked(err error) {
	if b.loadState().terminal() {
		return
	}

	b.storeState(Destroyed)
	b.pending = nil
	b.termErr = err
	b.sink.Abort(err)
}

// State implements Bridge.State.
func (b *streamBridge) State() State {
	return b.loadState()
}

// Pending implements Bridge.Pending.
func (b *streamBridge) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Err implements Bridge.Err.
func (b *streamBridge) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.termErr
}

// Stats implements Bridge.Stats.
func (b *streamBridge) Stats() Stats {
	b.statsMu.RLock()
	defer b.statsMu.RUnlock()
	return b.stats
}

func (b *streamBridge) loadState() State {
	return State(atomic.LoadInt32(&b.state))
}

func (b *streamBridge) storeState(s State) {
	atomic.StoreInt32(&b.state, int32(s))
}

// updateStats safely updates statistics.
func (b *streamBridge) updateStats(updater func(*Stats)) {
	b.statsMu.Lock()
	defer b.statsMu.Unlock()
	updater(&b.stats)
}
