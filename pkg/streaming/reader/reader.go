package reader

import (
	"fmt"
	"io"
	"sync"
	"time"

	ucerrors "github.com/jordan-breton/uws-compat-layer/pkg/common/errors"
	"github.com/jordan-breton/uws-compat-layer/pkg/streaming/bridge"
)

// ErrStreamAborted is returned from Read when the producer side aborted
// the stream without a more specific error.
var ErrStreamAborted = fmt.Errorf("stream aborted by producer: %w", ucerrors.ErrAborted)

// ErrReaderClosed is returned from Read after the reader has been closed.
var ErrReaderClosed = fmt.Errorf("reader is closed: %w", ucerrors.ErrClosed)

// Drainer is the producer-side handle a Reader pulls from. A bridge.Bridge
// satisfies it.
type Drainer interface {
	// Drain delivers pending chunks until the consumer saturates again.
	Drain()

	// Destroy aborts the producer side. A nil error means a plain
	// consumer-requested abort.
	Destroy(err error)
}

// Config holds configuration options for Reader.
type Config struct {
	// HighWaterMark is the buffered byte count at or above which Push
	// refuses further chunks. Default: 64KB.
	HighWaterMark int

	// Name identifies this reader in metrics and diagnostics.
	Name string
}

// DefaultConfig returns a default reader configuration.
func DefaultConfig() Config {
	return Config{
		HighWaterMark: 64 * 1024, // 64KB
	}
}

// Stats holds statistics about reader activity.
type Stats struct {
	// BytesRead is the total number of bytes handed to Read callers.
	BytesRead int64

	// ChunksAccepted is the number of chunks accepted by Push.
	ChunksAccepted int64

	// ChunksRefused is the number of Push attempts refused at the
	// high-water mark.
	ChunksRefused int64

	// BlockedReads is the number of Read calls that had to wait for data.
	BlockedReads int64

	// LastReadTime is the timestamp of the last successful Read.
	LastReadTime time.Time
}

// Reader exposes bridged data as a blocking io.Reader. It implements
// bridge.Sink: Push buffers chunks until the high-water mark, End arranges
// io.EOF once the buffer drains, Abort discards the buffer and surfaces the
// terminal error to Read callers.
//
// Reader is safe for one concurrent Read caller alongside the producer side.
type Reader struct {
	config Config

	mu       sync.Mutex
	cond     *sync.Cond
	chunks   [][]byte
	offset   int // read position within chunks[0]
	buffered int // total unread bytes
	ended    bool
	aborted  bool
	abortErr error
	closed   bool
	bound    Drainer

	stats   Stats
	statsMu sync.RWMutex
}

// New creates a Reader with the default configuration.
func New() *Reader {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a Reader with the specified configuration.
// A non-positive HighWaterMark falls back to the default.
func NewWithConfig(config Config) *Reader {
	if config.HighWaterMark <= 0 {
		config.HighWaterMark = DefaultConfig().HighWaterMark
	}

	r := &Reader{config: config}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// Bridged creates a Reader and a Bridge wired back to back: the bridge
// delivers into the reader, and the reader pulls from the bridge as Read
// calls free buffer capacity.
func Bridged(config Config, bridgeConfig bridge.Config) (bridge.Bridge, *Reader) {
	r := NewWithConfig(config)
	b := bridge.NewWithConfig(r, bridgeConfig)
	r.Bind(b)
	return b, r
}

// Bind wires the producer-side handle the reader pulls from. Read invokes
// Drain whenever it frees buffer capacity, and Close propagates a
// consumer-requested abort via Destroy(nil).
func (r *Reader) Bind(d Drainer) {
	r.mu.Lock()
	r.bound = d
	r.mu.Unlock()
}

// Push implements bridge.Sink. It refuses the chunk while the buffered byte
// count is at or above the high-water mark.
func (r *Reader) Push(chunk []byte) bridge.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.aborted {
		return bridge.Saturated
	}

	if r.buffered >= r.config.HighWaterMark {
		r.updateStats(func(s *Stats) { s.ChunksRefused++ })
		return bridge.Saturated
	}

	// The producer hands over ownership of the chunk.
	r.chunks = append(r.chunks, chunk)
	r.buffered += len(chunk)
	r.updateStats(func(s *Stats) { s.ChunksAccepted++ })
	r.cond.Signal()
	return bridge.Delivered
}

// End implements bridge.Sink. Buffered data remains readable; Read returns
// io.EOF once it is consumed.
func (r *Reader) End() {
	r.mu.Lock()
	r.ended = true
	r.mu.Unlock()
	r.cond.Broadcast()
}

// Abort implements bridge.Sink. Buffered data is discarded and err is
// surfaced to Read callers. A nil err is reported as ErrStreamAborted.
func (r *Reader) Abort(err error) {
	if err == nil {
		err = ErrStreamAborted
	}

	r.mu.Lock()
	if !r.aborted {
		r.aborted = true
		r.abortErr = err
		r.chunks = nil
		r.offset = 0
		r.buffered = 0
	}
	r.mu.Unlock()
	r.cond.Broadcast()
}

// Read implements io.Reader. It blocks until data is available, the stream
// ends, or the stream is aborted. After consuming data it pulls from the
// bound producer if buffer capacity was freed.
func (r *Reader) Read(p []byte) (int, error) {
	r.mu.Lock()

	blocked := false
	for r.buffered == 0 && !r.ended && !r.aborted && !r.closed {
		if !blocked {
			blocked = true
			r.updateStats(func(s *Stats) { s.BlockedReads++ })
		}
		r.cond.Wait()
	}

	if r.closed {
		r.mu.Unlock()
		return 0, ErrReaderClosed
	}
	if r.aborted {
		err := r.abortErr
		r.mu.Unlock()
		return 0, err
	}
	if r.buffered == 0 {
		r.mu.Unlock()
		return 0, io.EOF
	}

	n := 0
	for n < len(p) && len(r.chunks) > 0 {
		head := r.chunks[0][r.offset:]
		c := copy(p[n:], head)
		n += c
		if c == len(head) {
			r.chunks[0] = nil
			r.chunks = r.chunks[1:]
			r.offset = 0
		} else {
			r.offset += c
		}
	}
	r.buffered -= n
	r.updateStats(func(s *Stats) {
		s.BytesRead += int64(n)
		s.LastReadTime = time.Now()
	})

	var pull Drainer
	if r.bound != nil && !r.ended && r.buffered < r.config.HighWaterMark {
		pull = r.bound
	}
	r.mu.Unlock()

	// Drain outside the lock: the producer calls straight back into Push.
	if pull != nil {
		pull.Drain()
	}

	return n, nil
}

// Close releases the reader and propagates a consumer-requested abort to the
// bound producer. Subsequent Reads return ErrReaderClosed. Close is
// idempotent.
func (r *Reader) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.chunks = nil
	r.offset = 0
	r.buffered = 0
	bound := r.bound
	r.mu.Unlock()
	r.cond.Broadcast()

	if bound != nil {
		bound.Destroy(nil)
	}
	return nil
}

// Buffered returns the number of unread bytes currently held.
func (r *Reader) Buffered() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buffered
}

// Stats returns reader statistics.
func (r *Reader) Stats() Stats {
	r.statsMu.RLock()
	defer r.statsMu.RUnlock()
	return r.stats
}

// updateStats safely updates statistics.
func (r *Reader) updateStats(updater func(*Stats)) {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	updater(&r.stats)
}

var _ bridge.Sink = (*Reader)(nil)
var _ io.ReadCloser = (*Reader)(nil)
