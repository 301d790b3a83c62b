package source

import (
	"fmt"
	"io"
	"sync"

	ucerrors "github.com/jordan-breton/uws-compat-layer/pkg/common/errors"
	"github.com/jordan-breton/uws-compat-layer/pkg/streaming/bridge"
)

// ErrNotSubscribed is returned when emitting on a source without a subscriber.
var ErrNotSubscribed = fmt.Errorf("source has no subscriber: %w", ucerrors.ErrInvalidConfiguration)

// ErrSourceEnded is returned when emitting after the final chunk.
var ErrSourceEnded = fmt.Errorf("source already delivered its final chunk: %w", ucerrors.ErrClosed)

// Feeder is a manual push source: callers emit chunks themselves and the
// subscribed callback runs synchronously in the caller's goroutine. It is
// the building block for tests and for embedding push delivery into code
// that already has its own event loop.
type Feeder struct {
	mu    sync.Mutex
	fn    func(chunk []byte, last bool)
	ended bool
}

// NewFeeder creates an unsubscribed Feeder.
func NewFeeder() *Feeder {
	return &Feeder{}
}

// Subscribe implements bridge.PushSource.
func (f *Feeder) Subscribe(fn func(chunk []byte, last bool)) {
	f.mu.Lock()
	f.fn = fn
	f.mu.Unlock()
}

// Emit hands one chunk to the subscriber, synchronously. Marking last ends
// the source; further emits return ErrSourceEnded.
func (f *Feeder) Emit(chunk []byte, last bool) error {
	f.mu.Lock()
	fn := f.fn
	if fn == nil {
		f.mu.Unlock()
		return ErrNotSubscribed
	}
	if f.ended {
		f.mu.Unlock()
		return ErrSourceEnded
	}
	if last {
		f.ended = true
	}
	f.mu.Unlock()

	fn(chunk, last)
	return nil
}

// End emits the final signal with no payload.
func (f *Feeder) End() error {
	return f.Emit(nil, true)
}

// ChanSource adapts a receive channel into a push source. Each received
// value is forwarded as one chunk; closing the channel delivers the final
// signal. Zero-length values are skipped, since a bare empty chunk would
// read as an end-of-data signal downstream. The forwarding goroutine starts
// on Subscribe.
type ChanSource struct {
	ch   <-chan []byte
	stop chan struct{}
	once sync.Once
	sub  sync.Once
	wg   sync.WaitGroup
}

// NewChanSource creates a ChanSource reading from ch.
func NewChanSource(ch <-chan []byte) *ChanSource {
	return &ChanSource{
		ch:   ch,
		stop: make(chan struct{}),
	}
}

// Subscribe implements bridge.PushSource. Only the first call has effect.
func (cs *ChanSource) Subscribe(fn func(chunk []byte, last bool)) {
	cs.sub.Do(func() {
		cs.wg.Add(1)
		go cs.forward(fn)
	})
}

// Close stops forwarding early and delivers the final signal. It blocks
// until the forwarding goroutine exits and is safe to call more than once.
func (cs *ChanSource) Close() error {
	cs.once.Do(func() { close(cs.stop) })
	cs.wg.Wait()
	return nil
}

func (cs *ChanSource) forward(fn func(chunk []byte, last bool)) {
	defer cs.wg.Done()

	for {
		select {
		case chunk, ok := <-cs.ch:
			if !ok {
				fn(nil, true)
				return
			}
			select {
			case <-cs.stop:
				fn(nil, true)
				return
			default:
			}
			if len(chunk) == 0 {
				continue
			}
			fn(chunk, false)
		case <-cs.stop:
			fn(nil, true)
			return
		}
	}
}

// ReaderConfig holds configuration options for ReaderSource.
type ReaderConfig struct {
	// ChunkSize is the read block size in bytes. Default: 64KB.
	ChunkSize int

	// OnError is called when the underlying reader fails with an error
	// other than io.EOF. The source still delivers its final signal.
	OnError func(error)
}

// DefaultReaderConfig returns a default ReaderSource configuration.
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		ChunkSize: 64 * 1024, // 64KB
	}
}

// ReaderSource adapts an io.Reader into a push source: a goroutine reads
// fixed-size blocks and forwards each as one chunk, delivering the final
// signal at io.EOF.
//
// The read buffer is reused between callbacks; subscribers must copy what
// they keep. Bridges do.
type ReaderSource struct {
	r      io.Reader
	config ReaderConfig
	stop   chan struct{}
	once   sync.Once
	sub    sync.Once
	wg     sync.WaitGroup
}

// NewReaderSource creates a ReaderSource with the default configuration.
func NewReaderSource(r io.Reader) *ReaderSource {
	return NewReaderSourceWithConfig(r, DefaultReaderConfig())
}

// NewReaderSourceWithConfig creates a ReaderSource with the specified
// configuration. A non-positive ChunkSize falls back to the default.
func NewReaderSourceWithConfig(r io.Reader, config ReaderConfig) *ReaderSource {
	if config.ChunkSize <= 0 {
		config.ChunkSize = DefaultReaderConfig().ChunkSize
	}

	return &ReaderSource{
		r:      r,
		config: config,
		stop:   make(chan struct{}),
	}
}

// Subscribe implements bridge.PushSource. Only the first call has effect.
func (rs *ReaderSource) Subscribe(fn func(chunk []byte, last bool)) {
	rs.sub.Do(func() {
		rs.wg.Add(1)
		go rs.pump(fn)
	})
}

// Close stops the source after the in-flight read completes and delivers
// the final signal. It blocks until the pump goroutine exits.
func (rs *ReaderSource) Close() error {
	rs.once.Do(func() { close(rs.stop) })
	rs.wg.Wait()
	return nil
}

func (rs *ReaderSource) pump(fn func(chunk []byte, last bool)) {
	defer rs.wg.Done()

	buf := make([]byte, rs.config.ChunkSize)
	for {
		select {
		case <-rs.stop:
			fn(nil, true)
			return
		default:
		}

		n, err := rs.r.Read(buf)
		if n > 0 {
			if err == io.EOF {
				fn(buf[:n], true)
				return
			}
			fn(buf[:n], false)
		}
		if err == io.EOF {
			fn(nil, true)
			return
		}
		if err != nil {
			if rs.config.OnError != nil {
				rs.config.OnError(err)
			}
			fn(nil, true)
			return
		}
	}
}

var _ bridge.PushSource = (*Feeder)(nil)
var _ bridge.PushSource = (*ChanSource)(nil)
var _ bridge.PushSource = (*ReaderSource)(nil)
