package reader

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jordan-breton/uws-compat-layer/pkg/metrics"
	"github.com/jordan-breton/uws-compat-layer/pkg/streaming/bridge"
)

// MetricsReader wraps a Reader with Prometheus metrics collection.
type MetricsReader struct {
	reader   *Reader
	name     string
	registry *metrics.Registry
	enabled  bool

	mu   sync.Mutex
	prev Stats
}

// NewWithMetrics creates a reader with metrics enabled.
func NewWithMetrics(name string) *MetricsReader {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics(DefaultConfig(), name, config)
}

// NewWithConfigAndMetrics creates a reader with custom config and metrics.
func NewWithConfigAndMetrics(config Config, name string, metricsConfig metrics.Config) *MetricsReader {
	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	return &MetricsReader{
		reader:   NewWithConfig(config),
		name:     name,
		registry: registry,
		enabled:  metricsConfig.Enabled,
	}
}

// Push implements bridge.Sink, recording refusal metrics.
func (mr *MetricsReader) Push(chunk []byte) bridge.Outcome {
	outcome := mr.reader.Push(chunk)
	mr.sync()
	return outcome
}

// End implements bridge.Sink.
func (mr *MetricsReader) End() {
	mr.reader.End()
	mr.sync()
}

// Abort implements bridge.Sink.
func (mr *MetricsReader) Abort(err error) {
	mr.reader.Abort(err)
	mr.sync()
}

// Read implements io.Reader, recording throughput metrics.
func (mr *MetricsReader) Read(p []byte) (int, error) {
	n, err := mr.reader.Read(p)
	mr.sync()
	return n, err
}

// Close implements io.Closer.
func (mr *MetricsReader) Close() error {
	err := mr.reader.Close()
	mr.sync()
	return err
}

// Bind wires the producer-side handle the reader pulls from.
func (mr *MetricsReader) Bind(d Drainer) {
	mr.reader.Bind(d)
}

// Buffered returns the number of unread bytes currently held.
func (mr *MetricsReader) Buffered() int {
	return mr.reader.Buffered()
}

// Stats returns reader statistics.
func (mr *MetricsReader) Stats() Stats {
	return mr.reader.Stats()
}

// EnableMetrics enables metrics collection.
func (mr *MetricsReader) EnableMetrics(config metrics.Config) error {
	mr.enabled = config.Enabled

	if config.Registry != nil {
		mr.registry = metrics.NewRegistry(config.Registry)
	}

	return nil
}

// DisableMetrics disables metrics collection.
func (mr *MetricsReader) DisableMetrics() {
	mr.enabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (mr *MetricsReader) MetricsEnabled() bool {
	return mr.enabled
}

// sync publishes stat deltas since the previous observation.
func (mr *MetricsReader) sync() {
	if !mr.enabled || mr.registry == nil {
		return
	}

	mr.mu.Lock()
	defer mr.mu.Unlock()

	cur := mr.reader.Stats()

	if d := cur.BytesRead - mr.prev.BytesRead; d > 0 {
		mr.registry.ReaderBytesRead.WithLabelValues(mr.name).Add(float64(d))
	}
	if d := cur.ChunksRefused - mr.prev.ChunksRefused; d > 0 {
		mr.registry.ReaderChunksRefused.WithLabelValues(mr.name).Add(float64(d))
	}
	if d := cur.BlockedReads - mr.prev.BlockedReads; d > 0 {
		mr.registry.ReaderBlockedReads.WithLabelValues(mr.name).Add(float64(d))
	}
	mr.registry.ReaderBufferedBytes.WithLabelValues(mr.name).Set(float64(mr.reader.Buffered()))

	mr.prev = cur
}

var _ bridge.Sink = (*MetricsReader)(nil)
var _ metrics.Instrumentable = (*MetricsReader)(nil)
