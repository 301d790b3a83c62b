package bridge

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jordan-breton/uws-compat-layer/pkg/metrics"
)

// MetricsBridge wraps a Bridge with Prometheus metrics collection.
type MetricsBridge struct {
	bridge   Bridge
	name     string
	registry *metrics.Registry
	enabled  bool

	mu   sync.Mutex
	prev Stats
	dead bool
}

// NewWithMetrics creates a bridge with metrics enabled.
func NewWithMetrics(sink Sink, name string) Bridge {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics(sink, DefaultConfig(), name, config)
}

// NewWithConfigAndMetrics creates a bridge with custom config and metrics.
func NewWithConfigAndMetrics(sink Sink, config Config, name string, metricsConfig metrics.Config) Bridge {
	base := NewWithConfig(sink, config)

	if !metricsConfig.Enabled {
		return base
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	return &MetricsBridge{
		bridge:   base,
		name:     name,
		registry: registry,
		enabled:  true,
	}
}

// Attach subscribes the bridge to the source's chunk delivery. The
// metrics-aware Ingest is subscribed in place of the base one so that
// source-driven pushes are recorded.
func (mb *MetricsBridge) Attach(source PushSource) error {
	return mb.bridge.Attach(PushSourceFunc(func(_ func(chunk []byte, last bool)) {
		source.Subscribe(mb.Ingest)
	}))
}

// Ingest forwards one source chunk, recording throughput metrics.
func (mb *MetricsBridge) Ingest(chunk []byte, last bool) {
	mb.bridge.Ingest(chunk, last)
	mb.sync()
}

// Drain delivers stacked chunks, recording throughput metrics.
func (mb *MetricsBridge) Drain() {
	mb.bridge.Drain()
	mb.sync()
}

// Destroy aborts the bridge, recording the destruction.
func (mb *MetricsBridge) Destroy(err error) {
	mb.bridge.Destroy(err)
	mb.sync()
}

// State returns the current lifecycle state.
func (mb *MetricsBridge) State() State {
	return mb.bridge.State()
}

// Pending returns the current pending queue depth.
func (mb *MetricsBridge) Pending() int {
	return mb.bridge.Pending()
}

// Err returns the terminal error, if any.
func (mb *MetricsBridge) Err() error {
	return mb.bridge.Err()
}

// Stats returns bridge statistics.
func (mb *MetricsBridge) Stats() Stats {
	return mb.bridge.Stats()
}

// EnableMetrics enables metrics collection.
func (mb *MetricsBridge) EnableMetrics(config metrics.Config) error {
	mb.enabled = config.Enabled

	if config.Registry != nil {
		mb.registry = metrics.NewRegistry(config.Registry)
	}

	return nil
}

// DisableMetrics disables metrics collection.
func (mb *MetricsBridge) DisableMetrics() {
	mb.enabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (mb *MetricsBridge) MetricsEnabled() bool {
	return mb.enabled
}

// sync publishes the delta since the last snapshot. Bridge operations are
// not one-to-one with metric increments (a single Drain can deliver many
// chunks), so counters are fed from Stats deltas.
func (mb *MetricsBridge) sync() {
	if !mb.enabled {
		return
	}

	mb.mu.Lock()
	defer mb.mu.Unlock()

	cur := mb.bridge.Stats()

	mb.registry.BridgeChunksIngested.WithLabelValues(mb.name).Add(float64(cur.ChunksIngested - mb.prev.ChunksIngested))
	mb.registry.BridgeChunksDelivered.WithLabelValues(mb.name).Add(float64(cur.ChunksDelivered - mb.prev.ChunksDelivered))
	mb.registry.BridgeChunksStacked.WithLabelValues(mb.name).Add(float64(cur.ChunksStacked - mb.prev.ChunksStacked))
	mb.registry.BridgeBytesIngested.WithLabelValues(mb.name).Add(float64(cur.BytesIngested - mb.prev.BytesIngested))
	mb.registry.BridgeBytesDelivered.WithLabelValues(mb.name).Add(float64(cur.BytesDelivered - mb.prev.BytesDelivered))
	mb.registry.BridgePendingDepth.WithLabelValues(mb.name).Set(float64(mb.bridge.Pending()))
	mb.prev = cur

	if !mb.dead && mb.bridge.State() == Destroyed {
		mb.dead = true
		err := mb.bridge.Err()
		reason := "abort"
		switch {
		case errors.Is(err, ErrStackedBuffersOverflow):
			reason = "overflow"
			mb.registry.BridgeOverflows.WithLabelValues(mb.name).Inc()
		case err != nil:
			reason = "error"
		}
		mb.registry.BridgeDestroys.WithLabelValues(mb.name, reason).Inc()
	}
}
