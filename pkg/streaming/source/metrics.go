package source

import (
	"github.com/jordan-breton/uws-compat-layer/pkg/metrics"
	"github.com/jordan-breton/uws-compat-layer/pkg/streaming/bridge"
)

// instrumentedSource wraps a PushSource and counts what flows through it.
type instrumentedSource struct {
	src        bridge.PushSource
	sourceType string
	name       string
	registry   *metrics.Registry
}

// WithMetrics wraps src so that every chunk, byte and final signal it emits
// is counted in Prometheus, labeled with sourceType and name. A disabled
// config returns src unchanged.
func WithMetrics(src bridge.PushSource, sourceType, name string, config metrics.Config) bridge.PushSource {
	if !config.Enabled {
		return src
	}

	registry := metrics.DefaultRegistry
	if config.Registry != nil {
		registry = metrics.NewRegistry(config.Registry)
	}

	return &instrumentedSource{
		src:        src,
		sourceType: sourceType,
		name:       name,
		registry:   registry,
	}
}

// Subscribe implements bridge.PushSource, interposing the counters.
func (is *instrumentedSource) Subscribe(fn func(chunk []byte, last bool)) {
	is.src.Subscribe(func(chunk []byte, last bool) {
		if len(chunk) > 0 {
			is.registry.SourceChunks.WithLabelValues(is.sourceType, is.name).Inc()
			is.registry.SourceBytes.WithLabelValues(is.sourceType, is.name).Add(float64(len(chunk)))
		}
		if last {
			is.registry.SourceFinals.WithLabelValues(is.sourceType, is.name).Inc()
		}
		fn(chunk, last)
	})
}
