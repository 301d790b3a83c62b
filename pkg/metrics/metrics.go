// Package metrics provides Prometheus instrumentation for compat layer components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for compat layer components.
type Registry struct {
	// Bridge Metrics
	BridgeChunksIngested  *prometheus.CounterVec
	BridgeChunksDelivered *prometheus.CounterVec
	BridgeChunksStacked   *prometheus.CounterVec
	BridgeBytesIngested   *prometheus.CounterVec
	BridgeBytesDelivered  *prometheus.CounterVec
	BridgePendingDepth    *prometheus.GaugeVec
	BridgeOverflows       *prometheus.CounterVec
	BridgeDestroys        *prometheus.CounterVec

	// Reader Metrics
	ReaderBytesRead     *prometheus.CounterVec
	ReaderChunksRefused *prometheus.CounterVec
	ReaderBlockedReads  *prometheus.CounterVec
	ReaderBufferedBytes *prometheus.GaugeVec

	// Source Metrics
	SourceChunks *prometheus.CounterVec
	SourceBytes  *prometheus.CounterVec
	SourceFinals *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by compat layer components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Bridge Metrics
		BridgeChunksIngested: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "uwscompat",
				Subsystem: "bridge",
				Name:      "chunks_ingested_total",
				Help:      "Total number of chunks received from push sources",
			},
			[]string{"bridge_name"},
		),

		BridgeChunksDelivered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "uwscompat",
				Subsystem: "bridge",
				Name:      "chunks_delivered_total",
				Help:      "Total number of chunks delivered to the pull side",
			},
			[]string{"bridge_name"},
		),

		BridgeChunksStacked: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "uwscompat",
				Subsystem: "bridge",
				Name:      "chunks_stacked_total",
				Help:      "Total number of chunks held back in the pending queue",
			},
			[]string{"bridge_name"},
		),

		BridgeBytesIngested: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "uwscompat",
				Subsystem: "bridge",
				Name:      "bytes_ingested_total",
				Help:      "Total bytes received from push sources",
			},
			[]string{"bridge_name"},
		),

		BridgeBytesDelivered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "uwscompat",
				Subsystem: "bridge",
				Name:      "bytes_delivered_total",
				Help:      "Total bytes delivered to the pull side",
			},
			[]string{"bridge_name"},
		),

		BridgePendingDepth: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "uwscompat",
				Subsystem: "bridge",
				Name:      "pending_depth",
				Help:      "Current number of chunks in the pending queue",
			},
			[]string{"bridge_name"},
		),

		BridgeOverflows: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "uwscompat",
				Subsystem: "bridge",
				Name:      "overflows_total",
				Help:      "Total number of pending queue overflows",
			},
			[]string{"bridge_name"},
		),

		BridgeDestroys: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "uwscompat",
				Subsystem: "bridge",
				Name:      "destroys_total",
				Help:      "Total number of bridge destructions",
			},
			[]string{"bridge_name", "reason"},
		),

		// Reader Metrics
		ReaderBytesRead: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "uwscompat",
				Subsystem: "reader",
				Name:      "bytes_read_total",
				Help:      "Total bytes handed to consumers via Read",
			},
			[]string{"reader_name"},
		),

		ReaderChunksRefused: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "uwscompat",
				Subsystem: "reader",
				Name:      "chunks_refused_total",
				Help:      "Total number of chunks refused while saturated",
			},
			[]string{"reader_name"},
		),

		ReaderBlockedReads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "uwscompat",
				Subsystem: "reader",
				Name:      "blocked_reads_total",
				Help:      "Total number of Read calls that had to wait for data",
			},
			[]string{"reader_name"},
		),

		ReaderBufferedBytes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "uwscompat",
				Subsystem: "reader",
				Name:      "buffered_bytes",
				Help:      "Current number of bytes buffered ahead of the consumer",
			},
			[]string{"reader_name"},
		),

		// Source Metrics
		SourceChunks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "uwscompat",
				Subsystem: "source",
				Name:      "chunks_total",
				Help:      "Total number of chunks emitted by push sources",
			},
			[]string{"source_type", "source_name"},
		),

		SourceBytes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "uwscompat",
				Subsystem: "source",
				Name:      "bytes_total",
				Help:      "Total bytes emitted by push sources",
			},
			[]string{"source_type", "source_name"},
		),

		SourceFinals: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "uwscompat",
				Subsystem: "source",
				Name:      "finals_total",
				Help:      "Total number of final-chunk signals emitted by push sources",
			},
			[]string{"source_type", "source_name"},
		),
	}
}
