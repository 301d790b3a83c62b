// Package metrics provides Prometheus instrumentation for compat layer components.
//
// This package enables monitoring and observability for the push-to-pull
// bridge, its pull-side readers, and its push-source adapters.
//
// # Overview
//
// The metrics package provides automatic instrumentation for:
//   - Bridge operations (chunks ingested, delivered, stacked, overflows)
//   - Pull-side readers (bytes read, refused chunks, blocked reads)
//   - Push-source adapters (chunks, bytes, final signals)
//
// # Quick Start
//
// Enable metrics by using the metrics-enabled constructors:
//
//	// Bridge with metrics
//	b := bridge.NewWithMetrics(sink, "upload_stream")
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//
//	b := bridge.NewWithConfigAndMetrics(
//		sink,
//		bridge.Config{MaxStackedBuffers: 50},
//		"upload_stream",
//		config,
//	)
//
// # Available Metrics
//
// ## Bridge Metrics
//
//   - uwscompat_bridge_chunks_ingested_total: Chunks received from push sources
//   - uwscompat_bridge_chunks_delivered_total: Chunks delivered to the pull side
//   - uwscompat_bridge_chunks_stacked_total: Chunks held back in the pending queue
//   - uwscompat_bridge_bytes_ingested_total: Bytes received from push sources
//   - uwscompat_bridge_bytes_delivered_total: Bytes delivered to the pull side
//   - uwscompat_bridge_pending_depth: Current pending queue depth
//   - uwscompat_bridge_overflows_total: Pending queue overflows
//   - uwscompat_bridge_destroys_total: Bridge destructions by reason
//
// ## Reader Metrics
//
//   - uwscompat_reader_bytes_read_total: Bytes handed to consumers
//   - uwscompat_reader_chunks_refused_total: Chunks refused while saturated
//   - uwscompat_reader_blocked_reads_total: Reads that had to wait for data
//   - uwscompat_reader_buffered_bytes: Bytes buffered ahead of the consumer
//
// ## Source Metrics
//
//   - uwscompat_source_chunks_total: Chunks emitted by push sources
//   - uwscompat_source_bytes_total: Bytes emitted by push sources
//   - uwscompat_source_finals_total: Final-chunk signals emitted
//
// # Labels
//
// Metrics include relevant labels for filtering and aggregation:
//
//   - bridge_name: User-provided name for the bridge instance
//   - reader_name: User-provided name for the reader instance
//   - source_type: "feeder", "chan", "reader", or "redispush"
//   - source_name: User-provided name for the source instance
//   - reason: "overflow", "abort", or "error" for bridge destructions
//
// # Performance
//
// Metrics collection is designed for minimal overhead:
//   - Metrics are updated only when operations occur
//   - No background goroutines or timers
//   - Conditional metrics updates based on enabled state
package metrics
