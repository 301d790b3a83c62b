package bridge_test

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jordan-breton/uws-compat-layer/pkg/metrics"
	"github.com/jordan-breton/uws-compat-layer/pkg/streaming/bridge"
)

// Example_metricsBasic demonstrates basic metrics collection for a bridge.
func Example_metricsBasic() {
	// Create a separate registry to avoid conflicts
	customRegistry := prometheus.NewRegistry()
	metricsConfig := metrics.Config{
		Enabled:  true,
		Registry: customRegistry,
	}

	sink := &printSink{ready: true}
	b := bridge.NewWithConfigAndMetrics(sink, bridge.Config{
		MaxStackedBuffers: 8,
	}, "upload_stream", metricsConfig)

	b.Ingest([]byte("first chunk"), false)

	sink.ready = false
	b.Ingest([]byte("second chunk"), false)
	fmt.Printf("Pending after refusal: %d\n", b.Pending())

	sink.ready = true
	b.Drain()
	b.Ingest(nil, true)

	stats := b.Stats()
	fmt.Printf("Chunks ingested: %d\n", stats.ChunksIngested)
	fmt.Printf("Chunks stacked: %d\n", stats.ChunksStacked)
	fmt.Printf("Bytes delivered: %d\n", stats.BytesDelivered)

	// In a real application, you would expose the registry like this:
	//
	// http.Handle("/metrics", promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{}))
	// log.Fatal(http.ListenAndServe(":8080", nil))

	// Output:
	// Pending after refusal: 1
	// end of stream
	// Chunks ingested: 2
	// Chunks stacked: 1
	// Bytes delivered: 23
}

// Example_metricsConfiguration demonstrates different metrics configurations.
func Example_metricsConfiguration() {
	// Bridge with metrics disabled falls back to the plain implementation
	disabled := bridge.NewWithConfigAndMetrics(&printSink{ready: true}, bridge.Config{
		MaxStackedBuffers: 4,
	}, "disabled_bridge", metrics.Config{Enabled: false})

	customRegistry := prometheus.NewRegistry()
	enabled := bridge.NewWithConfigAndMetrics(&printSink{ready: true}, bridge.Config{
		MaxStackedBuffers: 4,
	}, "enabled_bridge", metrics.Config{Enabled: true, Registry: customRegistry})

	if mb, ok := enabled.(*bridge.MetricsBridge); ok {
		fmt.Printf("Enabled bridge has metrics: %v\n", mb.MetricsEnabled())
	}

	if _, ok := disabled.(*bridge.MetricsBridge); !ok {
		fmt.Println("Disabled bridge has metrics: false")
	}

	// Output:
	// Enabled bridge has metrics: true
	// Disabled bridge has metrics: false
}
