/*
Package uwscompat bridges push-based chunked data sources into Go's
pull-based streaming world.

A push source delivers data through a callback it controls the timing of and
signals completion with a final-chunk flag. A pull consumer asks for data at
its own pace. The packages here connect the two with bounded buffering, so a
slow consumer never causes unbounded memory growth: backpressure is absorbed
up to a configurable limit, and past that limit the bridge fails fast.

Streaming (pkg/streaming):
  - bridge: the core push-to-pull bridge with a bounded pending queue
  - reader: pull-side io.Reader consumer for bridged data
  - source: push-source adapters (manual feeder, channels, io.Reader)
  - source/redispush: Redis Pub/Sub push-source adapter

Support packages:
  - pkg/common/errors: shared error sentinels and classification
  - pkg/metrics: Prometheus instrumentation for all components

Example usage:

	import (
		"github.com/jordan-breton/uws-compat-layer/pkg/streaming/bridge"
		"github.com/jordan-breton/uws-compat-layer/pkg/streaming/reader"
		"github.com/jordan-breton/uws-compat-layer/pkg/streaming/source"
	)

	b, r := reader.Bridged(reader.DefaultConfig(), bridge.DefaultConfig())
	src := source.NewFeeder()
	b.Attach(src)

	go src.Emit([]byte("hello"), true)
	data, _ := io.ReadAll(r)
*/
package uwscompat
