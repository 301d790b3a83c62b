/*
Package bridge adapts push-based chunked data sources into pull-driven byte
streams with bounded buffering.

A push source delivers chunks through a callback whose timing it controls and
marks the end of the stream with a final-chunk flag; it cannot be paused. A
pull consumer requests data at its own pace and signals saturation when it is
not ready for more. The Bridge sits between the two: it copies each incoming
chunk into owned memory, attempts immediate delivery, and stacks chunks the
consumer refuses in an ordered pending queue. The queue is bounded; when a
chunk would push it past MaxStackedBuffers the bridge destroys itself rather
than buffer without limit.

Core Components:
  - Bridge: the push-to-pull adapter with the bounded pending queue
  - Sink: the downstream contract (Push returning Delivered/Saturated, plus
    terminal End and Abort signals)
  - PushSource: the upstream contract (Subscribe with a chunk callback)
  - Outcome: explicit two-outcome result of a push attempt

Lifecycle:

A bridge is Active from construction. Receiving the final chunk moves it to
Closed if the pending queue is empty, or to Closing until the queue drains.
Overflow, downstream failure, or an explicit Destroy moves it to Destroyed,
discarding stacked chunks. Closed and Destroyed are terminal.

	b := bridge.NewWithConfig(sink, bridge.Config{MaxStackedBuffers: 50})
	if err := b.Attach(src); err != nil {
		// already attached, or terminated
	}

	// Pull side, whenever it is ready for more data:
	b.Drain()

Construction is side-effect free; Attach subscribes to the source and starts
the flow. This keeps bridges testable without a live source: Ingest can be
invoked directly.

	b := bridge.New(sink)
	b.Ingest([]byte("chunk"), false)
	b.Ingest(nil, true) // empty final chunk: end-of-data signal only

Backpressure:

Delivery failure never blocks. A Saturated outcome leaves the chunk at the
tail of the pending queue; a later Drain resumes delivery oldest-first,
stopping at the first refusal so order is preserved. Feeding chunks while the
consumer never drains is bounded by MaxStackedBuffers; past that the bridge
fails fast with ErrStackedBuffersOverflow and surfaces it through Sink.Abort:

	cfg := bridge.Config{
		MaxStackedBuffers: 25,
		OnOverflow: func(err error) {
			log.Printf("slow consumer: %v", err)
		},
	}

Empty chunks are signals, not data: they are never stacked or delivered, and
every empty chunk triggers the end-of-data evaluation whether or not the last
flag is set, covering sources whose only end marker is a bare trailing empty
chunk. Chunks arriving after the bridge terminated are silently dropped.

Concurrency:

The two entry points, the source callback and the pull-side Drain, may run on
different goroutines; the bridge serializes them internally. No operation
blocks: waiting for the consumer is represented by stacked chunks, never by a
suspended goroutine. Sink implementations must not call back into the bridge
from Push, End, or Abort.

Metrics:

NewWithMetrics and NewWithConfigAndMetrics wrap a bridge with Prometheus
instrumentation (see pkg/metrics): throughput counters, pending-queue depth,
and overflow/destruction counts.
*/
package bridge
