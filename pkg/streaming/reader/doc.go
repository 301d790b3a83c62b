/*
Package reader exposes bridged push data as a blocking io.Reader.

Reader is the standard pull consumer for a bridge: it implements bridge.Sink
on the producer side and io.Reader on the consumer side, buffering up to a
high-water mark and refusing chunks beyond it so the bridge stacks them
instead.

# Quick Start

	b, r := reader.Bridged(reader.DefaultConfig(), bridge.DefaultConfig())
	b.Attach(source)

	data, err := io.ReadAll(r)

# Configuration

	config := reader.Config{
		HighWaterMark: 16 * 1024, // refuse chunks beyond 16KB buffered
		Name:          "upload",
	}

	r := reader.NewWithConfig(config)

# Backpressure

Push refuses chunks while the buffered byte count is at or above the
high-water mark. Each Read that frees capacity pulls from the bound producer,
so the stacked backlog drains exactly as fast as the consumer reads:

	r.Bind(b)       // usually done by Bridged
	n, err := r.Read(buf)

# Stream Termination

When the producer signals end-of-data, Read serves the remaining buffered
bytes and then returns io.EOF. When the producer aborts, buffered data is
discarded and Read returns the terminal error (ErrStreamAborted if the abort
carried none). Closing the reader propagates a consumer-requested abort back
to the producer:

	defer r.Close() // destroys the bound bridge

# Monitoring

Use NewWithConfigAndMetrics for Prometheus instrumentation, or poll Stats:

	stats := r.Stats()
	fmt.Printf("Read: %d bytes, refused: %d chunks\n",
		stats.BytesRead, stats.ChunksRefused)

# Thread Safety

Reader supports one Read caller at a time, concurrent with the producer side.

See example tests for more usage patterns.
*/
package reader
