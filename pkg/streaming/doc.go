/*
Package streaming adapts push-style data producers to pull-style Go
consumers, with bounded buffering in between.

This package provides four streaming components:

  - bridge: the push-to-pull adapter with a bounded pending queue
  - reader: a blocking io.Reader consumer for bridged data
  - source: push-source adapters for channels, io.Reader, and manual feeding
  - source/redispush: a push source backed by Redis Pub/Sub

Basic usage:

	// Wire a bridge to an io.Reader consumer
	b, r := reader.Bridged(reader.DefaultConfig(), bridge.DefaultConfig())
	b.Attach(source.NewReaderSource(upstream))

	// Consume at the reader's own pace
	io.Copy(dst, r)

The bridge stacks chunks the consumer is not ready for, up to a configurable
limit, and destroys the stream rather than buffer without bound.
*/
package streaming
