/*
Package source provides push-source adapters for bridges.

Every adapter implements bridge.PushSource: it delivers chunks to a
subscribed callback on its own schedule and marks exactly one invocation as
final, unless closed first.

# Feeder

Manual, synchronous delivery. The caller drives the source:

	f := source.NewFeeder()
	b.Attach(f)

	f.Emit([]byte("chunk"), false)
	f.End()

# ChanSource

Forwards a receive channel; channel close ends the stream:

	ch := make(chan []byte)
	src := source.NewChanSource(ch)
	defer src.Close()

	b.Attach(src)
	ch <- []byte("chunk")
	close(ch)

# ReaderSource

Reads fixed-size blocks from an io.Reader; io.EOF ends the stream:

	src := source.NewReaderSource(file)
	defer src.Close()

	b.Attach(src)

ReaderSource reuses its read buffer between callbacks. Subscribers that
retain chunks must copy them; bridges copy on ingest.

# Monitoring

Wrap any source with WithMetrics to count emitted chunks, bytes and final
signals in Prometheus:

	src := source.WithMetrics(source.NewChanSource(ch), "chan", "events", metricsConfig)
*/
package source
