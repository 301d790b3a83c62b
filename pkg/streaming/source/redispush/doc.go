/*
Package redispush adapts Redis Pub/Sub into a bridge push source.

Every message published on the configured channel is forwarded to the
subscriber as one chunk. Redis Pub/Sub has no end-of-stream marker, so the
stream ends only when the source is closed or the subscription dies.

# Quick Start

	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})

	src, err := redispush.New(redispush.Config{
		Redis:   rdb,
		Channel: "uploads",
	})
	if err != nil {
		return err
	}
	defer src.Close()

	b, r := reader.Bridged(reader.DefaultConfig(), bridge.DefaultConfig())
	b.Attach(src)

	// Consume published payloads as a byte stream.
	io.Copy(dst, r)

Any go-redis universal client works: single node, cluster, or sentinel.

# Failure Handling

If the subscription closes without Close being called, the source reports
ErrSubscriptionLost through Config.OnError and still delivers its final
signal, so the downstream bridge closes cleanly rather than hanging.
*/
package redispush
