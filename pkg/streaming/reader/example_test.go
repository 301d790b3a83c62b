package reader_test

import (
	"fmt"
	"io"

	"github.com/jordan-breton/uws-compat-layer/pkg/streaming/bridge"
	"github.com/jordan-breton/uws-compat-layer/pkg/streaming/reader"
)

func Example() {
	// Wire a bridge and a reader back to back: the push side ingests,
	// the pull side reads.
	b, r := reader.Bridged(reader.DefaultConfig(), bridge.DefaultConfig())

	b.Ingest([]byte("streamed "), false)
	b.Ingest([]byte("payload"), false)
	b.Ingest(nil, true)

	data, err := io.ReadAll(r)
	if err != nil {
		fmt.Println("read failed:", err)
		return
	}

	fmt.Printf("%s\n", data)
	fmt.Println("bridge state:", b.State())

	// Output:
	// streamed payload
	// bridge state: closed
}

func Example_backpressure() {
	// A tiny high-water mark forces the bridge to stack chunks until
	// the consumer reads them out.
	b, r := reader.Bridged(
		reader.Config{HighWaterMark: 4},
		bridge.Config{MaxStackedBuffers: 8},
	)

	b.Ingest([]byte("aaaa"), false)
	b.Ingest([]byte("bbbb"), false)
	b.Ingest([]byte("cccc"), false)
	fmt.Println("stacked:", b.Pending())

	b.Ingest(nil, true)
	data, _ := io.ReadAll(r)
	fmt.Printf("read %d bytes\n", len(data))
	fmt.Println("stacked:", b.Pending())

	// Output:
	// stacked: 2
	// read 12 bytes
	// stacked: 0
}
