package source_test

import (
	"fmt"
	"io"
	"strings"

	"github.com/jordan-breton/uws-compat-layer/pkg/streaming/bridge"
	"github.com/jordan-breton/uws-compat-layer/pkg/streaming/reader"
	"github.com/jordan-breton/uws-compat-layer/pkg/streaming/source"
)

func ExampleFeeder() {
	b, r := reader.Bridged(reader.DefaultConfig(), bridge.DefaultConfig())

	f := source.NewFeeder()
	if err := b.Attach(f); err != nil {
		fmt.Println("attach failed:", err)
		return
	}

	f.Emit([]byte("manual "), false)
	f.Emit([]byte("delivery"), false)
	f.End()

	data, _ := io.ReadAll(r)
	fmt.Printf("%s\n", data)

	// Output:
	// manual delivery
}

func ExampleReaderSource() {
	b, r := reader.Bridged(reader.DefaultConfig(), bridge.DefaultConfig())

	src := source.NewReaderSourceWithConfig(
		strings.NewReader("pumped in 4-byte blocks"),
		source.ReaderConfig{ChunkSize: 4},
	)
	defer src.Close()

	if err := b.Attach(src); err != nil {
		fmt.Println("attach failed:", err)
		return
	}

	data, _ := io.ReadAll(r)
	fmt.Printf("%s\n", data)

	// Output:
	// pumped in 4-byte blocks
}
