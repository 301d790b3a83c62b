package benchmark

import (
	"testing"

	"github.com/jordan-breton/uws-compat-layer/internal/testutil"
	"github.com/jordan-breton/uws-compat-layer/pkg/streaming/bridge"
)

// BenchmarkIngest measures direct delivery through a bridge.
func BenchmarkIngest(b *testing.B) {
	sizes := []int{64, 1024, 16 * 1024, 64 * 1024}

	for _, size := range sizes {
		chunk := make([]byte, size)

		b.Run(sizeLabel(size), func(b *testing.B) {
			sink := testutil.NewMockSink()
			br := bridge.New(sink)

			b.ReportAllocs()
			b.SetBytes(int64(size))
			for i := 0; i < b.N; i++ {
				br.Ingest(chunk, false)
			}
		})
	}
}

// BenchmarkStackAndDrain measures the stack-then-drain round trip under a
// saturated sink.
func BenchmarkStackAndDrain(b *testing.B) {
	depths := []int{1, 10, 25}
	chunk := make([]byte, 1024)

	for _, depth := range depths {
		b.Run(depthLabel(depth), func(b *testing.B) {
			sink := testutil.NewMockSink()
			br := bridge.NewWithConfig(sink, bridge.Config{
				MaxStackedBuffers: depth + 1,
			})

			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				sink.SetReady(false)
				for j := 0; j < depth; j++ {
					br.Ingest(chunk, false)
				}
				sink.SetReady(true)
				br.Drain()
			}
		})
	}
}

// BenchmarkOverflow measures the cost of building, overflowing, and
// destroying a bridge.
func BenchmarkOverflow(b *testing.B) {
	chunk := make([]byte, 256)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		sink := testutil.NewMockSink()
		sink.SetReady(false)
		br := bridge.NewWithConfig(sink, bridge.Config{MaxStackedBuffers: 8})

		for j := 0; j < 9; j++ {
			br.Ingest(chunk, false)
		}
	}
}

func sizeLabel(size int) string {
	switch {
	case size >= 1024*1024:
		return "1MB"
	case size >= 64*1024:
		return "64KB"
	case size >= 16*1024:
		return "16KB"
	case size >= 4*1024:
		return "4KB"
	case size >= 1024:
		return "1KB"
	default:
		return "64B"
	}
}

func depthLabel(depth int) string {
	switch {
	case depth >= 25:
		return "depth25"
	case depth >= 10:
		return "depth10"
	default:
		return "depth1"
	}
}
