package benchmark

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/yndnr/respkv/internal/protocol/resp"
	"github.com/yndnr/respkv/internal/storage/memory"
)

// KeyCounts are the store sizes used by the store benchmarks.
var KeyCounts = []int{1000, 10000, 100000}

func key(i int) string {
	return fmt.Sprintf("key:%d", i)
}

func prefillStore(n int) *memory.Store {
	st := memory.New()
	for i := 0; i < n; i++ {
		st.Put(key(i), resp.Text("value"))
	}
	return st
}

func reportMemory(b *testing.B) {
	b.Helper()
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.HeapAlloc)/(1<<20), "heap_MB")
}
