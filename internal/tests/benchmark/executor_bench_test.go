package benchmark

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/yndnr/respkv/internal/core/executor"
	"github.com/yndnr/respkv/internal/protocol/resp"
)

func BenchmarkExecute_Get(b *testing.B) {
	for _, n := range KeyCounts {
		b.Run(fmt.Sprintf("keys=%d", n), func(b *testing.B) {
			st := prefillStore(n)
			exec := executor.New()
			reqs := make([][]byte, 1024)
			for i := range reqs {
				reqs[i] = resp.AppendRequest(nil, "GET", key(i%n))
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, ok := exec.Execute(st, reqs[i%len(reqs)]); !ok {
					b.Fatal("no reply")
				}
			}
			b.StopTimer()
			reportMemory(b)
		})
	}
}

func BenchmarkExecute_SetParallel(b *testing.B) {
	st := prefillStore(0)
	exec := executor.New()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			raw := resp.AppendRequest(nil, "SET", key(i%10000), "v", "PX", strconv.Itoa(60000))
			if _, ok := exec.Execute(st, raw); !ok {
				b.Error("no reply")
				return
			}
			i++
		}
	})
}

func BenchmarkStep_Pipeline(b *testing.B) {
	st := prefillStore(0)
	exec := executor.New()
	var pipeline []byte
	for i := 0; i < 100; i++ {
		pipeline = resp.AppendRequest(pipeline, "SET", key(i), "v")
		pipeline = resp.AppendRequest(pipeline, "GET", key(i))
	}
	b.SetBytes(int64(len(pipeline)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf := pipeline
		for len(buf) > 0 {
			r := exec.Step(st, buf)
			if r.Err != nil {
				b.Fatal(r.Err)
			}
			buf = buf[r.Consumed:]
		}
	}
}
