package benchmark

import (
	"strings"
	"testing"

	"github.com/yndnr/respkv/internal/core/command"
	"github.com/yndnr/respkv/internal/protocol/resp"
)

func BenchmarkDecode(b *testing.B) {
	cases := map[string][]byte{
		"ping":      resp.AppendRequest(nil, "PING"),
		"set_px":    resp.AppendRequest(nil, "SET", "session:42", "payload", "PX", "60000"),
		"bulk_64KB": resp.AppendRequest(nil, "ECHO", strings.Repeat("x", 64<<10)),
	}
	for name, raw := range cases {
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(raw)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := resp.Decode(raw); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkParse(b *testing.B) {
	f, err := resp.Decode(resp.AppendRequest(nil, "SET", "k", "v", "EX", "1", "PX", "500"))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := command.Parse(f.Value); err != nil {
			b.Fatal(err)
		}
	}
}
