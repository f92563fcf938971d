// Package benchmark holds performance benchmarks for respkv.
//
// Run with:
//
//	go test -bench=. -benchmem ./internal/tests/benchmark/...
//
// Compare runs with benchstat old.txt new.txt.
package benchmark
