package hashmap

import (
	"fmt"
	"testing"

	"github.com/cespare/xxhash/v2"
)

const benchKeyCount = 1 << 16

func benchKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("bench-key-%d", i)
	}
	return keys
}

func BenchmarkPut(b *testing.B) {
	keys := benchKeys(benchKeyCount)
	table, _ := New(16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		table.Put(keys[i&(benchKeyCount-1)], i)
	}
}

func BenchmarkGet(b *testing.B) {
	keys := benchKeys(benchKeyCount)
	table, _ := New(16)
	for i, key := range keys {
		table.Put(key, i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		table.Get(keys[i&(benchKeyCount-1)])
	}
}

func BenchmarkContainsKey(b *testing.B) {
	keys := benchKeys(benchKeyCount)
	table, _ := New(16)
	for i, key := range keys {
		table.Put(key, i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		table.ContainsKey(keys[i&(benchKeyCount-1)])
	}
}

// Baseline comparison for the table's DJB2 hash against xxhash on the same
// key set.
func BenchmarkHashDJB2(b *testing.B) {
	keys := benchKeys(1024)
	b.ResetTimer()
	var sink uint64
	for i := 0; i < b.N; i++ {
		sink += Hash(keys[i&1023])
	}
	_ = sink
}

func BenchmarkHashXXH64(b *testing.B) {
	keys := benchKeys(1024)
	b.ResetTimer()
	var sink uint64
	for i := 0; i < b.N; i++ {
		sink += xxhash.Sum64String(keys[i&1023])
	}
	_ = sink
}
