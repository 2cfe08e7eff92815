// Copyright 2026 The Inthash Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package inthash

import (
	"strconv"
	"testing"

	"github.com/aclements/go-perfevent/perfbench"
)

func benchSizes(f func(b *testing.B, n int)) func(*testing.B) {
	var cases = []int{16, 128, 1024, 8192, 1 << 16}
	return func(b *testing.B) {
		for _, n := range cases {
			b.Run("len="+strconv.Itoa(n), func(b *testing.B) { f(b, n) })
		}
	}
}

func genKeys(start, end int) []int64 {
	keys := make([]int64, end-start)
	for i := range keys {
		keys[i] = int64(start + i)
	}
	return keys
}

func BenchmarkMapGetHit(b *testing.B) {
	b.Run("impl=runtimeMap", benchSizes(func(b *testing.B, n int) {
		m := make(map[int64]int64, n)
		keys := genKeys(0, n)
		for _, k := range keys {
			m[k] = k
		}
		perfbench.Open(b)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = m[keys[i%n]]
		}
	}))
	b.Run("impl=chainMap", benchSizes(func(b *testing.B, n int) {
		m, _ := NewMap[int64](n)
		keys := genKeys(0, n)
		for _, k := range keys {
			_ = m.Put(k, k)
		}
		perfbench.Open(b)
		b.ResetTimer()
		var ok bool
		for i := 0; i < b.N; i++ {
			_, ok = m.Get(keys[i%n])
		}
		b.StopTimer()
		_ = ok
	}))
}

func BenchmarkMapGetMiss(b *testing.B) {
	b.Run("impl=runtimeMap", benchSizes(func(b *testing.B, n int) {
		m := make(map[int64]int64, n)
		keys := genKeys(0, n)
		miss := genKeys(-n, 0)
		for _, k := range keys {
			m[k] = k
		}
		perfbench.Open(b)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = m[miss[i%n]]
		}
	}))
	b.Run("impl=chainMap", benchSizes(func(b *testing.B, n int) {
		m, _ := NewMap[int64](n)
		keys := genKeys(0, n)
		miss := genKeys(-n, 0)
		for _, k := range keys {
			_ = m.Put(k, k)
		}
		perfbench.Open(b)
		b.ResetTimer()
		var ok bool
		for i := 0; i < b.N; i++ {
			_, ok = m.Get(miss[i%n])
		}
		b.StopTimer()
		_ = ok
	}))
}

func BenchmarkMapPutGrow(b *testing.B) {
	b.Run("impl=runtimeMap", benchSizes(func(b *testing.B, n int) {
		keys := genKeys(0, n)
		perfbench.Open(b)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			m := make(map[int64]int64)
			for _, k := range keys {
				m[k] = k
			}
		}
	}))
	b.Run("impl=chainMap", benchSizes(func(b *testing.B, n int) {
		keys := genKeys(0, n)
		perfbench.Open(b)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			m, _ := NewMap[int64](0)
			for _, k := range keys {
				_ = m.Put(k, k)
			}
		}
	}))
}

func BenchmarkMapPutDelete(b *testing.B) {
	b.Run("impl=runtimeMap", benchSizes(func(b *testing.B, n int) {
		m := make(map[int64]int64, n)
		keys := genKeys(0, n)
		for _, k := range keys {
			m[k] = k
		}
		perfbench.Open(b)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			j := i % n
			delete(m, keys[j])
			m[keys[j]] = keys[j]
		}
	}))
	b.Run("impl=chainMap", benchSizes(func(b *testing.B, n int) {
		m, _ := NewMap[int64](n)
		keys := genKeys(0, n)
		for _, k := range keys {
			_ = m.Put(k, k)
		}
		perfbench.Open(b)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			j := i % n
			m.Delete(keys[j])
			_ = m.Put(keys[j], keys[j])
		}
	}))
}

func BenchmarkSetContains(b *testing.B) {
	b.Run("impl=runtimeMap", benchSizes(func(b *testing.B, n int) {
		m := make(map[int64]struct{}, n)
		keys := genKeys(0, n)
		for _, k := range keys {
			m[k] = struct{}{}
		}
		perfbench.Open(b)
		b.ResetTimer()
		var ok bool
		for i := 0; i < b.N; i++ {
			_, ok = m[keys[i%n]]
		}
		b.StopTimer()
		_ = ok
	}))
	b.Run("impl=probeSet", benchSizes(func(b *testing.B, n int) {
		s, _ := NewSet(2*n, WithLoadFactor(0.75))
		keys := genKeys(0, n)
		for _, k := range keys {
			_, _ = s.Insert(k)
		}
		perfbench.Open(b)
		b.ResetTimer()
		var ok bool
		for i := 0; i < b.N; i++ {
			ok = s.Contains(keys[i%n])
		}
		b.StopTimer()
		_ = ok
	}))
}

func BenchmarkSetInsertGrow(b *testing.B) {
	b.Run("impl=runtimeMap", benchSizes(func(b *testing.B, n int) {
		keys := genKeys(0, n)
		perfbench.Open(b)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			m := make(map[int64]struct{})
			for _, k := range keys {
				m[k] = struct{}{}
			}
		}
	}))
	b.Run("impl=probeSet", benchSizes(func(b *testing.B, n int) {
		keys := genKeys(0, n)
		perfbench.Open(b)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			s, _ := NewSet(16, WithLoadFactor(0.75))
			for _, k := range keys {
				_, _ = s.Insert(k)
			}
		}
	}))
}

// Insert/remove churn at steady size. The growable set periodically
// rebuilds and compacts tombstones; the builtin map is the baseline.
func BenchmarkSetChurn(b *testing.B) {
	b.Run("impl=runtimeMap", benchSizes(func(b *testing.B, n int) {
		m := make(map[int64]struct{}, n)
		keys := genKeys(0, 2*n)
		for _, k := range keys[:n] {
			m[k] = struct{}{}
		}
		perfbench.Open(b)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			out := keys[i%(2*n)]
			in := keys[(i+n)%(2*n)]
			delete(m, out)
			m[in] = struct{}{}
		}
	}))
	b.Run("impl=probeSet", benchSizes(func(b *testing.B, n int) {
		s, _ := NewSet(2*n, WithLoadFactor(0.75))
		keys := genKeys(0, 2*n)
		for _, k := range keys[:n] {
			_, _ = s.Insert(k)
		}
		perfbench.Open(b)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			out := keys[i%(2*n)]
			in := keys[(i+n)%(2*n)]
			s.Remove(out)
			_, _ = s.Insert(in)
		}
	}))
}
