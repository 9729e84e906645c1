// SPDX-License-Identifier: MIT

// Package matrix_test provides benchmarks for the kernels on the integrator's
// hot path, using deterministic random fill.
package matrix_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/qdna/matrix"
)

// benchSizes cover 1P and 2P dimensions for short sequences.
var benchSizes = []int{16, 64, 144}

var (
	sinkV []float64
	sinkC complex128
)

func randSym(b *testing.B, n int, seed int64) *matrix.Dense {
	b.Helper()
	rng := rand.New(rand.NewSource(seed))
	m, err := matrix.NewDense(n, n)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := rng.Float64()
			_ = m.Set(i, j, v)
			_ = m.Set(j, i, v)
		}
	}

	return m
}

func BenchmarkEigenSym(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			m := randSym(b, n, 1337)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				vals, _, err := matrix.EigenSym(m)
				if err != nil {
					b.Fatal(err)
				}
				sinkV = vals
			}
		})
	}
}

func BenchmarkMulTo(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := randSym(b, n, 1).ToComplex()
			c := randSym(b, n, 2).ToComplex()
			dst, _ := matrix.NewCDense(n, n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := matrix.MulTo(dst, a, c); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkTraceProduct(b *testing.B) {
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := randSym(b, n, 3).ToComplex()
			c := randSym(b, n, 4).ToComplex()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				v, err := matrix.TraceProduct(a, c)
				if err != nil {
					b.Fatal(err)
				}
				sinkC = v
			}
		})
	}
}
