package matmul

import "math/rand"

// CreateRandomMatrix creates an n×n matrix with values drawn uniformly from
// [0, 1). A new generator is seeded on every call, so the same (n, seed)
// pair always yields the same matrix.
func CreateRandomMatrix(n int, seed int64) *Matrix {
	rng := rand.New(rand.NewSource(seed))
	m := NewSquare(n)
	for i := range m.Data {
		m.Data[i] = rng.Float64()
	}
	return m
}
