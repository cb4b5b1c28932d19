package matmul

import "fmt"

// checkOperands verifies that a and b are non-nil, square and of equal size,
// returning n. It runs before anything is allocated.
func checkOperands(op string, a, b *Matrix) (int, error) {
	if a == nil || b == nil {
		return 0, fmt.Errorf("%s: %w", op, ErrNilMatrix)
	}
	if !a.IsSquare() || !b.IsSquare() || a.Rows != b.Rows {
		return 0, fmt.Errorf("%s: A(%dx%d, %d values) × B(%dx%d, %d values): %w",
			op, a.Rows, a.Cols, len(a.Data), b.Rows, b.Cols, len(b.Data), ErrDimensionMismatch)
	}
	return a.Rows, nil
}

// MultiplyNaive implements the standard O(n³) matrix multiplication.
// Loop order: i, j, k. The partial sum lives in a local and is written to
// C once per (i, j). This is the correctness baseline for the other kernels.
func MultiplyNaive(a, b *Matrix) (*Matrix, error) {
	n, err := checkOperands("MultiplyNaive", a, b)
	if err != nil {
		return nil, err
	}
	return multiplyNaive(a, b, n), nil
}

func multiplyNaive(a, b *Matrix, n int) *Matrix {
	c := NewSquare(n)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				sum += a.Data[i*n+k] * b.Data[k*n+j]
			}
			c.Data[i*n+j] = sum
		}
	}
	return c
}

// MultiplyBlocked implements tiled matrix multiplication over a transposed
// copy of B.
//
// B is transposed first so the reduction loop walks both a row of A and a
// row of Bᵀ sequentially. The (i, j, k) space is then cut into cubic tiles of
// side blockSize, visited in ii, jj, kk order; tiles on the last row, column
// or depth are clamped to n. Several k-tiles contribute to the same C[i][j],
// so each tile accumulates into the value already stored there.
//
// A blockSize >= n degenerates to a single un-tiled pass.
func MultiplyBlocked(a, b *Matrix, blockSize int) (*Matrix, error) {
	n, err := checkOperands("MultiplyBlocked", a, b)
	if err != nil {
		return nil, err
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("MultiplyBlocked: block size %d: %w", blockSize, ErrInvalidBlockSize)
	}
	return multiplyBlocked(a, b, n, blockSize), nil
}

func multiplyBlocked(a, b *Matrix, n, blockSize int) *Matrix {
	c := NewSquare(n)
	bT := b.Transpose()

	for ii := 0; ii < n; ii += blockSize {
		iMax := min(ii+blockSize, n)
		for jj := 0; jj < n; jj += blockSize {
			jMax := min(jj+blockSize, n)
			for kk := 0; kk < n; kk += blockSize {
				kMax := min(kk+blockSize, n)

				for i := ii; i < iMax; i++ {
					aRow := a.Data[i*n+kk : i*n+kMax]
					cRow := c.Data[i*n : (i+1)*n]
					for j := jj; j < jMax; j++ {
						bTRow := bT.Data[j*n+kk : j*n+kMax]
						sum := cRow[j]
						for k, av := range aRow {
							sum += av * bTRow[k]
						}
						cRow[j] = sum
					}
				}
			}
		}
	}
	return c
}
