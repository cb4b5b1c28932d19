// Package matmul provides dense square matrix multiplication kernels.
// It implements the naive O(n³) triple loop, a cache-blocked variant over a
// transposed copy of the second operand, and a size-based dispatcher that
// picks between them.
package matmul

import (
	"fmt"
	"math"
	"strings"
)

// Matrix represents a 2D matrix stored in row-major order.
// The underlying data is stored as a flat slice for cache efficiency.
type Matrix struct {
	Data []float64
	Rows int
	Cols int
}

// NewMatrix creates a new matrix with the specified dimensions.
// All elements are initialized to zero.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{
		Data: make([]float64, rows*cols),
		Rows: rows,
		Cols: cols,
	}
}

// NewSquare creates an n×n zero matrix.
func NewSquare(n int) *Matrix {
	return NewMatrix(n, n)
}

// NewMatrixFromSlice creates a matrix from a 2D slice.
// Every row must have the same length as the first one.
func NewMatrixFromSlice(data [][]float64) (*Matrix, error) {
	if len(data) == 0 {
		return NewMatrix(0, 0), nil
	}
	rows := len(data)
	cols := len(data[0])
	m := NewMatrix(rows, cols)
	for i := 0; i < rows; i++ {
		if len(data[i]) != cols {
			return nil, fmt.Errorf("NewMatrixFromSlice: row %d has %d entries, want %d: %w",
				i, len(data[i]), cols, ErrDimensionMismatch)
		}
		copy(m.Data[i*cols:(i+1)*cols], data[i])
	}
	return m, nil
}

// NewMatrixFromFlat creates a matrix from a flat row-major slice.
// The slice is copied.
func NewMatrixFromFlat(data []float64, rows, cols int) (*Matrix, error) {
	if rows < 0 || cols < 0 || len(data) != rows*cols {
		return nil, fmt.Errorf("NewMatrixFromFlat: data length %d doesn't match dimensions %dx%d: %w",
			len(data), rows, cols, ErrDimensionMismatch)
	}
	dataCopy := make([]float64, len(data))
	copy(dataCopy, data)
	return &Matrix{
		Data: dataCopy,
		Rows: rows,
		Cols: cols,
	}, nil
}

// Index returns the flat index for the given row and column.
func (m *Matrix) Index(row, col int) int {
	return row*m.Cols + col
}

// At returns the element at position (row, col).
func (m *Matrix) At(row, col int) float64 {
	return m.Data[m.Index(row, col)]
}

// Set sets the element at position (row, col).
func (m *Matrix) Set(row, col int, value float64) {
	m.Data[m.Index(row, col)] = value
}

// Clone creates a deep copy of the matrix.
func (m *Matrix) Clone() *Matrix {
	dataCopy := make([]float64, len(m.Data))
	copy(dataCopy, m.Data)
	return &Matrix{
		Data: dataCopy,
		Rows: m.Rows,
		Cols: m.Cols,
	}
}

// Shape returns the dimensions of the matrix.
func (m *Matrix) Shape() (int, int) {
	return m.Rows, m.Cols
}

// IsSquare reports whether the matrix is n×n with consistent backing storage.
func (m *Matrix) IsSquare() bool {
	return m.Rows >= 0 && m.Rows == m.Cols && len(m.Data) == m.Rows*m.Cols
}

// Size returns n for an n×n matrix. It is only meaningful when IsSquare holds.
func (m *Matrix) Size() int {
	return m.Rows
}

// To2D converts the matrix to a 2D slice representation.
func (m *Matrix) To2D() [][]float64 {
	result := make([][]float64, m.Rows)
	for i := 0; i < m.Rows; i++ {
		result[i] = make([]float64, m.Cols)
		copy(result[i], m.Data[i*m.Cols:(i+1)*m.Cols])
	}
	return result
}

// Transpose returns the transpose of the matrix.
func (m *Matrix) Transpose() *Matrix {
	result := NewMatrix(m.Cols, m.Rows)
	for i := 0; i < m.Rows; i++ {
		row := m.Data[i*m.Cols : (i+1)*m.Cols]
		for j, v := range row {
			result.Data[j*m.Rows+i] = v
		}
	}
	return result
}

// String returns a string representation of the matrix.
func (m *Matrix) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Matrix(%dx%d):\n", m.Rows, m.Cols)
	for i := 0; i < m.Rows; i++ {
		sb.WriteString("[")
		for j := 0; j < m.Cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%.4f", m.At(i, j))
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}

// Equal checks if two matrices are equal within an absolute tolerance.
func (m *Matrix) Equal(other *Matrix, tolerance float64) bool {
	if m.Rows != other.Rows || m.Cols != other.Cols || len(m.Data) != len(other.Data) {
		return false
	}
	for i := range m.Data {
		if !(math.Abs(m.Data[i]-other.Data[i]) <= tolerance) {
			return false
		}
	}
	return true
}

// AlmostEqual checks if two matrices agree element-wise within a relative
// tolerance. Entries are compared as |x-y| <= tol*max(1, |x|, |y|), so values
// near zero fall back to an absolute comparison. NaN never compares equal.
func (m *Matrix) AlmostEqual(other *Matrix, tolerance float64) bool {
	if m.Rows != other.Rows || m.Cols != other.Cols || len(m.Data) != len(other.Data) {
		return false
	}
	for i, x := range m.Data {
		y := other.Data[i]
		if x == y {
			continue
		}
		scale := math.Max(1, math.Max(math.Abs(x), math.Abs(y)))
		if !(math.Abs(x-y) <= tolerance*scale) {
			return false
		}
	}
	return true
}

// Zeros creates an n×n matrix filled with zeros.
func Zeros(n int) *Matrix {
	return NewSquare(n)
}

// Ones creates an n×n matrix filled with ones.
func Ones(n int) *Matrix {
	m := NewSquare(n)
	for i := range m.Data {
		m.Data[i] = 1.0
	}
	return m
}

// Eye creates an identity matrix.
func Eye(n int) *Matrix {
	m := NewSquare(n)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1.0)
	}
	return m
}
