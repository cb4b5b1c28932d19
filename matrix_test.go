package matmul

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMatrixCreation tests matrix creation and basic operations.
func TestMatrixCreation(t *testing.T) {
	t.Run("NewMatrix", func(t *testing.T) {
		m := NewMatrix(3, 4)
		require.Equal(t, 3, m.Rows)
		require.Equal(t, 4, m.Cols)
		require.Len(t, m.Data, 12)
		require.False(t, m.IsSquare())
	})

	t.Run("NewMatrixFromSlice", func(t *testing.T) {
		m, err := NewMatrixFromSlice([][]float64{
			{1, 2, 3},
			{4, 5, 6},
		})
		require.NoError(t, err)
		require.Equal(t, 2, m.Rows)
		require.Equal(t, 3, m.Cols)
		require.Equal(t, 3.0, m.At(0, 2))
		require.Equal(t, 5.0, m.At(1, 1))
	})

	t.Run("NewMatrixFromSliceRagged", func(t *testing.T) {
		_, err := NewMatrixFromSlice([][]float64{{1, 2}, {3}})
		require.ErrorIs(t, err, ErrDimensionMismatch)
	})

	t.Run("NewMatrixFromSliceEmpty", func(t *testing.T) {
		m, err := NewMatrixFromSlice(nil)
		require.NoError(t, err)
		require.True(t, m.IsSquare())
		require.Equal(t, 0, m.Size())
	})

	t.Run("NewMatrixFromFlat", func(t *testing.T) {
		src := []float64{1, 2, 3, 4}
		m, err := NewMatrixFromFlat(src, 2, 2)
		require.NoError(t, err)
		src[0] = 99
		require.Equal(t, 1.0, m.At(0, 0), "flat data must be copied")

		_, err = NewMatrixFromFlat(src, 3, 3)
		require.ErrorIs(t, err, ErrDimensionMismatch)
	})

	t.Run("Eye", func(t *testing.T) {
		m := Eye(3)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				expected := 0.0
				if i == j {
					expected = 1.0
				}
				require.Equal(t, expected, m.At(i, j), "Eye(%d,%d)", i, j)
			}
		}
	})

	t.Run("Transpose", func(t *testing.T) {
		m, err := NewMatrixFromSlice([][]float64{
			{1, 2, 3},
			{4, 5, 6},
		})
		require.NoError(t, err)
		mt := m.Transpose()
		require.Equal(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, mt.To2D())
	})

	t.Run("Clone", func(t *testing.T) {
		m := Ones(2)
		c := m.Clone()
		c.Set(0, 0, 5)
		require.Equal(t, 1.0, m.At(0, 0))
	})

	t.Run("String", func(t *testing.T) {
		require.Equal(t, "Matrix(1x2):\n[1.0000, 2.5000]\n",
			(&Matrix{Data: []float64{1, 2.5}, Rows: 1, Cols: 2}).String())
	})
}

func TestAlmostEqual(t *testing.T) {
	a := &Matrix{Data: []float64{1e6, 1e-12, 0}, Rows: 1, Cols: 3}

	b := a.Clone()
	b.Data[0] += 1e-4 // relative error 1e-10
	require.True(t, a.AlmostEqual(b, 1e-9))
	require.False(t, a.Equal(b, 1e-9))

	b.Data[0] = 1e6 + 10
	require.False(t, a.AlmostEqual(b, 1e-9))

	c := a.Clone()
	c.Data[2] = math.NaN()
	require.False(t, a.AlmostEqual(c, 1e-9))
	require.False(t, c.AlmostEqual(c, 1e-9))

	require.False(t, a.AlmostEqual(Ones(3), 1e-9))
}
