package matmul

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewEngineOptions(t *testing.T) {
	e, err := NewEngine()
	require.NoError(t, err)
	require.Equal(t, DefaultPolicy(), e.Policy())

	e, err = NewEngine(WithNaiveMax(8), WithLargeMin(32), WithBlockSizes(4, 8))
	require.NoError(t, err)
	require.Equal(t, Policy{NaiveMax: 8, LargeMin: 32, SmallBlock: 4, LargeBlock: 8}, e.Policy())
	require.Equal(t, Plan{Kernel: Naive}, e.Plan(8))
	require.Equal(t, Plan{Kernel: Blocked, BlockSize: 4}, e.Plan(9))
	require.Equal(t, Plan{Kernel: Blocked, BlockSize: 8}, e.Plan(32))

	// Later options override earlier ones.
	e, err = NewEngine(WithPolicy(Policy{NaiveMax: 1, LargeMin: 2, SmallBlock: 1, LargeBlock: 1}), WithBlockSizes(3, 5))
	require.NoError(t, err)
	require.Equal(t, Policy{NaiveMax: 1, LargeMin: 2, SmallBlock: 3, LargeBlock: 5}, e.Policy())
}

func TestNewEngineInvalid(t *testing.T) {
	_, err := NewEngine(WithLargeMin(10))
	require.ErrorIs(t, err, ErrInvalidPolicy)

	_, err = NewEngine(WithBlockSizes(0, 32))
	require.ErrorIs(t, err, ErrInvalidPolicy)
}

func TestEngineMultiplyMatchesNaive(t *testing.T) {
	e, err := NewEngine(WithNaiveMax(2), WithLargeMin(20), WithBlockSizes(3, 7))
	require.NoError(t, err)

	for _, n := range []int{2, 5, 19, 20, 41} {
		a := CreateRandomMatrix(n, 21)
		b := CreateRandomMatrix(n, 22)
		want, err := MultiplyNaive(a, b)
		require.NoError(t, err)

		got, err := e.Multiply(a, b)
		require.NoError(t, err)
		require.True(t, got.AlmostEqual(want, relTol), "n=%d", n)
	}
}

func TestRun(t *testing.T) {
	a := CreateRandomMatrix(10, 1)
	b := CreateRandomMatrix(10, 2)
	want, err := MultiplyNaive(a, b)
	require.NoError(t, err)

	got, err := Run(a, b, Plan{Kernel: Blocked, BlockSize: 3})
	require.NoError(t, err)
	require.True(t, got.AlmostEqual(want, relTol))

	_, err = Run(a, b, Plan{Kernel: Blocked})
	require.ErrorIs(t, err, ErrInvalidBlockSize)

	_, err = Run(a, b, Plan{Kernel: Kernel(42)})
	require.ErrorIs(t, err, ErrUnknownKernel)

	_, err = Run(a, Eye(3), Plan{Kernel: Naive})
	require.ErrorIs(t, err, ErrDimensionMismatch)
}
