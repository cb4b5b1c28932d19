package matmul

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateRandomMatrixDeterministic(t *testing.T) {
	first := CreateRandomMatrix(5, 7)
	second := CreateRandomMatrix(5, 7)
	require.Equal(t, first.Data, second.Data)

	other := CreateRandomMatrix(5, 8)
	require.NotEqual(t, first.Data, other.Data)
}

func TestCreateRandomMatrixRange(t *testing.T) {
	m := CreateRandomMatrix(20, 42)
	require.True(t, m.IsSquare())
	require.Equal(t, 20, m.Size())
	for _, v := range m.Data {
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}

	require.Empty(t, CreateRandomMatrix(0, 1).Data)
}
