package matmul

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatch(t *testing.T) {
	naive := Plan{Kernel: Naive}
	mid := Plan{Kernel: Blocked, BlockSize: 16}
	large := Plan{Kernel: Blocked, BlockSize: 32}

	cases := []struct {
		n    int
		want Plan
	}{
		{0, naive},
		{1, naive},
		{64, naive},
		{65, mid},
		{128, mid},
		{255, mid},
		{256, large},
		{300, large},
		{4096, large},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("n=%d", tc.n), func(t *testing.T) {
			require.Equal(t, tc.want, Dispatch(tc.n))
		})
	}
}

func TestPolicyValidate(t *testing.T) {
	require.NoError(t, DefaultPolicy().Validate())

	bad := []Policy{
		{NaiveMax: -1, LargeMin: 10, SmallBlock: 1, LargeBlock: 1},
		{NaiveMax: 64, LargeMin: 64, SmallBlock: 16, LargeBlock: 32},
		{NaiveMax: 64, LargeMin: 256, SmallBlock: 0, LargeBlock: 32},
		{NaiveMax: 64, LargeMin: 256, SmallBlock: 16, LargeBlock: -4},
	}
	for i, p := range bad {
		require.ErrorIs(t, p.Validate(), ErrInvalidPolicy, "policy %d", i)
	}
}

func TestParseKernel(t *testing.T) {
	for _, k := range Kernels() {
		got, err := ParseKernel(k.String())
		require.NoError(t, err)
		require.Equal(t, k, got)
	}

	got, err := ParseKernel(" Blocked ")
	require.NoError(t, err)
	require.Equal(t, Blocked, got)

	_, err = ParseKernel("strassen")
	require.ErrorIs(t, err, ErrUnknownKernel)
	require.Equal(t, "unknown", Kernel(7).String())
}

func TestPlanString(t *testing.T) {
	require.Equal(t, "naive", Plan{Kernel: Naive}.String())
	require.Equal(t, "blocked/32", Plan{Kernel: Blocked, BlockSize: 32}.String())
}
