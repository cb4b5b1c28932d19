package bench

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	matmul "github.com/tektwister/ai_engineering/matmul_engine"
)

func sampleResults() []Result {
	return []Result{
		{Label: KernelAuto, Kernel: matmul.Blocked, BlockSize: 16, Size: 128, MeanMs: 4, MinMs: 3.5, MaxMs: 5,
			StdDevMs: 0.25, MedianMs: 4, MemoryMB: 10.5, GFLOPS: 1.048576, Iterations: 3, Rounds: 5},
		{Label: KernelNaive, Kernel: matmul.Naive, Size: 64, MeanMs: 0.5, MinMs: 0.5, MaxMs: 0.5,
			MedianMs: 0.5, MemoryMB: 2, GFLOPS: 1.048576, Iterations: 3, Rounds: 5},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResults()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, strings.Join(csvHeader, ","), lines[0])
	require.True(t, strings.HasPrefix(lines[1], "Go,auto,16,128,4.000000,"))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Equal(t, sampleResults(), got)
}

func TestWriteCSVFallsBackToKernelName(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []Result{{Kernel: matmul.Blocked, BlockSize: 8, Size: 9}}))
	require.Contains(t, buf.String(), "Go,blocked,8,9,")
}

func TestReadCSVMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":      "",
		"header":     "language,size\nGo,1\n",
		"fieldCount": strings.Join(csvHeader, ",") + "\nGo,auto\n",
		"number": strings.Join(csvHeader, ",") +
			"\nGo,auto,16,abc,1,1,1,0,1,1,1,3,5\n",
		"float": strings.Join(csvHeader, ",") +
			"\nGo,auto,16,128,fast,1,1,0,1,1,1,3,5\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(input))
			require.ErrorIs(t, err, ErrMalformedCSV)
		})
	}
}

func TestSaveCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	path, err := SaveCSV(dir, "go_results.csv", sampleResults())
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "go_results.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	got, err := ReadCSV(f)
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestCompare(t *testing.T) {
	baseline := []Result{{Size: 128, MeanMs: 10}, {Size: 256, MeanMs: 80}, {Size: 512, MeanMs: 640}}
	candidate := []Result{{Size: 512, MeanMs: 160}, {Size: 128, MeanMs: 5}, {Size: 1024, MeanMs: 1}, {Size: 64, MeanMs: 0}}

	got := Compare(baseline, candidate)
	require.Equal(t, []Comparison{
		{Size: 128, BaselineMs: 10, CandidateMs: 5, Speedup: 2},
		{Size: 512, BaselineMs: 640, CandidateMs: 160, Speedup: 4},
	}, got)

	require.Empty(t, Compare(nil, candidate))
}
