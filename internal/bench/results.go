package bench

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/samber/lo"

	matmul "github.com/tektwister/ai_engineering/matmul_engine"
)

// Language is written to the first CSV column so Go results can sit next to
// results from other implementations of the same benchmark.
const Language = "Go"

// ErrMalformedCSV is returned by ReadCSV for a header or row it cannot parse.
var ErrMalformedCSV = errors.New("bench: malformed results csv")

var csvHeader = []string{
	"language", "kernel", "block_size", "matrix_size",
	"mean_time_ms", "min_time_ms", "max_time_ms", "stddev_ms", "median_time_ms",
	"memory_mb", "gflops", "iterations", "rounds",
}

// WriteCSV writes results with a header row.
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range results {
		kernel := r.Label
		if kernel == "" {
			kernel = r.Kernel.String()
		}
		row := []string{
			Language,
			kernel,
			strconv.Itoa(r.BlockSize),
			strconv.Itoa(r.Size),
			formatFloat(r.MeanMs),
			formatFloat(r.MinMs),
			formatFloat(r.MaxMs),
			formatFloat(r.StdDevMs),
			formatFloat(r.MedianMs),
			formatFloat(r.MemoryMB),
			formatFloat(r.GFLOPS),
			strconv.Itoa(r.Iterations),
			strconv.Itoa(r.Rounds),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// SaveCSV writes results to dir/name, creating dir if needed, and returns the path.
func SaveCSV(dir, name string, results []Result) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := WriteCSV(f, results); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

// ReadCSV parses results previously written by WriteCSV.
// The kernel column is kept as the Label; the Kernel is inferred from
// block_size, which is 0 only for naive runs.
func ReadCSV(r io.Reader) ([]Result, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}
	if len(records) == 0 || !slices.Equal(records[0], csvHeader) {
		return nil, fmt.Errorf("%w: unexpected header", ErrMalformedCSV)
	}

	results := make([]Result, 0, len(records)-1)
	for line, rec := range records[1:] {
		res, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedCSV, line+2, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func parseRow(rec []string) (Result, error) {
	var res Result
	var err error

	ints := []struct {
		col int
		dst *int
	}{{2, &res.BlockSize}, {3, &res.Size}, {11, &res.Iterations}, {12, &res.Rounds}}
	for _, v := range ints {
		if *v.dst, err = strconv.Atoi(rec[v.col]); err != nil {
			return Result{}, fmt.Errorf("%s: %w", csvHeader[v.col], err)
		}
	}

	floatCols := []struct {
		col int
		dst *float64
	}{
		{4, &res.MeanMs}, {5, &res.MinMs}, {6, &res.MaxMs}, {7, &res.StdDevMs},
		{8, &res.MedianMs}, {9, &res.MemoryMB}, {10, &res.GFLOPS},
	}
	for _, v := range floatCols {
		if *v.dst, err = strconv.ParseFloat(rec[v.col], 64); err != nil {
			return Result{}, fmt.Errorf("%s: %w", csvHeader[v.col], err)
		}
	}

	res.Label = rec[1]
	res.Kernel = matmul.Naive
	if res.BlockSize > 0 {
		res.Kernel = matmul.Blocked
	}
	return res, nil
}

// Comparison relates a baseline and a candidate measurement of one size.
type Comparison struct {
	Size        int
	BaselineMs  float64
	CandidateMs float64
	Speedup     float64 // baseline mean / candidate mean
}

// Compare pairs results by matrix size and returns speedups sorted by size.
// Sizes missing from either side are skipped; when a side has several rows
// for one size the last one wins.
func Compare(baseline, candidate []Result) []Comparison {
	base := lo.KeyBy(baseline, func(r Result) int { return r.Size })
	cand := lo.KeyBy(candidate, func(r Result) int { return r.Size })

	sizes := lo.Filter(lo.Keys(cand), func(n int, _ int) bool {
		_, ok := base[n]
		return ok
	})
	slices.Sort(sizes)

	return lo.Map(sizes, func(n int, _ int) Comparison {
		b, c := base[n], cand[n]
		speedup := 0.0
		if c.MeanMs > 0 {
			speedup = b.MeanMs / c.MeanMs
		}
		return Comparison{Size: n, BaselineMs: b.MeanMs, CandidateMs: c.MeanMs, Speedup: speedup}
	})
}
