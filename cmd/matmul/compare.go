package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tektwister/ai_engineering/matmul_engine/internal/bench"
)

func newCompareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare BASELINE.csv CANDIDATE.csv",
		Short: "Compare two benchmark result files by matrix size",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			baseline, err := readResults(args[0])
			if err != nil {
				return err
			}
			candidate, err := readResults(args[1])
			if err != nil {
				return err
			}

			comparisons := bench.Compare(baseline, candidate)
			if len(comparisons) == 0 {
				return fmt.Errorf("no matrix sizes in common between %s and %s", args[0], args[1])
			}

			heading(a.out, "speedup by matrix size")
			fmt.Fprintf(a.out, "%10s  %14s  %14s  %8s\n", "size", "baseline ms", "candidate ms", "speedup")
			for _, c := range comparisons {
				fmt.Fprintf(a.out, "%10d  %14.3f  %14.3f  %7.2fx\n", c.Size, c.BaselineMs, c.CandidateMs, c.Speedup)
			}
			return nil
		},
	}
}

func readResults(path string) ([]bench.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	results, err := bench.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return results, nil
}
