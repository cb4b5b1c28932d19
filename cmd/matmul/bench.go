package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tektwister/ai_engineering/matmul_engine/internal/bench"
	"github.com/tektwister/ai_engineering/matmul_engine/internal/cpuinfo"
	"github.com/tektwister/ai_engineering/matmul_engine/pkg/config"
)

type benchFlags struct {
	sizes      string
	kernel     string
	blockSize  int
	rounds     int
	iterations int
	warmup     int
	csv        bool
	csvName    string
}

func newBenchCmd(a *app) *cobra.Command {
	var f benchFlags
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark the engine over a range of matrix sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBenchmark(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.sizes, "sizes", "", "comma-separated matrix sizes (default from MATMUL_BENCH_SIZES)")
	cmd.Flags().StringVar(&f.kernel, "kernel", bench.KernelAuto, "kernel: auto, naive or blocked")
	cmd.Flags().IntVar(&f.blockSize, "block", 0, "block size for --kernel blocked (0 = policy's large block)")
	cmd.Flags().IntVar(&f.rounds, "rounds", 0, "measured rounds (default from MATMUL_BENCH_ROUNDS)")
	cmd.Flags().IntVar(&f.iterations, "iterations", 0, "multiplies per round (default from MATMUL_BENCH_ITERATIONS)")
	cmd.Flags().IntVar(&f.warmup, "warmup", -1, "warmup rounds (default from MATMUL_BENCH_WARMUP)")
	cmd.Flags().BoolVar(&f.csv, "csv", false, "write results to MATMUL_RESULTS_DIR")
	cmd.Flags().StringVar(&f.csvName, "csv-name", "go_results.csv", "file name for --csv")
	return cmd
}

// benchConfig merges flags over the loaded configuration.
func (a *app) benchConfig(f benchFlags) (*bench.Config, error) {
	cfg := bench.DefaultConfig()
	cfg.Sizes = a.cfg.BenchSizes
	cfg.Rounds = a.cfg.BenchRounds
	cfg.Iterations = a.cfg.BenchIterations
	cfg.WarmupRounds = a.cfg.BenchWarmup
	cfg.Kernel = f.kernel
	cfg.BlockSize = f.blockSize

	if f.sizes != "" {
		sizes, err := config.ParseSizes(f.sizes)
		if err != nil {
			return nil, fmt.Errorf("--sizes: %w", err)
		}
		cfg.Sizes = sizes
	}
	if f.rounds > 0 {
		cfg.Rounds = f.rounds
	}
	if f.iterations > 0 {
		cfg.Iterations = f.iterations
	}
	if f.warmup >= 0 {
		cfg.WarmupRounds = f.warmup
	}
	return cfg, cfg.Normalize()
}

func (a *app) runBenchmark(cmd *cobra.Command, f benchFlags) error {
	cfg, err := a.benchConfig(f)
	if err != nil {
		return err
	}

	heading(a.out, "matrix multiplication kernel benchmark")
	fmt.Fprintf(a.out, "Host:   %s\n", cpuinfo.Detect())
	fmt.Fprintf(a.out, "Policy: %+v\n\n", a.engine.Policy())

	runner := bench.NewRunner(a.engine, a.log)
	results, err := runner.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	bench.PrintResults(a.out, results)

	var best bench.Result
	for _, r := range results {
		if r.GFLOPS > best.GFLOPS {
			best = r
		}
	}
	if best.Size > 0 {
		fmt.Fprintf(a.out, "\nBest throughput: %dx%d with %s (%.2f GFLOPS)\n", best.Size, best.Size, best.Plan(), best.GFLOPS)
	}

	if f.csv {
		path, err := bench.SaveCSV(a.cfg.ResultsDir, f.csvName, results)
		if err != nil {
			return err
		}
		a.log.Info().Str("path", path).Msg("results exported")
	}
	return nil
}
