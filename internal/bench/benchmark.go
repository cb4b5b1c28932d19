// Package bench times the multiply engine over a range of matrix sizes and
// records per-size statistics, memory use and throughput.
package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	matmul "github.com/tektwister/ai_engineering/matmul_engine"
)

// Kernel selectors accepted by Config.Kernel.
const (
	KernelAuto    = "auto"
	KernelNaive   = "naive"
	KernelBlocked = "blocked"
)

// ErrInvalidConfig is returned by Config.Normalize for unusable settings.
var ErrInvalidConfig = errors.New("bench: invalid config")

// Result holds the result of benchmarking one matrix size.
type Result struct {
	Label      string // kernel selector: auto, naive or blocked
	Kernel     matmul.Kernel
	BlockSize  int
	Size       int
	MeanMs     float64
	MinMs      float64
	MaxMs      float64
	StdDevMs   float64
	MedianMs   float64
	MemoryMB   float64 // heap in use after the measured rounds
	GFLOPS     float64 // Giga Floating Point Operations Per Second
	Iterations int
	Rounds     int
}

// Plan returns the execution plan the result was measured with.
func (r Result) Plan() matmul.Plan {
	return matmul.Plan{Kernel: r.Kernel, BlockSize: r.BlockSize}
}

// String returns a formatted string representation of the result.
func (r Result) String() string {
	return fmt.Sprintf("%-8s %-12s | %5dx%-5d | %10.3f ms | %8.2f GFLOPS | %d×%d",
		r.Label, r.Plan(), r.Size, r.Size, r.MeanMs, r.GFLOPS, r.Rounds, r.Iterations)
}

// Config configures the benchmark run.
type Config struct {
	Sizes        []int    // Matrix sizes to test
	Kernel       string   // auto, naive or blocked
	BlockSize    int      // blocked only; 0 means the engine's large block
	Rounds       int      // measured rounds per size
	Iterations   int      // multiplies per round
	WarmupRounds int      // unmeasured rounds per size
	Seeds        [2]int64 // fixture seeds for A and B
}

// DefaultConfig returns the configuration used by the reference benchmarks.
func DefaultConfig() *Config {
	return &Config{
		Sizes:        []int{128, 256, 512, 1024},
		Kernel:       KernelAuto,
		Rounds:       5,
		Iterations:   3,
		WarmupRounds: 2,
		Seeds:        [2]int64{42, 43},
	}
}

// Normalize sorts and de-duplicates sizes and validates the counts.
func (c *Config) Normalize() error {
	if len(c.Sizes) == 0 {
		return fmt.Errorf("%w: no sizes", ErrInvalidConfig)
	}
	c.Sizes = lo.Uniq(c.Sizes)
	slices.Sort(c.Sizes)
	if c.Sizes[0] < 0 {
		return fmt.Errorf("%w: negative size %d", ErrInvalidConfig, c.Sizes[0])
	}
	switch c.Kernel {
	case "":
		c.Kernel = KernelAuto
	case KernelAuto, KernelNaive, KernelBlocked:
	default:
		return fmt.Errorf("%w: kernel %q", ErrInvalidConfig, c.Kernel)
	}
	if c.BlockSize < 0 {
		return fmt.Errorf("%w: block size %d", ErrInvalidConfig, c.BlockSize)
	}
	if c.Rounds <= 0 || c.Iterations <= 0 || c.WarmupRounds < 0 {
		return fmt.Errorf("%w: rounds=%d iterations=%d warmup=%d",
			ErrInvalidConfig, c.Rounds, c.Iterations, c.WarmupRounds)
	}
	return nil
}

// Runner benchmarks an Engine.
type Runner struct {
	engine *matmul.Engine
	log    zerolog.Logger
}

// NewRunner creates a runner for the given engine.
func NewRunner(engine *matmul.Engine, log zerolog.Logger) *Runner {
	return &Runner{engine: engine, log: log}
}

// Run benchmarks every configured size. Cancellation is checked between rounds.
func (r *Runner) Run(ctx context.Context, config *Config) ([]Result, error) {
	if err := config.Normalize(); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(config.Sizes))
	for _, size := range config.Sizes {
		a := matmul.CreateRandomMatrix(size, config.Seeds[0])
		b := matmul.CreateRandomMatrix(size, config.Seeds[1])

		result, err := r.benchmarkSize(ctx, a, b, config)
		if err != nil {
			return results, err
		}
		r.log.Info().
			Int("size", size).
			Str("plan", result.Plan().String()).
			Float64("mean_ms", result.MeanMs).
			Float64("gflops", result.GFLOPS).
			Msg("benchmark complete")
		results = append(results, result)
	}
	return results, nil
}

// planFor resolves the configured kernel selector for size n.
func (r *Runner) planFor(n int, config *Config) matmul.Plan {
	switch config.Kernel {
	case KernelNaive:
		return matmul.Plan{Kernel: matmul.Naive}
	case KernelBlocked:
		bs := config.BlockSize
		if bs == 0 {
			bs = r.engine.Policy().LargeBlock
		}
		return matmul.Plan{Kernel: matmul.Blocked, BlockSize: bs}
	default:
		return r.engine.Plan(n)
	}
}

func (r *Runner) multiply(a, b *matmul.Matrix, plan matmul.Plan, config *Config) error {
	var err error
	if config.Kernel == KernelAuto {
		_, err = r.engine.Multiply(a, b)
	} else {
		_, err = matmul.Run(a, b, plan)
	}
	return err
}

// benchmarkSize benchmarks a single matrix size.
func (r *Runner) benchmarkSize(ctx context.Context, a, b *matmul.Matrix, config *Config) (Result, error) {
	size := a.Size()
	plan := r.planFor(size, config)
	log := r.log.With().Int("size", size).Str("plan", plan.String()).Logger()

	// Warmup runs
	for i := 0; i < config.WarmupRounds; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if err := r.multiply(a, b, plan, config); err != nil {
			return Result{}, err
		}
	}

	// Force GC before timing
	runtime.GC()

	samples := make([]float64, 0, config.Rounds)
	for round := 0; round < config.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		start := time.Now()
		for i := 0; i < config.Iterations; i++ {
			if err := r.multiply(a, b, plan, config); err != nil {
				return Result{}, err
			}
		}
		perOp := time.Since(start) / time.Duration(config.Iterations)
		samples = append(samples, float64(perOp)/float64(time.Millisecond))
		log.Debug().Int("round", round+1).Dur("per_op", perOp).Msg("round finished")
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return summarize(samples, size, plan, config, float64(mem.HeapInuse)/(1024*1024)), nil
}

// summarize turns per-op samples (milliseconds) into a Result.
func summarize(samples []float64, size int, plan matmul.Plan, config *Config, memMB float64) Result {
	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	mean := stat.Mean(sorted, nil)
	stddev := 0.0
	if len(sorted) > 1 {
		stddev = stat.StdDev(sorted, nil)
	}

	// Matrix multiplication of (n×n) × (n×n) requires 2n³ FLOPs
	// (n³ multiplications + n³ additions)
	gflops := 0.0
	if mean > 0 {
		n := float64(size)
		gflops = 2 * n * n * n / (mean / 1e3) / 1e9
	}

	return Result{
		Label:      config.Kernel,
		Kernel:     plan.Kernel,
		BlockSize:  plan.BlockSize,
		Size:       size,
		MeanMs:     mean,
		MinMs:      floats.Min(sorted),
		MaxMs:      floats.Max(sorted),
		StdDevMs:   stddev,
		MedianMs:   stat.Quantile(0.5, stat.Empirical, sorted, nil),
		MemoryMB:   memMB,
		GFLOPS:     gflops,
		Iterations: config.Iterations,
		Rounds:     config.Rounds,
	}
}

// PrintResults prints benchmark results in a formatted table.
func PrintResults(w io.Writer, results []Result) {
	fmt.Fprintln(w, "┌──────────┬──────────────┬─────────────┬──────────────┬──────────────┬────────────┐")
	fmt.Fprintln(w, "│ Kernel   │ Plan         │ Size        │ Mean/Op      │ GFLOPS       │ Memory MB  │")
	fmt.Fprintln(w, "├──────────┼──────────────┼─────────────┼──────────────┼──────────────┼────────────┤")

	for _, r := range results {
		fmt.Fprintf(w, "│ %-8s │ %-12s │ %5dx%-5d │ %9.3f ms │ %10.2f   │ %10.2f │\n",
			r.Label, r.Plan(), r.Size, r.Size, r.MeanMs, r.GFLOPS, r.MemoryMB)
	}

	fmt.Fprintln(w, "└──────────┴──────────────┴─────────────┴──────────────┴──────────────┴────────────┘")
}
