package matmul

import "fmt"

// Option adjusts the dispatch policy of an Engine.
type Option func(*Policy)

// WithPolicy replaces the whole policy.
func WithPolicy(p Policy) Option {
	return func(dst *Policy) { *dst = p }
}

// WithNaiveMax sets the largest size served by the naive kernel.
func WithNaiveMax(n int) Option {
	return func(p *Policy) { p.NaiveMax = n }
}

// WithLargeMin sets the smallest size that uses the large block.
func WithLargeMin(n int) Option {
	return func(p *Policy) { p.LargeMin = n }
}

// WithBlockSizes sets the block sizes for mid-range and large matrices.
func WithBlockSizes(small, large int) Option {
	return func(p *Policy) {
		p.SmallBlock = small
		p.LargeBlock = large
	}
}

// Engine multiplies square matrices using a fixed dispatch policy.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	policy Policy
}

// NewEngine builds an Engine from DefaultPolicy with opts applied in order.
// The resulting policy must pass Policy.Validate.
func NewEngine(opts ...Option) (*Engine, error) {
	p := DefaultPolicy()
	for _, opt := range opts {
		opt(&p)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("NewEngine: %w", err)
	}
	return &Engine{policy: p}, nil
}

// Policy returns the engine's dispatch policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Plan returns the plan the engine uses for size n.
func (e *Engine) Plan(n int) Plan {
	return e.policy.Plan(n)
}

// Multiply computes C = A × B with the kernel the engine's policy selects.
func (e *Engine) Multiply(a, b *Matrix) (*Matrix, error) {
	n, err := checkOperands("Multiply", a, b)
	if err != nil {
		return nil, err
	}
	return run(a, b, n, e.policy.Plan(n))
}

// Multiply computes C = A × B, choosing the kernel with DefaultPolicy.
func Multiply(a, b *Matrix) (*Matrix, error) {
	n, err := checkOperands("Multiply", a, b)
	if err != nil {
		return nil, err
	}
	return run(a, b, n, Dispatch(n))
}

// Run computes C = A × B with an explicit plan, bypassing dispatch.
func Run(a, b *Matrix, p Plan) (*Matrix, error) {
	n, err := checkOperands("Run", a, b)
	if err != nil {
		return nil, err
	}
	if p.Kernel == Blocked && p.BlockSize <= 0 {
		return nil, fmt.Errorf("Run: plan %s: %w", p, ErrInvalidBlockSize)
	}
	return run(a, b, n, p)
}

func run(a, b *Matrix, n int, p Plan) (*Matrix, error) {
	switch p.Kernel {
	case Naive:
		return multiplyNaive(a, b, n), nil
	case Blocked:
		return multiplyBlocked(a, b, n, p.BlockSize), nil
	default:
		return nil, fmt.Errorf("Run: kernel %d: %w", p.Kernel, ErrUnknownKernel)
	}
}

// VerifyKernelCorrectness checks a kernel against a known 2×2 product.
// The blocked kernel is checked with a block of 1 so every tile path runs.
func VerifyKernelCorrectness(kernel Kernel, tolerance float64) bool {
	a := &Matrix{Data: []float64{1, 2, 3, 4}, Rows: 2, Cols: 2}
	b := &Matrix{Data: []float64{5, 6, 7, 8}, Rows: 2, Cols: 2}
	expected := &Matrix{Data: []float64{19, 22, 43, 50}, Rows: 2, Cols: 2}

	result, err := Run(a, b, Plan{Kernel: kernel, BlockSize: 1})
	if err != nil {
		return false
	}
	return result.Equal(expected, tolerance)
}
