package matmul

import (
	"fmt"
	"strings"
)

// Kernel represents a matrix multiplication implementation.
type Kernel int

const (
	// Naive - Simple O(n³) algorithm with i,j,k loop order.
	Naive Kernel = iota
	// Blocked - Tiled algorithm over a transposed copy of B.
	Blocked
)

// String returns the name of the kernel.
func (k Kernel) String() string {
	switch k {
	case Naive:
		return "naive"
	case Blocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// Kernels lists every kernel in declaration order.
func Kernels() []Kernel {
	return []Kernel{Naive, Blocked}
}

// ParseKernel maps a kernel name (case-insensitive) to a Kernel.
func ParseKernel(s string) (Kernel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "naive":
		return Naive, nil
	case "blocked":
		return Blocked, nil
	default:
		return 0, fmt.Errorf("ParseKernel(%q): %w", s, ErrUnknownKernel)
	}
}

// Plan is the execution plan chosen for one multiply.
// BlockSize is only meaningful for the Blocked kernel.
type Plan struct {
	Kernel    Kernel
	BlockSize int
}

// String renders the plan as "naive" or "blocked/32".
func (p Plan) String() string {
	if p.Kernel == Blocked {
		return fmt.Sprintf("%s/%d", p.Kernel, p.BlockSize)
	}
	return p.Kernel.String()
}

// Default dispatch thresholds. They are a hand-tuned heuristic for common
// L1 sizes, not a correctness requirement.
const (
	DefaultNaiveMax   = 64
	DefaultLargeMin   = 256
	DefaultSmallBlock = 16
	DefaultLargeBlock = 32
)

// Policy partitions matrix sizes into three ranges:
//
//	n <= NaiveMax            -> Naive
//	NaiveMax < n < LargeMin  -> Blocked with SmallBlock
//	n >= LargeMin            -> Blocked with LargeBlock
type Policy struct {
	NaiveMax   int
	LargeMin   int
	SmallBlock int
	LargeBlock int
}

// DefaultPolicy returns the 64/256 partition with 16/32 blocks.
func DefaultPolicy() Policy {
	return Policy{
		NaiveMax:   DefaultNaiveMax,
		LargeMin:   DefaultLargeMin,
		SmallBlock: DefaultSmallBlock,
		LargeBlock: DefaultLargeBlock,
	}
}

// Validate reports ErrInvalidPolicy unless the policy yields three
// well-ordered ranges with positive block sizes.
func (p Policy) Validate() error {
	switch {
	case p.NaiveMax < 0:
		return fmt.Errorf("Policy.Validate: NaiveMax %d < 0: %w", p.NaiveMax, ErrInvalidPolicy)
	case p.LargeMin <= p.NaiveMax:
		return fmt.Errorf("Policy.Validate: LargeMin %d <= NaiveMax %d: %w", p.LargeMin, p.NaiveMax, ErrInvalidPolicy)
	case p.SmallBlock <= 0:
		return fmt.Errorf("Policy.Validate: SmallBlock %d: %w", p.SmallBlock, ErrInvalidPolicy)
	case p.LargeBlock <= 0:
		return fmt.Errorf("Policy.Validate: LargeBlock %d: %w", p.LargeBlock, ErrInvalidPolicy)
	}
	return nil
}

// Plan maps a matrix size to a kernel and block size. It never looks at
// matrix contents.
func (p Policy) Plan(n int) Plan {
	switch {
	case n <= p.NaiveMax:
		return Plan{Kernel: Naive}
	case n >= p.LargeMin:
		return Plan{Kernel: Blocked, BlockSize: p.LargeBlock}
	default:
		return Plan{Kernel: Blocked, BlockSize: p.SmallBlock}
	}
}

// Dispatch returns the plan DefaultPolicy picks for size n.
func Dispatch(n int) Plan {
	return DefaultPolicy().Plan(n)
}
