package matmul

import "errors"

// Every message is prefixed with "matmul: ". Functions wrap these with the
// failing operation as context; callers match them with errors.Is.
var (
	// ErrDimensionMismatch is returned when operands are not square, differ in
	// size, have ragged rows, or carry backing storage inconsistent with their shape.
	ErrDimensionMismatch = errors.New("matmul: dimension mismatch")

	// ErrNilMatrix is returned when a nil operand is passed to a kernel.
	ErrNilMatrix = errors.New("matmul: nil matrix")

	// ErrInvalidBlockSize is returned when the blocked kernel gets a block size <= 0.
	ErrInvalidBlockSize = errors.New("matmul: block size must be > 0")

	// ErrInvalidPolicy is returned for dispatch thresholds or block sizes that
	// do not describe a valid three-way partition.
	ErrInvalidPolicy = errors.New("matmul: invalid dispatch policy")

	// ErrUnknownKernel is returned for a Plan or name that does not map to a kernel.
	ErrUnknownKernel = errors.New("matmul: unknown kernel")
)
