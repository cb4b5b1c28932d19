package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	matmul "github.com/tektwister/ai_engineering/matmul_engine"
)

var errVerifyFailed = errors.New("some kernels failed verification")

func newVerifyCmd(a *app) *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify correctness of all kernels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.verifyAllKernels(size)
		},
	}
	cmd.Flags().IntVar(&size, "size", 300, "size of the random naive-vs-dispatched equivalence check")
	return cmd
}

func (a *app) verifyAllKernels(size int) error {
	heading(a.out, "verifying kernel correctness")
	fmt.Fprintln(a.out)

	allPassed := true
	for _, kernel := range matmul.Kernels() {
		if matmul.VerifyKernelCorrectness(kernel, 1e-9) {
			fmt.Fprintf(a.out, "  ✓ %-16s PASSED\n", kernel)
		} else {
			fmt.Fprintf(a.out, "  ✗ %-16s FAILED\n", kernel)
			allPassed = false
		}
	}

	x := matmul.CreateRandomMatrix(size, 42)
	y := matmul.CreateRandomMatrix(size, 43)
	reference, err := matmul.MultiplyNaive(x, y)
	if err != nil {
		return err
	}
	result, err := a.engine.Multiply(x, y)
	if err != nil {
		return err
	}
	label := fmt.Sprintf("%dx%d via %s", size, size, a.engine.Plan(size))
	if result.AlmostEqual(reference, 1e-9) {
		fmt.Fprintf(a.out, "  ✓ %-16s matches naive\n", label)
	} else {
		fmt.Fprintf(a.out, "  ✗ %-16s differs from naive\n", label)
		allPassed = false
	}
	a.log.Debug().Int("size", size).Bool("passed", allPassed).Msg("verification finished")

	fmt.Fprintln(a.out)
	if !allPassed {
		return errVerifyFailed
	}
	fmt.Fprintln(a.out, "All kernels verified successfully!")
	return nil
}
