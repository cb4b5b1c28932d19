package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newPlanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plan N [N...]",
		Short: "Show the kernel and block size chosen for each matrix size",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				n, err := strconv.Atoi(arg)
				if err != nil || n < 0 {
					return fmt.Errorf("invalid matrix size %q", arg)
				}
				fmt.Fprintf(a.out, "%6d  %s\n", n, a.engine.Plan(n))
			}
			return nil
		},
	}
}
