package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tektwister/ai_engineering/matmul_engine/internal/cpuinfo"
)

func newCPUInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cpuinfo",
		Short: "Print the host CPU features relevant to benchmark results",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := cpuinfo.Detect()
			heading(a.out, "host")
			fmt.Fprintf(a.out, "GOOS:        %s\n", info.GOOS)
			fmt.Fprintf(a.out, "GOARCH:      %s\n", info.GOARCH)
			fmt.Fprintf(a.out, "NumCPU:      %d\n", info.NumCPU)
			fmt.Fprintf(a.out, "Go:          %s\n", info.GoVersion)
			fmt.Fprintf(a.out, "Cache line:  %d bytes\n", info.CacheLineSize)
			fmt.Fprintf(a.out, "Features:    %s\n", strings.Join(info.Enabled(), " "))
		},
	}
}
