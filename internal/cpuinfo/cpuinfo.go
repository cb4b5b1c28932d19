// Package cpuinfo reports the host characteristics that matter when reading
// benchmark numbers: architecture, core count and the SIMD features Go detects.
package cpuinfo

import (
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// Feature is a named CPU capability flag.
type Feature struct {
	Name    string
	Present bool
}

// Info describes the host the engine runs on.
type Info struct {
	GOOS          string
	GOARCH        string
	NumCPU        int
	GoVersion     string
	CacheLineSize int
	Features      []Feature
}

// Detect collects host information from the runtime and golang.org/x/sys/cpu.
func Detect() Info {
	info := Info{
		GOOS:          runtime.GOOS,
		GOARCH:        runtime.GOARCH,
		NumCPU:        runtime.NumCPU(),
		GoVersion:     runtime.Version(),
		CacheLineSize: int(unsafe.Sizeof(cpu.CacheLinePad{})),
	}

	switch runtime.GOARCH {
	case "amd64":
		info.Features = []Feature{
			{"SSE2", cpu.X86.HasSSE2},
			{"SSE41", cpu.X86.HasSSE41},
			{"AVX", cpu.X86.HasAVX},
			{"AVX2", cpu.X86.HasAVX2},
			{"FMA", cpu.X86.HasFMA},
			{"AVX512F", cpu.X86.HasAVX512F},
		}
	case "arm64":
		info.Features = []Feature{
			{"ASIMD", cpu.ARM64.HasASIMD},
			{"FP", cpu.ARM64.HasFP},
			{"ASIMDHP", cpu.ARM64.HasASIMDHP},
			{"SVE", cpu.ARM64.HasSVE},
			{"SVE2", cpu.ARM64.HasSVE2},
		}
	}
	return info
}

// Enabled returns the names of the features present on this host.
func (i Info) Enabled() []string {
	var names []string
	for _, f := range i.Features {
		if f.Present {
			names = append(names, f.Name)
		}
	}
	return names
}

// String renders a one-line summary, e.g. "linux/amd64 8 CPUs go1.25 [AVX AVX2 FMA]".
func (i Info) String() string {
	return fmt.Sprintf("%s/%s %d CPUs %s [%s]",
		i.GOOS, i.GOARCH, i.NumCPU, i.GoVersion, strings.Join(i.Enabled(), " "))
}
