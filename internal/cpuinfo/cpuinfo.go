// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cpuinfo describes the host a benchmark ran on.
package cpuinfo

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// Info is a snapshot of the host CPU as seen by Go.
type Info struct {
	GOOS       string
	GOARCH     string
	NumCPU     int
	GOMAXPROCS int

	// Level is the widest vector extension detected: "avx512", "avx2",
	// "sse2", "sve", "neon" or "scalar".
	Level string

	// Features lists the detected feature flags in a fixed order.
	Features []string
}

type feature struct {
	name string
	has  bool
}

// Detect reads the current runtime and golang.org/x/sys/cpu state.
func Detect() Info {
	info := Info{
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
		NumCPU:     runtime.NumCPU(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
		Level:      "scalar",
	}

	var flags []feature
	switch runtime.GOARCH {
	case "amd64", "386":
		flags = []feature{
			{"sse2", cpu.X86.HasSSE2},
			{"sse41", cpu.X86.HasSSE41},
			{"sse42", cpu.X86.HasSSE42},
			{"avx", cpu.X86.HasAVX},
			{"avx2", cpu.X86.HasAVX2},
			{"fma", cpu.X86.HasFMA},
			{"avx512f", cpu.X86.HasAVX512F},
			{"avx512bw", cpu.X86.HasAVX512BW},
			{"avx512vl", cpu.X86.HasAVX512VL},
		}
		switch {
		case cpu.X86.HasAVX512F:
			info.Level = "avx512"
		case cpu.X86.HasAVX2:
			info.Level = "avx2"
		case cpu.X86.HasSSE2:
			info.Level = "sse2"
		}
	case "arm64":
		flags = []feature{
			{"asimd", cpu.ARM64.HasASIMD},
			{"fp", cpu.ARM64.HasFP},
			{"fphp", cpu.ARM64.HasFPHP},
			{"asimdhp", cpu.ARM64.HasASIMDHP},
			{"asimdfhm", cpu.ARM64.HasASIMDFHM},
			{"sve", cpu.ARM64.HasSVE},
			{"sve2", cpu.ARM64.HasSVE2},
			{"atomics", cpu.ARM64.HasATOMICS},
		}
		switch {
		case cpu.ARM64.HasSVE:
			info.Level = "sve"
		case cpu.ARM64.HasASIMD:
			info.Level = "neon"
		}
	}

	for _, f := range flags {
		if f.has {
			info.Features = append(info.Features, f.name)
		}
	}
	return info
}

// String returns a one-line summary suitable for a report header.
func (i Info) String() string {
	return fmt.Sprintf("%s/%s, %d CPUs, GOMAXPROCS=%d, %s", i.GOOS, i.GOARCH, i.NumCPU, i.GOMAXPROCS, i.Level)
}

// Write prints a multi-line description to w.
func (i Info) Write(w io.Writer) error {
	features := strings.Join(i.Features, " ")
	if features == "" {
		features = "(none)"
	}
	_, err := fmt.Fprintf(w, "GOOS: %s\nGOARCH: %s\nNumCPU: %d\nGOMAXPROCS: %d\nLevel: %s\nFeatures: %s\n",
		i.GOOS, i.GOARCH, i.NumCPU, i.GOMAXPROCS, i.Level, features)
	return err
}
