// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package cpuinfo

import (
	"bytes"
	"runtime"
	"slices"
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	info := Detect()

	if info.GOOS != runtime.GOOS || info.GOARCH != runtime.GOARCH {
		t.Errorf("Detect() = %s/%s, want %s/%s", info.GOOS, info.GOARCH, runtime.GOOS, runtime.GOARCH)
	}
	if info.NumCPU < 1 {
		t.Errorf("NumCPU = %d, want >= 1", info.NumCPU)
	}

	levels := []string{"avx512", "avx2", "sse2", "sve", "neon", "scalar"}
	if !slices.Contains(levels, info.Level) {
		t.Errorf("Level = %q, want one of %v", info.Level, levels)
	}
	if runtime.GOARCH == "amd64" && !slices.Contains(info.Features, "sse2") {
		t.Errorf("amd64 features %v missing baseline sse2", info.Features)
	}
}

func TestWrite(t *testing.T) {
	info := Info{GOOS: "linux", GOARCH: "amd64", NumCPU: 4, GOMAXPROCS: 4, Level: "avx2", Features: []string{"sse2", "avx2"}}

	var buf bytes.Buffer
	if err := info.Write(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Features: sse2 avx2\n") {
		t.Errorf("Write output missing features line:\n%s", buf.String())
	}
	if got, want := info.String(), "linux/amd64, 4 CPUs, GOMAXPROCS=4, avx2"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
