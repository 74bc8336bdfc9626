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

package bench

import (
	"time"

	"github.com/samber/lo"
)

// Stopwatch measures wall time from Start.
type Stopwatch struct {
	start time.Time
}

// Start returns a running stopwatch.
func Start() Stopwatch {
	return Stopwatch{start: time.Now()}
}

// Elapsed returns the wall time since Start.
func (s Stopwatch) Elapsed() time.Duration {
	return time.Since(s.start)
}

// Measure runs fn once and returns its wall time.
func Measure(fn func()) time.Duration {
	sw := Start()
	fn()
	return sw.Elapsed()
}

// TrialStats holds the wall time of each trial in run order.
type TrialStats struct {
	Durations []time.Duration
}

// Add appends one trial.
func (s *TrialStats) Add(d time.Duration) {
	s.Durations = append(s.Durations, d)
}

// Len returns the number of trials.
func (s TrialStats) Len() int { return len(s.Durations) }

// Total returns the summed wall time.
func (s TrialStats) Total() time.Duration {
	return lo.Sum(s.Durations)
}

// Mean returns the average trial time, or 0 with no trials.
func (s TrialStats) Mean() time.Duration {
	if len(s.Durations) == 0 {
		return 0
	}
	return s.Total() / time.Duration(len(s.Durations))
}

// MeanMillis returns the average trial time in milliseconds.
func (s TrialStats) MeanMillis() float64 {
	if len(s.Durations) == 0 {
		return 0
	}
	return s.Total().Seconds() / float64(len(s.Durations)) * 1000
}

// Min returns the fastest trial.
func (s TrialStats) Min() time.Duration {
	return lo.Min(s.Durations)
}

// Max returns the slowest trial.
func (s TrialStats) Max() time.Duration {
	return lo.Max(s.Durations)
}
