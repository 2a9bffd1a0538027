// Package testutil provides assertion helpers shared by the sim/ test packages.
package testutil

import (
	"math"
	"testing"

	"github.com/station-sim/station-sim/sim/station"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertQueueSeries checks that a queue-length series is time-ordered,
// stays within [0, horizon] and never reports a negative length.
func AssertQueueSeries(t *testing.T, name string, samples []station.QueueSample, horizon float64) {
	t.Helper()
	prev := math.Inf(-1)
	for i, q := range samples {
		if q.Time < prev {
			t.Errorf("%s: sample %d at t=%v precedes t=%v", name, i, q.Time, prev)
			return
		}
		if q.Time < 0 || q.Time > horizon {
			t.Errorf("%s: sample %d at t=%v outside [0, %v]", name, i, q.Time, horizon)
			return
		}
		if q.Length < 0 {
			t.Errorf("%s: sample %d has negative length %d", name, i, q.Length)
			return
		}
		prev = q.Time
	}
}
