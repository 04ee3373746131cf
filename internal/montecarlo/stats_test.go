package montecarlo

import (
	"math"
	"testing"
)

func closeTo(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func TestMean(t *testing.T) {
	if got := Mean([]float64{1, 2, 3, 4}); !closeTo(got, 2.5) {
		t.Errorf("mean = %.6f, want 2.5", got)
	}
	if got := Mean(nil); got != 0 {
		t.Errorf("mean of empty = %.6f, want 0", got)
	}
}

func TestStdDev_Population(t *testing.T) {
	// Population variance of {1,2,3,4} is 1.25.
	if got := StdDev([]float64{1, 2, 3, 4}); !closeTo(got, math.Sqrt(1.25)) {
		t.Errorf("std = %.6f, want %.6f", got, math.Sqrt(1.25))
	}
	if got := StdDev([]float64{5, 5, 5}); !closeTo(got, 0) {
		t.Errorf("std of constant series = %.6f, want 0", got)
	}
}

func TestPercentile_LinearInterpolation(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	tests := []struct {
		q    float64
		want float64
	}{
		{0, 1},
		{5, 1.15},
		{50, 2.5},
		{95, 3.85},
		{100, 4},
	}
	for _, tt := range tests {
		if got := Percentile(data, tt.q); !closeTo(got, tt.want) {
			t.Errorf("p%.0f = %.6f, want %.6f", tt.q, got, tt.want)
		}
	}
}

func TestPercentile_DoesNotMutateInput(t *testing.T) {
	data := []float64{3, 1, 2}
	Percentile(data, 50)
	if data[0] != 3 || data[1] != 1 || data[2] != 2 {
		t.Errorf("input reordered: %v", data)
	}
}

func TestMedian_OddCount(t *testing.T) {
	if got := Median([]float64{9, 1, 5}); !closeTo(got, 5) {
		t.Errorf("median = %.6f, want 5", got)
	}
}

func TestDescribe(t *testing.T) {
	stats := Describe([]float64{10, 20, 30, 40})
	if !closeTo(stats.Mean, 25) || !closeTo(stats.Median, 25) {
		t.Errorf("unexpected center: %+v", stats)
	}
	if !closeTo(stats.P5, 11.5) || !closeTo(stats.P95, 38.5) {
		t.Errorf("unexpected tails: %+v", stats)
	}
}
