package report

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// sortedCopy returns an ascending copy, the form gonum quantiles require.
func sortedCopy(xs []float64) []float64 {
	s := make([]float64, len(xs))
	copy(s, xs)
	sort.Float64s(s)
	return s
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// popStdDev is the population standard deviation (divisor n, not n-1),
// matching the per-day aggregates downstream consumers expect.
func popStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.PopStdDev(xs, nil)
}

// median interpolates linearly between order statistics.
func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Quantile(0.5, stat.LinInterp, sortedCopy(xs), nil)
}

// percentile returns the empirical p-quantile (0..1).
func percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Quantile(p, stat.Empirical, sortedCopy(xs), nil)
}

// interpQuantile returns the linearly interpolated p-quantile (0..1).
func interpQuantile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Quantile(p, stat.LinInterp, sortedCopy(xs), nil)
}

// pearson is the Pearson correlation coefficient, 0 when either series has
// no variance (the correlation is undefined there, and 0 is the safe
// "no relationship" answer for sizing guidance).
func pearson(xs, ys []float64) float64 {
	if len(xs) < 2 || len(ys) < 2 {
		return 0
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return 0
	}
	return r
}

// shareWithin is the fraction of values landing within tolerance of center.
func shareWithin(xs []float64, center, tolerance float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	count := 0
	for _, x := range xs {
		if math.Abs(x-center) <= tolerance {
			count++
		}
	}
	return float64(count) / float64(len(xs))
}

// formatClock renders a decimal hour as zero-padded HH:MM, wrapping values
// outside [0, 24) around midnight.
func formatClock(hour float64) string {
	hour = math.Mod(hour, 24)
	if hour < 0 {
		hour += 24
	}
	h := int(hour)
	m := int(math.Round((hour - float64(h)) * 60))
	if m == 60 {
		h = (h + 1) % 24
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// confidenceLabel derives the qualitative confidence string from a
// consistency rate, embedding the rate itself.
func confidenceLabel(rate float64, detail string) string {
	level := "Low"
	switch {
	case rate >= 0.7:
		level = "High"
	case rate >= 0.4:
		level = "Medium"
	}
	return fmt.Sprintf("%s - %.1f%% of days %s", level, rate*100, detail)
}
