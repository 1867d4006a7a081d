package benchmark

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean is the arithmetic mean, 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// PopStdDev is the population (not Bessel-corrected) standard deviation.
// It is exactly 0 for fewer than two samples.
func PopStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	_, variance := stat.PopMeanVariance(xs, nil)
	if variance <= 0 || math.IsNaN(variance) {
		return 0
	}
	return math.Sqrt(variance)
}

// Median of an ascending slice; the two middle values are averaged on even counts.
func Median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Percentile of an ascending slice using linear interpolation between the
// two nearest ranks at index p/100*(n-1).
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[n-1]
	}
	idx := p / 100 * float64(n-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// ZScore returns (value-mean)/std, or 0 when std is not positive.
func ZScore(value, mean, std float64) float64 {
	if !(std > 0) || math.IsInf(std, 0) {
		return 0
	}
	z := (value - mean) / std
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return 0
	}
	return z
}

// summary holds the distribution figures of one metric.
type summary struct {
	n                int
	mean, std        float64
	median, p25, p75 float64
	min, max         float64
}

func summarize(xs []float64) summary {
	if len(xs) == 0 {
		return summary{}
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	return summary{
		n:      len(xs),
		mean:   Mean(xs),
		std:    PopStdDev(xs),
		median: Median(sorted),
		p25:    Percentile(sorted, 25),
		p75:    Percentile(sorted, 75),
		min:    floats.Min(xs),
		max:    floats.Max(xs),
	}
}
