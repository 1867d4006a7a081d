// Package benchmark aggregates championship rosters into per-role statistical
// benchmarks and serves them through an immutable Store.
package benchmark

import (
	"fmt"
	"math"
)

// RoleBenchmark summarizes one role across the historical corpus. The mean
// fields for age, cap hit and shot share are 0 when the matching *Samples
// count is 0; use the Has* helpers to tell "no data" from a real zero.
type RoleBenchmark struct {
	SampleSize int `yaml:"sampleSize" json:"sampleSize"`

	MeanPPG   float64 `yaml:"meanPPG" json:"meanPPG"`
	StdDevPPG float64 `yaml:"stdDevPPG" json:"stdDevPPG"`
	MedianPPG float64 `yaml:"medianPPG" json:"medianPPG"`
	P25PPG    float64 `yaml:"p25PPG" json:"p25PPG"`
	P75PPG    float64 `yaml:"p75PPG" json:"p75PPG"`
	MinPPG    float64 `yaml:"minPPG" json:"minPPG"`
	MaxPPG    float64 `yaml:"maxPPG" json:"maxPPG"`

	MeanAge    float64 `yaml:"meanAge" json:"meanAge"`
	MeanCapHit float64 `yaml:"meanCapHit" json:"meanCapHit"`

	MeanCorsiForPct     float64 `yaml:"meanCorsiForPct" json:"meanCorsiForPct"`
	StdDevCorsiForPct   float64 `yaml:"stdDevCorsiForPct" json:"stdDevCorsiForPct"`
	MeanFenwickForPct   float64 `yaml:"meanFenwickForPct" json:"meanFenwickForPct"`
	StdDevFenwickForPct float64 `yaml:"stdDevFenwickForPct" json:"stdDevFenwickForPct"`

	AgeSamples     int `yaml:"ageSamples" json:"ageSamples"`
	CapHitSamples  int `yaml:"capHitSamples" json:"capHitSamples"`
	CorsiSamples   int `yaml:"corsiSamples" json:"corsiSamples"`
	FenwickSamples int `yaml:"fenwickSamples" json:"fenwickSamples"`
}

// HasAge reports whether MeanAge is backed by data.
func (b RoleBenchmark) HasAge() bool { return b.AgeSamples > 0 } //nolint:gocritic // hugeParam

// HasCapHit reports whether MeanCapHit is backed by data.
func (b RoleBenchmark) HasCapHit() bool { return b.CapHitSamples > 0 } //nolint:gocritic // hugeParam

// HasCorsi reports whether the Corsi fields are backed by data.
func (b RoleBenchmark) HasCorsi() bool { return b.CorsiSamples > 0 } //nolint:gocritic // hugeParam

// HasFenwick reports whether the Fenwick fields are backed by data.
func (b RoleBenchmark) HasFenwick() bool { return b.FenwickSamples > 0 } //nolint:gocritic // hugeParam

// Validate rejects records that could not have come out of the builder.
func (b RoleBenchmark) Validate() error { //nolint:gocritic // hugeParam
	if b.SampleSize <= 0 {
		return fmt.Errorf("%w: sampleSize %d", ErrInvalidBenchmark, b.SampleSize)
	}
	fields := map[string]float64{
		"meanPPG": b.MeanPPG, "stdDevPPG": b.StdDevPPG, "medianPPG": b.MedianPPG,
		"p25PPG": b.P25PPG, "p75PPG": b.P75PPG, "minPPG": b.MinPPG, "maxPPG": b.MaxPPG,
		"meanAge": b.MeanAge, "meanCapHit": b.MeanCapHit,
		"meanCorsiForPct": b.MeanCorsiForPct, "stdDevCorsiForPct": b.StdDevCorsiForPct,
		"meanFenwickForPct": b.MeanFenwickForPct, "stdDevFenwickForPct": b.StdDevFenwickForPct,
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidBenchmark, name)
		}
	}
	if b.StdDevPPG < 0 || b.StdDevCorsiForPct < 0 || b.StdDevFenwickForPct < 0 {
		return fmt.Errorf("%w: negative standard deviation", ErrInvalidBenchmark)
	}
	if b.AgeSamples < 0 || b.CapHitSamples < 0 || b.CorsiSamples < 0 || b.FenwickSamples < 0 {
		return fmt.Errorf("%w: negative sample count", ErrInvalidBenchmark)
	}
	return nil
}
