// Package stats provides statistical utility functions for analyzers.
package stats

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Percentile calculates the p-th percentile of a sorted slice.
// The slice must already be sorted in ascending order.
// Returns 0 if the slice is empty.
func Percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p * len(sorted)) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// Distribution summarizes a sample of non-negative measurements such as block lengths.
type Distribution struct {
	Count  int     `json:"count" yaml:"count" toon:"count"`
	Min    float64 `json:"min" yaml:"min" toon:"min"`
	Max    float64 `json:"max" yaml:"max" toon:"max"`
	Mean   float64 `json:"mean" yaml:"mean" toon:"mean"`
	StdDev float64 `json:"std_dev" yaml:"stdDev" toon:"std_dev"`
	Median float64 `json:"median" yaml:"median" toon:"median"`
	P90    float64 `json:"p90" yaml:"p90" toon:"p90"`
}

// Describe computes the distribution of values. The input is not modified.
// An empty sample yields the zero Distribution.
func Describe(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	d := Distribution{
		Count:  len(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:    stat.Quantile(0.9, stat.Empirical, sorted, nil),
	}
	// StdDev of a single observation is NaN in gonum.
	if len(sorted) > 1 {
		d.StdDev = stat.StdDev(sorted, nil)
	}
	return d
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// Ratio returns part/whole, or 0 when whole is 0.
func Ratio(part, whole uint64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole)
}
