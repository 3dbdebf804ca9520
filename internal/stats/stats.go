// Package stats summarizes a k-mer frequency histogram.
//
// The summary gives the usual genome-profiling numbers: how many k-mers
// were seen, the coverage peak and the genome size implied by it.
package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/aria-lang/logan-kmers/internal/spectrum"
)

// ErrorFrequency is the highest frequency treated as sequencing error when
// looking for the coverage peak.
const ErrorFrequency = 1

// Summary holds aggregate statistics of a histogram. Frequencies are the
// rounded bucket keys, so a clamped histogram yields clamped statistics.
type Summary struct {
	Distinct   int64   `json:"distinct"`
	Total      float64 `json:"total"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"stddev"`
	Singletons int64   `json:"singletons"`
	MaxFreq    int64   `json:"max_frequency"`
	Peak       int64   `json:"peak"`
	GenomeSize int64   `json:"genome_size"`
}

// Summarize computes a Summary. Peak and GenomeSize are zero when no bucket
// lies above ErrorFrequency.
func Summarize(h spectrum.Histogram) Summary {
	var s Summary
	if len(h) == 0 {
		return s
	}

	freqs := make([]float64, len(h))
	weights := make([]float64, len(h))
	for i, b := range h {
		freqs[i] = float64(b.Frequency)
		weights[i] = float64(b.Count)
		if b.Frequency == 1 {
			s.Singletons = b.Count
		}
	}

	s.Distinct = h.Total()
	s.Total = floats.Dot(freqs, weights)
	s.Mean = stat.Mean(freqs, weights)
	if s.Distinct > 1 {
		s.StdDev = stat.StdDev(freqs, weights)
	}
	s.MaxFreq = h[len(h)-1].Frequency
	s.Peak = Peak(h)
	if s.Peak > 0 {
		if size, err := EstimateGenomeSize(int64(math.Round(s.Total)), s.Peak); err == nil {
			s.GenomeSize = size
		}
	}
	return s
}

// Peak returns the frequency with the most k-mers above ErrorFrequency,
// preferring the lower frequency on ties.
func Peak(h spectrum.Histogram) int64 {
	var peak, best int64
	for _, b := range h {
		if b.Frequency <= ErrorFrequency {
			continue
		}
		if b.Count > best {
			peak, best = b.Frequency, b.Count
		}
	}
	return peak
}

// EstimateGenomeSize estimates genome size using the peak coverage method:
// genome_size ~ total_kmers / peak_coverage.
func EstimateGenomeSize(totalKmers, peakCoverage int64) (int64, error) {
	if totalKmers <= 0 || peakCoverage <= 0 {
		return 0, fmt.Errorf("total k-mers and peak coverage must be positive")
	}
	return totalKmers / peakCoverage, nil
}

func (s Summary) String() string {
	return fmt.Sprintf(`Distinct k-mers: %d
Total abundance: %.0f
Mean frequency: %.2f
Std dev: %.2f
Singletons: %d
Max frequency: %d
Coverage peak: %d
Estimated genome size: %d`,
		s.Distinct, s.Total, s.Mean, s.StdDev, s.Singletons, s.MaxFreq, s.Peak, s.GenomeSize)
}
