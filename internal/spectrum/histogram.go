package spectrum

import (
	"fmt"
	"math"
	"strings"

	"github.com/twotwotwo/sorts/sortutil"

	"github.com/aria-lang/logan-kmers/internal/kmer"
)

// LimitPolicy decides what happens to frequencies above the limit.
type LimitPolicy int

const (
	// Clamp folds every frequency above the limit into the limit bucket.
	Clamp LimitPolicy = iota
	// Truncate drops buckets above the limit.
	Truncate
)

func (p LimitPolicy) String() string {
	switch p {
	case Clamp:
		return "clamp"
	case Truncate:
		return "truncate"
	default:
		return fmt.Sprintf("LimitPolicy(%d)", int(p))
	}
}

// ParseLimitPolicy parses "clamp" or "truncate". The empty string means
// Clamp.
func ParseLimitPolicy(s string) (LimitPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clamp":
		return Clamp, nil
	case "truncate":
		return Truncate, nil
	default:
		return Clamp, fmt.Errorf("unknown limit policy %q (want clamp or truncate)", s)
	}
}

// HistogramOptions configures BuildHistogram. A nil Limit disables
// limiting.
type HistogramOptions struct {
	Limit  *int64
	Policy LimitPolicy
}

// Bucket is the number of distinct k-mers whose frequency rounds to
// Frequency.
type Bucket struct {
	Frequency int64 `json:"frequency"`
	Count     int64 `json:"count"`
}

// Histogram is sorted by ascending frequency and holds no empty buckets.
type Histogram []Bucket

// Total returns the number of k-mers represented.
func (h Histogram) Total() int64 {
	var total int64
	for _, b := range h {
		total += b.Count
	}
	return total
}

// Map returns the histogram as frequency -> count.
func (h Histogram) Map() map[int64]int64 {
	m := make(map[int64]int64, len(h))
	for _, b := range h {
		m[b.Frequency] = b.Count
	}
	return m
}

// Frequency converts an accumulated abundance into a bucket key, rounding
// half away from zero.
func Frequency(abundance float64) int64 {
	return int64(math.Round(abundance))
}

// BuildHistogram counts how many k-mers reach each frequency.
func BuildHistogram(spectrum map[kmer.Code]float64, opts HistogramOptions) Histogram {
	counts := make(map[int64]int64)
	for _, abundance := range spectrum {
		freq := Frequency(abundance)
		if opts.Limit != nil && freq > *opts.Limit {
			if opts.Policy == Truncate {
				continue
			}
			freq = *opts.Limit
		}
		counts[freq]++
	}

	freqs := make([]int64, 0, len(counts))
	for freq := range counts {
		freqs = append(freqs, freq)
	}
	sortutil.Int64s(freqs)

	h := make(Histogram, len(freqs))
	for i, freq := range freqs {
		h[i] = Bucket{Frequency: freq, Count: counts[freq]}
	}
	return h
}
