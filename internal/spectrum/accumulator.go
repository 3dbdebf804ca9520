// Package spectrum folds abundance-weighted k-mers into a spectrum map and
// reduces it to a frequency histogram.
package spectrum

import (
	"fmt"
	"io"

	"github.com/aria-lang/logan-kmers/internal/kmer"
	"github.com/aria-lang/logan-kmers/internal/sequence"
)

// OptimizedK is the only k at which whole-sequence counting applies: logan
// unitigs of exactly this length are themselves a single k-mer.
const OptimizedK = 31

// Strategy selects how records are split into k-mers.
type Strategy int

const (
	// SlidingWindow enumerates every window of every record.
	SlidingWindow Strategy = iota
	// WholeSequence counts a record of length k as one k-mer and falls
	// back to SlidingWindow for any other length.
	WholeSequence
)

func (s Strategy) String() string {
	switch s {
	case SlidingWindow:
		return "sliding-window"
	case WholeSequence:
		return "whole-sequence"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Counters reports what an Accumulator has seen.
type Counters struct {
	Records  int `json:"records"`
	Windows  int `json:"windows"`
	Skipped  int `json:"skipped"`
	Distinct int `json:"distinct"`
}

// Accumulator owns the k-mer to abundance mapping for one run. It is not
// safe for concurrent use.
type Accumulator struct {
	enc      *kmer.Encoder
	strategy Strategy
	counts   map[kmer.Code]float64
	records  int
	windows  int
	skipped  int
}

// NewAccumulator creates an empty accumulator. The whole-sequence strategy
// is selected when optimizedK31 is set and k is OptimizedK; the flag is
// ignored for any other k.
func NewAccumulator(k int, canonical, optimizedK31 bool) (*Accumulator, error) {
	enc, err := kmer.NewEncoder(k, canonical)
	if err != nil {
		return nil, err
	}

	strategy := SlidingWindow
	if optimizedK31 && k == OptimizedK {
		strategy = WholeSequence
	}

	return &Accumulator{
		enc:      enc,
		strategy: strategy,
		counts:   make(map[kmer.Code]float64),
	}, nil
}

// K returns the k-mer length.
func (a *Accumulator) K() int {
	return a.enc.K()
}

// Canonical reports whether k-mers are merged with their reverse complement.
func (a *Accumulator) Canonical() bool {
	return a.enc.IsCanonical()
}

// Strategy returns the strategy chosen at construction.
func (a *Accumulator) Strategy() Strategy {
	return a.strategy
}

// Fold adds the record's abundance to every valid k-mer it contains.
func (a *Accumulator) Fold(rec *sequence.Record) {
	a.records++
	if a.strategy == WholeSequence && len(rec.Bases) == a.enc.K() {
		a.foldWhole(rec)
		return
	}
	a.foldWindows(rec)
}

func (a *Accumulator) foldWhole(rec *sequence.Record) {
	code, err := a.enc.Encode(rec.Bases)
	if err != nil {
		a.skipped++
		return
	}
	a.counts[code] += rec.Abundance
	a.windows++
}

func (a *Accumulator) foldWindows(rec *sequence.Record) {
	abundance := rec.Abundance
	emitted, skipped := a.enc.Scan(rec.Bases, func(code kmer.Code) {
		a.counts[code] += abundance
	})
	a.windows += emitted
	a.skipped += skipped
}

// Consume folds every record of src. It stops at the first error other than
// io.EOF; the spectrum is then incomplete and must be discarded.
func (a *Accumulator) Consume(src sequence.Source) error {
	for {
		rec, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		a.Fold(rec)
	}
}

// Spectrum returns the accumulated mapping. Callers must not modify it.
func (a *Accumulator) Spectrum() map[kmer.Code]float64 {
	return a.counts
}

// Len returns the number of distinct k-mers.
func (a *Accumulator) Len() int {
	return len(a.counts)
}

// Counters returns the record and window counters.
func (a *Accumulator) Counters() Counters {
	return Counters{
		Records:  a.records,
		Windows:  a.windows,
		Skipped:  a.skipped,
		Distinct: len(a.counts),
	}
}
