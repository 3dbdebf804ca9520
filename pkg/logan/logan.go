// Package logan computes abundance-weighted k-mer spectra of logan unitig
// and contig sets.
//
// Example usage:
//
//	cfg := logan.DefaultConfig()
//	cfg.K = 31
//	cfg.Canonical = true
//
//	result, err := logan.RunFile(cfg, "SRR000001.unitigs.fa.zst")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, b := range result.Histogram {
//	    fmt.Printf("%d\t%d\n", b.Frequency, b.Count)
//	}
package logan

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/aria-lang/logan-kmers/internal/config"
	"github.com/aria-lang/logan-kmers/internal/sequence"
	"github.com/aria-lang/logan-kmers/internal/spectrum"
	"github.com/aria-lang/logan-kmers/internal/stats"
)

// Re-export types for convenience
type (
	Config      = config.Config
	Record      = sequence.Record
	Source      = sequence.Source
	Reader      = sequence.Reader
	OpenOption  = sequence.OpenOption
	Accumulator = spectrum.Accumulator
	Counters    = spectrum.Counters
	Histogram   = spectrum.Histogram
	Bucket      = spectrum.Bucket
	Summary     = stats.Summary
)

// Result is the outcome of a complete run.
type Result struct {
	Config    Config    `json:"config"`
	Strategy  string    `json:"strategy"`
	Counters  Counters  `json:"counters"`
	Histogram Histogram `json:"histogram"`
	Summary   Summary   `json:"summary"`
}

// DefaultConfig returns the default run configuration.
func DefaultConfig() Config {
	return config.Default()
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	return config.Load(path)
}

// Count validates cfg and folds every record of src into a new accumulator.
// Configuration errors are returned before src is read.
func Count(cfg Config, src Source) (*Accumulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	acc, err := spectrum.NewAccumulator(cfg.K, cfg.Canonical, cfg.OptimizedK31)
	if err != nil {
		return nil, err
	}
	if err := acc.Consume(src); err != nil {
		return nil, err
	}
	return acc, nil
}

// NewResult reduces an accumulator to its histogram and summary. The
// summary is computed before the limit is applied.
func NewResult(cfg Config, acc *Accumulator) (*Result, error) {
	opts, err := cfg.HistogramOptions()
	if err != nil {
		return nil, err
	}

	h := spectrum.BuildHistogram(acc.Spectrum(), opts)
	full := h
	if opts.Limit != nil {
		full = spectrum.BuildHistogram(acc.Spectrum(), spectrum.HistogramOptions{})
	}
	return &Result{
		Config:    cfg,
		Strategy:  acc.Strategy().String(),
		Counters:  acc.Counters(),
		Histogram: h,
		Summary:   stats.Summarize(full),
	}, nil
}

// Run counts src and builds the result.
func Run(cfg Config, src Source) (*Result, error) {
	acc, err := Count(cfg, src)
	if err != nil {
		return nil, err
	}
	return NewResult(cfg, acc)
}

// Open opens a plain, gzip or zstd compressed FASTA file.
func Open(path string, opts ...OpenOption) (*Reader, error) {
	return sequence.Open(path, opts...)
}

// RunFile runs over a FASTA file.
func RunFile(cfg Config, path string, opts ...OpenOption) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reader, err := sequence.Open(path, opts...)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	result, err := Run(cfg, reader)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return result, nil
}

// Version returns the logan-kmers version.
func Version() string {
	return "0.3.0"
}

// Info returns information about logan-kmers.
func Info() string {
	return fmt.Sprintf(`logan-kmers v%s - weighted k-mer spectra for logan unitigs and contigs

Features:
  - 2-bit packed k-mers up to k=32, optional canonical form
  - abundance-weighted counting from ka:f: headers
  - whole-sequence counting for k=31 unitigs
  - plain, gzip and zstd FASTA input
  - histogram limit (clamp or truncate), summary and plots
`, Version())
}
