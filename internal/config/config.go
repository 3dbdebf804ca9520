// Package config holds the parameters of a spectrum run.
package config

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/aria-lang/logan-kmers/internal/kmer"
	"github.com/aria-lang/logan-kmers/internal/spectrum"
)

// DefaultK is the k-mer length logan unitigs are built with.
const DefaultK = 31

// Config is the configuration surface of the counting engine.
type Config struct {
	K            int    `yaml:"k" json:"k"`
	Canonical    bool   `yaml:"canonical" json:"canonical"`
	OptimizedK31 bool   `yaml:"optimized_k31" json:"optimized_k31"`
	Limit        *int64 `yaml:"limit,omitempty" json:"limit,omitempty"`
	LimitPolicy  string `yaml:"limit_policy" json:"limit_policy"`
}

// Default returns the configuration used when nothing is specified.
func Default() Config {
	return Config{
		K:           DefaultK,
		LimitPolicy: spectrum.Clamp.String(),
	}
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "parsing config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads a YAML config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "reading config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrap(err, path)
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot run. An invalid k is
// reported as *kmer.InvalidKError.
func (c Config) Validate() error {
	if err := kmer.ValidateK(c.K); err != nil {
		return err
	}
	if c.Limit != nil && *c.Limit < 0 {
		return errors.Errorf("limit must be non-negative, got %d", *c.Limit)
	}
	if _, err := spectrum.ParseLimitPolicy(c.LimitPolicy); err != nil {
		return err
	}
	return nil
}

// UsesWholeSequence reports whether the k=31 whole-sequence strategy will
// be selected.
func (c Config) UsesWholeSequence() bool {
	return c.OptimizedK31 && c.K == spectrum.OptimizedK
}

// HistogramOptions converts the limit settings.
func (c Config) HistogramOptions() (spectrum.HistogramOptions, error) {
	policy, err := spectrum.ParseLimitPolicy(c.LimitPolicy)
	if err != nil {
		return spectrum.HistogramOptions{}, err
	}
	return spectrum.HistogramOptions{Limit: c.Limit, Policy: policy}, nil
}

func (c Config) String() string {
	limit := "none"
	if c.Limit != nil {
		limit = fmt.Sprintf("%d (%s)", *c.Limit, c.LimitPolicy)
	}
	return fmt.Sprintf("k=%d canonical=%v optimized_k31=%v limit=%s", c.K, c.Canonical, c.OptimizedK31, limit)
}
