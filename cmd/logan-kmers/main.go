// Command logan-kmers computes the abundance-weighted k-mer spectrum of a
// logan unitig or contig FASTA file.
//
// Usage:
//
//	logan-kmers <fasta_file> [k] [flags]
//	logan-kmers version
//
// The input may be plain, gzip or zstd compressed; "-" reads stdin. The
// histogram is written to stdout as "K-mer Frequency<TAB>Count" rows.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/aria-lang/logan-kmers/internal/logging"
	"github.com/aria-lang/logan-kmers/internal/report"
	"github.com/aria-lang/logan-kmers/internal/sequence"
	"github.com/aria-lang/logan-kmers/internal/spectrum"
	"github.com/aria-lang/logan-kmers/pkg/logan"
)

type options struct {
	config      string
	limit       int64
	limitPolicy string
	canonical   bool
	optimized   bool
	plot        string
	dump        string
	json        bool
	summary     bool
	progress    bool
	verbose     bool
	quiet       bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "logan-kmers <fasta_file> [k]",
		Short: "Weighted k-mer spectrum of logan unitigs and contigs",
		Long: `logan-kmers counts every k-mer of a logan FASTA file, weighting each
occurrence by the abundance in its record header (">acc_1 ka:f:12.5"),
and prints how many distinct k-mers fall into each rounded abundance.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, &opts)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	f := cmd.Flags()
	f.StringVar(&opts.config, "config", "", "YAML config file; flags override its values")
	f.Int64VarP(&opts.limit, "limit", "l", 0, "highest frequency bucket to report")
	f.StringVar(&opts.limitPolicy, "limit-policy", spectrum.Clamp.String(), "what to do with frequencies above --limit: clamp or truncate")
	f.BoolVar(&opts.canonical, "canonical", false, "count canonical k-mers")
	f.BoolVar(&opts.optimized, "optimized", false, "count each 31 bp record as a single k-mer when k=31")
	f.StringVar(&opts.plot, "plot", "", "write a spectrum plot (svg, png or pdf)")
	f.StringVar(&opts.dump, "dump", "", "write every k-mer and its abundance")
	f.BoolVar(&opts.json, "json", false, "print the result as JSON")
	f.BoolVar(&opts.summary, "summary", false, "print spectrum statistics to stderr")
	f.BoolVar(&opts.progress, "progress", false, "show a progress bar on stderr")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	f.BoolVar(&opts.quiet, "quiet", false, "only log warnings and errors")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "logan-kmers version %s\n", logan.Version())
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// buildConfig layers the config file, the flags that were set and the
// positional k, in that order.
func buildConfig(cmd *cobra.Command, args []string, opts *options) (logan.Config, error) {
	cfg := logan.DefaultConfig()
	if opts.config != "" {
		var err error
		if cfg, err = logan.LoadConfig(opts.config); err != nil {
			return cfg, err
		}
	}

	f := cmd.Flags()
	if f.Changed("limit") {
		limit := opts.limit
		cfg.Limit = &limit
	}
	if f.Changed("limit-policy") {
		cfg.LimitPolicy = opts.limitPolicy
	}
	if f.Changed("canonical") {
		cfg.Canonical = opts.canonical
	}
	if f.Changed("optimized") {
		cfg.OptimizedK31 = opts.optimized
	}
	if len(args) > 1 {
		k, err := strconv.Atoi(args[1])
		if err != nil {
			return cfg, errors.Errorf("invalid k %q", args[1])
		}
		cfg.K = k
	}

	return cfg, cfg.Validate()
}

func openInput(cmd *cobra.Command, path string, progress bool) (*sequence.Reader, error) {
	if path == "-" {
		return sequence.NewReader(cmd.InOrStdin())
	}
	var opts []sequence.OpenOption
	if progress {
		opts = append(opts, sequence.WithProgress(cmd.ErrOrStderr()))
	}
	return sequence.Open(path, opts...)
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	logging.Setup(cmd.ErrOrStderr(), logging.Level(opts.verbose, opts.quiet))
	log := logging.Log

	cfg, err := buildConfig(cmd, args, opts)
	if err != nil {
		return err
	}
	if cfg.OptimizedK31 && cfg.K != spectrum.OptimizedK {
		log.Warningf("--optimized only applies to k=%d, using the sliding window for k=%d", spectrum.OptimizedK, cfg.K)
	}
	log.Infof("%s", cfg)

	path := args[0]
	reader, err := openInput(cmd, path, opts.progress)
	if err != nil {
		return err
	}
	defer reader.Close()
	log.Debugf("reading %s (%s)", path, reader.Compression())

	acc, err := logan.Count(cfg, reader)
	if err != nil {
		return errors.Wrap(err, path)
	}
	c := acc.Counters()
	log.Infof("%d records, %d windows, %d skipped, %d distinct k-mers (%s)",
		c.Records, c.Windows, c.Skipped, c.Distinct, acc.Strategy())

	result, err := logan.NewResult(cfg, acc)
	if err != nil {
		return err
	}

	if opts.dump != "" {
		if err := writeDump(opts.dump, acc, cfg.K); err != nil {
			return err
		}
		log.Infof("k-mers written to %s", opts.dump)
	}
	if opts.plot != "" {
		if err := report.WritePlot(opts.plot, result.Histogram, filepath.Base(path)); err != nil {
			return err
		}
		log.Infof("plot written to %s", opts.plot)
	}
	if opts.summary {
		fmt.Fprintln(cmd.ErrOrStderr(), result.Summary)
	}

	if opts.json {
		return report.WriteJSON(cmd.OutOrStdout(), result)
	}
	return report.WriteTable(cmd.OutOrStdout(), result.Histogram)
}

func writeDump(path string, acc *logan.Accumulator, k int) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating dump")
	}
	if err := report.WriteKmers(f, acc.Spectrum(), k); err != nil {
		f.Close()
		return errors.Wrap(err, path)
	}
	return f.Close()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
