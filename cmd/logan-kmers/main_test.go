package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/logan-kmers/internal/kmer"
	"github.com/aria-lang/logan-kmers/internal/sequence"
	"github.com/aria-lang/logan-kmers/pkg/logan"
)

const twoAAAA = ">seq1_1 ka:f:2.0\nAAAA\n>seq2_1 ka:f:3.0\nAAAA\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRunTable(t *testing.T) {
	mixed := ">a_1 ka:f:1\nCCCC\n>b_1 ka:f:5\nAAAA\n>c_1 ka:f:9\nGGGG\n"

	tests := []struct {
		name    string
		fasta   string
		args    []string
		wantOut string
	}{
		{"summed abundance", twoAAAA, []string{"4"}, "K-mer Frequency\tCount\n5\t1\n"},
		{"repeated k-mer", ">seq1_1 ka:f:1.0\nACGTACGT\n", []string{"4"}, "K-mer Frequency\tCount\n1\t3\n2\t1\n"},
		{"canonical", ">a_1 ka:f:1\nAAAC\n>b_1 ka:f:2\nGTTT\n", []string{"4", "--canonical"}, "K-mer Frequency\tCount\n3\t1\n"},
		{"clamp", mixed, []string{"4", "-l", "3"}, "K-mer Frequency\tCount\n1\t1\n3\t2\n"},
		{"truncate", mixed, []string{"4", "--limit", "3", "--limit-policy", "truncate"}, "K-mer Frequency\tCount\n1\t1\n"},
		{"shorter than k", ">a_1 ka:f:4\nACG\n", []string{"4"}, "K-mer Frequency\tCount\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "in.fa", tt.fasta)
			out, _, err := execute(t, "", append([]string{path, "--quiet"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOut, out)
		})
	}
}

func TestRunStdin(t *testing.T) {
	out, _, err := execute(t, twoAAAA, "-", "4", "--quiet")
	require.NoError(t, err)
	assert.Equal(t, "K-mer Frequency\tCount\n5\t1\n", out)
}

func TestRunDefaultK(t *testing.T) {
	seq := strings.Repeat("ACGT", 8)[:31]
	path := writeFile(t, "k31.fa", ">u_1 ka:f:7\n"+seq+"\n")

	for _, extra := range [][]string{nil, {"--optimized"}} {
		out, _, err := execute(t, "", append([]string{path, "--quiet"}, extra...)...)
		require.NoError(t, err)
		assert.Equal(t, "K-mer Frequency\tCount\n7\t1\n", out)
	}
}

func TestRunJSON(t *testing.T) {
	path := writeFile(t, "in.fa", twoAAAA)
	out, _, err := execute(t, "", path, "4", "--json", "--quiet")
	require.NoError(t, err)

	var result logan.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 4, result.Config.K)
	assert.Equal(t, map[int64]int64{5: 1}, result.Histogram.Map())
	assert.Equal(t, 2, result.Counters.Records)
}

func TestRunConfigFile(t *testing.T) {
	fasta := writeFile(t, "in.fa", ">a_1 ka:f:1\nCCCC\n>b_1 ka:f:5\nAAAA\n>c_1 ka:f:9\nGGGG\n")
	conf := writeFile(t, "conf.yaml", "k: 4\nlimit: 3\nlimit_policy: truncate\n")

	out, _, err := execute(t, "", fasta, "--config", conf, "--quiet")
	require.NoError(t, err)
	assert.Equal(t, "K-mer Frequency\tCount\n1\t1\n", out)

	// flags win over the file
	out, _, err = execute(t, "", fasta, "--config", conf, "--limit-policy", "clamp", "--quiet")
	require.NoError(t, err)
	assert.Equal(t, "K-mer Frequency\tCount\n1\t1\n3\t2\n", out)
}

func TestRunOutputs(t *testing.T) {
	dir := t.TempDir()
	fasta := writeFile(t, "in.fa", twoAAAA+">c_1 ka:f:1\nACGTT\n")
	dump := filepath.Join(dir, "kmers.tsv")
	plot := filepath.Join(dir, "spectrum.svg")

	_, stderr, err := execute(t, "", fasta, "4", "--dump", dump, "--plot", plot, "--summary")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Distinct k-mers: 3")
	assert.Contains(t, stderr, "k=4")

	data, err := os.ReadFile(dump)
	require.NoError(t, err)
	assert.Equal(t, "AAAA\t5\nACGT\t1\nCGTT\t1\n", string(data))

	info, err := os.Stat(plot)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRunOptimizedWarning(t *testing.T) {
	path := writeFile(t, "in.fa", twoAAAA)
	_, stderr, err := execute(t, "", path, "4", "--optimized")
	require.NoError(t, err)
	assert.Contains(t, stderr, "--optimized only applies to k=31")
}

func TestRunErrors(t *testing.T) {
	good := writeFile(t, "good.fa", twoAAAA)
	bad := writeFile(t, "bad.fa", twoAAAA+">seq3_1\nACGT\n")

	t.Run("k out of range", func(t *testing.T) {
		out, _, err := execute(t, "", good, "33")
		var kErr *kmer.InvalidKError
		assert.ErrorAs(t, err, &kErr)
		assert.Empty(t, out)
	})

	t.Run("k not a number", func(t *testing.T) {
		out, _, err := execute(t, "", good, "four")
		assert.Error(t, err)
		assert.Empty(t, out)
	})

	t.Run("malformed header", func(t *testing.T) {
		out, _, err := execute(t, "", bad, "4")
		var headerErr *sequence.MalformedHeaderError
		assert.ErrorAs(t, err, &headerErr)
		assert.Empty(t, out)
	})

	t.Run("missing file", func(t *testing.T) {
		out, _, err := execute(t, "", filepath.Join(t.TempDir(), "nope.fa"))
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Empty(t, out)
	})

	t.Run("no arguments", func(t *testing.T) {
		_, _, err := execute(t, "")
		assert.Error(t, err)
	})
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "logan-kmers version "+logan.Version())
}
