package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aria-lang/logan-kmers/internal/kmer"
	"github.com/aria-lang/logan-kmers/internal/spectrum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = spectrum.Histogram{
	{Frequency: 1, Count: 3},
	{Frequency: 2, Count: 1},
	{Frequency: 40, Count: 12},
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sample))
	assert.Equal(t, "K-mer Frequency\tCount\n1\t3\n2\t1\n40\t12\n", buf.String())
}

func TestWriteTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, nil))
	assert.Equal(t, "K-mer Frequency\tCount\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sample))

	var got spectrum.Histogram
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sample, got)
	assert.Contains(t, buf.String(), `"frequency": 40`)
}

func TestWriteKmers(t *testing.T) {
	counts := map[kmer.Code]float64{}
	for s, v := range map[string]float64{"TTTT": 1, "AAAA": 5, "ACGT": 2.5} {
		code, err := kmer.EncodeWindow([]byte(s))
		require.NoError(t, err)
		counts[code] = v
	}

	var buf bytes.Buffer
	require.NoError(t, WriteKmers(&buf, counts, 4))
	assert.Equal(t, "AAAA\t5\nACGT\t2.5\nTTTT\t1\n", buf.String())
}

func TestWritePlotTo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlotTo(&buf, sample, "spectrum", "svg"))
	assert.Contains(t, buf.String(), "<svg")

	err := WritePlotTo(&buf, nil, "empty", "svg")
	require.Error(t, err)
}

func TestWritePlotToFlatHistogram(t *testing.T) {
	var buf bytes.Buffer
	flat := spectrum.Histogram{{Frequency: 5, Count: 1}}
	require.NoError(t, WritePlotTo(&buf, flat, "flat", "svg"))
}

func TestWritePlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spectrum.png")
	require.NoError(t, WritePlot(path, sample, "spectrum"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
