package sequence

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFASTA = `>seq1_1 ka:f:2.0
ACGTAC
GTAC
>seq2_1 ka:f:3.5
acgtn
>seq3_1 ka:f:1
TTTT
`

type plainRecord struct {
	ID        string
	Bases     string
	Abundance float64
}

func readAll(t *testing.T, src Source) []plainRecord {
	t.Helper()
	var out []plainRecord
	for {
		rec, err := src.Next()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, plainRecord{rec.ID, string(rec.Bases), rec.Abundance})
	}
}

var sampleRecords = []plainRecord{
	{"seq1_1", "ACGTACGTAC", 2.0},
	{"seq2_1", "acgtn", 3.5},
	{"seq3_1", "TTTT", 1},
}

func gzipped(t *testing.T, s string) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func zstded(t *testing.T, s string) []byte {
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestReaderFormats(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		compression string
	}{
		{"plain", []byte(sampleFASTA), ""},
		{"gzip", gzipped(t, sampleFASTA), "gzip"},
		{"zstd", zstded(t, sampleFASTA), "zstd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReader(bytes.NewReader(tt.data))
			require.NoError(t, err)
			defer r.Close()

			assert.Equal(t, tt.compression, r.Compression())
			assert.Equal(t, sampleRecords, readAll(t, r))
			assert.Equal(t, 3, r.Records())
		})
	}
}

func TestReaderEmptyInput(t *testing.T) {
	r, err := NewReader(strings.NewReader(""))
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReaderMalformedHeader(t *testing.T) {
	input := ">seq1_1 ka:f:2.0\nACGT\n>seq2_1 no abundance\nACGT\n"
	r, err := NewReader(strings.NewReader(input))
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Next()
	require.NoError(t, err)

	_, err = r.Next()
	require.Error(t, err)
	var headerErr *MalformedHeaderError
	require.True(t, errors.As(err, &headerErr))
	assert.Contains(t, err.Error(), "record 2")
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unitigs.fa.zst")
	require.NoError(t, os.WriteFile(path, zstded(t, sampleFASTA), 0o644))

	var progress bytes.Buffer
	r, err := Open(path, WithProgress(&progress))
	require.NoError(t, err)

	assert.Equal(t, sampleRecords, readAll(t, r))
	require.NoError(t, r.Close())
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.fa"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReaderTruncatedGzipHeader(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte{0x1f, 0x8b, 0x08}))
	var decErr *DecompressionError
	require.True(t, errors.As(err, &decErr))
	assert.Equal(t, "gzip", decErr.Format)
}
