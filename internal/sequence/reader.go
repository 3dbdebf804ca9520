package sequence

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

func init() {
	// Bases outside the alphabet are skipped per window by the k-mer
	// encoder, so the parser must hand them through untouched.
	seq.ValidateSeq = false
}

// Source produces records one at a time. Next returns io.EOF once the input
// is exhausted. A Source cannot be rewound.
type Source interface {
	Next() (*Record, error)
}

// Reader is a Source over a FASTA stream, transparently decompressing gzip
// and zstd input.
type Reader struct {
	fastx       *fastx.Reader
	compression string
	closers     []func() error
	bar         *pb.ProgressBar
	records     int
}

// NewReader sniffs the compression of r from its magic bytes and prepares
// a FASTA parser over the decoded stream.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, errors.Wrap(err, "reading input")
	}

	reader := &Reader{}
	if len(magic) == 0 {
		return reader, nil
	}

	var stream io.Reader = br
	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, &DecompressionError{Format: "gzip", Err: err}
		}
		reader.compression = "gzip"
		reader.closers = append(reader.closers, gz.Close)
		stream = &decompressingReader{r: gz, format: "gzip"}
	case bytes.HasPrefix(magic, zstdMagic):
		zr, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, &DecompressionError{Format: "zstd", Err: err}
		}
		reader.compression = "zstd"
		reader.closers = append(reader.closers, func() error {
			zr.Close()
			return nil
		})
		stream = &decompressingReader{r: zr, format: "zstd"}
	}

	fr, err := fastx.NewReaderFromIO(seq.DNAredundant, stream, "")
	if err != nil {
		reader.Close()
		return nil, errors.Wrap(err, "creating FASTA reader")
	}
	reader.fastx = fr
	return reader, nil
}

type openOptions struct {
	progress io.Writer
}

// OpenOption configures Open.
type OpenOption func(*openOptions)

// WithProgress draws a byte progress bar over the raw file to w.
func WithProgress(w io.Writer) OpenOption {
	return func(o *openOptions) {
		o.progress = w
	}
}

// Open opens a FASTA file, plain or compressed.
func Open(path string, opts ...OpenOption) (*Reader, error) {
	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening input")
	}

	var in io.Reader = file
	var bar *pb.ProgressBar
	if o.progress != nil {
		info, err := file.Stat()
		if err != nil {
			file.Close()
			return nil, errors.Wrapf(err, "stat %s", path)
		}
		bar = pb.New64(info.Size())
		bar.SetTemplate(pb.Full)
		bar.SetWriter(o.progress)
		bar.Set(pb.Bytes, true)
		bar.Start()
		in = bar.NewProxyReader(file)
	}

	reader, err := NewReader(in)
	if err != nil {
		if bar != nil {
			bar.Finish()
		}
		file.Close()
		return nil, errors.Wrap(err, path)
	}
	reader.bar = bar
	reader.closers = append(reader.closers, file.Close)
	return reader, nil
}

// Next returns the next record, or io.EOF at the end of input. Records
// without a valid abundance fail with *MalformedHeaderError.
func (r *Reader) Next() (*Record, error) {
	if r.fastx == nil {
		return nil, io.EOF
	}

	rec, err := r.fastx.Read()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, errors.Wrapf(err, "reading record %d", r.records+1)
	}

	abundance, err := ParseAbundance(string(rec.Name))
	if err != nil {
		return nil, errors.Wrapf(err, "record %d", r.records+1)
	}
	r.records++

	return &Record{
		ID:        string(rec.ID),
		Bases:     rec.Seq.Seq,
		Abundance: abundance,
	}, nil
}

// Records returns the number of records read so far.
func (r *Reader) Records() int {
	return r.records
}

// Compression returns "gzip", "zstd" or "" for plain input.
func (r *Reader) Compression() string {
	return r.compression
}

// Close releases the decompressor and the underlying file, if any.
func (r *Reader) Close() error {
	if r.bar != nil {
		r.bar.Finish()
		r.bar = nil
	}

	var first error
	for _, c := range r.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	r.closers = nil
	return first
}

// decompressingReader tags stream errors so callers can tell a corrupt
// archive from other I/O failures.
type decompressingReader struct {
	r      io.Reader
	format string
}

func (d *decompressingReader) Read(p []byte) (int, error) {
	n, err := d.r.Read(p)
	if err != nil && err != io.EOF {
		err = &DecompressionError{Format: d.format, Err: err}
	}
	return n, err
}
