package sequence

import "fmt"

// SequenceError is the base error type for record ingestion.
type SequenceError interface {
	error
	IsSequenceError()
}

// MalformedHeaderError is returned when a FASTA header does not carry a
// usable ka:f: abundance.
type MalformedHeaderError struct {
	Header string
	Reason string
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("malformed header %q: %s", e.Header, e.Reason)
}

func (e *MalformedHeaderError) IsSequenceError() {}

// DecompressionError is returned when a compressed input cannot be decoded.
type DecompressionError struct {
	Format string
	Err    error
}

func (e *DecompressionError) Error() string {
	return fmt.Sprintf("%s decompression failed: %v", e.Format, e.Err)
}

func (e *DecompressionError) Unwrap() error {
	return e.Err
}

func (e *DecompressionError) IsSequenceError() {}
