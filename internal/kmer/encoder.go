package kmer

import "math/bits"

// Code is a packed k-mer. Only the low 2k bits are used.
type Code uint64

// ValidateK checks that k-mers of length k fit in a Code.
func ValidateK(k int) error {
	if k < MinK || k > MaxK {
		return &InvalidKError{K: k}
	}
	return nil
}

// EncodeWindow packs bases left to right into a Code. It fails with
// *InvalidKError when the window length is out of range and with
// *InvalidBaseError on the first base outside {A,C,G,T}.
func EncodeWindow(bases []byte) (Code, error) {
	if err := ValidateK(len(bases)); err != nil {
		return 0, err
	}

	var code Code
	for i, b := range bases {
		v := base2code[b]
		if v == invalidCode {
			return 0, &InvalidBaseError{Position: i, Found: b}
		}
		code = code<<2 | Code(v)
	}
	return code, nil
}

// ReverseComplement returns the code of the reverse complement of a k-mer.
// The 2-bit fields are complemented and their order reversed in place.
func ReverseComplement(code Code, k int) Code {
	x := ^uint64(code)
	x = (x>>2)&0x3333333333333333 | (x&0x3333333333333333)<<2
	x = (x>>4)&0x0F0F0F0F0F0F0F0F | (x&0x0F0F0F0F0F0F0F0F)<<4
	x = bits.ReverseBytes64(x)
	return Code(x >> (64 - 2*uint(k)))
}

// Canonical returns the smaller of code and its reverse complement when
// enabled, and code unchanged otherwise.
func Canonical(code Code, k int, enabled bool) Code {
	if !enabled {
		return code
	}
	if rc := ReverseComplement(code, k); rc < code {
		return rc
	}
	return code
}

// Decode unpacks a k-mer into uppercase bases.
func Decode(code Code, k int) []byte {
	out := make([]byte, k)
	for i := k - 1; i >= 0; i-- {
		out[i] = DecodeBase(uint64(code))
		code >>= 2
	}
	return out
}

// String returns the bases of a k-mer.
func String(code Code, k int) string {
	return string(Decode(code, k))
}

// Encoder turns sequences into (optionally canonical) k-mer codes for a
// fixed k.
type Encoder struct {
	k         int
	canonical bool
	mask      Code
	rcShift   uint
}

// NewEncoder creates an encoder for k-mers of length k.
func NewEncoder(k int, canonical bool) (*Encoder, error) {
	if err := ValidateK(k); err != nil {
		return nil, err
	}

	return &Encoder{
		k:         k,
		canonical: canonical,
		mask:      Code(^uint64(0) >> (64 - 2*uint(k))),
		rcShift:   2 * uint(k-1),
	}, nil
}

// K returns the k-mer length.
func (e *Encoder) K() int {
	return e.k
}

// IsCanonical reports whether codes are canonicalized.
func (e *Encoder) IsCanonical() bool {
	return e.canonical
}

// Encode packs a single window of exactly k bases.
func (e *Encoder) Encode(window []byte) (Code, error) {
	if len(window) != e.k {
		return 0, &InvalidKError{K: len(window)}
	}
	code, err := EncodeWindow(window)
	if err != nil {
		return 0, err
	}
	return Canonical(code, e.k, e.canonical), nil
}

// Scan calls emit for every window of k consecutive valid bases in seq,
// left to right. Windows containing an invalid base are skipped; scanning
// resumes after it. It returns the number of windows emitted and skipped.
//
// The forward and reverse complement codes are rolled one base at a time,
// which yields the same codes as calling Encode on every window.
func (e *Encoder) Scan(seq []byte, emit func(Code)) (emitted, skipped int) {
	if len(seq) < e.k {
		return 0, 0
	}

	var fwd, rc Code
	run := 0
	for _, b := range seq {
		v := base2code[b]
		if v == invalidCode {
			run = 0
			continue
		}
		fwd = (fwd<<2 | Code(v)) & e.mask
		rc = rc>>2 | Code(v^3)<<e.rcShift
		if run++; run < e.k {
			continue
		}

		code := fwd
		if e.canonical && rc < fwd {
			code = rc
		}
		emit(code)
		emitted++
	}
	return emitted, len(seq) - e.k + 1 - emitted
}
