// Package kmer packs nucleotide windows into fixed-width integers.
//
// Bases are stored as 2-bit codes (A=0, C=1, G=2, T=3) with the earliest
// base in the most significant occupied bits, so a k-mer of up to 32 bases
// fits in a single uint64 and integer order matches lexicographic order.
package kmer

const (
	// MinK is the smallest supported k-mer length.
	MinK = 1
	// MaxK is the largest k-mer length that fits in a Code.
	MaxK = 32

	invalidCode = 4
)

var (
	base2code [256]uint8
	code2base = [4]byte{'A', 'C', 'G', 'T'}
)

func init() {
	for i := range base2code {
		base2code[i] = invalidCode
	}
	base2code['A'], base2code['a'] = 0, 0
	base2code['C'], base2code['c'] = 1, 1
	base2code['G'], base2code['g'] = 2, 2
	base2code['T'], base2code['t'] = 3, 3
}

// EncodeBase returns the 2-bit code of a base. Lowercase bases are folded
// to uppercase; anything else is an *InvalidBaseError.
func EncodeBase(b byte) (uint64, error) {
	v := base2code[b]
	if v == invalidCode {
		return 0, &InvalidBaseError{Found: b}
	}
	return uint64(v), nil
}

// IsValidBase checks if a character can be encoded.
func IsValidBase(b byte) bool {
	return base2code[b] != invalidCode
}

// DecodeBase returns the uppercase base for the low two bits of code.
func DecodeBase(code uint64) byte {
	return code2base[code&3]
}

// ComplementCode maps A<->T and C<->G on 2-bit codes.
func ComplementCode(code uint64) uint64 {
	return (code ^ 3) & 3
}
