// Package sequence reads logan-format FASTA records.
//
// Logan unitig and contig headers look like
//
//	>[accession]_[counter] ka:f:[abundance]
//
// and every record must carry the abundance: it weights each k-mer of the
// sequence when the spectrum is accumulated.
package sequence

import (
	"math"
	"regexp"
	"strconv"
)

var abundanceRegexp = regexp.MustCompile(`(?:^|\s)ka:f:(\S+)`)

// Record is one FASTA entry with its parsed abundance.
//
// Bases aliases the reader's buffer and is only valid until the next call
// to Next.
type Record struct {
	ID        string
	Bases     []byte
	Abundance float64
}

// Len returns the number of bases.
func (r *Record) Len() int {
	return len(r.Bases)
}

// ParseAbundance extracts the ka:f: value from a header line. The leading
// '>' is optional.
func ParseAbundance(header string) (float64, error) {
	m := abundanceRegexp.FindStringSubmatch(header)
	if m == nil {
		return 0, &MalformedHeaderError{Header: header, Reason: "missing ka:f: abundance"}
	}

	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, &MalformedHeaderError{Header: header, Reason: "abundance " + strconv.Quote(m[1]) + " is not a number"}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, &MalformedHeaderError{Header: header, Reason: "abundance must be a finite non-negative number"}
	}
	return v, nil
}
