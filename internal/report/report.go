// Package report renders spectrum results.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/twotwotwo/sorts/sortutil"

	"github.com/aria-lang/logan-kmers/internal/kmer"
	"github.com/aria-lang/logan-kmers/internal/spectrum"
)

// TableHeader is the first line of the histogram table.
const TableHeader = "K-mer Frequency\tCount"

// WriteTable writes the histogram as two tab-separated columns.
func WriteTable(w io.Writer, h spectrum.Histogram) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, TableHeader)
	for _, b := range h {
		fmt.Fprintf(bw, "%d\t%d\n", b.Frequency, b.Count)
	}
	return bw.Flush()
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteKmers writes one "kmer<TAB>abundance" line per spectrum entry,
// ordered by code.
func WriteKmers(w io.Writer, counts map[kmer.Code]float64, k int) error {
	codes := make([]uint64, 0, len(counts))
	for code := range counts {
		codes = append(codes, uint64(code))
	}
	sortutil.Uint64s(codes)

	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, k+32)
	for _, code := range codes {
		buf = append(buf[:0], kmer.Decode(kmer.Code(code), k)...)
		buf = append(buf, '\t')
		buf = strconv.AppendFloat(buf, counts[kmer.Code(code)], 'g', -1, 64)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
