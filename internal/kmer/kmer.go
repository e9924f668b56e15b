// Package kmer selects the assembler k-mer sizes from the read length.
package kmer

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrUnsupportedReadLength = errors.New("read length not supported")

const (
	MinReadLength = 30
	MaxReadLength = 301
)

// Range maps read lengths in (Lower, Upper] to a list of k-mer sizes.
type Range struct {
	Lower int
	Upper int
	Kmers []int
}

// Contains reports whether readLength falls in the range.
func (r Range) Contains(readLength int) bool {
	return r.Lower < readLength && readLength <= r.Upper
}

// String returns the k-mer sizes the way the assembler expects them, e.g. "21,33,55".
func (r Range) String() string {
	parts := make([]string, len(r.Kmers))
	for i, k := range r.Kmers {
		parts[i] = strconv.Itoa(k)
	}

	return strings.Join(parts, ",")
}

// table covers (MinReadLength, MaxReadLength] without gaps: each range starts where the previous one stops.
var table = [...]Range{
	{Lower: MinReadLength, Upper: 39, Kmers: []int{15, 21, 27}},
	{Lower: 39, Upper: 69, Kmers: []int{15, 21, 33}},
	{Lower: 69, Upper: 124, Kmers: []int{21, 33, 55}},
	{Lower: 124, Upper: 249, Kmers: []int{21, 33, 55, 77}},
	{Lower: 249, Upper: MaxReadLength, Kmers: []int{21, 33, 55, 77, 99, 127}},
}

// Table returns a copy of the lookup table, ordered by read length.
func Table() []Range {
	res := make([]Range, len(table))
	for i, r := range table {
		res[i] = Range{
			Lower: r.Lower,
			Upper: r.Upper,
			Kmers: append([]int(nil), r.Kmers...),
		}
	}

	return res
}

// Select returns the k-mer list for readLength.
// It fails with ErrUnsupportedReadLength when readLength <= 30 or readLength > 301.
func Select(readLength int) (string, error) {
	for _, r := range table {
		if r.Contains(readLength) {
			return r.String(), nil
		}
	}

	return "", errors.Wrapf(ErrUnsupportedReadLength, "%d is outside (%d, %d]", readLength, MinReadLength, MaxReadLength)
}
