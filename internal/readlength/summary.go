// Package readlength measures the maximum read length of a FASTQ file.
package readlength

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrUnparsable = errors.New("read length could not be extracted")

// Summary holds the whole-file statistics of a read file.
type Summary struct {
	Sequences   int64
	TotalLength int64
	Average     float64
	Max         int
}

// summaryToken identifies the line of the fastqcheck output holding the whole-file statistics.
const summaryToken = "average"

const maxLineSize = 1024 * 1024

// ParseSummaryLine parses a fastqcheck summary line such as
//
//	1000 sequences, 150000 total length, 150.00 average, 150 max
//
// Every comma separated field must be "<number> <label>". The sequences, average and max fields are required,
// other labels are ignored.
func ParseSummaryLine(line string) (Summary, error) {
	summary := Summary{}
	seen := map[string]bool{}

	for _, field := range strings.Split(strings.TrimSpace(line), ",") {
		parts := strings.Fields(field)
		if len(parts) < 2 {
			return Summary{}, errors.Wrapf(ErrUnparsable, "malformed field %q in %q", field, line)
		}
		value, label := parts[0], strings.Join(parts[1:], " ")

		var err error
		switch label {
		case "sequences":
			summary.Sequences, err = strconv.ParseInt(value, 10, 64)
		case "total length":
			summary.TotalLength, err = strconv.ParseInt(value, 10, 64)
		case "average":
			summary.Average, err = strconv.ParseFloat(value, 64)
		case "max":
			summary.Max, err = strconv.Atoi(value)
		default:
			continue
		}
		if err != nil {
			return Summary{}, errors.Wrapf(ErrUnparsable, "%s is not a number in %q", label, line)
		}
		seen[label] = true
	}

	for _, label := range []string{"sequences", "average", "max"} {
		if !seen[label] {
			return Summary{}, errors.Wrapf(ErrUnparsable, "no %s field in %q", label, line)
		}
	}
	if summary.Max <= 0 {
		return Summary{}, errors.Wrapf(ErrUnparsable, "max read length %d in %q", summary.Max, line)
	}

	return summary, nil
}

// ParseSummary reads fastqcheck output until EOF and parses the first summary line.
func ParseSummary(rdr io.Reader) (Summary, error) {
	scanner := bufio.NewScanner(rdr)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		summary Summary
		found   bool
		lineErr error
	)
	for scanner.Scan() {
		if found || lineErr != nil {
			continue
		}
		line := scanner.Text()
		if !strings.Contains(line, summaryToken) {
			continue
		}
		summary, lineErr = ParseSummaryLine(line)
		found = lineErr == nil
	}
	if err := scanner.Err(); err != nil {
		return Summary{}, errors.Wrap(err, "unable to read summary")
	}
	if lineErr != nil {
		return Summary{}, lineErr
	}
	if !found {
		return Summary{}, errors.Wrap(ErrUnparsable, "no summary line")
	}

	return summary, nil
}
