package readlength

import (
	"context"
	"io"

	logging "github.com/op/go-logging"
	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/shenwei356/xopen"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-assembly-pipeline/internal/tools"
)

var log = logging.MustGetLogger("readlength")

// Prober measures a read file.
type Prober interface {
	Probe(ctx context.Context, path string) (Summary, error)
}

// FastqcheckProber decompresses the read file and streams it through fastqcheck.
type FastqcheckProber struct {
	Command tools.Command
	Runner  tools.Runner
}

// NewFastqcheckProber creates a prober running exes.Fastqcheck with runner.
func NewFastqcheckProber(exes tools.Executables, runner tools.Runner) *FastqcheckProber {
	return &FastqcheckProber{
		Command: exes.FastqcheckCommand(),
		Runner:  runner,
	}
}

// Probe feeds the decompressed reads to fastqcheck while its output is parsed as it is produced.
func (p *FastqcheckProber) Probe(ctx context.Context, path string) (Summary, error) {
	log.Infof("Running %s on %s", p.Command.Name, path)

	reader, err := xopen.Ropen(path)
	if err != nil {
		return Summary{}, errors.Wrapf(err, "unable to open %s", path)
	}
	defer reader.Close()

	pr, pw := io.Pipe()
	errGrp, dCtx := errgroup.WithContext(ctx)

	errGrp.Go(func() error {
		cmd := p.Command
		cmd.Stdin = reader
		cmd.Stdout = pw
		err := p.Runner.Run(dCtx, cmd)
		// a nil error closes the pipe with io.EOF
		_ = pw.CloseWithError(err)
		return err
	})

	var summary Summary
	errGrp.Go(func() error {
		s, err := ParseSummary(pr)
		if err != nil {
			_ = pr.CloseWithError(err)
			return err
		}
		summary = s
		return nil
	})

	err = errGrp.Wait()
	if err != nil {
		return Summary{}, errors.Wrapf(err, "unable to probe %s", path)
	}

	return summary, nil
}

// NativeProber reads the FASTQ records directly, without any external tool.
type NativeProber struct{}

// checkEvery is the number of records read between two context checks.
const checkEvery = 10000

func (NativeProber) Probe(ctx context.Context, path string) (Summary, error) {
	log.Infof("Measuring read lengths of %s", path)

	reader, err := fastx.NewReader(seq.DNAredundant, path, fastx.DefaultIDRegexp)
	if err != nil {
		return Summary{}, errors.Wrapf(err, "unable to open %s", path)
	}
	defer reader.Close()

	summary := Summary{}
	for {
		record, err := reader.Read()
		if err == io.EOF { //nolint:errorlint
			break
		}
		if err != nil {
			return Summary{}, errors.Wrapf(err, "unable to read %s", path)
		}

		length := len(record.Seq.Seq)
		summary.Sequences++
		summary.TotalLength += int64(length)
		if length > summary.Max {
			summary.Max = length
		}

		if summary.Sequences%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Summary{}, err
			}
		}
	}

	if summary.Sequences == 0 || summary.Max == 0 {
		return Summary{}, errors.Wrapf(ErrUnparsable, "no reads in %s", path)
	}
	summary.Average = float64(summary.TotalLength) / float64(summary.Sequences)

	return summary, nil
}

var (
	_ Prober = (*FastqcheckProber)(nil)
	_ Prober = NativeProber{}
)
