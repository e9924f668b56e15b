package assembly

import (
	"context"

	"github.com/pkg/errors"

	"github.com/askiada/go-assembly-pipeline/internal/config"
	"github.com/askiada/go-assembly-pipeline/internal/readlength"
	"github.com/askiada/go-assembly-pipeline/internal/tools"
	"github.com/askiada/go-assembly-pipeline/pkg/pipeline"
	"github.com/askiada/go-assembly-pipeline/pkg/pipeline/logger"
	"github.com/askiada/go-assembly-pipeline/pkg/pipeline/model"
)

// Driver runs the whole assembly of one sample.
type Driver struct {
	Config   config.Config
	Runner   tools.Runner
	Prober   readlength.Prober
	LookPath tools.LookPathFunc
	// Options are added after the stage logger.
	Options []model.PipelineOption
}

// NewProber returns the read length prober selected by cfg.ReadLengthProbe.
func NewProber(cfg config.Config, runner tools.Runner) readlength.Prober {
	if cfg.ReadLengthProbe == config.ProbeNative {
		return readlength.NativeProber{}
	}

	return readlength.NewFastqcheckProber(cfg.Executables, runner)
}

// NewDriver creates a driver running the tools as subprocesses.
func NewDriver(cfg config.Config, opts ...model.PipelineOption) *Driver {
	runner := tools.ExecRunner{}

	return &Driver{
		Config:  cfg,
		Runner:  runner,
		Prober:  NewProber(cfg, runner),
		Options: opts,
	}
}

// ReadLength probes both read files and returns the smaller of the two maximum read lengths.
func (d *Driver) ReadLength(ctx context.Context) (int, error) {
	forward, err := d.Prober.Probe(ctx, d.Config.ForwardReads)
	if err != nil {
		return 0, err
	}
	reverse, err := d.Prober.Probe(ctx, d.Config.ReverseReads)
	if err != nil {
		return 0, err
	}

	log.Infof("Max read length: %d (forward), %d (reverse)", forward.Max, reverse.Max)
	if forward.Max != reverse.Max {
		log.Warningf("Forward and reverse reads have a different max length, using %d", min(forward.Max, reverse.Max))
	}

	return min(forward.Max, reverse.Max), nil
}

// Run checks the dependencies, probes the reads, runs the stages not completed yet and publishes the results.
func (d *Driver) Run(ctx context.Context) error {
	err := tools.CheckDependencies(d.Config.Dependencies(), d.LookPath)
	if err != nil {
		return err
	}

	readLength, err := d.ReadLength(ctx)
	if err != nil {
		return err
	}

	opts := append([]model.PipelineOption{logger.PipelineLogger(log)}, d.Options...)
	p, err := pipeline.New(opts...)
	if err != nil {
		return errors.Wrap(err, "unable to create pipeline")
	}

	err = AddStages(p, append(Stages(d.Config, d.Runner, readLength), Publish(d.Config)))
	if err != nil {
		return err
	}

	return p.Run(ctx)
}
