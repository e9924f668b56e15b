// Package assembly wires the external tools into a resumable pipeline and publishes its results.
package assembly

import (
	"context"
	"os"

	logging "github.com/op/go-logging"
	"github.com/pkg/errors"

	"github.com/askiada/go-assembly-pipeline/internal/config"
	"github.com/askiada/go-assembly-pipeline/internal/kmer"
	"github.com/askiada/go-assembly-pipeline/internal/tools"
	"github.com/askiada/go-assembly-pipeline/pkg/pipeline"
	"github.com/askiada/go-assembly-pipeline/pkg/pipeline/model"
)

var log = logging.MustGetLogger("assembly")

var ErrStageInputMissing = errors.New("stage input is missing")

const (
	SpadesStage        = "spades"
	QuastSpadesStage   = "quast_spades"
	ImproveStage       = "improve_assembly"
	QuastImprovedStage = "quast_improved"
	PublishStage       = "publish"
)

// PlannedStage is a stage of the assembly pipeline and its kind.
type PlannedStage struct {
	*pipeline.FileStage
	Type model.StageType
}

func requireInput(path string) error {
	if _, err := os.Stat(path); err != nil {
		log.Errorf("Cannot find %s!", path)
		return errors.Wrap(ErrStageInputMissing, path)
	}

	return nil
}

// Stages returns the four stages of a run, in execution order.
// The k-mer sizes are only selected from readLength when the assembler has to run.
func Stages(cfg config.Config, runner tools.Runner, readLength int) []PlannedStage {
	exes := cfg.Executables

	spades := pipeline.NewFileStage(SpadesStage, cfg.SpadesAssembly(), func(ctx context.Context) error {
		kmers, err := kmer.Select(readLength)
		if err != nil {
			log.Errorf("Read length %d is not supported", readLength)
			return err
		}
		cmd := exes.SpadesCommand(kmers, cfg.ForwardReads, cfg.ReverseReads, cfg.SpadesDir, cfg.SpadesThreads)
		log.Infof("Running Spades: %s", cmd)
		return runner.Run(ctx, cmd)
	})

	quastSpades := pipeline.NewFileStage(QuastSpadesStage, cfg.SpadesQualityReport(), func(ctx context.Context) error {
		if err := requireInput(cfg.SpadesAssembly()); err != nil {
			return err
		}
		cmd := exes.QuastCommand(cfg.SpadesAssembly(), cfg.SpadesDir)
		log.Infof("Running Quast: %s", cmd)
		return runner.Run(ctx, cmd)
	})

	improve := pipeline.NewFileStage(ImproveStage, cfg.ImprovedAssembly(), func(ctx context.Context) error {
		if err := requireInput(cfg.SpadesAssembly()); err != nil {
			return err
		}
		if err := os.MkdirAll(cfg.ImprovedDir, 0o755); err != nil {
			return errors.Wrapf(err, "unable to create %s", cfg.ImprovedDir)
		}
		cmd := exes.ImproveAssemblyCommand(cfg.SpadesAssembly(), cfg.ForwardReads, cfg.ReverseReads, cfg.ImprovedDir)
		log.Infof("Running improve_assembly: %s", cmd)
		return runner.Run(ctx, cmd)
	})

	quastImproved := pipeline.NewFileStage(QuastImprovedStage, cfg.ImprovedQualityReport(), func(ctx context.Context) error {
		if err := requireInput(cfg.ImprovedAssembly()); err != nil {
			return err
		}
		cmd := exes.QuastCommand(cfg.ImprovedAssembly(), cfg.ImprovedDir)
		log.Infof("Running Quast: %s", cmd)
		return runner.Run(ctx, cmd)
	})

	return []PlannedStage{
		{FileStage: spades, Type: model.AssemblerStageType},
		{FileStage: quastSpades, Type: model.QualityStageType},
		{FileStage: improve, Type: model.ImproverStageType},
		{FileStage: quastImproved, Type: model.QualityStageType},
	}
}

// AddStages appends stages to p.
func AddStages(p *pipeline.Pipeline, stages []PlannedStage) error {
	for _, s := range stages {
		_, err := pipeline.AddStage(p, s.FileStage, pipeline.StageType(s.Type))
		if err != nil {
			return errors.Wrapf(err, "unable to add stage %s", s.Name())
		}
	}

	return nil
}
