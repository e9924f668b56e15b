package assembly

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/askiada/go-assembly-pipeline/internal/config"
	"github.com/askiada/go-assembly-pipeline/pkg/pipeline"
	"github.com/askiada/go-assembly-pipeline/pkg/pipeline/model"
)

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "unable to open %s", src)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", dst)
	}
	defer func() {
		closeErr := out.Close()
		if err == nil && closeErr != nil {
			err = errors.Wrapf(closeErr, "unable to close %s", dst)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return errors.Wrapf(err, "unable to copy %s to %s", src, dst)
	}

	return errors.Wrapf(out.Sync(), "unable to sync %s", dst)
}

// Finalize copies the final artifacts into the results directory and, when cfg.DeleteTmp is set,
// removes the intermediate directories.
func Finalize(cfg config.Config) error {
	err := os.MkdirAll(cfg.ResultsDir, 0o755)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", cfg.ResultsDir)
	}

	for _, artifact := range cfg.FinalArtifacts() {
		log.Infof("Copying %s to %s", artifact.Source, artifact.Destination)
		err := copyFile(artifact.Source, artifact.Destination)
		if err != nil {
			return err
		}
	}

	if !cfg.DeleteTmp {
		return nil
	}

	for _, dir := range []string{cfg.SpadesDir, cfg.ImprovedDir} {
		log.Infof("Removing %s", dir)
		err := os.RemoveAll(dir)
		if err != nil {
			return errors.Wrapf(err, "unable to remove %s", dir)
		}
	}

	return nil
}

// Publish returns the last stage of a run: it calls Finalize and is complete once the final improved assembly
// is in the results directory.
func Publish(cfg config.Config) PlannedStage {
	output := filepath.Join(cfg.ResultsDir, config.ImprovedFinalName(cfg.SampleID))
	stage := pipeline.NewFileStage(PublishStage, output, func(context.Context) error {
		log.Infof("Copying results to %s", cfg.ResultsDir)
		return Finalize(cfg)
	})

	return PlannedStage{FileStage: stage, Type: model.PublishStageType}
}
