// Package logger logs the lifecycle of every pipeline stage.
package logger

import (
	"time"

	logging "github.com/op/go-logging"

	"github.com/askiada/go-assembly-pipeline/pkg/pipeline/model"
)

type pipelineLogger struct {
	log   *logging.Logger
	total int
	index map[string]int
	start time.Time

	failed bool
}

func (pl *pipelineLogger) New() error {
	pl.index = make(map[string]int)
	pl.start = time.Now()
	return nil
}

func (pl *pipelineLogger) PrepareStage(_, stage *model.StageInfo) error {
	pl.total++
	pl.index[stage.Name] = pl.total
	pl.log.Debugf("Stage %d %s (%s) registered, output %s", pl.total, stage.Name, stage.Type, stage.Output)
	return nil
}

func (pl *pipelineLogger) OnStageSkipped(stage *model.StageInfo) error {
	pl.log.Infof("[%d/%d] %s: output %s already found, skipping", pl.index[stage.Name], pl.total, stage.Name, stage.Output)
	return nil
}

func (pl *pipelineLogger) OnStageDone(stage *model.StageInfo, duration time.Duration) error {
	pl.log.Infof("[%d/%d] %s: done in %s", pl.index[stage.Name], pl.total, stage.Name, duration.Round(time.Millisecond))
	return nil
}

func (pl *pipelineLogger) OnStageFailed(stage *model.StageInfo, err error) error {
	pl.log.Errorf("[%d/%d] %s: failed: %v", pl.index[stage.Name], pl.total, stage.Name, err)
	pl.failed = true
	return nil
}

func (pl *pipelineLogger) Finish() error {
	elapsed := time.Since(pl.start).Round(time.Millisecond)
	if pl.failed {
		pl.log.Errorf("Pipeline stopped after %s", elapsed)
		return nil
	}
	pl.log.Infof("All %d stages finished in %s", pl.total, elapsed)
	return nil
}

// PipelineLogger logs when stages are registered, skipped, completed and failed.
func PipelineLogger(log *logging.Logger) model.PipelineOption {
	return &pipelineLogger{log: log}
}
