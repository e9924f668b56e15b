package report

import (
	"time"

	"github.com/askiada/go-assembly-pipeline/pkg/pipeline/model"
)

type pipelineReport struct {
	path      string
	rep       *Report
	stages    []*model.StageInfo
	durations map[string]time.Duration
	errs      map[string]string
}

func (pr *pipelineReport) New() error {
	pr.rep.Started = time.Now().UTC()
	pr.durations = make(map[string]time.Duration)
	pr.errs = make(map[string]string)
	return nil
}

func (pr *pipelineReport) PrepareStage(_, stage *model.StageInfo) error {
	pr.stages = append(pr.stages, stage)
	return nil
}

func (pr *pipelineReport) OnStageSkipped(*model.StageInfo) error {
	return nil
}

func (pr *pipelineReport) OnStageDone(stage *model.StageInfo, duration time.Duration) error {
	pr.durations[stage.Name] = duration
	return nil
}

func (pr *pipelineReport) OnStageFailed(stage *model.StageInfo, err error) error {
	pr.errs[stage.Name] = err.Error()
	return nil
}

func (pr *pipelineReport) Finish() error {
	pr.rep.Finished = time.Now().UTC()
	pr.rep.Status = string(model.StageDone)
	pr.rep.Stages = make([]StageReport, 0, len(pr.stages))
	for _, stage := range pr.stages {
		sr := StageReport{
			Name:   stage.Name,
			Type:   string(stage.Type),
			Output: stage.Output,
			Status: string(stage.Status),
		}
		if d, ok := pr.durations[stage.Name]; ok {
			sr.Duration = d.Round(time.Millisecond).String()
		}
		if msg, ok := pr.errs[stage.Name]; ok {
			sr.Error = msg
			pr.rep.Status = string(model.StageFailed)
		}
		pr.rep.Stages = append(pr.rep.Stages, sr)
	}

	return Write(pr.path, pr.rep)
}

// PipelineReport writes a YAML report to path once the pipeline has finished, including after a failure.
// The stage status is read from the StageInfo values the pipeline updates while running.
func PipelineReport(path, runID string, metadata map[string]string) model.PipelineOption {
	return &pipelineReport{
		path: path,
		rep: &Report{
			RunID:    runID,
			Metadata: metadata,
		},
	}
}
