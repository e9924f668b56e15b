package measure

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-assembly-pipeline/pkg/pipeline/model"
)

var ErrUnknownStage = errors.New("stage has no metric")

type pipelineMeasure struct {
	Measure
	startTime time.Time
}

func (pm *pipelineMeasure) New() error {
	pm.startTime = time.Now()
	return nil
}

func (pm *pipelineMeasure) PrepareStage(_, stage *model.StageInfo) error {
	pm.AddMetric(stage.Name)
	return nil
}

func (pm *pipelineMeasure) metric(stage *model.StageInfo) (Metric, error) {
	mt := pm.GetMetric(stage.Name)
	if mt == nil {
		return nil, errors.Wrap(ErrUnknownStage, stage.Name)
	}

	return mt, nil
}

func (pm *pipelineMeasure) OnStageSkipped(stage *model.StageInfo) error {
	mt, err := pm.metric(stage)
	if err != nil {
		return err
	}
	mt.MarkSkipped()

	return nil
}

func (pm *pipelineMeasure) OnStageDone(stage *model.StageInfo, duration time.Duration) error {
	mt, err := pm.metric(stage)
	if err != nil {
		return err
	}
	mt.SetDuration(duration)

	return nil
}

func (pm *pipelineMeasure) OnStageFailed(*model.StageInfo, error) error {
	return nil
}

func (pm *pipelineMeasure) Finish() error {
	pm.SetTotalDuration(time.Since(pm.startTime))
	return nil
}

// PipelineMeasure records the duration of every executed stage, and which stages were skipped, into measure.
func PipelineMeasure(measure Measure) model.PipelineOption {
	return &pipelineMeasure{Measure: measure}
}
