package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-assembly-pipeline/pkg/pipeline/measure"
	"github.com/askiada/go-assembly-pipeline/pkg/pipeline/model"
)

type pipelineDrawer struct {
	Drawer
	m         measure.Measure
	startTime time.Time
	last      string
	prepared  []string
	statuses  map[string]model.StageStatus
}

func (pd *pipelineDrawer) New() error {
	pd.startTime = time.Now()
	pd.statuses = make(map[string]model.StageStatus)

	err := pd.AddStage(model.StartStage.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add start stage to drawer")
	}
	pd.last = model.StartStage.Name

	return nil
}

func (pd *pipelineDrawer) PrepareStage(parentStage, stage *model.StageInfo) error {
	err := pd.AddStage(stage.Name)
	if err != nil {
		return err
	}
	err = pd.AddLink(parentStage.Name, stage.Name)
	if err != nil {
		return err
	}
	pd.last = stage.Name
	pd.prepared = append(pd.prepared, stage.Name)

	return nil
}

func (pd *pipelineDrawer) OnStageSkipped(stage *model.StageInfo) error {
	pd.statuses[stage.Name] = model.StageSkipped
	return nil
}

func (pd *pipelineDrawer) OnStageDone(stage *model.StageInfo, _ time.Duration) error {
	pd.statuses[stage.Name] = model.StageDone
	return nil
}

func (pd *pipelineDrawer) OnStageFailed(stage *model.StageInfo, _ error) error {
	pd.statuses[stage.Name] = model.StageFailed
	return nil
}

func (pd *pipelineDrawer) Finish() error {
	err := pd.AddStage(model.EndStage.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add end stage to drawer")
	}
	err = pd.AddLink(pd.last, model.EndStage.Name)
	if err != nil {
		return errors.Wrap(err, "unable to link end stage")
	}

	for _, name := range pd.prepared {
		status, ok := pd.statuses[name]
		if !ok {
			status = model.StagePending
		}
		err := pd.SetStatus(name, status)
		if err != nil {
			return errors.Wrap(err, "unable to set stage status")
		}
	}

	if pd.m != nil {
		err = pd.AddMeasure(pd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err = pd.SetTotalTime(model.EndStage.Name, time.Since(pd.startTime).Round(time.Millisecond))
	if err != nil {
		return errors.Wrap(err, "unable to set total time")
	}

	err = pd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw pipeline")
	}

	return nil
}

// PipelineDrawer draws the stage chain when the pipeline finishes. measure may be nil, in which case stages are
// labelled with their status only.
func PipelineDrawer(drawer Drawer, measure measure.Measure) model.PipelineOption {
	return &pipelineDrawer{Drawer: drawer, m: measure}
}
