package pipeline_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/askiada/go-assembly-pipeline/pkg/pipeline/model"
)

// fakeStage is complete once it has run, unless it is told not to produce anything.
type fakeStage struct {
	name      string
	complete  bool
	noOutput  bool
	err       error
	runs      int
	callOrder *[]string
}

func (s *fakeStage) Name() string {
	return s.name
}

func (s *fakeStage) IsComplete() bool {
	return s.complete
}

func (s *fakeStage) Run(context.Context) error {
	s.runs++
	if s.callOrder != nil {
		*s.callOrder = append(*s.callOrder, s.name)
	}
	if s.err != nil {
		return s.err
	}
	if !s.noOutput {
		s.complete = true
	}

	return nil
}

// recordingOption records every hook call as "<hook>:<stage>".
type recordingOption struct {
	calls    []string
	failHook string
}

func (o *recordingOption) record(call string) error {
	o.calls = append(o.calls, call)
	if call == o.failHook {
		return assert.AnError
	}

	return nil
}

func (o *recordingOption) New() error {
	return o.record("new")
}

func (o *recordingOption) PrepareStage(parentStage, stage *model.StageInfo) error {
	return o.record("prepare:" + parentStage.Name + "->" + stage.Name)
}

func (o *recordingOption) OnStageSkipped(stage *model.StageInfo) error {
	return o.record("skipped:" + stage.Name)
}

func (o *recordingOption) OnStageDone(stage *model.StageInfo, _ time.Duration) error {
	return o.record("done:" + stage.Name)
}

func (o *recordingOption) OnStageFailed(stage *model.StageInfo, _ error) error {
	return o.record("failed:" + stage.Name)
}

func (o *recordingOption) Finish() error {
	return o.record("finish")
}
