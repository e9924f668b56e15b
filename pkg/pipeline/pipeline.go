package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-assembly-pipeline/pkg/pipeline/model"
)

type stageEntry struct {
	stage   Stage
	details *model.StageInfo
}

// Pipeline is a sequence of stages.
type Pipeline struct {
	stages []*stageEntry
	names  map[string]struct{}
	opts   []model.PipelineOption
}

// New creates a new pipeline.
func New(opts ...model.PipelineOption) (*Pipeline, error) {
	pipe := &Pipeline{
		names: make(map[string]struct{}),
		opts:  opts,
	}

	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return pipe, nil
}

func (p *Pipeline) lastStage() *model.StageInfo {
	if len(p.stages) == 0 {
		return model.StartStage
	}

	return p.stages[len(p.stages)-1].details
}

// AddStage appends a stage to the pipeline. Stages run in the order they are added.
func AddStage(p *Pipeline, stage Stage, opts ...StageOption) (*model.StageInfo, error) {
	if p == nil {
		return nil, ErrPipelineMustBeSet
	}
	if stage == nil {
		return nil, ErrStageMustBeSet
	}
	if _, ok := p.names[stage.Name()]; ok {
		return nil, errors.Wrap(ErrDuplicateStage, stage.Name())
	}

	details := &model.StageInfo{
		Type:   model.GenericStageType,
		Name:   stage.Name(),
		Status: model.StagePending,
	}
	if fs, ok := stage.(*FileStage); ok {
		details.Output = fs.Output()
	}
	for _, opt := range opts {
		opt(details)
	}

	parent := p.lastStage()
	for _, opt := range p.opts {
		err := opt.PrepareStage(parent, details)
		if err != nil {
			return nil, errors.Wrap(err, "unable to run prepare stage function")
		}
	}

	p.names[details.Name] = struct{}{}
	p.stages = append(p.stages, &stageEntry{stage: stage, details: details})

	return details, nil
}

// Stages returns the description of every stage, in execution order.
func (p *Pipeline) Stages() []*model.StageInfo {
	res := make([]*model.StageInfo, len(p.stages))
	for i, entry := range p.stages {
		res[i] = entry.details
	}

	return res
}

// Run executes the stages one after the other and stops on the first error.
// Options are finished in both cases.
func (p *Pipeline) Run(ctx context.Context) error {
	for _, entry := range p.stages {
		err := p.runStage(ctx, entry)
		if err != nil {
			return p.failRun(entry, err)
		}
	}

	return p.finishRun()
}

func (p *Pipeline) failRun(entry *stageEntry, stageErr error) error {
	entry.details.Status = model.StageFailed
	stageErr = errors.Wrap(stageErr, entry.details.Name)

	for _, opt := range p.opts {
		err := opt.OnStageFailed(entry.details, stageErr)
		if err != nil {
			stageErr = errors.Wrapf(stageErr, "unable to run stage failed function: %v", err)
			break
		}
	}

	// The stage error stays the cause so callers can still match it.
	err := p.finishRun()
	if err != nil {
		return errors.Wrapf(stageErr, "%v", err)
	}

	return stageErr
}

func (p *Pipeline) runStage(ctx context.Context, entry *stageEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if entry.stage.IsComplete() {
		entry.details.Status = model.StageSkipped
		for _, opt := range p.opts {
			err := opt.OnStageSkipped(entry.details)
			if err != nil {
				return errors.Wrap(err, "unable to run stage skipped function")
			}
		}

		return nil
	}

	start := time.Now()
	err := entry.stage.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if !entry.stage.IsComplete() {
		return ErrStageIncomplete
	}

	entry.details.Status = model.StageDone
	for _, opt := range p.opts {
		err := opt.OnStageDone(entry.details, elapsed)
		if err != nil {
			return errors.Wrap(err, "unable to run stage done function")
		}
	}

	return nil
}

func (p *Pipeline) finishRun() error {
	for _, opt := range p.opts {
		err := opt.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	return nil
}
