package model

import "time"

// PipelineOption defines the interface for pipeline options.
type PipelineOption interface {
	// New initialises the pipeline option.
	New() error

	// PrepareStage runs when a stage is added to the pipeline.
	// parentStage is the previous stage, or StartStage for the first one.
	PrepareStage(parentStage, stage *StageInfo) error
	// OnStageSkipped runs when a stage is not executed because its output already exists.
	OnStageSkipped(stage *StageInfo) error
	// OnStageDone runs after a stage has been executed successfully.
	OnStageDone(stage *StageInfo, duration time.Duration) error
	// OnStageFailed runs when a stage returns an error or does not complete. Finish still runs afterwards.
	OnStageFailed(stage *StageInfo, err error) error

	// Finish runs after the pipeline is finished, whether it succeeded or not.
	Finish() error
}
