// Package pipeline provides a resumable, sequential pipeline of stages.
//
// Each stage wraps one long-running unit of work, typically an external tool, and declares how to tell whether
// its work is already done. The pipeline runs the stages strictly in the order they were added. A stage that reports
// itself complete is skipped, which lets an interrupted run be started again without redoing finished work.
//
// The pipeline stops on the first error. After a stage has run it must report itself complete, otherwise the run
// fails with ErrStageIncomplete: a tool exiting successfully without producing its output is treated as a failure.
// Options see the failed stage through OnStageFailed and are finished whether the run succeeded or not.
//
// Cross-cutting concerns such as logging, timing, drawing the stage graph or writing a run report are provided as
// pipeline options (see the model.PipelineOption interface and the measure, drawer, report and logger packages).
package pipeline
