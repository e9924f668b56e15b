package pipeline

import (
	"context"
	"os"
)

// Stage is one resumable unit of work.
type Stage interface {
	// Name identifies the stage in logs, graphs and reports. It must be unique within a pipeline.
	Name() string
	// IsComplete reports whether the work of the stage is already done.
	IsComplete() bool
	// Run does the work. It blocks until the work is finished.
	Run(ctx context.Context) error
}

// FileStage is a Stage whose completion marker is the existence of a single output path.
// No checksum or content validation is performed.
type FileStage struct {
	name   string
	output string
	runFn  func(ctx context.Context) error
}

// NewFileStage creates a stage that is complete as soon as output exists.
func NewFileStage(name, output string, runFn func(ctx context.Context) error) *FileStage {
	return &FileStage{
		name:   name,
		output: output,
		runFn:  runFn,
	}
}

func (s *FileStage) Name() string {
	return s.name
}

// Output returns the path used as completion marker.
func (s *FileStage) Output() string {
	return s.output
}

func (s *FileStage) IsComplete() bool {
	_, err := os.Stat(s.output)
	return err == nil
}

func (s *FileStage) Run(ctx context.Context) error {
	if s.runFn == nil {
		return nil
	}
	return s.runFn(ctx)
}

var _ Stage = (*FileStage)(nil)
