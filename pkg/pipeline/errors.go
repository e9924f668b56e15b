package pipeline

import (
	"github.com/pkg/errors"
)

var (
	ErrPipelineMustBeSet = errors.New("p must be set")
	ErrStageMustBeSet    = errors.New("stage must be set")
	ErrDuplicateStage    = errors.New("stage already added")
	ErrStageIncomplete   = errors.New("stage finished without producing its output")
)
