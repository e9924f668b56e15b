package pipeline

import "github.com/askiada/go-assembly-pipeline/pkg/pipeline/model"

type StageOption func(s *model.StageInfo)

// StageType sets the kind of the stage, used by options to group or colour stages.
func StageType(stageType model.StageType) StageOption {
	return func(s *model.StageInfo) {
		s.Type = stageType
	}
}

// StageOutput records the artifact path of the stage.
// Stages created with NewFileStage get it automatically.
func StageOutput(output string) StageOption {
	return func(s *model.StageInfo) {
		s.Output = output
	}
}
