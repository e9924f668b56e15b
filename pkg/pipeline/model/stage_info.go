package model

// StageType describes the kind of external tool a stage wraps.
type StageType string

const (
	GenericStageType   StageType = "stage"
	AssemblerStageType StageType = "assembler"
	QualityStageType   StageType = "quality"
	ImproverStageType  StageType = "improver"
	PublishStageType   StageType = "publish"
)

// StageStatus is the outcome of a stage within one run.
type StageStatus string

const (
	StagePending StageStatus = "pending"
	StageSkipped StageStatus = "skipped"
	StageDone    StageStatus = "done"
	StageFailed  StageStatus = "failed"
)

type StageInfo struct {
	Type   StageType
	Name   string
	Output string
	Status StageStatus
}

var (
	StartStage = &StageInfo{Name: "start"}
	EndStage   = &StageInfo{Name: "end"}
)
