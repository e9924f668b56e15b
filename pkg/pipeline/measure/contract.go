package measure

import "time"

type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
	SetTotalDuration(total time.Duration)
	GetTotalDuration() time.Duration
}

type Metric interface {
	SetDuration(elapsed time.Duration)
	GetDuration() time.Duration
	MarkSkipped()
	Skipped() bool
}
