package measure

import (
	"sync"
	"time"
)

type DefaultMeasure struct {
	mu     sync.Mutex
	Stages map[string]Metric
	total  time.Duration
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		Stages: make(map[string]Metric),
	}
}

func (m *DefaultMeasure) AddMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	mt := &DefaultMetric{
		mu: &sync.Mutex{},
	}
	m.Stages[name] = mt

	return mt
}

// GetMetric returns the metric of a stage, or nil if the stage is unknown.
func (m *DefaultMeasure) GetMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Stages[name]
}

func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := make(map[string]Metric, len(m.Stages))
	for name, mt := range m.Stages {
		res[name] = mt
	}

	return res
}

func (m *DefaultMeasure) SetTotalDuration(total time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total = total
}

func (m *DefaultMeasure) GetTotalDuration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	return round(m.total)
}

var _ Measure = (*DefaultMeasure)(nil)
