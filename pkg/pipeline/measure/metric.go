package measure

import (
	"sync"
	"time"
)

type DefaultMetric struct {
	mu      *sync.Mutex
	elapsed time.Duration
	skipped bool
}

func (mt *DefaultMetric) SetDuration(elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.elapsed = elapsed
}

func (mt *DefaultMetric) GetDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return round(mt.elapsed)
}

func (mt *DefaultMetric) MarkSkipped() {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.skipped = true
	mt.elapsed = 0
}

func (mt *DefaultMetric) Skipped() bool {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.skipped
}

// round keeps three significant units so durations stay readable in graphs and reports.
func round(d time.Duration) time.Duration {
	switch {
	case d > time.Hour:
		d = d.Round(time.Minute)
	case d > time.Minute:
		d = d.Round(time.Second)
	case d > time.Second:
		d = d.Round(time.Millisecond)
	case d > time.Millisecond:
		d = d.Round(time.Microsecond)
	}

	return d
}

var _ Metric = (*DefaultMetric)(nil)
