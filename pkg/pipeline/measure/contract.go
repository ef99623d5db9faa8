package measure

import "time"

// Measure holds one Metric per stage.
type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric collects the executions of a single stage.
type Metric interface {
	AddDuration(elapsed time.Duration)
	AddResources(input, output int)
	AVGDuration() time.Duration
	TotalDuration() time.Duration
	Runs() int64
	Resources() (input, output int)
}
