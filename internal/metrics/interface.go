package metrics

import (
	"net/http"
	"time"
)

// Collector records monitoring activity
type Collector interface {
	ObserveSeries(snapshot SeriesSnapshot)
	ObserveEvaluation(snapshot EvaluationSnapshot)
	ObserveError(operation, code string)
	Handler() http.Handler
	Enabled() bool
}

// SeriesSnapshot describes one synthesized series
type SeriesSnapshot struct {
	WindowHours     int
	IntervalMinutes int
	Samples         int
	Seeded          bool
	Duration        time.Duration
}

// EvaluationSnapshot describes one tolerance evaluation
type EvaluationSnapshot struct {
	Parameter string
	Status    string
	Deviation float64
}
