// Package dashboard assembles display-ready records from synthesized series
// and the parameter catalog. It does no synthesis or classification of its
// own: every status comes from the tolerance evaluator.
package dashboard

import (
	"fmt"

	"codeberg.org/mutker/procmon/internal/errors"
	"codeberg.org/mutker/procmon/internal/parameter"
	"codeberg.org/mutker/procmon/internal/sampling"
	"codeberg.org/mutker/procmon/internal/synth"
)

// Source selects where KPI cards take their readings from.
type Source string

const (
	// SourceReference shows the fixed reference snapshot.
	SourceReference Source = "reference"
	// SourceSeries reads the latest two samples of the series.
	SourceSeries Source = "series"
)

const (
	DefaultBatch     = "BATCH-2024-315"
	DefaultDay       = 8
	DefaultBatchDays = 21
	DefaultWindow    = 12
)

// Request describes one dashboard render. Zero fields take defaults.
type Request struct {
	Batch         string `json:"batch"`
	Day           int    `json:"day"`
	BatchDays     int    `json:"batch_days"`
	ProcessWindow int    `json:"process_window"`
	QualityWindow int    `json:"quality_window"`
	Seed          *int64 `json:"seed,omitempty"`
	Source        Source `json:"source"`
}

// WithDefaults fills unset fields.
func (r Request) WithDefaults() Request {
	if r.Batch == "" {
		r.Batch = DefaultBatch
	}
	if r.BatchDays == 0 {
		r.BatchDays = DefaultBatchDays
	}
	if r.Day == 0 {
		r.Day = min(DefaultDay, r.BatchDays)
	}
	if r.ProcessWindow == 0 {
		r.ProcessWindow = DefaultWindow
	}
	if r.QualityWindow == 0 {
		r.QualityWindow = DefaultWindow
	}
	if r.Source == "" {
		r.Source = SourceReference
	}
	return r
}

// Validate checks a request that has had defaults applied. Windows must lie
// in the dashboard slider range.
func (r Request) Validate() error {
	errFactory := errors.New()

	for _, w := range []struct {
		name  string
		hours int
	}{
		{"process_window", r.ProcessWindow},
		{"quality_window", r.QualityWindow},
	} {
		if w.hours < sampling.DashboardMinHours || w.hours > sampling.DashboardMaxHours {
			return errFactory.WithData(ErrInvalidWindow, fmt.Sprintf("%s %d hours (supported %d-%d)",
				w.name, w.hours, sampling.DashboardMinHours, sampling.DashboardMaxHours))
		}
	}

	switch {
	case r.BatchDays < 1:
		return errFactory.WithData(ErrInvalidArgument, fmt.Sprintf("batch_days %d", r.BatchDays))
	case r.Day < 1 || r.Day > r.BatchDays:
		return errFactory.WithData(ErrInvalidArgument, fmt.Sprintf("day %d outside 1-%d", r.Day, r.BatchDays))
	case r.Source != SourceReference && r.Source != SourceSeries:
		return errFactory.WithData(ErrInvalidArgument, fmt.Sprintf("unknown source %q", r.Source))
	}

	return nil
}

// Series is a synthesized series together with the grid it was sampled on.
type Series struct {
	Resolution sampling.Resolution
	Samples    []synth.Sample
}

// Build renders the dashboard for req from the process and quality series.
// The returned view has no ID; callers assign one.
func Build(catalog *parameter.Catalog, req Request, process, quality Series) (*View, error) {
	req = req.WithDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if len(process.Samples) == 0 || len(quality.Samples) == 0 {
		return nil, errors.New().WithData(ErrInvalidArgument, "empty series")
	}

	kpis, err := buildKPIs(catalog, req.Source, process.Samples, quality.Samples)
	if err != nil {
		return nil, err
	}

	gauges, err := buildGauges(catalog, ReferenceGauges())
	if err != nil {
		return nil, err
	}

	criticalProcess, err := buildCards(catalog, ReferenceCriticalProcess())
	if err != nil {
		return nil, err
	}

	criticalQuality, err := buildCards(catalog, ReferenceCriticalQuality())
	if err != nil {
		return nil, err
	}

	processChart, err := buildChart(catalog, "Process Parameters", process, processLines)
	if err != nil {
		return nil, err
	}

	qualityChart, err := buildChart(catalog, "Quality Parameters", quality, qualityLines)
	if err != nil {
		return nil, err
	}

	critical, err := buildCriticalPanels(catalog, quality.Samples)
	if err != nil {
		return nil, err
	}

	compare, err := buildComparisons(catalog, quality.Samples)
	if err != nil {
		return nil, err
	}

	alerts, err := buildAlerts(catalog, kpis)
	if err != nil {
		return nil, err
	}

	days := make([]int, req.BatchDays)
	for i := range days {
		days[i] = i + 1
	}

	return &View{
		Batch:           req.Batch,
		Day:             req.Day,
		Days:            days,
		KPIs:            kpis,
		Gauges:          gauges,
		CriticalProcess: criticalProcess,
		CriticalQuality: criticalQuality,
		Process:         processChart,
		Quality:         qualityChart,
		Critical:        critical,
		Compare:         compare,
		Alerts:          alerts,
		Summary:         summarize(kpis, alerts),
	}, nil
}

func summarize(kpis []Card, alerts []Alert) MonitorSummary {
	s := MonitorSummary{
		SystemStatus:        "online",
		DataStreaming:       "active",
		MonitoredParameters: len(kpis),
	}
	for _, a := range alerts {
		switch a.Severity {
		case SeverityCritical:
			s.CriticalAlerts++
			s.Alerts++
		case SeverityWarning, SeverityInfo:
			s.Alerts++
		}
	}
	return s
}
