package dashboard

import (
	"codeberg.org/mutker/procmon/internal/parameter"
	"codeberg.org/mutker/procmon/internal/sampling"
	"codeberg.org/mutker/procmon/internal/synth"
	"codeberg.org/mutker/procmon/internal/tolerance"
)

// Tone is the display color family of a status.
type Tone string

const (
	ToneGreen  Tone = "green"
	ToneOrange Tone = "orange"
	ToneBlue   Tone = "blue"
	ToneRed    Tone = "red"
	ToneGray   Tone = "gray"
)

// ToneFor maps a status onto its badge tone.
func ToneFor(status tolerance.Status) Tone {
	switch status {
	case tolerance.StatusNormal:
		return ToneGreen
	case tolerance.StatusHigh:
		return ToneOrange
	case tolerance.StatusLow:
		return ToneBlue
	case tolerance.StatusCritical:
		return ToneRed
	default:
		return ToneGray
	}
}

// Trend is the direction of a reading relative to its previous value.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// View is everything the presentation layer renders for one request.
type View struct {
	ID     string  `json:"id"`
	Batch  string  `json:"batch"`
	Day    int     `json:"day"`
	Days   []int   `json:"days"`
	KPIs   []Card  `json:"kpis"`
	Gauges []Gauge `json:"gauges"`
	// CriticalProcess and CriticalQuality are the two parameter lists shown
	// beside the charts. They do not feed alerts.
	CriticalProcess []Card          `json:"critical_process_parameters"`
	CriticalQuality []Card          `json:"critical_quality_attributes"`
	Process         Chart           `json:"process_chart"`
	Quality         Chart           `json:"quality_chart"`
	Critical        []CriticalPanel `json:"critical_deviation"`
	Compare         []Comparison    `json:"batch_comparison"`
	Alerts          []Alert         `json:"alerts"`
	Summary         MonitorSummary  `json:"summary"`
}

// Card is a KPI record. Status is always derived from the evaluator.
type Card struct {
	Parameter       parameter.ID     `json:"parameter"`
	Name            string           `json:"name"`
	Unit            string           `json:"unit"`
	Current         float64          `json:"current"`
	Target          float64          `json:"target"`
	Previous        *float64         `json:"previous,omitempty"`
	Trend           Trend            `json:"trend,omitempty"`
	Status          tolerance.Status `json:"status"`
	Deviation       float64          `json:"deviation"`
	PercentOfTarget float64          `json:"percent_of_target"`
	Highlight       bool             `json:"highlight"`
	Tone            Tone             `json:"tone"`
}

// Gauge is a radial widget: the arc fill is clamped, the badge is not.
type Gauge struct {
	Parameter       parameter.ID     `json:"parameter"`
	Name            string           `json:"name"`
	Unit            string           `json:"unit"`
	Current         float64          `json:"current"`
	Target          float64          `json:"target"`
	MaxScale        float64          `json:"max_scale"`
	Fill            float64          `json:"fill"`
	PercentOfTarget float64          `json:"percent_of_target"`
	Badge           string           `json:"badge"`
	Status          tolerance.Status `json:"status"`
	Tone            Tone             `json:"tone"`
}

// Line is one plotted series of a chart.
type Line struct {
	Parameter parameter.ID `json:"parameter"`
	Label     string       `json:"label"`
	Axis      string       `json:"axis"`
}

// Shading is a tolerance region drawn behind a chart with a dashed target
// reference line.
type Shading struct {
	Parameter parameter.ID `json:"parameter"`
	Lower     float64      `json:"lower"`
	Upper     float64      `json:"upper"`
	Target    float64      `json:"target"`
}

// Chart is a multi-line time chart over one window.
type Chart struct {
	Title      string              `json:"title"`
	Resolution sampling.Resolution `json:"resolution"`
	Lines      []Line              `json:"lines"`
	Bands      []Shading           `json:"bands"`
	Points     []synth.Sample      `json:"points"`
}

// Zone is a closed value range.
type Zone struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Point is one (time, value) pair.
type Point struct {
	Time  string  `json:"time"`
	Value float64 `json:"value"`
}

// CriticalPanel tracks one deviating parameter over time, evaluated on its
// latest point.
type CriticalPanel struct {
	Parameter    parameter.ID     `json:"parameter"`
	Name         string           `json:"name"`
	Time         string           `json:"time"`
	Current      float64          `json:"current"`
	Result       tolerance.Result `json:"result"`
	Tone         Tone             `json:"tone"`
	Tolerance    Zone             `json:"tolerance_zone"`
	CriticalZone Zone             `json:"critical_zone"`
	Points       []Point          `json:"points"`
}

// ComparisonPoint pairs a current-batch and previous-batch value.
type ComparisonPoint struct {
	Time     string  `json:"time"`
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
}

// Comparison is a current vs previous batch chart.
type Comparison struct {
	Parameter parameter.ID      `json:"parameter"`
	Previous  parameter.ID      `json:"previous"`
	Title     string            `json:"title"`
	Band      Shading           `json:"band"`
	Points    []ComparisonPoint `json:"points"`
}

// Severity ranks alerts.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
	SeverityOK       Severity = "ok"
)

// Alert is one entry in the process alerts list.
type Alert struct {
	Parameter parameter.ID `json:"parameter,omitempty"`
	Severity  Severity     `json:"severity"`
	Title     string       `json:"title"`
	Message   string       `json:"message"`
	Tone      Tone         `json:"tone"`
}

// MonitorSummary is the status strip at the bottom of the dashboard.
type MonitorSummary struct {
	SystemStatus        string `json:"system_status"`
	DataStreaming       string `json:"data_streaming"`
	CriticalAlerts      int    `json:"critical_alerts"`
	Alerts              int    `json:"alerts"`
	MonitoredParameters int    `json:"monitored_parameters"`
}
