package dashboard

import "codeberg.org/mutker/procmon/internal/parameter"

// Reading is one displayed value of a parameter. Previous is the value of
// the prior reading, when there is one.
type Reading struct {
	Parameter parameter.ID
	Current   float64
	Previous  *float64
	Highlight bool
}

func prev(v float64) *float64 { return &v }

// ReferenceKPIs is the fixed KPI snapshot shown when the dashboard is not
// driven from the synthesized series.
func ReferenceKPIs() []Reading {
	return []Reading{
		{Parameter: parameter.Temperature, Current: 37.2, Previous: prev(37.1)},
		{Parameter: parameter.Pressure, Current: 2.1, Previous: prev(1.9)},
		{Parameter: parameter.FlowRate, Current: 45.8, Previous: prev(44.5)},
		{Parameter: parameter.PH, Current: 5.8, Previous: prev(6.8), Highlight: true},
		{Parameter: parameter.Biomass, Current: 12.4, Previous: prev(11.2), Highlight: true},
	}
}

// ReferenceGauges is the fixed gauge snapshot.
func ReferenceGauges() []Reading {
	return []Reading{
		{Parameter: parameter.BiomassTarget, Current: 12.4},
		{Parameter: parameter.VVD, Current: 1.58},
		{Parameter: parameter.TShift, Current: 35.2},
	}
}

// ReferenceCriticalProcess is the fixed snapshot of the critical process
// parameter list.
func ReferenceCriticalProcess() []Reading {
	return []Reading{
		{Parameter: parameter.Lactate, Current: 2.4},
		{Parameter: parameter.Glucose, Current: 15.8},
		{Parameter: parameter.Sodium, Current: 140},
	}
}

// ReferenceCriticalQuality is the fixed snapshot of the critical quality
// attribute list.
func ReferenceCriticalQuality() []Reading {
	return []Reading{
		{Parameter: parameter.Temperature, Current: 37.2},
		{Parameter: parameter.PH, Current: 5.8, Highlight: true},
		{Parameter: parameter.CFHMW, Current: 4.5},
	}
}

// ReferenceBiomassTrace is the fixed biomass trace plotted against the
// biomass target.
func ReferenceBiomassTrace() []Point {
	return []Point{
		{Time: "00:00", Value: 12.0},
		{Time: "02:00", Value: 12.2},
		{Time: "04:00", Value: 12.4},
		{Time: "06:00", Value: 12.6},
		{Time: "08:00", Value: 12.3},
		{Time: "10:00", Value: 12.0},
		{Time: "12:00", Value: 11.8},
	}
}

// kpiParameters are the parameters shown as KPI cards, in display order.
var kpiParameters = []struct {
	id        parameter.ID
	highlight bool
}{
	{parameter.Temperature, false},
	{parameter.Pressure, false},
	{parameter.FlowRate, false},
	{parameter.PH, true},
	{parameter.Biomass, true},
}

var processLines = []Line{
	{Parameter: parameter.Lactate, Label: "Lactate (g/L)", Axis: "left"},
	{Parameter: parameter.Glucose, Label: "Glucose (g/L)", Axis: "left"},
	{Parameter: parameter.Sodium, Label: "Sodium (mmol/L)", Axis: "right"},
}

var qualityLines = []Line{
	{Parameter: parameter.PH, Label: "pH Level (Current)", Axis: "left"},
	{Parameter: parameter.Biomass, Label: "Biomass (g/L)", Axis: "right"},
	{Parameter: parameter.PrevPH, Label: "pH Level (Prev Batch)", Axis: "left"},
	{Parameter: parameter.PrevBiomass, Label: "Biomass (Prev Batch)", Axis: "right"},
}

var comparisons = []struct {
	current, previous parameter.ID
	title             string
}{
	{parameter.PH, parameter.PrevPH, "pH Level: Current vs Previous Batch"},
	{parameter.Biomass, parameter.PrevBiomass, "Biomass: Current vs Previous Batch"},
}
