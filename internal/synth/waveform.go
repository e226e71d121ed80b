package synth

import (
	"math"

	"codeberg.org/mutker/procmon/internal/parameter"
)

// Waveform describes how one parameter evolves across a window:
//
//	base + amplitude*sin(i*frequency) + (drift + span/pointCount)*i + noise
//
// where noise is uniform in [-halfWidth, +halfWidth].
type Waveform struct {
	Parameter parameter.ID `json:"parameter"`
	Base      float64      `json:"base"`
	Amplitude float64      `json:"amplitude,omitempty"`
	Frequency float64      `json:"frequency,omitempty"`
	// Drift is a fixed per-step slope.
	Drift float64 `json:"drift,omitempty"`
	// Span is the total change over the window, spread over pointCount steps.
	Span      float64 `json:"span,omitempty"`
	HalfWidth float64 `json:"half_width"`
}

// Shape returns the noise-free value at step i of a pointCount-step window.
func (w Waveform) Shape(i, pointCount int) float64 {
	step := float64(i)
	v := w.Base + w.Amplitude*math.Sin(step*w.Frequency) + w.Drift*step
	if pointCount > 0 {
		v += w.Span / float64(pointCount) * step
	}
	return v
}

// Noise maps a uniform draw u in [0, 1) onto [-halfWidth, +halfWidth).
func (w Waveform) Noise(u float64) float64 {
	return (u - 0.5) * 2 * w.HalfWidth
}

// DefaultWaveforms is the bioreactor waveform table. Order matters: noise
// is drawn per sample in table order, so reordering changes seeded output.
func DefaultWaveforms() []Waveform {
	return []Waveform{
		{Parameter: parameter.Temperature, Base: 37.0, Amplitude: 0.3, Frequency: 0.3, HalfWidth: 0.1},
		{Parameter: parameter.Pressure, Base: 2.0, Amplitude: 0.1, Frequency: 0.2, HalfWidth: 0.025},
		{Parameter: parameter.FlowRate, Base: 45.0, Amplitude: 1.0, Frequency: 0.4, HalfWidth: 0.25},
		{Parameter: parameter.PH, Base: 6.7, Span: -0.9, HalfWidth: 0.025},
		{Parameter: parameter.Biomass, Base: 12.0, Drift: 0.02, HalfWidth: 0.15},
		{Parameter: parameter.PrevPH, Base: 6.8, HalfWidth: 0.1},
		{Parameter: parameter.PrevBiomass, Base: 11.0, Drift: 0.015, HalfWidth: 0.1},
		{Parameter: parameter.Lactate, Base: 1.2, Amplitude: 0.3, Frequency: 0.25, HalfWidth: 0.1},
		{Parameter: parameter.Glucose, Base: 8.5, Amplitude: 2.0, Frequency: 0.35, HalfWidth: 0.5},
		{Parameter: parameter.Sodium, Base: 95, Amplitude: 3, Frequency: 0.15, HalfWidth: 1.0},
	}
}
