// Package synth produces synthetic multi-parameter process series on the
// sampling grid of an observation window.
package synth

import (
	"codeberg.org/mutker/procmon/internal/parameter"
	"codeberg.org/mutker/procmon/internal/sampling"
)

// MaxPoints caps the number of steps generated for one window.
const MaxPoints = 4096

// Sample is one instant of a synthesized series.
type Sample struct {
	Index          int                      `json:"index"`
	ElapsedMinutes int                      `json:"elapsed_minutes"`
	TimeLabel      string                   `json:"time"`
	Values         map[parameter.ID]float64 `json:"values"`
}

// Value returns the value of id, and whether the sample carries it.
func (s Sample) Value(id parameter.ID) (float64, bool) {
	v, ok := s.Values[id]
	return v, ok
}

// Synthesizer generates series from a waveform table. It holds no mutable
// state and is safe for concurrent use; randomness comes from the source
// passed to each call.
type Synthesizer struct {
	waveforms []Waveform
}

// New returns a Synthesizer over waveforms.
func New(waveforms []Waveform) *Synthesizer {
	table := make([]Waveform, len(waveforms))
	copy(table, waveforms)
	return &Synthesizer{waveforms: table}
}

// Default returns a Synthesizer over DefaultWaveforms.
func Default() *Synthesizer {
	return New(DefaultWaveforms())
}

// Waveforms returns a copy of the table.
func (s *Synthesizer) Waveforms() []Waveform {
	out := make([]Waveform, len(s.waveforms))
	copy(out, s.waveforms)
	return out
}

// Parameters lists the parameters each sample carries, in table order.
func (s *Synthesizer) Parameters() []parameter.ID {
	ids := make([]parameter.ID, len(s.waveforms))
	for i, w := range s.waveforms {
		ids[i] = w.Parameter
	}
	return ids
}

// Generate returns pointCount+1 time-ascending samples for windowHours.
func (s *Synthesizer) Generate(windowHours int, rng RandomSource) []Sample {
	return s.GenerateOn(sampling.Resolve(windowHours), rng)
}

// GenerateOn returns the series for an already resolved grid.
func (s *Synthesizer) GenerateOn(res sampling.Resolution, rng RandomSource) []Sample {
	points := min(res.PointCount, MaxPoints)

	samples := make([]Sample, 0, points+1)
	for i := 0; i <= points; i++ {
		elapsed := res.ElapsedMinutes(i)
		values := make(map[parameter.ID]float64, len(s.waveforms))
		for _, w := range s.waveforms {
			values[w.Parameter] = w.Shape(i, points) + w.Noise(rng.Float64())
		}

		samples = append(samples, Sample{
			Index:          i,
			ElapsedMinutes: elapsed,
			TimeLabel:      sampling.FormatElapsed(elapsed),
			Values:         values,
		})
	}

	return samples
}

// Latest returns the last sample of a series.
func Latest(series []Sample) (Sample, bool) {
	if len(series) == 0 {
		return Sample{}, false
	}
	return series[len(series)-1], true
}
