package dashboard

import (
	"fmt"
	"math"
	"strconv"

	"codeberg.org/mutker/procmon/internal/errors"
	"codeberg.org/mutker/procmon/internal/parameter"
	"codeberg.org/mutker/procmon/internal/synth"
	"codeberg.org/mutker/procmon/internal/tolerance"
)

func sampleValue(s synth.Sample, id parameter.ID) (float64, error) {
	v, ok := s.Value(id)
	if !ok {
		return 0, errors.New().WithData(ErrUnknownParameter, fmt.Sprintf("series has no %s values", id))
	}
	return v, nil
}

// seriesReadings takes KPI readings from the last two samples. Process
// parameters come from the process series, everything else from quality.
func seriesReadings(catalog *parameter.Catalog, process, quality []synth.Sample) ([]Reading, error) {
	readings := make([]Reading, 0, len(kpiParameters))
	for _, kpi := range kpiParameters {
		cfg, err := catalog.Get(kpi.id)
		if err != nil {
			return nil, err
		}

		series := quality
		if cfg.Kind == parameter.KindProcess {
			series = process
		}

		current, err := sampleValue(series[len(series)-1], kpi.id)
		if err != nil {
			return nil, err
		}

		r := Reading{Parameter: kpi.id, Current: current, Highlight: kpi.highlight}
		if len(series) > 1 {
			p, err := sampleValue(series[len(series)-2], kpi.id)
			if err != nil {
				return nil, err
			}
			r.Previous = &p
		}
		readings = append(readings, r)
	}
	return readings, nil
}

func buildKPIs(catalog *parameter.Catalog, source Source, process, quality []synth.Sample) ([]Card, error) {
	readings := ReferenceKPIs()
	if source == SourceSeries {
		var err error
		if readings, err = seriesReadings(catalog, process, quality); err != nil {
			return nil, err
		}
	}

	return buildCards(catalog, readings)
}

func buildCards(catalog *parameter.Catalog, readings []Reading) ([]Card, error) {
	cards := make([]Card, 0, len(readings))
	for _, r := range readings {
		cfg, err := catalog.Get(r.Parameter)
		if err != nil {
			return nil, err
		}

		res, err := cfg.Evaluate(r.Current)
		if err != nil {
			return nil, err
		}

		card := Card{
			Parameter:       cfg.ID,
			Name:            cfg.Name,
			Unit:            cfg.Unit,
			Current:         r.Current,
			Target:          cfg.Band.Target,
			Previous:        r.Previous,
			Status:          res.Status,
			Deviation:       res.Deviation,
			PercentOfTarget: res.PercentOfTarget,
			Highlight:       r.Highlight,
			Tone:            ToneFor(res.Status),
		}
		if r.Previous != nil {
			card.Trend = trend(r.Current, *r.Previous)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func trend(current, previous float64) Trend {
	switch {
	case current > previous:
		return TrendUp
	case current < previous:
		return TrendDown
	default:
		return TrendFlat
	}
}

func buildGauges(catalog *parameter.Catalog, readings []Reading) ([]Gauge, error) {
	gauges := make([]Gauge, 0, len(readings))
	for _, r := range readings {
		cfg, err := catalog.Get(r.Parameter)
		if err != nil {
			return nil, err
		}

		res, err := cfg.Evaluate(r.Current)
		if err != nil {
			return nil, err
		}

		fill, err := tolerance.GaugeFill(r.Current, cfg.Scale())
		if err != nil {
			return nil, err
		}

		gauges = append(gauges, Gauge{
			Parameter:       cfg.ID,
			Name:            cfg.Name,
			Unit:            cfg.Unit,
			Current:         r.Current,
			Target:          cfg.Band.Target,
			MaxScale:        cfg.Scale(),
			Fill:            fill,
			PercentOfTarget: res.PercentOfTarget,
			Badge:           fmt.Sprintf("%.0f%%", res.PercentOfTarget),
			Status:          res.Status,
			Tone:            ToneFor(res.Status),
		})
	}
	return gauges, nil
}

func shading(cfg parameter.Config) Shading {
	return Shading{
		Parameter: cfg.ID,
		Lower:     cfg.Band.Lower,
		Upper:     cfg.Band.Upper,
		Target:    cfg.Band.Target,
	}
}

// buildChart shades the band of every plotted parameter that is not a
// previous-batch shadow.
func buildChart(catalog *parameter.Catalog, title string, series Series, lines []Line) (Chart, error) {
	chart := Chart{
		Title:      title,
		Resolution: series.Resolution,
		Lines:      append([]Line(nil), lines...),
		Points:     series.Samples,
	}

	for _, line := range lines {
		cfg, err := catalog.Get(line.Parameter)
		if err != nil {
			return Chart{}, err
		}
		if cfg.ShadowOf == "" {
			chart.Bands = append(chart.Bands, shading(cfg))
		}
	}
	return chart, nil
}

// seriesPoints extracts the trace of id from series.
func seriesPoints(series []synth.Sample, id parameter.ID) ([]Point, error) {
	points := make([]Point, 0, len(series))
	for _, s := range series {
		v, err := sampleValue(s, id)
		if err != nil {
			return nil, err
		}
		points = append(points, Point{Time: s.TimeLabel, Value: v})
	}
	return points, nil
}

// buildCriticalPanels tracks pH on the quality series and biomass against
// the biomass target on the reference trace.
func buildCriticalPanels(catalog *parameter.Catalog, quality []synth.Sample) ([]CriticalPanel, error) {
	ph, err := seriesPoints(quality, parameter.PH)
	if err != nil {
		return nil, err
	}

	panels := make([]CriticalPanel, 0, 2)
	for _, p := range []struct {
		id     parameter.ID
		points []Point
	}{
		{parameter.PH, ph},
		{parameter.BiomassTarget, ReferenceBiomassTrace()},
	} {
		panel, err := buildCriticalPanel(catalog, p.id, p.points)
		if err != nil {
			return nil, err
		}
		panels = append(panels, panel)
	}
	return panels, nil
}

func buildCriticalPanel(catalog *parameter.Catalog, id parameter.ID, points []Point) (CriticalPanel, error) {
	cfg, err := catalog.Get(id)
	if err != nil {
		return CriticalPanel{}, err
	}
	if len(points) == 0 {
		return CriticalPanel{}, errors.New().WithData(ErrInvalidArgument, fmt.Sprintf("no %s points", id))
	}

	latest := points[len(points)-1]
	res, err := cfg.Evaluate(latest.Value)
	if err != nil {
		return CriticalPanel{}, err
	}

	return CriticalPanel{
		Parameter:    cfg.ID,
		Name:         cfg.Name,
		Time:         latest.Time,
		Current:      latest.Value,
		Result:       res,
		Tone:         ToneFor(res.Status),
		Tolerance:    Zone{Lower: cfg.Band.Lower, Upper: cfg.Band.Upper},
		CriticalZone: Zone{Lower: cfg.Band.CriticalLower, Upper: cfg.Band.Lower},
		Points:       points,
	}, nil
}

func buildComparisons(catalog *parameter.Catalog, series []synth.Sample) ([]Comparison, error) {
	out := make([]Comparison, 0, len(comparisons))
	for _, c := range comparisons {
		cfg, err := catalog.Get(c.current)
		if err != nil {
			return nil, err
		}

		points := make([]ComparisonPoint, 0, len(series))
		for _, s := range series {
			cur, err := sampleValue(s, c.current)
			if err != nil {
				return nil, err
			}
			prev, err := sampleValue(s, c.previous)
			if err != nil {
				return nil, err
			}
			points = append(points, ComparisonPoint{Time: s.TimeLabel, Current: cur, Previous: prev})
		}

		out = append(out, Comparison{
			Parameter: c.current,
			Previous:  c.previous,
			Title:     c.title,
			Band:      shading(cfg),
			Points:    points,
		})
	}
	return out, nil
}

// formatValue rounds to two decimals and appends the unit.
func formatValue(v float64, unit string) string {
	s := strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
	if unit == "" {
		return s
	}
	return s + " " + unit
}
