// Package monitor is the request-scoped entry point to the core: it resolves
// sampling grids, generates series, evaluates readings and renders the
// dashboard, recording metrics and logging along the way.
package monitor

import (
	"time"

	"codeberg.org/mutker/procmon/internal/dashboard"
	"codeberg.org/mutker/procmon/internal/errors"
	"codeberg.org/mutker/procmon/internal/logger"
	"codeberg.org/mutker/procmon/internal/metrics"
	"codeberg.org/mutker/procmon/internal/parameter"
	"codeberg.org/mutker/procmon/internal/sampling"
	"codeberg.org/mutker/procmon/internal/synth"
	"codeberg.org/mutker/procmon/internal/tolerance"
	"github.com/google/uuid"
)

// AdHocParameter labels evaluations of caller-supplied bands that have no
// catalog entry.
const AdHocParameter = "adhoc"

// SourceFactory returns a fresh random source for one request. seed is nil
// for unseeded requests.
type SourceFactory func(seed *int64) synth.RandomSource

// DefaultSources seeds unseeded requests from the clock.
func DefaultSources(seed *int64) synth.RandomSource {
	if seed != nil {
		return synth.NewSource(*seed)
	}
	return synth.NewSource(time.Now().UnixNano())
}

type Service struct {
	catalog     *parameter.Catalog
	synthesizer *synth.Synthesizer
	collector   metrics.Collector
	log         logger.Logger
	sources     SourceFactory
	defaults    dashboard.Request
}

// Option configures a Service
type Option func(*Service)

// WithSynthesizer replaces the default waveform table
func WithSynthesizer(s *synth.Synthesizer) Option {
	return func(svc *Service) { svc.synthesizer = s }
}

// WithCollector records metrics on c
func WithCollector(c metrics.Collector) Option {
	return func(svc *Service) { svc.collector = c }
}

// WithLogger sets the service logger
func WithLogger(l logger.Logger) Option {
	return func(svc *Service) { svc.log = l }
}

// WithSources replaces the random source factory
func WithSources(f SourceFactory) Option {
	return func(svc *Service) { svc.sources = f }
}

// WithDashboardDefaults sets the values used for unset dashboard request
// fields
func WithDashboardDefaults(req dashboard.Request) Option {
	return func(svc *Service) { svc.defaults = req }
}

func New(catalog *parameter.Catalog, opts ...Option) *Service {
	svc := &Service{
		catalog:     catalog,
		synthesizer: synth.Default(),
		collector:   metrics.Noop(),
		log:         logger.Default(),
		sources:     DefaultSources,
		defaults:    dashboard.Request{}.WithDefaults(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *Service) Catalog() *parameter.Catalog {
	return s.catalog
}

// ResolveSampling validates windowHours and returns its grid.
func (s *Service) ResolveSampling(windowHours int) (sampling.Resolution, error) {
	if err := sampling.ValidateWindow(windowHours); err != nil {
		return sampling.Resolution{}, s.fail("sampling", err)
	}
	return sampling.Resolve(windowHours), nil
}

// GenerateSeries returns the synthesized series for windowHours. A nil seed
// yields a fresh series on every call.
func (s *Service) GenerateSeries(windowHours int, seed *int64) ([]synth.Sample, error) {
	res, err := s.ResolveSampling(windowHours)
	if err != nil {
		return nil, err
	}
	return s.generate(res, seed), nil
}

func (s *Service) generate(res sampling.Resolution, seed *int64) []synth.Sample {
	return s.generateOn(res, s.sources(seed), seed != nil)
}

// generateOn synthesizes one series on rng and records its own latency.
func (s *Service) generateOn(res sampling.Resolution, rng synth.RandomSource, seeded bool) []synth.Sample {
	start := time.Now()
	series := s.synthesizer.GenerateOn(res, rng)

	s.collector.ObserveSeries(metrics.SeriesSnapshot{
		WindowHours:     res.WindowHours,
		IntervalMinutes: res.IntervalMinutes,
		Samples:         len(series),
		Seeded:          seeded,
		Duration:        time.Since(start),
	})

	s.log.Debug().
		Int("window_hours", res.WindowHours).
		Int("interval_minutes", res.IntervalMinutes).
		Int("samples", len(series)).
		Bool("seeded", seeded).
		Msg("Generated series")

	return series
}

// EvaluateTolerance classifies current against cfg's band.
func (s *Service) EvaluateTolerance(cfg parameter.Config, current float64) (tolerance.Result, error) {
	res, err := cfg.Evaluate(current)
	if err != nil {
		return tolerance.Result{}, s.fail("evaluate", err)
	}

	s.collector.ObserveEvaluation(metrics.EvaluationSnapshot{
		Parameter: string(cfg.ID),
		Status:    string(res.Status),
		Deviation: res.Deviation,
	})

	return res, nil
}

// EvaluateParameter looks id up in the catalog and evaluates current.
func (s *Service) EvaluateParameter(id parameter.ID, current float64) (parameter.Config, tolerance.Result, error) {
	cfg, err := s.catalog.Get(id)
	if err != nil {
		return parameter.Config{}, tolerance.Result{}, s.fail("evaluate", err)
	}

	res, err := s.EvaluateTolerance(cfg, current)
	if err != nil {
		return parameter.Config{}, tolerance.Result{}, err
	}
	return cfg, res, nil
}

// EvaluateBand classifies current against an ad hoc band.
func (s *Service) EvaluateBand(band tolerance.Band, current float64) (tolerance.Result, error) {
	res, err := tolerance.Evaluate(band, current)
	if err != nil {
		return tolerance.Result{}, s.fail("tolerance", err)
	}

	s.collector.ObserveEvaluation(metrics.EvaluationSnapshot{
		Parameter: AdHocParameter,
		Status:    string(res.Status),
		Deviation: res.Deviation,
	})

	return res, nil
}

// Dashboard renders the dashboard for req. Unset request fields take the
// service defaults. Both charts share one random source so a seeded
// request renders identically every time.
func (s *Service) Dashboard(req dashboard.Request) (*dashboard.View, error) {
	req = s.fillDefaults(req).WithDefaults()
	if err := req.Validate(); err != nil {
		return nil, s.fail("dashboard", err)
	}

	rng := s.sources(req.Seed)
	process := sampling.Resolve(req.ProcessWindow)
	quality := sampling.Resolve(req.QualityWindow)

	processSeries := s.generateOn(process, rng, req.Seed != nil)
	qualitySeries := s.generateOn(quality, rng, req.Seed != nil)

	view, err := dashboard.Build(s.catalog, req,
		dashboard.Series{Resolution: process, Samples: processSeries},
		dashboard.Series{Resolution: quality, Samples: qualitySeries})
	if err != nil {
		return nil, s.fail("dashboard", err)
	}

	view.ID = uuid.NewString()

	for _, card := range view.KPIs {
		s.collector.ObserveEvaluation(metrics.EvaluationSnapshot{
			Parameter: string(card.Parameter),
			Status:    string(card.Status),
			Deviation: card.Deviation,
		})
	}

	s.log.Debug().
		Str("view_id", view.ID).
		Str("batch", view.Batch).
		Int("day", view.Day).
		Int("critical_alerts", view.Summary.CriticalAlerts).
		Msg("Rendered dashboard")

	return view, nil
}

func (s *Service) fillDefaults(req dashboard.Request) dashboard.Request {
	d := s.defaults
	if req.Batch == "" {
		req.Batch = d.Batch
	}
	if req.BatchDays == 0 {
		req.BatchDays = d.BatchDays
	}
	if req.Day == 0 {
		req.Day = min(d.Day, req.BatchDays)
	}
	if req.ProcessWindow == 0 {
		req.ProcessWindow = d.ProcessWindow
	}
	if req.QualityWindow == 0 {
		req.QualityWindow = d.QualityWindow
	}
	if req.Seed == nil {
		req.Seed = d.Seed
	}
	if req.Source == "" {
		req.Source = d.Source
	}
	return req
}

// fail counts and logs a rejected request and returns err unchanged.
func (s *Service) fail(operation string, err error) error {
	code := errors.CodeOf(err)
	s.collector.ObserveError(operation, string(code))

	if coded, ok := err.(errors.Error); ok {
		s.log.ErrorWithCode(coded).Str("operation", operation).Msg("Request rejected")
	} else {
		s.log.Error().Err(err).Str("operation", operation).Msg("Request rejected")
	}

	return err
}
