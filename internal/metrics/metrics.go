package metrics

import (
	"net/http"
	"strconv"

	"codeberg.org/mutker/procmon/internal/errors"
	"codeberg.org/mutker/procmon/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type service struct {
	cfg      Config
	gatherer prometheus.Gatherer

	series      *prometheus.CounterVec
	samples     prometheus.Histogram
	latency     prometheus.Histogram
	evaluations *prometheus.CounterVec
	deviation   *prometheus.GaugeVec
	failures    *prometheus.CounterVec
}

// No-op implementation
type noopCollector struct{}

// NewService returns a Prometheus-backed collector registered on reg, or a
// no-op collector when metrics are disabled. gatherer backs the scrape
// handler and is usually the same registry.
func NewService(cfg Config, reg prometheus.Registerer, gatherer prometheus.Gatherer, log logger.Logger) (Collector, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	// If metrics is disabled, return a no-op collector
	if !cfg.Enabled {
		log.Debug().Msg("Metrics collection disabled, using no-op collector")
		return &noopCollector{}, nil
	}

	s := &service{
		cfg:      cfg,
		gatherer: gatherer,
		series: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "series_generated_total",
			Help:      "Synthesized series by sampling interval.",
		}, []string{"interval_minutes", "seeded"}),
		samples: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "series_samples",
			Help:      "Samples per synthesized series.",
			Buckets:   prometheus.LinearBuckets(4, 4, 8),
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "series_generation_seconds",
			Help:      "Time spent synthesizing one series.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "evaluations_total",
			Help:      "Tolerance evaluations by parameter and status.",
		}, []string{"parameter", "status"}),
		deviation: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "last_deviation",
			Help:      "Signed deviation from target of the last evaluation.",
		}, []string{"parameter"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "errors_total",
			Help:      "Rejected requests by operation and error code.",
		}, []string{"operation", "code"}),
	}

	for _, c := range []prometheus.Collector{s.series, s.samples, s.latency, s.evaluations, s.deviation, s.failures} {
		if err := reg.Register(c); err != nil {
			return nil, errFactory.Wrap(ErrRegisterFailed, err)
		}
	}

	log.Debug().
		Str("path", cfg.Path).
		Str("namespace", cfg.Namespace).
		Msg("Metrics service initialized successfully")

	return s, nil
}

func (s *service) ObserveSeries(snapshot SeriesSnapshot) {
	s.series.WithLabelValues(strconv.Itoa(snapshot.IntervalMinutes), strconv.FormatBool(snapshot.Seeded)).Inc()
	s.samples.Observe(float64(snapshot.Samples))
	s.latency.Observe(snapshot.Duration.Seconds())
}

func (s *service) ObserveEvaluation(snapshot EvaluationSnapshot) {
	s.evaluations.WithLabelValues(snapshot.Parameter, snapshot.Status).Inc()
	if snapshot.Parameter != "" {
		s.deviation.WithLabelValues(snapshot.Parameter).Set(snapshot.Deviation)
	}
}

func (s *service) ObserveError(operation, code string) {
	s.failures.WithLabelValues(operation, code).Inc()
}

func (s *service) Handler() http.Handler {
	return promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})
}

func (*service) Enabled() bool {
	return true
}

// Noop returns a collector that discards everything
func Noop() Collector {
	return &noopCollector{}
}

func (*noopCollector) ObserveSeries(_ SeriesSnapshot)         {}
func (*noopCollector) ObserveEvaluation(_ EvaluationSnapshot) {}
func (*noopCollector) ObserveError(_, _ string)               {}
func (*noopCollector) Enabled() bool                          { return false }

func (*noopCollector) Handler() http.Handler {
	return http.NotFoundHandler()
}
