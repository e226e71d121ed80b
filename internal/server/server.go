// Package server exposes the monitor service over HTTP as JSON.
package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"codeberg.org/mutker/procmon/internal/errors"
	"codeberg.org/mutker/procmon/internal/logger"
	"codeberg.org/mutker/procmon/internal/metrics"
	"codeberg.org/mutker/procmon/internal/monitor"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

const readHeaderTimeout = 5 * time.Second

type Config struct {
	Listen          string
	WindowHours     int
	MetricsPath     string
	ShutdownTimeout time.Duration
}

type Server struct {
	cfg       Config
	svc       *monitor.Service
	collector metrics.Collector
	log       logger.Logger
	handler   http.Handler
}

func New(cfg Config, svc *monitor.Service, collector metrics.Collector, log logger.Logger) *Server {
	s := &Server{
		cfg:       cfg,
		svc:       svc,
		collector: collector,
		log:       log,
	}
	s.handler = s.routes()
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/sampling", s.handleSampling).Methods(http.MethodGet)
	api.HandleFunc("/series", s.handleSeries).Methods(http.MethodGet)
	api.HandleFunc("/parameters", s.handleParameters).Methods(http.MethodGet)
	api.HandleFunc("/parameters/{id}/evaluate", s.handleEvaluate).Methods(http.MethodGet)
	api.HandleFunc("/tolerance", s.handleTolerance).Methods(http.MethodPost)
	api.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)

	if s.collector.Enabled() {
		r.Handle(s.cfg.MetricsPath, s.collector.Handler()).Methods(http.MethodGet)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, errors.New().WithMessage(ErrNotFound, "no such route"))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, errors.New().New(ErrMethodNotAllowed))
	})

	var h http.Handler = r
	h = handlers.CompressHandler(h)
	h = handlers.CORS(
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
		handlers.AllowedHeaders([]string{"Content-Type", requestIDHeader}),
	)(h)
	h = requestID(h)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{s.log}),
	)(h)
	h = handlers.CustomLoggingHandler(io.Discard, h, accessLog(s.log))

	return h
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return errors.New().Wrap(ErrListenFailed, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errFactory := errors.New()

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("address", ln.Addr().String()).Msg("HTTP server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errFactory.Wrap(ErrListenFailed, err)
	case <-ctx.Done():
	}

	s.log.Info().Msg("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errFactory.Wrap(ErrShutdownFailed, err)
	}

	return nil
}
