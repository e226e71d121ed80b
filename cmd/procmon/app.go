package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"codeberg.org/mutker/procmon/internal/config"
	"codeberg.org/mutker/procmon/internal/dashboard"
	"codeberg.org/mutker/procmon/internal/errors"
	"codeberg.org/mutker/procmon/internal/logger"
	"codeberg.org/mutker/procmon/internal/metrics"
	"codeberg.org/mutker/procmon/internal/monitor"
	"codeberg.org/mutker/procmon/internal/parameter"
	"codeberg.org/mutker/procmon/internal/pid"
	"codeberg.org/mutker/procmon/internal/sampling"
	"codeberg.org/mutker/procmon/internal/server"
	"codeberg.org/mutker/procmon/internal/synth"
	"codeberg.org/mutker/procmon/internal/tolerance"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type app struct {
	cfg       config.Provider
	svc       *monitor.Service
	collector metrics.Collector
}

type command func(ctx context.Context, args []string, out io.Writer) error

func newApp(cfg config.Provider) (*app, error) {
	errFactory := errors.New()

	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrInitApp, err)
	}

	metricsCfg := metrics.DefaultConfig()
	metricsCfg.Enabled = cfg.IsMetricsEnabled()
	metricsCfg.Path = cfg.GetMetricsPath()

	reg := prometheus.NewRegistry()
	if metricsCfg.Enabled {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	collector, err := metrics.NewService(metricsCfg, reg, reg, logger.Default())
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrInitApp, err)
	}

	svc := monitor.New(catalog,
		monitor.WithCollector(collector),
		monitor.WithLogger(logger.Default()),
		monitor.WithDashboardDefaults(cfg.DashboardDefaults()),
	)

	return &app{cfg: cfg, svc: svc, collector: collector}, nil
}

func (a *app) commands() map[string]command {
	return map[string]command{
		"serve":      a.serve,
		"sampling":   a.sampling,
		"series":     a.series,
		"evaluate":   a.evaluate,
		"dashboard":  a.dashboard,
		"parameters": a.parameters,
	}
}

func (a *app) run(ctx context.Context, args []string, out io.Writer) error {
	name := "serve"
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}

	cmd, ok := a.commands()[name]
	if !ok {
		return errors.New().WithData(errors.ErrUnknownCommand, name)
	}

	return cmd(ctx, args, out)
}

func (a *app) serve(ctx context.Context, _ []string, _ io.Writer) error {
	pidFile := a.cfg.GetPIDFile()
	if err := pid.Write(pidFile); err != nil {
		return err
	}
	defer func() {
		if err := pid.Remove(pidFile); err != nil {
			logError(err, "Failed to remove PID file")
		}
	}()

	srv := server.New(server.Config{
		Listen:          a.cfg.GetListen(),
		WindowHours:     a.cfg.GetWindowHours(),
		MetricsPath:     a.cfg.GetMetricsPath(),
		ShutdownTimeout: a.cfg.GetShutdownTimeout(),
	}, a.svc, a.collector, logger.Default())

	err := srv.Run(ctx)
	logger.Info().Msg("Exiting...")
	return err
}

func (a *app) sampling(_ context.Context, _ []string, out io.Writer) error {
	res, err := a.svc.ResolveSampling(a.cfg.GetWindowHours())
	if err != nil {
		return err
	}
	return encode(out, res)
}

func (a *app) series(_ context.Context, _ []string, out io.Writer) error {
	window := a.cfg.GetWindowHours()

	var seed *int64
	if v, ok := a.cfg.GetSeed(); ok {
		seed = &v
	}

	samples, err := a.svc.GenerateSeries(window, seed)
	if err != nil {
		return err
	}

	return encode(out, struct {
		Resolution sampling.Resolution `json:"resolution"`
		Seed       *int64              `json:"seed,omitempty"`
		Samples    []synth.Sample      `json:"samples"`
	}{sampling.Resolve(window), seed, samples})
}

func (a *app) evaluate(_ context.Context, args []string, out io.Writer) error {
	errFactory := errors.New()

	if len(args) != 2 {
		return errFactory.WithMessage(errors.ErrInvalidArgument, "usage: evaluate <parameter> <value>")
	}

	current, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return errFactory.WithData(errors.ErrInvalidArgument, fmt.Sprintf("value %q", args[1]))
	}

	cfg, res, err := a.svc.EvaluateParameter(parameter.ID(args[0]), current)
	if err != nil {
		return err
	}

	fill, err := tolerance.GaugeFill(current, cfg.Scale())
	if err != nil {
		return err
	}

	return encode(out, struct {
		Parameter parameter.Config `json:"parameter"`
		Current   float64          `json:"current"`
		Result    tolerance.Result `json:"result"`
		GaugeFill float64          `json:"gauge_fill"`
		Tone      dashboard.Tone   `json:"tone"`
	}{cfg, current, res, fill, dashboard.ToneFor(res.Status)})
}

func (a *app) dashboard(_ context.Context, _ []string, out io.Writer) error {
	view, err := a.svc.Dashboard(dashboard.Request{})
	if err != nil {
		return err
	}
	return encode(out, view)
}

func (a *app) parameters(_ context.Context, _ []string, out io.Writer) error {
	return encode(out, a.svc.Catalog().All())
}

func encode(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.New().Wrap(errors.ErrEncodeOutput, err)
	}
	return nil
}
