package server_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"codeberg.org/mutker/procmon/internal/dashboard"
	"codeberg.org/mutker/procmon/internal/logger"
	"codeberg.org/mutker/procmon/internal/metrics"
	"codeberg.org/mutker/procmon/internal/monitor"
	"codeberg.org/mutker/procmon/internal/parameter"
	"codeberg.org/mutker/procmon/internal/sampling"
	"codeberg.org/mutker/procmon/internal/server"
	"codeberg.org/mutker/procmon/internal/synth"
	"codeberg.org/mutker/procmon/internal/tolerance"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfig = server.Config{
	Listen:          "127.0.0.1:0",
	WindowHours:     12,
	MetricsPath:     "/metrics",
	ShutdownTimeout: time.Second,
}

func newServer(t *testing.T, collector metrics.Collector) *server.Server {
	t.Helper()

	log := logger.Default()
	svc := monitor.New(parameter.Default(), monitor.WithCollector(collector), monitor.WithLogger(log))
	return server.New(testConfig, svc, collector, log)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func TestHealth(t *testing.T) {
	h := newServer(t, metrics.Noop()).Handler()

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDPropagated(t *testing.T) {
	h := newServer(t, metrics.Noop()).Handler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestSampling(t *testing.T) {
	h := newServer(t, metrics.Noop()).Handler()

	tests := []struct {
		target string
		want   sampling.Resolution
	}{
		{"/api/v1/sampling?window=6", sampling.Resolution{WindowHours: 6, IntervalMinutes: 30, PointCount: 12}},
		{"/api/v1/sampling?window=13", sampling.Resolution{WindowHours: 13, IntervalMinutes: 120, PointCount: 6}},
		{"/api/v1/sampling", sampling.Resolution{WindowHours: 12, IntervalMinutes: 60, PointCount: 12}},
	}

	for _, tt := range tests {
		rec := do(t, h, http.MethodGet, tt.target, "")
		require.Equal(t, http.StatusOK, rec.Code, tt.target)

		var got sampling.Resolution
		decode(t, rec, &got)
		assert.Equal(t, tt.want, got, tt.target)
	}
}

func TestErrors(t *testing.T) {
	h := newServer(t, metrics.Noop()).Handler()

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
		code   string
	}{
		{"window too large", http.MethodGet, "/api/v1/series?window=169", "", http.StatusBadRequest, "invalid_window"},
		{"window not a number", http.MethodGet, "/api/v1/sampling?window=abc", "", http.StatusBadRequest, "invalid_argument"},
		{"bad seed", http.MethodGet, "/api/v1/series?seed=x", "", http.StatusBadRequest, "invalid_argument"},
		{"unknown parameter", http.MethodGet, "/api/v1/parameters/viscosity/evaluate?current=1", "", http.StatusNotFound, "unknown_parameter"},
		{"missing current", http.MethodGet, "/api/v1/parameters/pH/evaluate", "", http.StatusBadRequest, "invalid_argument"},
		{"non-finite current", http.MethodGet, "/api/v1/parameters/pH/evaluate?current=NaN", "", http.StatusBadRequest, "domain_error"},
		{"zero target", http.MethodPost, "/api/v1/tolerance", `{"band":{"target":0,"lower":0,"upper":1,"critical_lower":0,"critical_upper":1},"current":1}`, http.StatusBadRequest, "domain_error"},
		{"malformed body", http.MethodPost, "/api/v1/tolerance", `{"band":`, http.StatusBadRequest, "invalid_argument"},
		{"no current", http.MethodPost, "/api/v1/tolerance", `{"band":{"target":1,"lower":1,"upper":1,"critical_lower":1,"critical_upper":1}}`, http.StatusBadRequest, "invalid_argument"},
		{"dashboard window", http.MethodGet, "/api/v1/dashboard?process_window=2", "", http.StatusBadRequest, "invalid_window"},
		{"dashboard source", http.MethodGet, "/api/v1/dashboard?source=live", "", http.StatusBadRequest, "invalid_argument"},
		{"no route", http.MethodGet, "/api/v2/series", "", http.StatusNotFound, "not_found"},
		{"wrong method", http.MethodDelete, "/api/v1/series", "", http.StatusMethodNotAllowed, "method_not_allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code)

			var body errorBody
			decode(t, rec, &body)
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestSeries(t *testing.T) {
	h := newServer(t, metrics.Noop()).Handler()

	var first, second struct {
		Resolution sampling.Resolution `json:"resolution"`
		Seed       *int64              `json:"seed"`
		Samples    []synth.Sample      `json:"samples"`
	}

	rec := do(t, h, http.MethodGet, "/api/v1/series?window=3&seed=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &first)

	rec = do(t, h, http.MethodGet, "/api/v1/series?window=3&seed=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &second)

	assert.Equal(t, 30, first.Resolution.IntervalMinutes)
	require.Len(t, first.Samples, 7)
	require.NotNil(t, first.Seed)
	assert.Equal(t, int64(5), *first.Seed)
	assert.Equal(t, "03:00", first.Samples[6].TimeLabel)
	assert.Equal(t, first.Samples, second.Samples)

	for _, s := range first.Samples {
		assert.Contains(t, s.Values, parameter.PH)
	}
}

func TestParameters(t *testing.T) {
	h := newServer(t, metrics.Noop()).Handler()

	rec := do(t, h, http.MethodGet, "/api/v1/parameters", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var configs []parameter.Config
	decode(t, rec, &configs)
	assert.Len(t, configs, len(parameter.Default().All()))
	assert.Equal(t, parameter.Temperature, configs[0].ID)
}

func TestEvaluate(t *testing.T) {
	h := newServer(t, metrics.Noop()).Handler()

	var body struct {
		Parameter parameter.Config `json:"parameter"`
		Result    tolerance.Result `json:"result"`
		GaugeFill float64          `json:"gauge_fill"`
		Tone      dashboard.Tone   `json:"tone"`
	}

	rec := do(t, h, http.MethodGet, "/api/v1/parameters/pH/evaluate?current=5.8", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &body)

	assert.Equal(t, parameter.PH, body.Parameter.ID)
	assert.Equal(t, tolerance.StatusCritical, body.Result.Status)
	assert.InDelta(t, -1.2, body.Result.Deviation, 1e-9)
	assert.Equal(t, dashboard.ToneRed, body.Tone)

	rec = do(t, h, http.MethodGet, "/api/v1/parameters/tShift/evaluate?current=35.2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &body)
	assert.InDelta(t, 101.149, body.Result.PercentOfTarget, 1e-3)
	assert.InDelta(t, 100, body.GaugeFill, 0)
}

func TestTolerance(t *testing.T) {
	h := newServer(t, metrics.Noop()).Handler()

	rec := do(t, h, http.MethodPost, "/api/v1/tolerance",
		`{"band":{"target":2.0,"lower":1.9,"upper":2.1,"critical_lower":1.5,"critical_upper":2.5},"current":2.1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Result tolerance.Result `json:"result"`
		Tone   dashboard.Tone   `json:"tone"`
	}
	decode(t, rec, &body)
	assert.Equal(t, tolerance.StatusNormal, body.Result.Status)
	assert.Equal(t, dashboard.ToneGreen, body.Tone)
}

func TestDashboard(t *testing.T) {
	h := newServer(t, metrics.Noop()).Handler()

	rec := do(t, h, http.MethodGet, "/api/v1/dashboard?batch=BATCH-1&day=4&process_window=6&quality_window=24&seed=9", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view dashboard.View
	decode(t, rec, &view)

	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "BATCH-1", view.Batch)
	assert.Equal(t, 4, view.Day)
	assert.Len(t, view.Days, dashboard.DefaultBatchDays)
	assert.Equal(t, 30, view.Process.Resolution.IntervalMinutes)
	assert.Equal(t, 120, view.Quality.Resolution.IntervalMinutes)
	assert.Len(t, view.KPIs, 5)
	assert.Len(t, view.Gauges, 3)
	assert.Equal(t, 1, view.Summary.CriticalAlerts)
}

func TestCompression(t *testing.T) {
	h := newServer(t, metrics.Noop()).Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
}

func TestMetricsEndpoint(t *testing.T) {
	h := newServer(t, metrics.Noop()).Handler()
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/metrics", "").Code)

	reg := prometheus.NewRegistry()
	cfg := metrics.DefaultConfig()
	cfg.Enabled = true
	collector, err := metrics.NewService(cfg, reg, reg, logger.Default())
	require.NoError(t, err)

	h = newServer(t, collector).Handler()
	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/v1/series?window=6&seed=1", "").Code)
	require.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/v1/series?window=0", "").Code)

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `procmon_series_generated_total{interval_minutes="30",seeded="true"} 1`)
	assert.Contains(t, rec.Body.String(), `procmon_errors_total{code="invalid_window",operation="sampling"} 1`)
}

func TestServeShutdown(t *testing.T) {
	srv := newServer(t, metrics.Noop())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url) //nolint:noctx
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down")
	}
}
