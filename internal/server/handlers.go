package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"codeberg.org/mutker/procmon/internal/dashboard"
	"codeberg.org/mutker/procmon/internal/errors"
	"codeberg.org/mutker/procmon/internal/parameter"
	"codeberg.org/mutker/procmon/internal/sampling"
	"codeberg.org/mutker/procmon/internal/synth"
	"codeberg.org/mutker/procmon/internal/tolerance"
	"github.com/gorilla/mux"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type seriesResponse struct {
	Resolution sampling.Resolution `json:"resolution"`
	Seed       *int64              `json:"seed,omitempty"`
	Samples    []synth.Sample      `json:"samples"`
}

type evaluationResponse struct {
	Parameter *parameter.Config `json:"parameter,omitempty"`
	Current   float64           `json:"current"`
	Result    tolerance.Result  `json:"result"`
	GaugeFill float64           `json:"gauge_fill"`
	Tone      dashboard.Tone    `json:"tone"`
}

type toleranceRequest struct {
	Band    tolerance.Band `json:"band"`
	Current *float64       `json:"current"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.CodeOf(err)
	if code == "" {
		code = ErrInternal
	}
	writeJSON(w, StatusFor(code), errorResponse{Code: string(code), Message: err.Error()})
}

func invalidArgument(name, value string) error {
	return errors.New().WithData(ErrInvalidArgument, fmt.Sprintf("%s=%q", name, value))
}

// queryInt returns the named query parameter, or def when it is absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidArgument(name, raw)
	}
	return v, nil
}

func querySeed(r *http.Request) (*int64, error) {
	raw := r.URL.Query().Get("seed")
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, invalidArgument("seed", raw)
	}
	return &v, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSampling(w http.ResponseWriter, r *http.Request) {
	window, err := queryInt(r, "window", s.cfg.WindowHours)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.svc.ResolveSampling(window)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	window, err := queryInt(r, "window", s.cfg.WindowHours)
	if err != nil {
		writeError(w, err)
		return
	}

	seed, err := querySeed(r)
	if err != nil {
		writeError(w, err)
		return
	}

	samples, err := s.svc.GenerateSeries(window, seed)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, seriesResponse{
		Resolution: sampling.Resolve(window),
		Seed:       seed,
		Samples:    samples,
	})
}

func (s *Server) handleParameters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Catalog().All())
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	id := parameter.ID(mux.Vars(r)["id"])

	raw := r.URL.Query().Get("current")
	current, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeError(w, invalidArgument("current", raw))
		return
	}

	cfg, res, err := s.svc.EvaluateParameter(id, current)
	if err != nil {
		writeError(w, err)
		return
	}

	fill, err := tolerance.GaugeFill(current, cfg.Scale())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, evaluationResponse{
		Parameter: &cfg,
		Current:   current,
		Result:    res,
		GaugeFill: fill,
		Tone:      dashboard.ToneFor(res.Status),
	})
}

func (s *Server) handleTolerance(w http.ResponseWriter, r *http.Request) {
	var req toleranceRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, errors.New().Wrap(ErrInvalidArgument, err))
		return
	}
	if req.Current == nil {
		writeError(w, errors.New().WithData(ErrInvalidArgument, "current is required"))
		return
	}

	res, err := s.svc.EvaluateBand(req.Band, *req.Current)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, evaluationResponse{
		Current:   *req.Current,
		Result:    res,
		GaugeFill: res.GaugeFill(),
		Tone:      dashboard.ToneFor(res.Status),
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := dashboard.Request{
		Batch:  q.Get("batch"),
		Source: dashboard.Source(q.Get("source")),
	}

	var err error
	for _, field := range []struct {
		name string
		dst  *int
	}{
		{"day", &req.Day},
		{"process_window", &req.ProcessWindow},
		{"quality_window", &req.QualityWindow},
	} {
		if *field.dst, err = queryInt(r, field.name, 0); err != nil {
			writeError(w, err)
			return
		}
	}

	if req.Seed, err = querySeed(r); err != nil {
		writeError(w, err)
		return
	}

	view, err := s.svc.Dashboard(req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
