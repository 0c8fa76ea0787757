// Package api serves generated calendars over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"astrotrade/internal/calendar"
	"astrotrade/internal/interfaces"
	"astrotrade/internal/logger"
	"astrotrade/internal/natal"
	"astrotrade/internal/report"
	"astrotrade/internal/service"
	"astrotrade/internal/store"
	"astrotrade/internal/types"
)

// Server exposes the calendar service.
type Server struct {
	svc    *service.Service
	router *mux.Router
	now    func() time.Time
}

// ServerOption configures the server
type ServerOption func(*Server)

// WithClock overrides the clock used for default date ranges.
func WithClock(now func() time.Time) ServerOption {
	return func(s *Server) {
		s.now = now
	}
}

func NewServer(svc *service.Service, opts ...ServerOption) *Server {
	s := &Server{
		svc: svc,
		now: time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	if m := s.svc.Metrics(); m != nil {
		r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/profiles", s.handleProfiles).Methods(http.MethodGet)
	api.HandleFunc("/chart", s.handleChart).Methods(http.MethodGet)
	api.HandleFunc("/calendar", s.handleCalendar).Methods(http.MethodGet)
	api.HandleFunc("/calendar.csv", s.handleExport(report.CSVExporter{})).Methods(http.MethodGet)
	api.HandleFunc("/calendar.ics", s.handleExport(report.ICSExporter{Now: s.now})).Methods(http.MethodGet)
	api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	api.HandleFunc("/holidays", s.handleHolidays).Methods(http.MethodGet)

	r.Use(recoveryMiddleware)
	r.Use(s.observeMiddleware)
	return r
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string, readTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: readTimeout,
		ReadTimeout:       readTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info(ctx, "HTTP server shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"service":  "astrotrade",
		"profiles": len(s.svc.Config().Profiles),
		"holidays": s.svc.Holidays().Len(),
	})
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	cfg := s.svc.Config()
	out := make([]types.BirthProfile, 0, len(cfg.Profiles))
	for _, name := range cfg.ProfileNames() {
		p, _ := cfg.Profile(name)
		out = append(out, p)
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleHolidays(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.svc.Holidays().Rows())
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	p, err := s.profileFromQuery(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	chart, err := s.svc.Chart(p)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, chart)
}

// calendarResponse is the JSON body of /api/calendar.
type calendarResponse struct {
	Profile string            `json:"profile"`
	Start   string            `json:"start"`
	End     string            `json:"end"`
	Chart   *natal.Chart      `json:"chart"`
	Days    []types.DayRecord `json:"days"`
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	p, records, chart, ok := s.generate(w, r)
	if !ok {
		return
	}
	resp := calendarResponse{
		Profile: p.Name,
		Chart:   chart,
		Days:    records,
	}
	if len(records) > 0 {
		resp.Start = records[0].DateString()
		resp.End = records[len(records)-1].DateString()
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	_, records, _, ok := s.generate(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, report.Summarize(records))
}

func (s *Server) handleExport(exp interfaces.Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, records, _, ok := s.generate(w, r)
		if !ok {
			return
		}
		filename := fmt.Sprintf("astrotrade_%s.%s", report.Slug(p.Name), exp.Extension())
		w.Header().Set("Content-Type", exp.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if err := exp.Export(w, "AstroTrade Calendar - "+p.Name, records); err != nil {
			logger.ErrorWithErr(r.Context(), "Export failed", err, "format", exp.Extension())
		}
	}
}

// generate runs the calendar for the request's profile and range. It writes
// the error response itself and reports ok=false on failure.
func (s *Server) generate(w http.ResponseWriter, r *http.Request) (types.BirthProfile, []types.DayRecord, *natal.Chart, bool) {
	p, err := s.profileFromQuery(r)
	if err != nil {
		respondErr(w, r, err)
		return p, nil, nil, false
	}
	q := r.URL.Query()
	start, end, err := s.svc.Range(q.Get("start"), q.Get("end"), s.now())
	if err != nil {
		respondErr(w, r, err)
		return p, nil, nil, false
	}
	if limit := s.svc.Config().Server.MaxRangeDays; limit > 0 && end.Sub(start) >= time.Duration(limit)*24*time.Hour {
		respondErr(w, r, &rangeTooLongError{limit: limit})
		return p, nil, nil, false
	}
	records, chart, err := s.svc.Calendar(r.Context(), p, start, end)
	if err != nil {
		respondErr(w, r, err)
		return p, nil, nil, false
	}
	return p, records, chart, true
}

// profileFromQuery reads ?profile=<preset>, or an ad-hoc profile from
// dob, tob, lat, lon and optional lagna.
func (s *Server) profileFromQuery(r *http.Request) (types.BirthProfile, error) {
	q := r.URL.Query()
	if name := q.Get("profile"); name != "" {
		return s.svc.Profile(name)
	}
	if q.Get("dob") == "" {
		return types.BirthProfile{}, &missingParamError{name: "profile"}
	}
	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		return types.BirthProfile{}, &types.InvalidProfileError{Field: "lat", Value: q.Get("lat"), Reason: "not a number"}
	}
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		return types.BirthProfile{}, &types.InvalidProfileError{Field: "lon", Value: q.Get("lon"), Reason: "not a number"}
	}
	name := q.Get("name")
	if name == "" {
		name = "custom"
	}
	return types.ParseBirthProfile(name, q.Get("dob"), q.Get("tob"), lat, lon, q.Get("lagna"))
}

type missingParamError struct{ name string }

func (e *missingParamError) Error() string {
	return fmt.Sprintf("missing query parameter %q (or dob, tob, lat, lon)", e.name)
}

type rangeTooLongError struct{ limit int }

func (e *rangeTooLongError) Error() string {
	return fmt.Sprintf("date range exceeds %d days", e.limit)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var (
		notFound  *store.ProfileNotFoundError
		profile   *types.InvalidProfileError
		dateRange *calendar.InvalidRangeError
		badDate   *service.InvalidDateError
		missing   *missingParamError
		tooLong   *rangeTooLongError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &profile), errors.As(err, &dateRange), errors.As(err, &badDate),
		errors.As(err, &missing), errors.As(err, &tooLong):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		return 499
	default:
		return http.StatusInternalServerError
	}
}

func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		logger.ErrorWithErr(r.Context(), "Request failed", err, "path", r.URL.Path)
	}
	respondJSON(w, code, map[string]string{"error": err.Error()})
}

func respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn(context.Background(), "Failed to encode response", "error", err)
	}
}
