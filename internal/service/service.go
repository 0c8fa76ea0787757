// Package service binds configuration, ephemeris and holidays into
// per-profile calendar runs. Natal charts are resolved once per profile.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"astrotrade/internal/calendar"
	"astrotrade/internal/calendar/calendarobs"
	"astrotrade/internal/holidays"
	"astrotrade/internal/interfaces"
	"astrotrade/internal/metrics"
	"astrotrade/internal/natal"
	"astrotrade/internal/store"
	"astrotrade/internal/transition"
	"astrotrade/internal/types"
)

type Service struct {
	cfg      *store.Config
	eph      interfaces.Ephemeris
	holidays *holidays.Set
	metrics  *metrics.Registry
	loc      *time.Location
	genOpts  []calendar.Option

	mu     sync.Mutex
	charts map[string]*natal.Chart
}

// New validates the calendar options derived from cfg. m may be nil.
func New(cfg *store.Config, eph interfaces.Ephemeris, hol *holidays.Set, m *metrics.Registry) (*Service, error) {
	window, err := cfg.MarketWindow()
	if err != nil {
		return nil, err
	}
	ref, err := cfg.Reference()
	if err != nil {
		return nil, err
	}
	if hol == nil {
		hol = holidays.Empty()
	}
	return &Service{
		cfg:      cfg,
		eph:      eph,
		holidays: hol,
		metrics:  m,
		loc:      cfg.Location(),
		genOpts: []calendar.Option{
			calendar.WithWorkers(cfg.Workers),
			calendar.WithReference(ref),
			calendar.WithTransitionOptions(
				transition.WithWindow(window),
				transition.WithTolerance(cfg.TransitionTolerance),
			),
		},
		charts: map[string]*natal.Chart{},
	}, nil
}

func (s *Service) Config() *store.Config           { return s.cfg }
func (s *Service) Location() *time.Location        { return s.loc }
func (s *Service) Holidays() *holidays.Set         { return s.holidays }
func (s *Service) Metrics() *metrics.Registry      { return s.metrics }
func (s *Service) Ephemeris() interfaces.Ephemeris { return s.eph }

// Profile returns a configured preset.
func (s *Service) Profile(name string) (types.BirthProfile, error) {
	return s.cfg.Profile(name)
}

// chartKey covers every profile field, since the chart carries the profile.
func chartKey(p types.BirthProfile) string {
	return fmt.Sprintf("%s|%s|%s|%s|%.6f|%.6f|%s", p.Name, p.Place, p.Date, p.Time, p.Latitude, p.Longitude, p.Lagna)
}

// Chart resolves and caches the natal chart for p.
func (s *Service) Chart(p types.BirthProfile) (*natal.Chart, error) {
	key := chartKey(p)

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.charts[key]; ok {
		return c, nil
	}
	c, err := natal.Resolve(s.eph, p, s.loc)
	if err != nil {
		return nil, err
	}
	s.charts[key] = c
	return c, nil
}

// Generator builds an observed generator for p.
func (s *Service) Generator(p types.BirthProfile) (interfaces.CalendarGenerator, *natal.Chart, error) {
	chart, err := s.Chart(p)
	if err != nil {
		return nil, nil, err
	}
	gen, err := calendar.New(s.eph, chart, s.holidays, s.loc, s.genOpts...)
	if err != nil {
		return nil, nil, err
	}
	return calendarobs.Wrap(gen, p.Name, s.metrics), chart, nil
}

// Calendar generates records for p over [start, end].
func (s *Service) Calendar(ctx context.Context, p types.BirthProfile, start, end time.Time) ([]types.DayRecord, *natal.Chart, error) {
	gen, chart, err := s.Generator(p)
	if err != nil {
		return nil, nil, err
	}
	records, err := gen.Generate(ctx, start, end)
	if err != nil {
		return nil, nil, err
	}
	return records, chart, nil
}

// Range resolves optional start/end dates: start defaults to today and end
// to start plus the configured default length.
func (s *Service) Range(start, end string, now time.Time) (time.Time, time.Time, error) {
	first := types.CivilDate(now, s.loc)
	if start != "" {
		t, err := time.ParseInLocation(types.DateLayout, start, s.loc)
		if err != nil {
			return time.Time{}, time.Time{}, &InvalidDateError{Field: "start", Value: start}
		}
		first = t
	}
	last := first.AddDate(0, 0, s.cfg.DefaultDays-1)
	if end != "" {
		t, err := time.ParseInLocation(types.DateLayout, end, s.loc)
		if err != nil {
			return time.Time{}, time.Time{}, &InvalidDateError{Field: "end", Value: end}
		}
		last = t
	}
	return first, last, nil
}

// InvalidDateError reports a malformed date argument.
type InvalidDateError struct {
	Field string
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid %s date %q: expected YYYY-MM-DD", e.Field, e.Value)
}
