// Package calendar assembles one DayRecord per civil day from the
// ephemeris, the natal chart and the holiday list.
package calendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"astrotrade/internal/decision"
	"astrotrade/internal/interfaces"
	"astrotrade/internal/natal"
	"astrotrade/internal/navatara"
	"astrotrade/internal/panchanga"
	"astrotrade/internal/transition"
	"astrotrade/internal/types"
)

const (
	DefaultWorkers = 4
	// DefaultReference is the civil time of day every snapshot is taken at.
	DefaultReference = 9*time.Hour + 15*time.Minute
)

// InvalidRangeError is returned when end precedes start.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range: end %s is before start %s",
		e.End.Format(types.DateLayout), e.Start.Format(types.DateLayout))
}

type noHolidays struct{}

func (noHolidays) Lookup(time.Time) (string, bool) { return "", false }

// Generator is immutable after New and safe for concurrent Generate calls.
type Generator struct {
	calc      *panchanga.Calculator
	locator   *transition.Locator
	chart     *natal.Chart
	holidays  interfaces.HolidayCalendar
	engine    *decision.Engine
	loc       *time.Location
	reference time.Duration
	workers   int
	locOpts   []transition.Option
}

var _ interfaces.CalendarGenerator = (*Generator)(nil)

type Option func(*Generator)

// WithWorkers bounds the number of days computed concurrently.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.workers = n
		}
	}
}

// WithReference sets the snapshot time of day.
func WithReference(d time.Duration) Option {
	return func(g *Generator) {
		if d >= 0 && d < 24*time.Hour {
			g.reference = d
		}
	}
}

func WithEngine(e *decision.Engine) Option {
	return func(g *Generator) {
		if e != nil {
			g.engine = e
		}
	}
}

// WithTransitionOptions forwards options to the transition locator.
func WithTransitionOptions(opts ...transition.Option) Option {
	return func(g *Generator) {
		g.locOpts = append(g.locOpts, opts...)
	}
}

// New builds a generator for one resolved chart. A nil holiday calendar
// means no holidays.
func New(eph interfaces.Ephemeris, chart *natal.Chart, holidays interfaces.HolidayCalendar, loc *time.Location, opts ...Option) (*Generator, error) {
	if eph == nil {
		return nil, fmt.Errorf("calendar: ephemeris is required")
	}
	if chart == nil {
		return nil, fmt.Errorf("calendar: natal chart is required")
	}
	if loc == nil {
		loc = types.IST
	}
	if holidays == nil {
		holidays = noHolidays{}
	}
	g := &Generator{
		calc:      panchanga.NewCalculator(eph),
		chart:     chart,
		holidays:  holidays,
		engine:    decision.New(),
		loc:       loc,
		reference: DefaultReference,
		workers:   DefaultWorkers,
	}
	for _, o := range opts {
		o(g)
	}
	g.locator = transition.New(eph, loc, g.locOpts...)
	return g, nil
}

// Chart returns the natal chart the generator was built for.
func (g *Generator) Chart() *natal.Chart { return g.chart }

func (g *Generator) Location() *time.Location { return g.loc }

// Generate returns one record per civil day in [start, end], ascending.
// The first failing day aborts the whole call.
func (g *Generator) Generate(ctx context.Context, start, end time.Time) ([]types.DayRecord, error) {
	first := types.CivilDate(start, g.loc)
	last := types.CivilDate(end, g.loc)
	if last.Before(first) {
		return nil, &InvalidRangeError{Start: first, End: last}
	}

	var dates []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}

	records := make([]types.DayRecord, len(dates))
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(g.workers)

	for i, d := range dates {
		if gctx.Err() != nil {
			break
		}
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := g.Day(d)
			if err != nil {
				return fmt.Errorf("day %s: %w", d.Format(types.DateLayout), err)
			}
			records[i] = rec
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Day computes the record for the civil day containing date.
func (g *Generator) Day(date time.Time) (types.DayRecord, error) {
	day := types.CivilDate(date, g.loc)
	ref := day.Add(g.reference)

	snap, err := g.calc.Snapshot(ref)
	if err != nil {
		return types.DayRecord{}, err
	}
	retro, err := g.calc.Retrogrades(ref, panchanga.ReportedRetrogrades)
	if err != nil {
		return types.DayRecord{}, err
	}
	change, err := g.locator.Find(day)
	if err != nil {
		return types.DayRecord{}, fmt.Errorf("transition: %w", err)
	}

	holidayName, isHoliday := g.holidays.Lookup(day)
	in := decision.Inputs{
		Navatara:           navatara.Classify(snap.Nakshatra.Index, g.chart.Nakshatra.Index),
		AshtamaMoon:        panchanga.Ashtama(snap.MoonSign.Index(), g.chart.MoonSignIndex()),
		AshtamaLagna:       panchanga.Ashtama(snap.MoonSign.Index(), g.chart.LagnaIndex()),
		ChangeDuringMarket: g.locator.InMarketHours(change),
		MoonPhase:          snap.MoonPhase,
		Retrogrades:        retro,
		IsHoliday:          isHoliday,
		IsWeekend:          panchanga.IsWeekend(day.Weekday()),
	}
	res := g.engine.Evaluate(in)

	return types.DayRecord{
		Date:               day,
		Weekday:            day.Weekday().String(),
		Nakshatra:          snap.Nakshatra.Name,
		NakshatraIndex:     snap.Nakshatra.Index,
		Pada:               snap.Nakshatra.Pada,
		Navatara:           in.Navatara,
		MoonSign:           snap.MoonSign,
		ChangeTime:         transition.Format(change),
		TransitionAt:       change,
		ChangeDuringMarket: in.ChangeDuringMarket,
		Tithi:              snap.Tithi.Label(),
		TithiNumber:        snap.Tithi.Number,
		Paksha:             snap.Tithi.Paksha,
		Yoga:               snap.Yoga.Name,
		HoraLord:           snap.Hora.Lord,
		DayLord:            snap.Hora.DayLord,
		MoonPhase:          snap.MoonPhase,
		Retrogrades:        retro,
		AshtamaMoon:        in.AshtamaMoon,
		AshtamaLagna:       in.AshtamaLagna,
		IsHoliday:          isHoliday,
		HolidayName:        holidayName,
		IsWeekend:          in.IsWeekend,
		Recommendation:     res.Recommendation,
		Reasons:            res.Reasons,
	}, nil
}
