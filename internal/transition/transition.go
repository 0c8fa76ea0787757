// Package transition finds the instant the Moon changes nakshatra within a
// civil day and classifies it against the market session.
package transition

import (
	"fmt"
	"math"
	"time"

	"astrotrade/internal/ephemeris"
	"astrotrade/internal/interfaces"
	"astrotrade/internal/panchanga"
	"astrotrade/internal/types"
)

// DefaultTolerance is the bisection bracket width in days (about 8.6 s).
const DefaultTolerance = 0.0001

// Window is a civil time-of-day range, inclusive at both ends.
type Window struct {
	Open  time.Duration
	Close time.Duration
}

// NSESession is the 09:15-15:30 cash-market session.
var NSESession = Window{
	Open:  9*time.Hour + 15*time.Minute,
	Close: 15*time.Hour + 30*time.Minute,
}

// Contains reports whether the clock time of t lies inside the window.
func (w Window) Contains(t time.Time) bool {
	h, m, s := t.Clock()
	tod := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second
	return tod >= w.Open && tod <= w.Close
}

type Locator struct {
	eph       interfaces.Ephemeris
	loc       *time.Location
	tolerance float64
	window    Window
}

type Option func(*Locator)

// WithTolerance sets the bisection tolerance in days.
func WithTolerance(days float64) Option {
	return func(l *Locator) {
		if days > 0 {
			l.tolerance = days
		}
	}
}

// WithWindow overrides the market session.
func WithWindow(w Window) Option {
	return func(l *Locator) {
		l.window = w
	}
}

func New(eph interfaces.Ephemeris, loc *time.Location, opts ...Option) *Locator {
	l := &Locator{
		eph:       eph,
		loc:       loc,
		tolerance: DefaultTolerance,
		window:    NSESession,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// MaxIterations is the number of bisection steps needed to shrink a one-day
// bracket below tolerance.
func MaxIterations(tolerance float64) int {
	return int(math.Ceil(math.Log2(1 / tolerance)))
}

// Find returns the civil instant the Moon leaves the nakshatra it occupied
// at 00:00 on date, or nil if the index at the following midnight is the
// same. A double crossing inside one day is not detected.
func (l *Locator) Find(date time.Time) (*time.Time, error) {
	start := types.CivilDate(date, l.loc)
	end := start.AddDate(0, 0, 1)

	lo := ephemeris.JulianDay(start)
	hi := ephemeris.JulianDay(end)

	startIdx, err := l.indexAt(lo)
	if err != nil {
		return nil, err
	}
	endIdx, err := l.indexAt(hi)
	if err != nil {
		return nil, err
	}
	if startIdx == endIdx {
		return nil, nil
	}

	for hi-lo > l.tolerance {
		mid := (lo + hi) / 2
		idx, err := l.indexAt(mid)
		if err != nil {
			return nil, err
		}
		if idx == startIdx {
			lo = mid
		} else {
			hi = mid
		}
	}

	// Minute resolution, the same value change_time prints and the
	// session window is judged on.
	at := ephemeris.FromJulianDay(hi, l.loc).Truncate(time.Minute)
	return &at, nil
}

// InMarketHours reports whether a transition falls inside the session.
func (l *Locator) InMarketHours(t *time.Time) bool {
	if t == nil {
		return false
	}
	return l.window.Contains(t.In(l.loc))
}

func (l *Locator) indexAt(jd float64) (int, error) {
	lon, _, err := l.eph.Position(ephemeris.FromJulianDay(jd, l.loc), types.Moon)
	if err != nil {
		return 0, fmt.Errorf("moon position: %w", err)
	}
	return panchanga.NakshatraIndex(lon), nil
}

// Format renders a transition for reports: "HH:MM" or "No change".
func Format(t *time.Time) string {
	if t == nil {
		return types.NoChange
	}
	return t.Format("15:04")
}
