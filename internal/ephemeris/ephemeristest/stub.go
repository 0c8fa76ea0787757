// Package ephemeristest provides a deterministic linear-motion ephemeris
// so rule and calendar logic can be tested without real astronomy.
package ephemeristest

import (
	"sync/atomic"
	"time"

	"astrotrade/internal/ephemeris"
	"astrotrade/internal/interfaces"
	"astrotrade/internal/types"
)

// Stub moves every body at a constant daily speed from its longitude at Epoch.
type Stub struct {
	Epoch      time.Time
	Longitudes map[types.Body]float64
	Speeds     map[types.Body]float64

	calls atomic.Int64
}

var _ interfaces.Ephemeris = (*Stub)(nil)

// New returns a stub with every supported body at 0 degrees and the Moon
// moving at moonSpeed degrees/day. Planets move forward at 1 degree/day.
func New(epoch time.Time, moonSpeed float64) *Stub {
	s := &Stub{
		Epoch:      epoch,
		Longitudes: map[types.Body]float64{},
		Speeds:     map[types.Body]float64{},
	}
	for _, b := range types.Bodies {
		s.Longitudes[b] = 0
		s.Speeds[b] = 1
	}
	s.Speeds[types.Sun] = 0
	s.Speeds[types.Moon] = moonSpeed
	return s
}

// With sets a body's longitude at Epoch and its daily speed.
func (s *Stub) With(body types.Body, longitude, speed float64) *Stub {
	s.Longitudes[body] = longitude
	s.Speeds[body] = speed
	return s
}

func (s *Stub) Position(t time.Time, body types.Body) (float64, float64, error) {
	s.calls.Add(1)
	base, ok := s.Longitudes[body]
	if !ok {
		return 0, 0, &ephemeris.UnsupportedBodyError{Body: body}
	}
	days := ephemeris.JulianDay(t) - ephemeris.JulianDay(s.Epoch)
	speed := s.Speeds[body]
	return ephemeris.Normalize(base + speed*days), speed, nil
}

// Calls returns how many positions were requested.
func (s *Stub) Calls() int64 {
	return s.calls.Load()
}
