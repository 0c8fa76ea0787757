package panchanga

import (
	"fmt"
	"time"

	"astrotrade/internal/interfaces"
	"astrotrade/internal/types"
)

// ReportedRetrogrades are the planets whose retrograde state is reported
// per day, in report order.
var ReportedRetrogrades = []types.Body{types.Mercury, types.Jupiter, types.Saturn}

// Snapshot is the full panchanga at one instant.
type Snapshot struct {
	At        time.Time
	SunLong   float64
	MoonLong  float64
	Nakshatra types.Nakshatra
	MoonSign  types.Sign
	Tithi     types.Tithi
	Yoga      types.Yoga
	Hora      types.Hora
	MoonPhase types.MoonPhase
}

// Calculator evaluates panchanga values against an ephemeris.
type Calculator struct {
	eph interfaces.Ephemeris
}

func NewCalculator(eph interfaces.Ephemeris) *Calculator {
	return &Calculator{eph: eph}
}

// Snapshot reads the Sun and Moon once and derives every value from them.
func (c *Calculator) Snapshot(t time.Time) (Snapshot, error) {
	sunLong, _, err := c.eph.Position(t, types.Sun)
	if err != nil {
		return Snapshot{}, fmt.Errorf("sun position: %w", err)
	}
	moonLong, _, err := c.eph.Position(t, types.Moon)
	if err != nil {
		return Snapshot{}, fmt.Errorf("moon position: %w", err)
	}
	return Snapshot{
		At:        t,
		SunLong:   sunLong,
		MoonLong:  moonLong,
		Nakshatra: NakshatraOf(moonLong),
		MoonSign:  SignOf(moonLong),
		Tithi:     TithiOf(sunLong, moonLong),
		Yoga:      YogaOf(sunLong, moonLong),
		Hora:      HoraOf(t),
		MoonPhase: MoonPhaseOf(sunLong, moonLong),
	}, nil
}

// MoonNakshatraIndex returns the Moon's nakshatra index at t.
func (c *Calculator) MoonNakshatraIndex(t time.Time) (int, error) {
	moonLong, _, err := c.eph.Position(t, types.Moon)
	if err != nil {
		return 0, err
	}
	return NakshatraIndex(moonLong), nil
}

// IsRetrograde reports negative daily motion. Only the five classical
// planets can be retrograde; the Sun and Moon always report false.
func (c *Calculator) IsRetrograde(t time.Time, body types.Body) (bool, error) {
	switch body {
	case types.Mercury, types.Venus, types.Mars, types.Jupiter, types.Saturn:
	default:
		return false, nil
	}
	_, speed, err := c.eph.Position(t, body)
	if err != nil {
		return false, err
	}
	return speed < 0, nil
}

// Retrogrades returns the subset of bodies retrograde at t, preserving order.
func (c *Calculator) Retrogrades(t time.Time, bodies []types.Body) ([]types.Body, error) {
	out := make([]types.Body, 0, len(bodies))
	for _, b := range bodies {
		r, err := c.IsRetrograde(t, b)
		if err != nil {
			return nil, fmt.Errorf("retrograde %s: %w", b, err)
		}
		if r {
			out = append(out, b)
		}
	}
	return out, nil
}
