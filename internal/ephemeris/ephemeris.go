// Package ephemeris positions the Sun, Moon and the five classical planets
// on the sidereal (Lahiri) zodiac using a low-precision orbital-element
// ephemeris. Accuracy is in the order of arc-minutes for the Sun and Moon
// over a few centuries around J2000, which is well inside a nakshatra pada.
package ephemeris

import (
	"fmt"
	"time"

	"astrotrade/internal/interfaces"
	"astrotrade/internal/types"
)

// UnsupportedBodyError is returned for bodies the ephemeris cannot position.
type UnsupportedBodyError struct {
	Body types.Body
}

func (e *UnsupportedBodyError) Error() string {
	return fmt.Sprintf("unsupported body %q", string(e.Body))
}

// Ephemeris implements interfaces.Ephemeris.
type Ephemeris struct {
	ayanamsa func(jd float64) float64
}

var _ interfaces.Ephemeris = (*Ephemeris)(nil)

// New returns an ephemeris using the Lahiri ayanamsa.
func New() *Ephemeris {
	return &Ephemeris{ayanamsa: Lahiri}
}

// Position returns the sidereal longitude and daily motion of body at t.
func (e *Ephemeris) Position(t time.Time, body types.Body) (float64, float64, error) {
	if !Supported(body) {
		return 0, 0, &UnsupportedBodyError{Body: body}
	}
	jd := JulianDay(t)
	lon := e.Sidereal(jd, body)
	speed := wrap180(e.Sidereal(jd+0.5, body) - e.Sidereal(jd-0.5, body))
	return lon, speed, nil
}

// Sidereal returns the sidereal longitude of a supported body at jd.
func (e *Ephemeris) Sidereal(jd float64, body types.Body) float64 {
	return Normalize(Tropical(jd, body) - e.ayanamsa(jd))
}

// Tropical returns the geocentric tropical longitude (equinox of date).
func Tropical(jd float64, body types.Body) float64 {
	d := dayNumber(jd)
	switch body {
	case types.Sun:
		lon, _ := sun(d)
		return lon
	case types.Moon:
		return moon(d)
	default:
		return planet(body, d)
	}
}

// Supported reports whether body can be positioned.
func Supported(body types.Body) bool {
	for _, b := range types.Bodies {
		if b == body {
			return true
		}
	}
	return false
}

// Ayanamsa returns the precession correction subtracted from tropical
// longitudes at jd.
func (e *Ephemeris) Ayanamsa(jd float64) float64 {
	return e.ayanamsa(jd)
}
