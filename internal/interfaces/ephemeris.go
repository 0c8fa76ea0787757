package interfaces

import (
	"time"

	"astrotrade/internal/types"
)

// Ephemeris positions bodies on the sidereal zodiac.
type Ephemeris interface {
	// Position returns the geocentric sidereal longitude in [0, 360) and the
	// daily motion in degrees/day (negative when retrograde).
	Position(t time.Time, body types.Body) (longitude, speed float64, err error)
}
