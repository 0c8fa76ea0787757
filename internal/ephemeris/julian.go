package ephemeris

import (
	"math"
	"time"
)

const (
	unixEpochJD = 2440587.5
	j2000       = 2451545.0
	secondsDay  = 86400.0
)

// JulianDay converts an instant to a Julian Day on the UT scale. The civil
// offset is removed by normalising to UTC first.
func JulianDay(t time.Time) float64 {
	t = t.UTC()
	return unixEpochJD + float64(t.Unix())/secondsDay + float64(t.Nanosecond())/(secondsDay*1e9)
}

// FromJulianDay converts a Julian Day back into an instant in loc.
func FromJulianDay(jd float64, loc *time.Location) time.Time {
	secs := (jd - unixEpochJD) * secondsDay
	whole := math.Floor(secs)
	nanos := math.Round((secs - whole) * 1e9)
	return time.Unix(int64(whole), int64(nanos)).In(loc)
}

// centuries returns Julian centuries since J2000.0.
func centuries(jd float64) float64 {
	return (jd - j2000) / 36525.0
}
