// Package panchanga derives the Vedic time classifications (nakshatra,
// tithi, yoga, hora, moon phase, ashtama) from sidereal longitudes and
// civil clock time.
package panchanga

import (
	"math"
	"time"

	"astrotrade/internal/types"
)

const (
	// NakshatraSpan is the width of one nakshatra (and one yoga) in degrees.
	NakshatraSpan = 360.0 / 27.0
	padaSpan      = NakshatraSpan / 4
	tithiSpan     = 12.0
	signSpan      = 30.0
	phaseSpan     = 45.0
)

// NakshatraOf buckets a sidereal longitude into its nakshatra and pada.
func NakshatraOf(longitude float64) types.Nakshatra {
	longitude = normalize(longitude)
	idx := clampIndex(int(longitude/NakshatraSpan), 27)
	pada := clampIndex(int(math.Mod(longitude, NakshatraSpan)/padaSpan), 4) + 1
	return types.Nakshatra{
		Index:     idx,
		Name:      nakshatras[idx],
		Pada:      pada,
		Longitude: longitude,
	}
}

// NakshatraIndex is NakshatraOf(longitude).Index without the allocation of names.
func NakshatraIndex(longitude float64) int {
	return clampIndex(int(normalize(longitude)/NakshatraSpan), 27)
}

// SignOf returns the zodiac sign containing the longitude.
func SignOf(longitude float64) types.Sign {
	return types.SignAt(clampIndex(int(normalize(longitude)/signSpan), 12))
}

// TithiOf returns the lunar day for the given Sun and Moon longitudes.
func TithiOf(sunLong, moonLong float64) types.Tithi {
	diff := normalize(moonLong - sunLong)
	n := clampIndex(int(diff/tithiSpan), 30) + 1
	paksha := types.Waxing
	if n > 15 {
		paksha = types.Waning
	}
	return types.Tithi{Number: n, Name: tithis[n-1], Paksha: paksha}
}

// YogaOf returns the yoga of the summed Sun and Moon longitudes.
func YogaOf(sunLong, moonLong float64) types.Yoga {
	idx := clampIndex(int(normalize(sunLong+moonLong)/NakshatraSpan), 27)
	return types.Yoga{Index: idx, Name: yogas[idx]}
}

// MoonPhaseOf buckets the Sun-Moon elongation into 8 named phases of 45
// degrees starting with New Moon at [0, 45).
func MoonPhaseOf(sunLong, moonLong float64) types.MoonPhase {
	angle := normalize(moonLong - sunLong)
	return types.MoonPhases[clampIndex(int(angle/phaseSpan), 8)]
}

// Ashtama reports whether current is the 8th sign counting reference as 1st.
func Ashtama(current, reference int) bool {
	return ((current-reference)%12+12)%12 == 7
}

// dayLords is indexed Monday=0..Sunday=6.
// The same sequence drives the hourly rotation.
var dayLords = [7]types.Body{
	types.Moon, types.Mars, types.Mercury, types.Jupiter, types.Venus, types.Saturn, types.Sun,
}

// NominalSunrise is the fixed civil sunrise used for hora. It is a
// simplification: hora is not computed from true sunrise.
const NominalSunrise = 6 * time.Hour

// HoraOf returns the planetary hour lord for a civil instant. Hours are
// counted from a nominal 06:00 sunrise; before sunrise the rotation runs
// backwards from the previous day's lord.
func HoraOf(t time.Time) types.Hora {
	wd := MondayIndex(t.Weekday())
	sunrise := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).Add(NominalSunrise)

	var lord int
	if t.Before(sunrise) {
		h := int(sunrise.Sub(t).Hours()) % 7
		prev := (wd + 6) % 7
		lord = (prev + 12 - h) % 7
	} else {
		h := int(t.Sub(sunrise).Hours()) % 7
		lord = (wd + h) % 7
	}
	return types.Hora{Lord: dayLords[lord], DayLord: dayLords[wd]}
}

// MondayIndex maps time.Weekday (Sunday=0) onto Monday=0..Sunday=6.
func MondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// IsWeekend reports Saturday and Sunday.
func IsWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

func normalize(x float64) float64 {
	x = math.Mod(x, 360)
	if x < 0 {
		x += 360
	}
	if x >= 360 {
		x = 0
	}
	return x
}

// clampIndex guards float rounding right below a boundary of 360.
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
