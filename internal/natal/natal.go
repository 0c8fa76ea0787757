// Package natal resolves the birth-chart facts a calendar run needs once
// per profile: natal nakshatra, natal moon sign and lagna.
package natal

import (
	"fmt"
	"time"

	"astrotrade/internal/ephemeris"
	"astrotrade/internal/interfaces"
	"astrotrade/internal/panchanga"
	"astrotrade/internal/types"
)

const (
	LagnaDeclared = "declared"
	LagnaComputed = "computed"
)

// Chart is the memoised natal data for one profile.
type Chart struct {
	Profile       types.BirthProfile `json:"profile"`
	BirthInstant  time.Time          `json:"birth_instant"`
	MoonLongitude float64            `json:"moon_longitude"`
	Nakshatra     types.Nakshatra    `json:"nakshatra"`
	MoonSign      types.Sign         `json:"moon_sign"`
	Lagna         types.Sign         `json:"lagna"`
	LagnaSource   string             `json:"lagna_source"`
	// Ascendant is the sidereal ascendant degree; zero for declared lagnas.
	Ascendant float64 `json:"ascendant,omitempty"`
}

// ayanamsaSource lets the chart use the same correction as the ephemeris.
type ayanamsaSource interface {
	Ayanamsa(jd float64) float64
}

// Resolve validates the profile and computes its chart in the civil zone loc.
func Resolve(eph interfaces.Ephemeris, profile types.BirthProfile, loc *time.Location) (*Chart, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	birth, err := profile.BirthInstant(loc)
	if err != nil {
		return nil, err
	}

	moonLong, _, err := eph.Position(birth, types.Moon)
	if err != nil {
		return nil, fmt.Errorf("natal moon: %w", err)
	}

	chart := &Chart{
		Profile:       profile,
		BirthInstant:  birth,
		MoonLongitude: moonLong,
		Nakshatra:     panchanga.NakshatraOf(moonLong),
		MoonSign:      panchanga.SignOf(moonLong),
	}

	if profile.Lagna != "" {
		sign, err := types.ParseSign(profile.Lagna)
		if err != nil {
			return nil, &types.InvalidProfileError{Field: "lagna", Value: profile.Lagna, Reason: err.Error()}
		}
		chart.Lagna = sign
		chart.LagnaSource = LagnaDeclared
		return chart, nil
	}

	ayanamsa := ephemeris.Lahiri
	if src, ok := eph.(ayanamsaSource); ok {
		ayanamsa = src.Ayanamsa
	}
	asc := SiderealAscendant(birth, profile.Latitude, profile.Longitude, ayanamsa)
	chart.Ascendant = asc
	chart.Lagna = panchanga.SignOf(asc)
	chart.LagnaSource = LagnaComputed
	return chart, nil
}

// SiderealAscendant returns the ascendant degree at t for the given
// coordinates, corrected by the ayanamsa.
func SiderealAscendant(t time.Time, lat, lon float64, ayanamsa func(jd float64) float64) float64 {
	jd := ephemeris.JulianDay(t)
	return ephemeris.Normalize(ephemeris.Ascendant(jd, lat, lon) - ayanamsa(jd))
}

// MoonSignIndex and LagnaIndex feed the ashtama checks.
func (c *Chart) MoonSignIndex() int { return c.MoonSign.Index() }
func (c *Chart) LagnaIndex() int    { return c.Lagna.Index() }
