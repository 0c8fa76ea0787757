package types

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// BirthProfile is the immutable natal input of a calendar run. Date and
// Time are civil values in the engine's fixed zone.
type BirthProfile struct {
	Name      string  `json:"name" yaml:"name"`
	Date      string  `json:"dob" yaml:"dob"`
	Time      string  `json:"tob" yaml:"tob"`
	Place     string  `json:"pob,omitempty" yaml:"pob"`
	Latitude  float64 `json:"lat" yaml:"lat"`
	Longitude float64 `json:"lon" yaml:"lon"`
	// Lagna is the declared ascendant sign. Empty means compute it.
	Lagna string `json:"lagna,omitempty" yaml:"lagna"`
}

// InvalidProfileError reports an unparseable or out-of-range profile field.
type InvalidProfileError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidProfileError) Error() string {
	return fmt.Sprintf("invalid profile %s %q: %s", e.Field, e.Value, e.Reason)
}

// ParseBirthProfile builds and validates a profile from raw form values.
func ParseBirthProfile(name, dob, tob string, lat, lon float64, lagna string) (BirthProfile, error) {
	p := BirthProfile{
		Name:      name,
		Date:      strings.TrimSpace(dob),
		Time:      strings.TrimSpace(tob),
		Latitude:  lat,
		Longitude: lon,
		Lagna:     strings.TrimSpace(lagna),
	}
	if err := p.Validate(); err != nil {
		return BirthProfile{}, err
	}
	return p, nil
}

// Validate checks date, time, coordinates and the declared lagna.
func (p BirthProfile) Validate() error {
	if _, err := time.Parse(DateLayout, p.Date); err != nil {
		return &InvalidProfileError{Field: "dob", Value: p.Date, Reason: "expected YYYY-MM-DD"}
	}
	if _, err := time.Parse("15:04", p.Time); err != nil {
		return &InvalidProfileError{Field: "tob", Value: p.Time, Reason: "expected HH:MM"}
	}
	if !finite(p.Latitude) || p.Latitude < -90 || p.Latitude > 90 {
		return &InvalidProfileError{Field: "lat", Value: fmt.Sprintf("%g", p.Latitude), Reason: "must be within [-90, 90]"}
	}
	if !finite(p.Longitude) || p.Longitude < -180 || p.Longitude > 180 {
		return &InvalidProfileError{Field: "lon", Value: fmt.Sprintf("%g", p.Longitude), Reason: "must be within [-180, 180]"}
	}
	if p.Lagna != "" {
		if _, err := ParseSign(p.Lagna); err != nil {
			return &InvalidProfileError{Field: "lagna", Value: p.Lagna, Reason: "not a zodiac sign"}
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// BirthInstant combines date and time in the given civil zone.
func (p BirthProfile) BirthInstant(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" 15:04", p.Date+" "+p.Time, loc)
	if err != nil {
		return time.Time{}, &InvalidProfileError{Field: "dob/tob", Value: p.Date + " " + p.Time, Reason: err.Error()}
	}
	return t, nil
}
