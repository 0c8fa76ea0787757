package types

import (
	"strings"
	"time"
)

// Recommendation is the trading verdict for a single civil day.
// Exporters colour-code and count on these exact strings.
type Recommendation string

const (
	Trade  Recommendation = "TRADE"
	Light  Recommendation = "LIGHT"
	Avoid  Recommendation = "AVOID"
	Closed Recommendation = "CLOSED"
)

// Recommendations lists every verdict in display order.
var Recommendations = []Recommendation{Trade, Light, Avoid, Closed}

// NoChange is the change_time value for days without a nakshatra transition.
const NoChange = "No change"

// DateLayout is the civil date layout used across records, configs and exports.
const DateLayout = "2006-01-02"

type Nakshatra struct {
	Index     int     `json:"index"`
	Name      string  `json:"name"`
	Pada      int     `json:"pada"`
	Longitude float64 `json:"longitude"`
}

type Tithi struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Paksha Paksha `json:"paksha"`
}

// Label renders the tithi the way calendars print it, e.g. "Shukla Ekadashi".
func (t Tithi) Label() string {
	return t.Paksha.Label() + " " + t.Name
}

type Yoga struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

type Hora struct {
	Lord    Body `json:"lord"`
	DayLord Body `json:"day_lord"`
}

// DayRecord is the per-day output of the calendar generator. Field names are
// a stable contract for the exporters and the HTTP API.
type DayRecord struct {
	Date               time.Time      `json:"date"`
	Weekday            string         `json:"weekday"`
	Nakshatra          string         `json:"nakshatra"`
	NakshatraIndex     int            `json:"nakshatra_index"`
	Pada               int            `json:"pada"`
	Navatara           Navatara       `json:"navatara"`
	MoonSign           Sign           `json:"moon_sign"`
	ChangeTime         string         `json:"change_time"`
	TransitionAt       *time.Time     `json:"transition_at"`
	ChangeDuringMarket bool           `json:"change_during_market"`
	Tithi              string         `json:"tithi"`
	TithiNumber        int            `json:"tithi_number"`
	Paksha             Paksha         `json:"paksha"`
	Yoga               string         `json:"yoga"`
	HoraLord           Body           `json:"hora_lord"`
	DayLord            Body           `json:"day_lord"`
	MoonPhase          MoonPhase      `json:"moon_phase"`
	Retrogrades        []Body         `json:"retrogrades"`
	AshtamaMoon        bool           `json:"ashtama_moon"`
	AshtamaLagna       bool           `json:"ashtama_lagna"`
	IsHoliday          bool           `json:"is_holiday"`
	HolidayName        string         `json:"holiday_name"`
	IsWeekend          bool           `json:"is_weekend"`
	Recommendation     Recommendation `json:"recommendation"`
	Reasons            []string       `json:"reasons"`
}

// ReasonText joins the reasons with " | " for exports and messages.
func (d DayRecord) ReasonText() string {
	return strings.Join(d.Reasons, " | ")
}

// RetrogradeText renders the retrograde set, "None" when empty.
func (d DayRecord) RetrogradeText() string {
	if len(d.Retrogrades) == 0 {
		return "None"
	}
	names := make([]string, len(d.Retrogrades))
	for i, b := range d.Retrogrades {
		names[i] = string(b)
	}
	return strings.Join(names, ", ")
}

// DateString formats the record's civil date.
func (d DayRecord) DateString() string {
	return d.Date.Format(DateLayout)
}
