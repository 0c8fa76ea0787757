package types

import (
	"fmt"
	"strings"
)

// Body is a celestial body the ephemeris can position.
type Body string

const (
	Sun     Body = "Sun"
	Moon    Body = "Moon"
	Mercury Body = "Mercury"
	Venus   Body = "Venus"
	Mars    Body = "Mars"
	Jupiter Body = "Jupiter"
	Saturn  Body = "Saturn"
)

// Bodies lists every supported body.
var Bodies = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn}

// Sign is one of the 12 sidereal zodiac signs.
type Sign string

var Signs = []Sign{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// SignAt returns the sign for a 0-based index, wrapping modulo 12.
func SignAt(i int) Sign {
	return Signs[((i%12)+12)%12]
}

// Index returns the 0-based position of the sign, or -1 for unknown names.
func (s Sign) Index() int {
	for i, v := range Signs {
		if v == s {
			return i
		}
	}
	return -1
}

// ParseSign matches a sign name case-insensitively.
func ParseSign(name string) (Sign, error) {
	for _, s := range Signs {
		if strings.EqualFold(string(s), strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown zodiac sign %q", name)
}

// Navatara is the 9-fold cyclic classification of the day's nakshatra
// relative to the natal nakshatra.
type Navatara int

const (
	Janma Navatara = iota
	Sampat
	Vipat
	Kshema
	Pratyari
	Sadhana
	Naidhana
	Mitra
	ParamaMitra
)

var navataraNames = [9]string{
	"Janma", "Sampat", "Vipat", "Kshema", "Pratyari",
	"Sadhana", "Naidhana", "Mitra", "Parama_Mitra",
}

func (n Navatara) String() string {
	if n < 0 || int(n) >= len(navataraNames) {
		return fmt.Sprintf("Navatara(%d)", int(n))
	}
	return navataraNames[n]
}

func (n Navatara) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n *Navatara) UnmarshalText(b []byte) error {
	for i, name := range navataraNames {
		if name == string(b) {
			*n = Navatara(i)
			return nil
		}
	}
	return fmt.Errorf("unknown navatara %q", string(b))
}

// Paksha is the lunar fortnight: waxing (Shukla) or waning (Krishna).
type Paksha string

const (
	Waxing Paksha = "waxing"
	Waning Paksha = "waning"
)

// Label is the Sanskrit name printed in calendars.
func (p Paksha) Label() string {
	if p == Waning {
		return "Krishna"
	}
	return "Shukla"
}

// MoonPhase is one of 8 45-degree buckets of Sun-Moon elongation.
type MoonPhase string

const (
	NewMoon        MoonPhase = "New Moon"
	WaxingCrescent MoonPhase = "Waxing Crescent"
	FirstQuarter   MoonPhase = "First Quarter"
	WaxingGibbous  MoonPhase = "Waxing Gibbous"
	FullMoon       MoonPhase = "Full Moon"
	WaningGibbous  MoonPhase = "Waning Gibbous"
	LastQuarter    MoonPhase = "Last Quarter"
	WaningCrescent MoonPhase = "Waning Crescent"
)

var MoonPhases = []MoonPhase{
	NewMoon, WaxingCrescent, FirstQuarter, WaxingGibbous,
	FullMoon, WaningGibbous, LastQuarter, WaningCrescent,
}
