package report

import (
	"astrotrade/internal/types"
)

// Stats aggregates a generated calendar.
type Stats struct {
	Total                 int                                     `json:"total"`
	Counts                map[types.Recommendation]int            `json:"counts"`
	Percentages           map[types.Recommendation]float64        `json:"percentages"`
	MarketHourTransitions int                                     `json:"market_hour_transitions"`
	Navatara              map[string]int                          `json:"navatara"`
	VerdictByNavatara     map[string]map[types.Recommendation]int `json:"verdict_by_navatara"`
	Holidays              []string                                `json:"holidays,omitempty"`
}

// Summarize counts verdicts and navataras. Every verdict appears in Counts
// and Percentages, zero when absent.
func Summarize(records []types.DayRecord) Stats {
	s := Stats{
		Total:             len(records),
		Counts:            make(map[types.Recommendation]int, len(types.Recommendations)),
		Percentages:       make(map[types.Recommendation]float64, len(types.Recommendations)),
		Navatara:          map[string]int{},
		VerdictByNavatara: map[string]map[types.Recommendation]int{},
	}
	for _, rec := range types.Recommendations {
		s.Counts[rec] = 0
	}

	for _, r := range records {
		s.Counts[r.Recommendation]++
		if r.ChangeDuringMarket {
			s.MarketHourTransitions++
		}
		nav := r.Navatara.String()
		s.Navatara[nav]++
		if s.VerdictByNavatara[nav] == nil {
			s.VerdictByNavatara[nav] = map[types.Recommendation]int{}
		}
		s.VerdictByNavatara[nav][r.Recommendation]++
		if r.IsHoliday {
			s.Holidays = append(s.Holidays, r.DateString()+" "+r.HolidayName)
		}
	}

	for rec, n := range s.Counts {
		if s.Total > 0 {
			s.Percentages[rec] = float64(n) / float64(s.Total) * 100
		} else {
			s.Percentages[rec] = 0
		}
	}
	return s
}

// TradingDays is the number of days the market is open.
func (s Stats) TradingDays() int {
	return s.Total - s.Counts[types.Closed]
}
