package report

import (
	"fmt"
	"strings"

	"astrotrade/internal/types"
)

var verdictEmoji = map[types.Recommendation]string{
	types.Trade:  "✅",
	types.Light:  "⚠️",
	types.Avoid:  "🚫",
	types.Closed: "🔒",
}

// Emoji returns the marker printed next to a verdict.
func Emoji(r types.Recommendation) string {
	if e, ok := verdictEmoji[r]; ok {
		return e
	}
	return "📊"
}

// Message formats a day as a Markdown chat alert.
func Message(r types.DayRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌞 *%s*, %s\n\n", r.Date.Format("02 Jan 2006"), r.Weekday)
	fmt.Fprintf(&b, "🌙 *%s* (Pada %d) • %s\n", r.Nakshatra, r.Pada, r.Navatara)
	fmt.Fprintf(&b, "%s *%s* day\n\n", Emoji(r.Recommendation), r.Recommendation)

	if r.ChangeTime != types.NoChange {
		note := "outside market hours"
		if r.ChangeDuringMarket {
			note = "during market hours 🔺"
		}
		fmt.Fprintf(&b, "Nakshatra changes at %s (%s)\n\n", r.ChangeTime, note)
	}

	fmt.Fprintf(&b, "Hora: %s • %s\n", r.HoraLord, r.MoonPhase)
	if len(r.Retrogrades) > 0 {
		fmt.Fprintf(&b, "Retrograde: %s\n", r.RetrogradeText())
	}
	if len(r.Reasons) > 0 {
		fmt.Fprintf(&b, "\n_Reason: %s_", r.ReasonText())
	}
	return b.String()
}
