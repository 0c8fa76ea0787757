package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"astrotrade/internal/interfaces"
	"astrotrade/internal/types"
)

const (
	icsProdID = "-//astrotrade//Trading Calendar//EN"
	icsDomain = "astrotrade.local"
)

// ICSExporter writes one all-day event per record.
type ICSExporter struct {
	// Now stamps DTSTAMP; time.Now when nil.
	Now func() time.Time
}

var _ interfaces.Exporter = ICSExporter{}

func (ICSExporter) ContentType() string { return "text/calendar; charset=utf-8" }
func (ICSExporter) Extension() string   { return "ics" }

func (e ICSExporter) Export(w io.Writer, title string, records []types.DayRecord) error {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	stamp := now().UTC()

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, icsProdID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	if title != "" {
		cal.Props.SetText("X-WR-CALNAME", title)
	}

	for _, r := range records {
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, eventUID(title, r))
		dtStamp := ical.NewProp(ical.PropDateTimeStamp)
		dtStamp.SetDateTime(stamp)
		event.Props.Set(dtStamp)
		event.Props.SetText(ical.PropSummary, Summary(r))
		event.Props.SetText(ical.PropDescription, description(r))
		event.Props.SetText(ical.PropCategories, string(r.Recommendation))

		start := ical.NewProp(ical.PropDateTimeStart)
		start.SetDate(r.Date)
		event.Props.Set(start)

		end := ical.NewProp(ical.PropDateTimeEnd)
		end.SetDate(r.Date.AddDate(0, 0, 1))
		event.Props.Set(end)

		cal.Children = append(cal.Children, event.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode ics: %w", err)
	}
	return nil
}

// Summary is the one-line event title, e.g. "TRADE · Rohini (Sadhana)".
func Summary(r types.DayRecord) string {
	return fmt.Sprintf("%s · %s (%s)", r.Recommendation, r.Nakshatra, r.Navatara)
}

func description(r types.DayRecord) string {
	lines := []string{
		"Reasons: " + r.ReasonText(),
		"Nakshatra change: " + r.ChangeTime,
		"Tithi: " + r.Tithi,
		"Yoga: " + r.Yoga,
		"Moon phase: " + string(r.MoonPhase),
		"Retrograde: " + r.RetrogradeText(),
	}
	if r.IsHoliday {
		lines = append(lines, "Holiday: "+r.HolidayName)
	}
	return strings.Join(lines, "\n")
}

func eventUID(title string, r types.DayRecord) string {
	return fmt.Sprintf("%s-%s@%s", Slug(title), r.Date.Format("20060102"), icsDomain)
}
