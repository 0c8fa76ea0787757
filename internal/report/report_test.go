package report

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astrotrade/internal/types"
)

func sampleRecords() []types.DayRecord {
	change := time.Date(2025, 9, 1, 19, 55, 12, 0, types.IST)
	return []types.DayRecord{
		{
			Date:           time.Date(2025, 9, 1, 0, 0, 0, 0, types.IST),
			Weekday:        "Monday",
			Nakshatra:      "Jyeshtha",
			Pada:           4,
			Navatara:       types.Sadhana,
			ChangeTime:     "19:55",
			TransitionAt:   &change,
			Tithi:          "Shukla Navami",
			Yoga:           "Ayushman",
			HoraLord:       types.Moon,
			MoonPhase:      types.FirstQuarter,
			Retrogrades:    []types.Body{types.Saturn},
			Recommendation: types.Trade,
			Reasons:        []string{"Favorable Navatara: Sadhana"},
		},
		{
			Date:               time.Date(2025, 9, 2, 0, 0, 0, 0, types.IST),
			Weekday:            "Tuesday",
			Nakshatra:          "Mula",
			Pada:               1,
			Navatara:           types.Naidhana,
			ChangeTime:         "11:20",
			ChangeDuringMarket: true,
			Tithi:              "Shukla Dashami",
			Yoga:               "Saubhagya",
			HoraLord:           types.Mars,
			MoonPhase:          types.WaxingGibbous,
			Recommendation:     types.Avoid,
			Reasons:            []string{"Navatara: Naidhana"},
		},
		{
			Date:           time.Date(2025, 9, 6, 0, 0, 0, 0, types.IST),
			Weekday:        "Saturday",
			Nakshatra:      "Dhanishtha",
			Navatara:       types.Sampat,
			ChangeTime:     types.NoChange,
			MoonPhase:      types.WaxingGibbous,
			IsWeekend:      true,
			Recommendation: types.Closed,
			Reasons:        []string{"Weekend"},
		},
	}
}

func TestCSVExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSVExporter{}.Export(&buf, "ignored", sampleRecords()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "date,weekday,nakshatra,navatara,change_time,recommendation,reasons,tithi,yoga,moon_phase", lines[0])
	assert.Equal(t, "2025-09-01,Monday,Jyeshtha,Sadhana,19:55,TRADE,Favorable Navatara: Sadhana,Shukla Navami,Ayushman,First Quarter", lines[1])
	assert.Equal(t, "2025-09-06,Saturday,Dhanishtha,Sampat,No change,CLOSED,Weekend,,,Waxing Gibbous", lines[3])
	assert.Equal(t, "csv", CSVExporter{}.Extension())
}

func TestICSExporter(t *testing.T) {
	exp := ICSExporter{Now: func() time.Time { return time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC) }}

	var buf bytes.Buffer
	require.NoError(t, exp.Export(&buf, "AstroTrade Calendar - Vijay", sampleRecords()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Equal(t, 3, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "SUMMARY:TRADE · Jyeshtha (Sadhana)")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20250901")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20250902")
	assert.Contains(t, out, "DTSTAMP:20250831T120000Z")
	assert.Contains(t, out, "UID:astrotrade_calendar_-_vijay-20250901@astrotrade.local")
	assert.Contains(t, out, "CATEGORIES:AVOID")
}

func TestMessage(t *testing.T) {
	recs := sampleRecords()

	msg := Message(recs[0])
	assert.Contains(t, msg, "🌞 *01 Sep 2025*, Monday")
	assert.Contains(t, msg, "🌙 *Jyeshtha* (Pada 4) • Sadhana")
	assert.Contains(t, msg, "✅ *TRADE* day")
	assert.Contains(t, msg, "Nakshatra changes at 19:55 (outside market hours)")
	assert.Contains(t, msg, "Hora: Moon • First Quarter")
	assert.Contains(t, msg, "Retrograde: Saturn")
	assert.True(t, strings.HasSuffix(msg, "_Reason: Favorable Navatara: Sadhana_"))

	msg = Message(recs[1])
	assert.Contains(t, msg, "🚫 *AVOID* day")
	assert.Contains(t, msg, "(during market hours 🔺)")

	msg = Message(recs[2])
	assert.Contains(t, msg, "🔒 *CLOSED* day")
	assert.NotContains(t, msg, "Nakshatra changes")
}

func TestEmoji_Unknown(t *testing.T) {
	assert.Equal(t, "⚠️", Emoji(types.Light))
	assert.Equal(t, "📊", Emoji("MAYBE"))
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleRecords())
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Counts[types.Trade])
	assert.Equal(t, 0, s.Counts[types.Light])
	assert.Equal(t, 1, s.Counts[types.Closed])
	assert.InDelta(t, 33.33, s.Percentages[types.Avoid], 0.01)
	assert.Equal(t, 0.0, s.Percentages[types.Light])
	assert.Equal(t, 1, s.MarketHourTransitions)
	assert.Equal(t, 1, s.Navatara["Naidhana"])
	assert.Equal(t, 1, s.VerdictByNavatara["Sadhana"][types.Trade])
	assert.Equal(t, 2, s.TradingDays())
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Total)
	assert.Len(t, s.Counts, 4)
	assert.Equal(t, 0.0, s.Percentages[types.Trade])
}

func TestWriter(t *testing.T) {
	w := Writer{Dir: t.TempDir()}
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, types.IST)
	end := time.Date(2025, 9, 6, 0, 0, 0, 0, types.IST)

	assert.False(t, w.Exists("Vijay Kumar", start, end, "csv"))
	path, err := w.Write(CSVExporter{}, "Vijay Kumar", start, end, sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.Dir, "vijay_kumar", "astrotrade_vijay_kumar_2025-09-01_2025-09-06.csv"), path)
	assert.True(t, w.Exists("Vijay Kumar", start, end, "csv"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "date,weekday"))
}

type failingClose struct {
	bytes.Buffer
}

func (*failingClose) Close() error { return errors.New("disk full") }

func TestWriter_CloseError(t *testing.T) {
	sink := &failingClose{}
	w := Writer{
		Dir:    t.TempDir(),
		create: func(string) (io.WriteCloser, error) { return sink, nil },
	}
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, types.IST)

	path, err := w.Write(CSVExporter{}, "Vijay", start, start, sampleRecords())
	require.EqualError(t, err, "disk full")
	assert.Empty(t, path)
	assert.True(t, strings.HasPrefix(sink.String(), "date,weekday"))
}

func TestExporterFor(t *testing.T) {
	exp, err := ExporterFor("ICS")
	require.NoError(t, err)
	assert.Equal(t, "ics", exp.Extension())

	_, err = ExporterFor("xlsx")
	assert.Error(t, err)
}
