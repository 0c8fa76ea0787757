package report

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"astrotrade/internal/interfaces"
	"astrotrade/internal/types"
)

// csvRow is one exported day. Column order is the header order.
type csvRow struct {
	Date           string `csv:"date"`
	Weekday        string `csv:"weekday"`
	Nakshatra      string `csv:"nakshatra"`
	Navatara       string `csv:"navatara"`
	ChangeTime     string `csv:"change_time"`
	Recommendation string `csv:"recommendation"`
	Reasons        string `csv:"reasons"`
	Tithi          string `csv:"tithi"`
	Yoga           string `csv:"yoga"`
	MoonPhase      string `csv:"moon_phase"`
}

// CSVExporter writes the spreadsheet-friendly calendar.
type CSVExporter struct{}

var _ interfaces.Exporter = CSVExporter{}

func (CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }
func (CSVExporter) Extension() string   { return "csv" }

func (CSVExporter) Export(w io.Writer, _ string, records []types.DayRecord) error {
	rows := make([]*csvRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, &csvRow{
			Date:           r.DateString(),
			Weekday:        r.Weekday,
			Nakshatra:      r.Nakshatra,
			Navatara:       r.Navatara.String(),
			ChangeTime:     r.ChangeTime,
			Recommendation: string(r.Recommendation),
			Reasons:        r.ReasonText(),
			Tithi:          r.Tithi,
			Yoga:           r.Yoga,
			MoonPhase:      string(r.MoonPhase),
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
