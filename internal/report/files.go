// Package report renders generated calendars: CSV and ICS exports, chat
// messages and summary statistics.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"astrotrade/internal/interfaces"
	"astrotrade/internal/types"
)

const DefaultDir = "exports"

// Writer saves exports under Dir, one file per profile and range.
type Writer struct {
	Dir string

	// create opens the export file; nil means os.Create.
	create func(name string) (io.WriteCloser, error)
}

func (w Writer) open(name string) (io.WriteCloser, error) {
	if w.create != nil {
		return w.create(name)
	}
	return os.Create(name)
}

func (w Writer) dir() string {
	if w.Dir != "" {
		return w.Dir
	}
	if v := os.Getenv("ASTROTRADE_EXPORT_DIR"); v != "" {
		return v
	}
	return DefaultDir
}

// Path returns the export file path, e.g.
// exports/vijay/astrotrade_vijay_2025-09-01_2025-09-30.csv.
func (w Writer) Path(profile string, start, end time.Time, ext string) string {
	slug := Slug(profile)
	name := fmt.Sprintf("astrotrade_%s_%s_%s.%s", slug, start.Format(types.DateLayout), end.Format(types.DateLayout), ext)
	return filepath.Join(w.dir(), slug, name)
}

// Write exports records through exp and returns the written path.
func (w Writer) Write(exp interfaces.Exporter, profile string, start, end time.Time, records []types.DayRecord) (path string, err error) {
	outPath := w.Path(profile, start, end, exp.Extension())
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	out, err := w.open(outPath)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			path, err = "", cerr
		}
	}()

	buf := bufio.NewWriter(out)
	title := "AstroTrade Calendar - " + profile
	if err := exp.Export(buf, title, records); err != nil {
		return "", err
	}
	if err := buf.Flush(); err != nil {
		return "", err
	}
	return outPath, nil
}

// Exists reports whether an export for the range was already written.
func (w Writer) Exists(profile string, start, end time.Time, ext string) bool {
	_, err := os.Stat(w.Path(profile, start, end, ext))
	return err == nil
}

// Slug lowercases a profile name for file names and ICS UIDs.
func Slug(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "profile"
	}
	return strings.Join(strings.Fields(name), "_")
}

// ExporterFor maps a format name to its exporter.
func ExporterFor(format string) (interfaces.Exporter, error) {
	switch strings.ToLower(format) {
	case "csv":
		return CSVExporter{}, nil
	case "ics", "ical":
		return ICSExporter{}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}
