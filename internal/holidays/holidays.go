// Package holidays loads the read-only exchange holiday list.
package holidays

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"astrotrade/internal/types"
)

// Row is one line of the holidays CSV (header: date,description).
type Row struct {
	Date        string `csv:"date" json:"date"`
	Description string `csv:"description" json:"description"`
}

// Set maps civil dates (YYYY-MM-DD) to holiday descriptions. It is never
// mutated after loading.
type Set struct {
	byDate map[string]string
}

// NewSet builds a set from date/description pairs.
func NewSet(entries map[string]string) (*Set, error) {
	s := &Set{byDate: make(map[string]string, len(entries))}
	for d, desc := range entries {
		key, err := normalizeDate(d)
		if err != nil {
			return nil, err
		}
		s.byDate[key] = desc
	}
	return s, nil
}

// Empty returns a set without holidays.
func Empty() *Set {
	return &Set{byDate: map[string]string{}}
}

// Load reads a holidays CSV file.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open holidays %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses holidays CSV content.
func Read(r io.Reader) (*Set, error) {
	var rows []*Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("parse holidays csv: %w", err)
	}
	entries := make(map[string]string, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(row.Date) == "" {
			continue
		}
		entries[row.Date] = strings.TrimSpace(row.Description)
	}
	return NewSet(entries)
}

// Lookup returns the holiday description for the civil date of t.
func (s *Set) Lookup(t time.Time) (string, bool) {
	if s == nil {
		return "", false
	}
	desc, ok := s.byDate[t.Format(types.DateLayout)]
	return desc, ok
}

// Contains reports whether t falls on a holiday.
func (s *Set) Contains(t time.Time) bool {
	_, ok := s.Lookup(t)
	return ok
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.byDate)
}

// Rows returns the holidays sorted by date.
func (s *Set) Rows() []Row {
	out := make([]Row, 0, s.Len())
	if s == nil {
		return out
	}
	for d, desc := range s.byDate {
		out = append(out, Row{Date: d, Description: desc})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// normalizeDate accepts YYYY-MM-DD and DD-Mon-YYYY (the NSE circular format).
func normalizeDate(v string) (string, error) {
	v = strings.TrimSpace(v)
	for _, layout := range []string{types.DateLayout, "02-Jan-2006", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(types.DateLayout), nil
		}
	}
	return "", fmt.Errorf("invalid holiday date %q", v)
}
