package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astrotrade/internal/ephemeris/ephemeristest"
	"astrotrade/internal/holidays"
	"astrotrade/internal/metrics"
	"astrotrade/internal/store"
	"astrotrade/internal/types"
)

const cfgYAML = `
default_days: 7
workers: 2
profiles:
  Vijay:
    dob: "1983-11-21"
    tob: "05:50"
    lat: 28.661
    lon: 77.133
    lagna: "Libra"
`

func newService(t *testing.T) (*Service, *ephemeristest.Stub) {
	t.Helper()
	cfg, err := store.ParseConfig([]byte(cfgYAML))
	require.NoError(t, err)
	eph := ephemeristest.New(time.Date(2025, 9, 1, 0, 0, 0, 0, types.IST), 0).
		With(types.Moon, 1, 0).
		With(types.Sun, 270, 0)
	hol, err := holidays.NewSet(map[string]string{"2025-09-03": "Test"})
	require.NoError(t, err)
	svc, err := New(cfg, eph, hol, metrics.NewRegistry())
	require.NoError(t, err)
	return svc, eph
}

func TestChart_Memoised(t *testing.T) {
	svc, eph := newService(t)
	p, err := svc.Profile("Vijay")
	require.NoError(t, err)

	a, err := svc.Chart(p)
	require.NoError(t, err)
	calls := eph.Calls()

	b, err := svc.Chart(p)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, calls, eph.Calls())
	assert.Equal(t, types.Sign("Libra"), a.Lagna)
}

func TestChart_SameBirthDataKeepsName(t *testing.T) {
	svc, _ := newService(t)
	p, err := svc.Profile("Vijay")
	require.NoError(t, err)
	twin := p
	twin.Name = "Ajay"

	a, err := svc.Chart(p)
	require.NoError(t, err)
	b, err := svc.Chart(twin)
	require.NoError(t, err)

	assert.Equal(t, "Vijay", a.Profile.Name)
	assert.Equal(t, "Ajay", b.Profile.Name)
	assert.Equal(t, a.Nakshatra, b.Nakshatra)
	assert.Equal(t, a.Lagna, b.Lagna)
}

func TestChart_InvalidProfile(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Chart(types.BirthProfile{Date: "bad", Time: "05:50"})
	var ipe *types.InvalidProfileError
	assert.True(t, errors.As(err, &ipe))
}

func TestCalendar(t *testing.T) {
	svc, _ := newService(t)
	p, err := svc.Profile("vijay")
	require.NoError(t, err)

	start := time.Date(2025, 9, 1, 0, 0, 0, 0, types.IST)
	records, chart, err := svc.Calendar(context.Background(), p, start, start.AddDate(0, 0, 4))
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.NotNil(t, chart)
	assert.True(t, records[2].IsHoliday)
	assert.Equal(t, types.Closed, records[2].Recommendation)
}

func TestRange(t *testing.T) {
	svc, _ := newService(t)
	now := time.Date(2025, 9, 10, 22, 0, 0, 0, types.IST)

	start, end, err := svc.Range("", "", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 9, 10, 0, 0, 0, 0, types.IST), start)
	assert.Equal(t, time.Date(2025, 9, 16, 0, 0, 0, 0, types.IST), end)

	start, end, err = svc.Range("2025-09-01", "2025-09-30", now)
	require.NoError(t, err)
	assert.Equal(t, 1, start.Day())
	assert.Equal(t, 30, end.Day())

	_, _, err = svc.Range("01/09/2025", "", now)
	var ide *InvalidDateError
	require.True(t, errors.As(err, &ide))
	assert.Equal(t, "start", ide.Field)
}
