package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astrotrade/internal/ephemeris/ephemeristest"
	"astrotrade/internal/holidays"
	"astrotrade/internal/metrics"
	"astrotrade/internal/report"
	"astrotrade/internal/service"
	"astrotrade/internal/store"
	"astrotrade/internal/types"
)

const cfgYAML = `
default_days: 5
server:
  max_range_days: 40
profiles:
  Vijay:
    dob: "1983-11-21"
    tob: "05:50"
    lat: 28.661
    lon: 77.133
    lagna: "Libra"
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg, err := store.ParseConfig([]byte(cfgYAML))
	require.NoError(t, err)

	eph := ephemeristest.New(time.Date(2025, 9, 1, 0, 0, 0, 0, types.IST), 0).
		With(types.Moon, 1, 0).
		With(types.Sun, 270, 0)
	hol, err := holidays.NewSet(map[string]string{"2025-09-03": "Test Holiday"})
	require.NoError(t, err)

	svc, err := service.New(cfg, eph, hol, metrics.NewRegistry())
	require.NoError(t, err)

	clock := func() time.Time { return time.Date(2025, 9, 1, 8, 0, 0, 0, types.IST) }
	srv := httptest.NewServer(NewServer(svc, WithClock(clock)).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv, "/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 1, body["holidays"])
}

func TestProfiles(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv, "/api/profiles")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profiles []types.BirthProfile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profiles))
	require.Len(t, profiles, 1)
	assert.Equal(t, "Vijay", profiles[0].Name)
}

func TestCalendar_DefaultRange(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv, "/api/calendar?profile=vijay")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Profile string            `json:"profile"`
		Start   string            `json:"start"`
		End     string            `json:"end"`
		Days    []types.DayRecord `json:"days"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Vijay", body.Profile)
	assert.Equal(t, "2025-09-01", body.Start)
	assert.Equal(t, "2025-09-05", body.End)
	require.Len(t, body.Days, 5)
	assert.Equal(t, types.Closed, body.Days[2].Recommendation)
	assert.Equal(t, "Test Holiday", body.Days[2].HolidayName)
}

func TestCalendar_AdHocProfile(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv, "/api/calendar?dob=1990-05-15&tob=14:30&lat=31.1&lon=77.17&lagna=Leo&start=2025-09-01&end=2025-09-02")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCalendar_Errors(t *testing.T) {
	srv := newTestServer(t)
	cases := map[string]int{
		"/api/calendar?profile=ghost": http.StatusNotFound,
		"/api/calendar":               http.StatusBadRequest,
		"/api/calendar?profile=Vijay&start=2025-09-10&end=2025-09-01": http.StatusBadRequest,
		"/api/calendar?profile=Vijay&start=10-09-2025":                http.StatusBadRequest,
		"/api/calendar?profile=Vijay&start=2025-01-01&end=2025-12-31": http.StatusBadRequest,
		"/api/calendar?dob=1990-05-15&tob=14:30&lat=95&lon=77":        http.StatusBadRequest,
		"/api/calendar?dob=1990-05-15&tob=14:30&lat=x&lon=77":         http.StatusBadRequest,
		"/api/calendar?dob=1990-05-15&tob=14:30&lat=NaN&lon=77":       http.StatusBadRequest,
		"/api/chart?dob=1990-05-15&tob=14:30&lat=28&lon=Inf":          http.StatusBadRequest,
	}
	for path, want := range cases {
		t.Run(path, func(t *testing.T) {
			resp := get(t, srv, path)
			assert.Equal(t, want, resp.StatusCode)
			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestCalendarCSV(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv, "/api/calendar.csv?profile=Vijay&start=2025-09-01&end=2025-09-07")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, report.CSVExporter{}.ContentType(), resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "astrotrade_vijay.csv")

	buf := new(bytes.Buffer)
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 8)
}

func TestCalendarICS(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv, "/api/calendar.ics?profile=Vijay&start=2025-09-01&end=2025-09-02")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	buf := new(bytes.Buffer)
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(buf.String(), "BEGIN:VEVENT"))
}

func TestStats(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv, "/api/stats?profile=Vijay&start=2025-09-01&end=2025-09-07")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats report.Stats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 7, stats.Total)
	assert.Equal(t, 3, stats.Counts[types.Closed])
}

func TestChartAndHolidays(t *testing.T) {
	srv := newTestServer(t)
	resp := get(t, srv, "/api/chart?profile=Vijay")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, srv, "/api/holidays")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rows []holidays.Row
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	require.Len(t, rows, 1)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	get(t, srv, "/api/calendar?profile=Vijay")
	resp := get(t, srv, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	buf := new(bytes.Buffer)
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `astrotrade_http_requests_total{code="200",route="/api/calendar"} 1`)
	assert.Contains(t, buf.String(), "astrotrade_days_generated_total")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(&store.ProfileNotFoundError{Name: "x"}))
	assert.Equal(t, http.StatusBadRequest, statusFor(&service.InvalidDateError{}))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
