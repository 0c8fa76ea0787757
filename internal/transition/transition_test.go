package transition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astrotrade/internal/ephemeris"
	"astrotrade/internal/ephemeris/ephemeristest"
	"astrotrade/internal/types"
)

var day = time.Date(2025, 9, 1, 0, 0, 0, 0, types.IST)

func TestFind_EarlyMorningTransition(t *testing.T) {
	eph := ephemeristest.New(day, 13.2).With(types.Moon, 10, 13.2)
	l := New(eph, types.IST)

	at, err := l.Find(day.Add(9 * time.Hour))
	require.NoError(t, err)
	require.NotNil(t, at)

	// 3.333 degrees at 13.2 deg/day
	hours := (40.0/3.0 - 10) / 13.2 * 24
	want := day.Add(time.Duration(hours * float64(time.Hour)))
	assert.WithinDuration(t, want, *at, time.Minute)
	assert.Zero(t, at.Second())
	assert.Equal(t, types.IST, at.Location())
	assert.False(t, l.InMarketHours(at))
	assert.Equal(t, "06:03", Format(at))
}

func TestFind_MarketHoursTransition(t *testing.T) {
	eph := ephemeristest.New(day, 13.2).With(types.Moon, 5, 13.2)
	l := New(eph, types.IST)

	at, err := l.Find(day)
	require.NoError(t, err)
	require.NotNil(t, at)
	assert.Equal(t, 15, at.Hour())
	assert.True(t, l.InMarketHours(at))
}

func TestFind_NoTransition(t *testing.T) {
	eph := ephemeristest.New(day, 12).With(types.Moon, 0.5, 12)
	l := New(eph, types.IST)

	at, err := l.Find(day)
	require.NoError(t, err)
	assert.Nil(t, at)
	assert.Equal(t, types.NoChange, Format(at))
	assert.False(t, l.InMarketHours(at))
	assert.Equal(t, int64(2), eph.Calls())
}

func TestFind_WrapsAtRevati(t *testing.T) {
	eph := ephemeristest.New(day, 13).With(types.Moon, 355, 13)
	at, err := New(eph, types.IST).Find(day)
	require.NoError(t, err)
	require.NotNil(t, at)
	hours := 5.0 / 13 * 24
	assert.WithinDuration(t, day.Add(time.Duration(hours*float64(time.Hour))), *at, time.Minute)
}

func TestFind_BoundedIterations(t *testing.T) {
	eph := ephemeristest.New(day, 13.2).With(types.Moon, 7, 13.2)
	_, err := New(eph, types.IST).Find(day)
	require.NoError(t, err)
	assert.LessOrEqual(t, eph.Calls(), int64(2+MaxIterations(DefaultTolerance)))
	assert.Equal(t, 14, MaxIterations(DefaultTolerance))
}

func TestFind_Deterministic(t *testing.T) {
	eph := ephemeris.New()
	l := New(eph, types.IST)
	for i := 0; i < 5; i++ {
		d := day.AddDate(0, 0, i)
		a, err := l.Find(d)
		require.NoError(t, err)
		b, err := l.Find(d)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestFind_RealEphemerisBracketsChange(t *testing.T) {
	eph := ephemeris.New()
	l := New(eph, types.IST)
	found := 0
	for i := 0; i < 10; i++ {
		d := day.AddDate(0, 0, i)
		at, err := l.Find(d)
		require.NoError(t, err)
		if at == nil {
			continue
		}
		found++
		assert.Equal(t, d.Day(), at.Day())
		before, _, _ := eph.Position(at.Add(-30*time.Second), types.Moon)
		after, _, _ := eph.Position(at.Add(90*time.Second), types.Moon)
		assert.NotEqual(t, indexOf(before), indexOf(after), "no boundary around %s", at)
	}
	// the Moon crosses roughly one nakshatra per day
	assert.GreaterOrEqual(t, found, 7)
}

func indexOf(lon float64) int {
	return int(lon / (360.0 / 27.0))
}

func TestInMarketHours_Bounds(t *testing.T) {
	l := New(ephemeristest.New(day, 13), types.IST)
	at := func(h, m, s int) *time.Time {
		v := time.Date(2025, 9, 1, h, m, s, 0, types.IST)
		return &v
	}
	assert.True(t, l.InMarketHours(at(9, 15, 0)))
	assert.True(t, l.InMarketHours(at(12, 0, 0)))
	assert.True(t, l.InMarketHours(at(15, 30, 0)))
	assert.False(t, l.InMarketHours(at(9, 14, 59)))
	assert.False(t, l.InMarketHours(at(15, 30, 1)))

	// instants are judged in the civil zone, not their own
	utc := time.Date(2025, 9, 1, 4, 0, 0, 0, time.UTC)
	assert.True(t, l.InMarketHours(&utc))
}

func TestFind_CloseMinuteCountsAsSession(t *testing.T) {
	// boundary at 40 deg crossed at 15:30:30
	speed := 13.2
	crossing := 15.5 + 30.0/3600
	eph := ephemeristest.New(day, speed).With(types.Moon, 40-speed*crossing/24, speed)
	l := New(eph, types.IST)

	at, err := l.Find(day)
	require.NoError(t, err)
	require.NotNil(t, at)
	assert.Equal(t, "15:30", Format(at))
	assert.Zero(t, at.Second())
	assert.True(t, l.InMarketHours(at))
}
