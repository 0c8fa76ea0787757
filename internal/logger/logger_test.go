package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, cfg LogConfig) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, InitWithWriter(cfg, &buf))
	t.Cleanup(func() { detailedLogging = false })
	return &buf
}

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, l := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if l == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(l), &m))
		out = append(out, m)
	}
	return out
}

func TestInfoAndErrorWithErr(t *testing.T) {
	buf := capture(t, LogConfig{Level: "INFO", Format: "json"})
	ctx := context.Background()

	Info(ctx, "calendar generated", "days", 10)
	ErrorWithErr(ctx, "generation failed", errors.New("boom"), "profile", "vijay")

	got := lines(t, buf)
	require.Len(t, got, 2)
	assert.Equal(t, "calendar generated", got[0]["msg"])
	assert.EqualValues(t, 10, got[0]["days"])
	assert.Equal(t, "ERROR", got[1]["level"])
	assert.Equal(t, "boom", got[1]["error"])
	assert.Equal(t, "vijay", got[1]["profile"])
}

func TestDebug_OnlyWhenDetailed(t *testing.T) {
	buf := capture(t, LogConfig{Level: "DEBUG", Format: "json"})
	Debug(context.Background(), "hidden")
	assert.Empty(t, buf.String())

	buf = capture(t, LogConfig{Level: "INFO", Format: "json", DetailedLogging: true})
	Debug(context.Background(), "shown")
	got := lines(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "shown", got[0]["msg"])
	assert.Contains(t, got[0], "source")
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t, LogConfig{Level: "WARN", Format: "json"})
	Info(context.Background(), "dropped")
	Warn(context.Background(), "kept")
	got := lines(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "kept", got[0]["msg"])
}

func TestVerdict(t *testing.T) {
	buf := capture(t, LogConfig{Level: "INFO", Format: "json"})
	Verdict(context.Background(), "vijay", "2025-09-02", "AVOID", "Navatara: Naidhana")

	got := lines(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "VERDICT", got[0]["type"])
	assert.Equal(t, "AVOID", got[0]["recommendation"])
}

func TestOperationTimer(t *testing.T) {
	buf := capture(t, LogConfig{Level: "INFO", Format: "json"})
	op := StartOperation(context.Background(), "calendar.Generate", "days", 3)
	assert.NotNil(t, op.GetContext())
	op.End("records", 3)
	assert.Empty(t, buf.String())

	op = StartOperation(context.Background(), "calendar.Generate")
	op.EndWithError(errors.New("bad range"))
	got := lines(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "Operation failed", got[0]["msg"])
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLogLevel("debug").String())
	assert.Equal(t, "INFO", parseLogLevel("bogus").String())
	assert.Equal(t, "ERROR", parseLogLevel("ERROR").String())
}
