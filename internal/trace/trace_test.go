package trace

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSpan_Disabled(t *testing.T) {
	enabled = false
	ctx, span := StartSpan(context.Background(), "noop")
	defer span.End()

	_, _, ok := GetTraceFields(ctx)
	assert.False(t, ok)
}

func TestStartSpan_ExportsToWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitWithWriter(&buf))

	ctx, span := StartSpan(context.Background(), "calendar.Generate")
	traceID, spanID, ok := GetTraceFields(ctx)
	assert.True(t, ok)
	assert.Len(t, traceID, 32)
	assert.Len(t, spanID, 16)
	span.End()

	require.NoError(t, Shutdown(context.Background()))
	assert.False(t, Enabled())
	assert.Contains(t, buf.String(), "calendar.Generate")
	assert.Contains(t, buf.String(), ServiceName)
}

func TestSetup_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spans.json")
	require.NoError(t, Setup(Config{File: path, SampleRatio: 1}))

	_, span := StartSpan(context.Background(), "scheduler.daily_brief_vijay")
	span.End()
	require.NoError(t, Shutdown(context.Background()))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "scheduler.daily_brief_vijay")
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_TRACE_FILE", "")
	t.Setenv("LOG_TRACE_SAMPLE_RATIO", "")
	assert.Equal(t, Config{SampleRatio: 1}, ConfigFromEnv())

	t.Setenv("LOG_TRACE_FILE", "/tmp/spans.json")
	t.Setenv("LOG_TRACE_SAMPLE_RATIO", "0.25")
	assert.Equal(t, Config{File: "/tmp/spans.json", SampleRatio: 0.25}, ConfigFromEnv())
}
