package telemetry

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderWritesHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	mockClock := quartz.NewMock(t)
	rec := NewRecorder(&buf, WithClock(mockClock))

	err := rec.Record(Invocation{
		Model:        "gpt-4o-mini",
		FunctionName: "decide_action",
		InputTokens:  1000000,
		OutputTokens: 1000000,
		TotalTokens:  2000000,
		Latency:      1250 * time.Millisecond,
		InputPreview: "You are playing Texas Hold'em",
	})
	require.NoError(t, err)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, header, rows[0])

	row := rows[1]
	assert.Equal(t, "gpt-4o-mini", row[1])
	assert.Equal(t, "decide_action", row[2])
	assert.Equal(t, "1000000", row[3])
	assert.Equal(t, "1000000", row[4])
	assert.Equal(t, "2000000", row[5])
	assert.Equal(t, "1250.0", row[6])
	// One million tokens each way at gpt-4o-mini pricing.
	assert.Equal(t, "0.15000000", row[7])
	assert.Equal(t, "0.60000000", row[8])
	assert.Equal(t, "0.75000000", row[9])
	assert.Equal(t, "You are playing Texas Hold'em", row[10])
}

func TestRecorderUnknownModelZeroCost(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf, WithClock(quartz.NewMock(t)))

	require.NoError(t, rec.Record(Invocation{
		Model:       "mystery-model",
		InputTokens: 5000,
	}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "0.00000000", rows[1][9])
}

func TestRecorderTruncatesPreview(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf, WithClock(quartz.NewMock(t)))

	long := strings.Repeat("x", 500)
	require.NoError(t, rec.Record(Invocation{Model: "gpt-4o-mini", InputPreview: long}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows[1][10], previewLimit)
}

func TestRecorderHeaderWrittenOnce(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder(&buf, WithClock(quartz.NewMock(t)))

	require.NoError(t, rec.Record(Invocation{Model: "gpt-4o-mini"}))
	require.NoError(t, rec.Record(Invocation{Model: "gpt-4o-mini"}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestNilRecorderIsNoOp(t *testing.T) {
	var rec *Recorder
	assert.NoError(t, rec.Record(Invocation{Model: "gpt-4o-mini"}))
}
