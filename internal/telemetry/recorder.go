// Package telemetry records completion-service usage to a CSV log for cost
// analysis. Recording is best-effort and never affects game outcomes.
package telemetry

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/coder/quartz"
)

var header = []string{
	"timestamp",
	"model",
	"function_name",
	"input_tokens",
	"output_tokens",
	"total_tokens",
	"latency_ms",
	"input_cost",
	"output_cost",
	"total_cost",
	"input_content_preview",
}

// Pricing is USD per one million tokens.
type Pricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// pricingTable holds known per-model pricing. Unknown models record zero cost
// rather than failing.
var pricingTable = map[string]Pricing{
	"gpt-4o":      {InputPerMillion: 2.50, OutputPerMillion: 10.00},
	"gpt-4o-mini": {InputPerMillion: 0.15, OutputPerMillion: 0.60},
	"gpt-4.1":     {InputPerMillion: 2.00, OutputPerMillion: 8.00},
	"gpt-4.1-mini": {
		InputPerMillion:  0.40,
		OutputPerMillion: 1.60,
	},
}

const previewLimit = 100

// Invocation is one remote completion worth recording.
type Invocation struct {
	Model        string
	FunctionName string
	InputTokens  int
	OutputTokens int
	TotalTokens  int
	Latency      time.Duration
	InputPreview string
}

// Recorder appends usage rows to a CSV writer. Safe for concurrent use; a nil
// Recorder is a no-op so callers never need to branch on whether telemetry is
// enabled.
type Recorder struct {
	mu    sync.Mutex
	w     *csv.Writer
	clock quartz.Clock
	wrote bool
}

// RecorderOption customises a Recorder.
type RecorderOption func(*Recorder)

// WithClock substitutes the wall clock, for tests.
func WithClock(clock quartz.Clock) RecorderOption {
	return func(r *Recorder) { r.clock = clock }
}

// NewRecorder creates a recorder writing CSV rows to w. The header row is
// written before the first record.
func NewRecorder(w io.Writer, opts ...RecorderOption) *Recorder {
	r := &Recorder{w: csv.NewWriter(w), clock: quartz.NewReal()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record appends one usage row. Errors are returned but callers are expected
// to log and continue; telemetry must never abort a game.
func (r *Recorder) Record(inv Invocation) error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.wrote {
		if err := r.w.Write(header); err != nil {
			return fmt.Errorf("writing usage header: %w", err)
		}
		r.wrote = true
	}

	pricing := pricingTable[inv.Model]
	inputCost := float64(inv.InputTokens) / 1e6 * pricing.InputPerMillion
	outputCost := float64(inv.OutputTokens) / 1e6 * pricing.OutputPerMillion

	row := []string{
		r.clock.Now().UTC().Format(time.RFC3339),
		inv.Model,
		inv.FunctionName,
		strconv.Itoa(inv.InputTokens),
		strconv.Itoa(inv.OutputTokens),
		strconv.Itoa(inv.TotalTokens),
		strconv.FormatFloat(float64(inv.Latency)/float64(time.Millisecond), 'f', 1, 64),
		strconv.FormatFloat(inputCost, 'f', 8, 64),
		strconv.FormatFloat(outputCost, 'f', 8, 64),
		strconv.FormatFloat(inputCost+outputCost, 'f', 8, 64),
		preview(inv.InputPreview),
	}
	if err := r.w.Write(row); err != nil {
		return fmt.Errorf("writing usage row: %w", err)
	}
	r.w.Flush()
	return r.w.Error()
}

func preview(s string) string {
	if len(s) <= previewLimit {
		return s
	}
	return s[:previewLimit]
}
