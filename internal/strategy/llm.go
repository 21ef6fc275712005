package strategy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"holdem-arena/internal/deck"
	"holdem-arena/internal/game"
	"holdem-arena/internal/llm"
	"holdem-arena/internal/telemetry"
)

// Completer is the slice of the completion client the LLM strategy needs.
type Completer interface {
	CompleteStructured(ctx context.Context, message string, schema llm.Schema, out any) (*llm.Completion, error)
	Model() string
}

// UsageRecorder receives one record per remote completion. A nil recorder
// disables telemetry.
type UsageRecorder interface {
	Record(inv telemetry.Invocation) error
}

// LLM asks a language model for every decision. The model's output is never
// trusted: the engine clamps amounts, and anything that fails to parse is a
// provider failure that aborts the tournament.
type LLM struct {
	client    Completer
	recorder  UsageRecorder
	logger    *log.Logger
	reasoning bool
}

// LLMOption customises an LLM strategy.
type LLMOption func(*LLM)

// WithReasoning asks the model to think step by step before acting. Costs
// more output tokens; sometimes plays better poker.
func WithReasoning() LLMOption {
	return func(l *LLM) { l.reasoning = true }
}

// WithUsageRecorder attaches a telemetry recorder.
func WithUsageRecorder(rec UsageRecorder) LLMOption {
	return func(l *LLM) { l.recorder = rec }
}

// WithLogger attaches a logger for decision debug output.
func WithLogger(logger *log.Logger) LLMOption {
	return func(l *LLM) { l.logger = logger }
}

// NewLLM creates an LLM strategy backed by client.
func NewLLM(client Completer, opts ...LLMOption) *LLM {
	l := &LLM{client: client}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type llmAction struct {
	Reasoning string `json:"reasoning,omitempty"`
	Action    string `json:"action"`
	Amount    *int   `json:"amount"`
}

func (l *LLM) Decide(ctx context.Context, s game.Situation) (game.ActionResponse, error) {
	prompt := buildPrompt(s)
	schema := l.actionSchema(s.ToCall > 0)

	var parsed llmAction
	start := time.Now()
	comp, err := l.client.CompleteStructured(ctx, prompt, schema, &parsed)
	latency := time.Since(start)
	if err != nil {
		return game.ActionResponse{}, fmt.Errorf("llm decision: %w", err)
	}

	if l.recorder != nil {
		if recErr := l.recorder.Record(telemetry.Invocation{
			Model:        comp.Model,
			FunctionName: schema.Name,
			InputTokens:  comp.Usage.InputTokens,
			OutputTokens: comp.Usage.OutputTokens,
			TotalTokens:  comp.Usage.TotalTokens,
			Latency:      latency,
			InputPreview: prompt,
		}); recErr != nil && l.logger != nil {
			l.logger.Warn("usage recording failed", "error", recErr)
		}
	}

	resp, err := parsed.toResponse(s.ToCall)
	if err != nil {
		return game.ActionResponse{}, err
	}

	if l.logger != nil {
		l.logger.Debug("llm action",
			"player", s.Player.Name, "model", l.client.Model(),
			"action", resp.Action.String(), "amount", resp.Amount,
			"latency", latency, "reasoning", parsed.Reasoning)
	}
	return resp, nil
}

func (a llmAction) toResponse(toCall int) (game.ActionResponse, error) {
	action := strings.ToLower(strings.TrimSpace(a.Action))
	if action == "bet" {
		action = "raise"
	}

	switch action {
	case "check":
		if toCall > 0 {
			return game.ActionResponse{}, fmt.Errorf("llm decision: model checked facing a %d-chip bet", toCall)
		}
		return game.ActionResponse{Action: game.Check}, nil
	case "call":
		return game.ActionResponse{Action: game.Call, Amount: toCall}, nil
	case "fold":
		return game.ActionResponse{Action: game.Fold}, nil
	case "raise":
		if a.Amount == nil || *a.Amount <= 0 {
			return game.ActionResponse{}, fmt.Errorf("llm decision: raise without a positive amount")
		}
		return game.ActionResponse{Action: game.Raise, Amount: *a.Amount}, nil
	default:
		return game.ActionResponse{}, fmt.Errorf("llm decision: unknown action %q", a.Action)
	}
}

func (l *LLM) actionSchema(facingBet bool) llm.Schema {
	actions := []string{"check", "raise"}
	name := "check_or_raise"
	if facingBet {
		actions = []string{"call", "fold", "raise"}
		name = "call_fold_or_raise"
	}

	properties := map[string]any{
		"action": map[string]any{
			"type": "string",
			"enum": actions,
		},
		"amount": map[string]any{
			"type":        []any{"integer", "null"},
			"description": "The number of chips to add when raising. Otherwise null.",
		},
	}
	required := []string{"action", "amount"}

	if l.reasoning {
		name += "_with_reasoning"
		properties["reasoning"] = map[string]any{
			"type": "string",
			"description": "Think step by step (reasoning about bet sizing math, GTO play, etc.), " +
				"and decide what action maximizes your expected value.",
		}
		required = append([]string{"reasoning"}, required...)
	}

	return llm.Schema{
		Name: name,
		Schema: map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties":           properties,
			"required":             required,
		},
	}
}

func buildPrompt(s game.Situation) string {
	var b strings.Builder
	b.WriteString("You are playing no-limit Texas Hold'em.\n")
	fmt.Fprintf(&b, "Betting phase: %s\n", s.Phase)
	fmt.Fprintf(&b, "Your hole cards: %s\n", deck.CardsString(s.Player.Hole))
	if len(s.Community) > 0 {
		fmt.Fprintf(&b, "Community cards: %s\n", deck.CardsString(s.Community))
	} else {
		b.WriteString("Community cards: none yet\n")
	}
	fmt.Fprintf(&b, "Pot: %d chips\n", s.Pot)
	fmt.Fprintf(&b, "Your chips: %d\n", s.Chips)
	if s.ToCall > 0 {
		fmt.Fprintf(&b, "It costs %d chips to call.\n", s.ToCall)
		b.WriteString("Choose one action: call, fold, or raise.")
	} else {
		b.WriteString("There is no bet to call.\n")
		b.WriteString("Choose one action: check or raise.")
	}
	return b.String()
}
