package strategy

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"holdem-arena/internal/deck"
	"holdem-arena/internal/game"
)

// interactiveStyles contains styling for the console prompt
type interactiveStyles struct {
	Street  lipgloss.Style
	Cards   lipgloss.Style
	Pot     lipgloss.Style
	Prompt  lipgloss.Style
	Invalid lipgloss.Style
}

func newInteractiveStyles() interactiveStyles {
	return interactiveStyles{
		Street: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Cards: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Pot: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Invalid: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// Interactive prompts a human on the console for each decision. Input is
// re-prompted until it parses; the engine still clamps the result, so the
// human cannot commit chips they don't have.
type Interactive struct {
	in     *bufio.Scanner
	out    io.Writer
	styles interactiveStyles
}

// NewInteractive creates a console strategy reading from in and writing to out.
func NewInteractive(in io.Reader, out io.Writer) *Interactive {
	return &Interactive{
		in:     bufio.NewScanner(in),
		out:    out,
		styles: newInteractiveStyles(),
	}
}

func (h *Interactive) Decide(ctx context.Context, s game.Situation) (game.ActionResponse, error) {
	h.showSituation(s)

	for {
		if err := ctx.Err(); err != nil {
			return game.ActionResponse{}, err
		}

		if s.ToCall == 0 {
			fmt.Fprint(h.out, h.styles.Prompt.Render("Your action (check/raise <amount>/fold): "))
		} else {
			fmt.Fprintf(h.out, "%s",
				h.styles.Prompt.Render(fmt.Sprintf("Your action (call %d/raise <amount>/fold): ", s.ToCall)))
		}

		if !h.in.Scan() {
			if err := h.in.Err(); err != nil {
				return game.ActionResponse{}, fmt.Errorf("reading console input: %w", err)
			}
			return game.ActionResponse{}, io.EOF
		}

		resp, ok := parseAction(h.in.Text(), s.ToCall)
		if !ok {
			fmt.Fprintln(h.out, h.styles.Invalid.Render("Didn't catch that. Try: check, call, fold, or raise 20."))
			continue
		}
		return resp, nil
	}
}

func (h *Interactive) showSituation(s game.Situation) {
	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, h.styles.Street.Render(fmt.Sprintf("*** %s ***", strings.ToUpper(s.Phase.String()))))
	fmt.Fprintf(h.out, "Your cards: %s\n", h.styles.Cards.Render(deck.CardsString(s.Player.Hole)))
	if len(s.Community) > 0 {
		fmt.Fprintf(h.out, "Board:      %s\n", h.styles.Cards.Render(deck.CardsString(s.Community)))
	}
	fmt.Fprintf(h.out, "Pot: %s  To call: %d  Your chips: %d\n",
		h.styles.Pot.Render(strconv.Itoa(s.Pot)), s.ToCall, s.Chips)
}

// parseAction turns console input into an action. Accepted forms: "check"/"k",
// "call"/"c", "fold"/"f", "raise 20"/"r 20".
func parseAction(line string, toCall int) (game.ActionResponse, bool) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
	if len(fields) == 0 {
		return game.ActionResponse{}, false
	}

	switch fields[0] {
	case "check", "k":
		if toCall > 0 {
			return game.ActionResponse{}, false
		}
		return game.ActionResponse{Action: game.Check}, true
	case "call", "c":
		return game.ActionResponse{Action: game.Call, Amount: toCall}, true
	case "fold", "f":
		return game.ActionResponse{Action: game.Fold}, true
	case "raise", "r", "bet", "b":
		if len(fields) < 2 {
			return game.ActionResponse{}, false
		}
		amount, err := strconv.Atoi(fields[1])
		if err != nil || amount <= 0 {
			return game.ActionResponse{}, false
		}
		return game.ActionResponse{Action: game.Raise, Amount: amount}, true
	default:
		return game.ActionResponse{}, false
	}
}
