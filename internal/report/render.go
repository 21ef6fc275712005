package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type renderStyles struct {
	Title     lipgloss.Style
	Caption   lipgloss.Style
	Name      lipgloss.Style
	Separator lipgloss.Style
}

func newRenderStyles() renderStyles {
	return renderStyles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 2).
			Bold(true),
		Caption: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Name: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// Render writes every metric table to w.
func Render(w io.Writer, summary Summary) {
	styles := newRenderStyles()

	renderTable(w, styles, "Total Net Chips", "The total net chips across all games",
		summary.Players, func(m PlayerMetrics) string {
			return fmt.Sprintf("%d chips", m.NetChips)
		})

	byVolatility := sortedBy(summary.Players, func(a, b PlayerMetrics) bool {
		return a.Volatility < b.Volatility
	})
	renderTable(w, styles, "Chip Volatility", "The std dev of chip count across games",
		byVolatility, func(m PlayerMetrics) string {
			return fmt.Sprintf("%.0f chips", m.Volatility)
		})

	byBetSize := sortedBy(summary.Players, func(a, b PlayerMetrics) bool {
		return a.AverageBetSize > b.AverageBetSize
	})
	renderTable(w, styles, "Average Bet Size", "The avg chips committed for each action",
		byBetSize, func(m PlayerMetrics) string {
			return fmt.Sprintf("%.1f chips", m.AverageBetSize)
		})

	byRaises := sortedBy(summary.Players, func(a, b PlayerMetrics) bool {
		return a.RaisePercent > b.RaisePercent
	})
	renderTable(w, styles, "Aggressiveness", "The % of actions that are raises",
		byRaises, func(m PlayerMetrics) string {
			return fmt.Sprintf("%.1f%%", m.RaisePercent)
		})

	byFolds := sortedBy(summary.Players, func(a, b PlayerMetrics) bool {
		return a.FoldPercent < b.FoldPercent
	})
	renderTable(w, styles, "Passivity", "The % of actions that are folds",
		byFolds, func(m PlayerMetrics) string {
			return fmt.Sprintf("%.1f%%", m.FoldPercent)
		})
}

func renderTable(w io.Writer, styles renderStyles, title, caption string, players []PlayerMetrics, value func(PlayerMetrics) string) {
	if len(players) == 0 {
		return
	}

	nameWidth, valueWidth := 0, 0
	values := make([]string, len(players))
	for i, m := range players {
		values[i] = value(m)
		nameWidth = max(nameWidth, len(m.Name))
		valueWidth = max(valueWidth, len(values[i]))
	}

	separator := styles.Separator.Render(strings.Repeat("-", nameWidth+valueWidth+2))

	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Title.Render(title))
	fmt.Fprintln(w, separator)
	for i, m := range players {
		fmt.Fprintf(w, "%s  %*s\n", styles.Name.Render(fmt.Sprintf("%-*s", nameWidth, m.Name)), valueWidth, values[i])
	}
	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, styles.Caption.Render(caption))
}

func sortedBy(players []PlayerMetrics, less func(a, b PlayerMetrics) bool) []PlayerMetrics {
	out := make([]PlayerMetrics, len(players))
	copy(out, players)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
