package cmd

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/hellostack/hellostack/pkg/check"
)

func renderCheckLines(status check.StatusResponse) []string {
	names := make([]string, 0, len(status.Checks))
	for name := range status.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, styleListItem.Render(checkLine(name, status.Checks[name])))
	}
	return lines
}

func checkLine(name string, r *check.Result) string {
	if r.OK {
		return lipgloss.JoinHorizontal(lipgloss.Left,
			styleSuccess.Render("▶︎"), " ",
			styleHighlight.Render(name), " (",
			styleSuccess.Render("reachable"), ")",
		)
	}

	return lipgloss.JoinHorizontal(lipgloss.Left,
		styleFailed.Render("◼︎"), " ",
		styleHighlight.Render(name), " (",
		styleFailed.Render("unreachable"), "; reason=",
		wrapNotSet(r.Message), ")",
	)
}

func wrapNotSet(s string) string {
	if s == "" {
		return styleNotSet.Render("<not set>")
	}

	return styleHighlight.Render(s)
}
