package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hellostack/hellostack/pkg/probe"
)

var styleSuccessBox = lipgloss.NewStyle().
	Padding(0, 1).
	Margin(1, 0).
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(colorSuccess)

var styleErrorBox = styleSuccessBox.Copy().BorderForeground(colorFailed)

// renderStatus projects a widget status onto the terminal. Idle renders
// nothing.
func renderStatus(s probe.Status) string {
	switch s.State {
	case probe.StateInFlight:
		return renderBusy(probe.TargetURL(s.Endpoint))
	case probe.StateCompleted:
		if s.Result != nil {
			return renderResult(*s.Result)
		}
	}
	return ""
}

func renderBusy(target string) string {
	return "🕑 testing connection to " + styleHighlight.Render(target) + " ..."
}

// renderResult renders a labelled panel. The message is shown verbatim.
func renderResult(r probe.Result) string {
	box, label := styleSuccessBox, styleSuccess
	if !r.OK() {
		box, label = styleErrorBox, styleFailed
	}

	return box.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		label.Render(strings.ToUpper(string(r.Outcome))),
		r.Message,
	))
}
