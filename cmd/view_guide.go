package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hellostack/hellostack/pkg/tutorial"
)

var styleStepTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).MarginTop(1)
var styleStepBody = lipgloss.NewStyle().PaddingLeft(2).Width(84)
var styleCode = lipgloss.NewStyle().
	Padding(0, 1).
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("#5D689C"))
var styleCodeLanguage = lipgloss.NewStyle().Foreground(lipgloss.Color("#5D689C")).Italic(true)

func calloutStyle(tone tutorial.Tone) lipgloss.Style {
	color := lipgloss.Color("#407FF8")
	switch tone {
	case tutorial.ToneDanger:
		color = colorFailed
	case tutorial.ToneWarning:
		color = colorWarning
	}
	return lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.RoundedBorder()).BorderForeground(color).Width(78)
}

func renderStep(number int, step tutorial.Step) string {
	blocks := make([]string, 0, len(step.Blocks))
	for _, b := range step.Blocks {
		blocks = append(blocks, renderBlock(b))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		styleStepTitle.Render(fmt.Sprintf("%s  %d. %s", step.Icon, number, step.Title)),
		styleStepBody.Render(strings.Join(blocks, "\n\n")),
	)
}

func renderBlock(b tutorial.Block) string {
	switch b.Kind {
	case tutorial.BlockList:
		lines := make([]string, len(b.Items))
		for i, item := range b.Items {
			marker := "•"
			if b.Ordered {
				marker = fmt.Sprintf("%d.", b.Start+i)
			}
			lines[i] = marker + " " + item
		}
		return strings.Join(lines, "\n")

	case tutorial.BlockCode:
		return lipgloss.JoinVertical(
			lipgloss.Left,
			styleCodeLanguage.Render(b.Language),
			styleCode.Render(strings.TrimRight(b.Code, "\n")),
		)

	case tutorial.BlockCallout:
		return calloutStyle(b.Tone).Render(lipgloss.JoinVertical(
			lipgloss.Left,
			lipgloss.NewStyle().Bold(true).Render(b.Title),
			b.Text,
		))

	default:
		return b.Text
	}
}
