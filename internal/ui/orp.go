package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	orpStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF0000"))

	wordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00")).
			Bold(true)

	completeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAFF")).
			Bold(true)
)

// orpPosition is the optimal recognition point of a word: the letter the eye
// should fixate on, slightly left of center.
func orpPosition(word string) int {
	n := len([]rune(word))
	switch {
	case n <= 1:
		return 0
	case n <= 5:
		return 1
	default:
		return n / 3
	}
}

// formatWord highlights the recognition point.
func formatWord(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return ""
	}
	orp := orpPosition(word)
	return wordStyle.Render(string(runes[:orp])) +
		orpStyle.Render(string(runes[orp])) +
		wordStyle.Render(string(runes[orp+1:]))
}

// anchorWord pads the rendered word so its recognition point sits at the
// horizontal center of the terminal, keeping the fixation column stable
// across words.
func anchorWord(rendered, word string, width int) string {
	pad := width/2 - orpPosition(word)
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + rendered
}
