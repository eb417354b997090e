package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/agsearch/ag-tui/internal/ui"
)

func RenderHeader(root string, width int) string {
	left := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("#F9FAFB")).
		Render(fmt.Sprintf(" ag-tui | %s", root))

	gap := width - lipgloss.Width(left)
	if gap < 0 {
		gap = 0
	}
	padding := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.NewStyle().
		Background(ui.ColorPrimary).
		Width(width).
		Render(left + padding)
}
