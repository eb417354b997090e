package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agsearch/ag-tui/internal/ui"
)

var statusBarStyle = lipgloss.NewStyle().Background(lipgloss.Color("#111827"))

// RenderStatusBar draws the bottom line: the transient status on the left,
// key hints on the right. A long status is clipped before the hints are.
func RenderStatusBar(status, hints string, width int) string {
	right := ui.StyleMuted.Render(hints) + " "

	avail := width - lipgloss.Width(right) - 2
	if avail < 0 {
		avail = 0
	}
	left := "  " + lipgloss.NewStyle().MaxWidth(avail).Foreground(ui.ColorMuted).Render(status)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
