package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/clanwatch/clanwatch/internal/theme"
)

// Layout tracks the terminal dimensions and splits them into a header
// row, a content area, and a status bar row.
type Layout struct {
	Width  int
	Height int
}

// NewLayout creates a Layout for the given terminal size.
func NewLayout(width, height int) Layout {
	return Layout{Width: width, Height: height}
}

// ContentWidth returns the width available to screen content.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available to screen content after
// reserving one row each for the header and the status bar.
func (l Layout) ContentHeight() int {
	h := l.Height - 2
	if h < 0 {
		return 0
	}
	return h
}

// RenderHeader renders the header row with the app title on the left
// and the poll status on the right.
func (l Layout) RenderHeader(title, pollStatus string) string {
	left := theme.HeaderStyle.Render(title)
	right := theme.HeaderStyle.Align(lipgloss.Right).Render(pollStatus)

	gap := l.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	filler := lipgloss.NewStyle().
		Width(gap).
		Background(theme.HeaderStyle.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, left, filler, right)
}

// RenderStatusBar renders the bottom row with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	bar := theme.StatusBarStyle.Render(hints)

	gap := l.Width - lipgloss.Width(bar)
	if gap < 0 {
		gap = 0
	}
	filler := lipgloss.NewStyle().
		Width(gap).
		Background(theme.StatusBarStyle.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, bar, filler)
}

// Frame joins the header, content, and status bar into the full view.
func (l Layout) Frame(header, content, statusBar string) string {
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}
