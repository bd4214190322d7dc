package widget

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/clanwatch/clanwatch/internal/store"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	countStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
)

// Render formats the persisted projection for display. It performs no
// computation and no network access: every string was pre-formatted
// before it was saved.
func Render(p *store.Projection) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Missing Attacks"))
	b.WriteString("  ")
	b.WriteString(countStyle.Render(fmt.Sprintf("%d", p.TotalMissing)))
	b.WriteString("\n")

	if len(p.Items) == 0 {
		b.WriteString(itemStyle.Render(dimStyle.Render("all attacks used")))
		b.WriteString("\n")
	}

	for _, item := range p.Items {
		line := fmt.Sprintf("%s · %s", item.EventLabel, item.AccountDisplay)
		if item.EndTimeFormatted != "" {
			line += dimStyle.Render("  ends " + item.EndTimeFormatted)
		}
		line += fmt.Sprintf("  (%d left)", item.AttacksRemaining)
		b.WriteString(itemStyle.Render(line))
		b.WriteString("\n")
	}

	if p.LastUpdated != "" {
		b.WriteString(dimStyle.Render("updated " + p.LastUpdated))
		b.WriteString("\n")
	}

	return b.String()
}
