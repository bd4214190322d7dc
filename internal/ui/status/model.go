// Package status is the home screen showing missing attacks per event.
package status

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/clanwatch/clanwatch/internal/keys"
	"github.com/clanwatch/clanwatch/internal/model"
	"github.com/clanwatch/clanwatch/internal/theme"
	"github.com/clanwatch/clanwatch/internal/ui"
)

// Service is the slice of the repository this screen uses.
type Service interface {
	Status(ctx context.Context) (*model.Status, error)
}

type refreshedMsg struct {
	seq    int
	status *model.Status
	err    error
}

// Model is the status screen. The data cell is replaced wholesale on
// every refresh, whether triggered manually or by the polling loop.
type Model struct {
	svc  Service
	keys *keys.KeyMap

	status  *model.Status
	loading bool
	errMsg  string
	seq     int

	spin spinner.Model

	width  int
	height int
}

// New creates the status screen model.
func New(svc Service, k *keys.KeyMap, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		svc:    svc,
		keys:   k,
		spin:   sp,
		width:  width,
		height: height,
	}
}

// Init starts the spinner; data arrives via the polling loop or a
// manual refresh.
func (m Model) Init() tea.Cmd {
	return m.spin.Tick
}

// Refresh starts a manual status fetch.
func (m Model) Refresh() (Model, tea.Cmd) {
	m.loading = true
	m.errMsg = ""
	m.seq++
	seq := m.seq
	svc := m.svc
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ui.OpTimeout)
		defer cancel()
		status, err := svc.Status(ctx)
		return refreshedMsg{seq: seq, status: status, err: err}
	}
}

// SetPolled applies a result delivered by the polling loop. A poll
// error only surfaces when there is nothing to show yet; otherwise the
// last good snapshot stays up.
func (m Model) SetPolled(status *model.Status, err error) Model {
	if err != nil {
		if m.status == nil {
			m.errMsg = ui.FaultMessage(err, "loading status")
		}
		return m
	}
	m.status = status
	m.errMsg = ""
	return m
}

// Update handles messages for the status screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = ui.FaultMessage(msg.err, "loading status")
			return m, nil
		}
		m.status = msg.status
		m.errMsg = ""
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Refresh) {
			return m.Refresh()
		}
	}

	return m, nil
}

// Status exposes the current data cell.
func (m Model) Status() *model.Status { return m.status }

// Loading exposes the loading flag.
func (m Model) Loading() bool { return m.loading }

// ErrMsg exposes the error message cell ("" when clear).
func (m Model) ErrMsg() string { return m.errMsg }

// View renders the status screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(theme.HeaderStyle.Render("Missing Attacks"))
	if m.loading {
		b.WriteString("  " + m.spin.View())
	}
	b.WriteString("\n\n")

	if m.status == nil {
		if m.errMsg == "" {
			b.WriteString(theme.DimStyle.Render("  waiting for first refresh..."))
			b.WriteString("\n")
		}
	} else if len(m.status.Events) == 0 {
		b.WriteString(theme.OKStyle.Render("  all attacks used, nothing missing"))
		b.WriteString("\n")
	} else {
		for _, ev := range m.status.Events {
			b.WriteString(renderEvent(ev))
		}
	}

	if m.status != nil && m.status.LastPolled != "" {
		b.WriteString("\n")
		b.WriteString(theme.DimStyle.Render("last polled " + m.status.LastPolled))
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("r refresh"))
	return b.String()
}

func renderEvent(ev model.EventSnapshot) string {
	name := ev.AccountName
	if name == "" {
		name = ev.AccountTag
	}

	head := fmt.Sprintf("%s  %s", ev.EventType.Label(), name)
	attacks := fmt.Sprintf("%d/%d attacks used, %d remaining",
		ev.AttacksUsed, ev.AttacksMax, ev.AttacksRemaining)

	var detail []string
	detail = append(detail, attacks)
	if ev.TimeRemaining != "" {
		detail = append(detail, "ends in "+ev.TimeRemaining)
	}
	if ev.OpponentName != "" {
		detail = append(detail, "vs "+ev.OpponentName)
	}

	line := theme.ListItemStyle.Render(head) + "\n" +
		theme.ListItemStyle.Render(theme.DimStyle.Render("  "+strings.Join(detail, " · ")))

	if ev.AttacksRemaining > 0 && ev.TimeRemainingSeconds > 0 && ev.TimeRemainingSeconds < 3600 {
		line = theme.UrgentStyle.Render("! ") + line
	}

	return line + "\n"
}
