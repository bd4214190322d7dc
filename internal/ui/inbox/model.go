// Package inbox is the screen listing received notifications.
package inbox

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/clanwatch/clanwatch/internal/keys"
	"github.com/clanwatch/clanwatch/internal/model"
	"github.com/clanwatch/clanwatch/internal/theme"
	"github.com/clanwatch/clanwatch/internal/ui"
)

// Store is the slice of the notification store this screen uses.
type Store interface {
	Recent(ctx context.Context, limit int) ([]model.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

type listMsg struct {
	seq    int
	notifs []model.Notification
	err    error
}

type markedMsg struct {
	seq int
	err error
}

// Model is the notification inbox screen.
type Model struct {
	store Store
	keys  *keys.KeyMap

	notifs  []model.Notification
	loading bool
	errMsg  string
	seq     int

	cursor int
	width  int
	height int
}

// New creates the inbox screen model.
func New(s Store, k *keys.KeyMap, width, height int) Model {
	return Model{
		store:  s,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init is a no-op. The root model triggers the initial Reload so the
// sequence token in the resulting message matches the retained model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Reload starts a fresh fetch of recent notifications.
func (m Model) Reload() (Model, tea.Cmd) {
	m.loading = true
	m.errMsg = ""
	m.seq++
	seq := m.seq
	store := m.store
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ui.OpTimeout)
		defer cancel()
		notifs, err := store.Recent(ctx, 50)
		return listMsg{seq: seq, notifs: notifs, err: err}
	}
}

// Update handles messages for the inbox screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = "loading notifications failed"
			return m, nil
		}
		m.notifs = msg.notifs
		if m.cursor >= len(m.notifs) && m.cursor > 0 {
			m.cursor = len(m.notifs) - 1
		}
		return m, nil

	case markedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.loading = false
			m.errMsg = "updating notification failed"
			return m, nil
		}
		return m.Reload()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.notifs)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Select):
			if m.cursor < len(m.notifs) && !m.notifs[m.cursor].Read {
				return m.markRead(m.notifs[m.cursor].ID)
			}
		case key.Matches(msg, m.keys.Refresh):
			return m.Reload()
		}
	}

	return m, nil
}

func (m Model) markRead(id string) (Model, tea.Cmd) {
	m.loading = true
	m.errMsg = ""
	m.seq++
	seq := m.seq
	store := m.store
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ui.OpTimeout)
		defer cancel()
		err := store.MarkRead(ctx, id)
		return markedMsg{seq: seq, err: err}
	}
}

// Notifications exposes the current data cell.
func (m Model) Notifications() []model.Notification { return m.notifs }

// Loading exposes the loading flag.
func (m Model) Loading() bool { return m.loading }

// View renders the inbox screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(theme.HeaderStyle.Render("Inbox"))
	if m.loading {
		b.WriteString(theme.DimStyle.Render("  loading..."))
	}
	b.WriteString("\n\n")

	if len(m.notifs) == 0 && !m.loading {
		b.WriteString(theme.DimStyle.Render("  no notifications"))
		b.WriteString("\n")
	}

	for i, n := range m.notifs {
		marker := "• "
		if n.Read {
			marker = "  "
		}
		line := marker + n.Title
		if n.Body != "" {
			line += theme.DimStyle.Render("  " + n.Body)
		}
		if i == m.cursor {
			b.WriteString(theme.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(theme.ListItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("enter mark read · r refresh"))
	return b.String()
}
