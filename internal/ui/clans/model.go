// Package clans is the screen for managing monitored clans.
package clans

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/clanwatch/clanwatch/internal/keys"
	"github.com/clanwatch/clanwatch/internal/model"
	"github.com/clanwatch/clanwatch/internal/theme"
	"github.com/clanwatch/clanwatch/internal/ui"
)

// Service is the slice of the repository this screen uses.
type Service interface {
	Clans(ctx context.Context) ([]model.TrackedClan, error)
	AddClan(ctx context.Context, clanTag string) (*model.TrackedClan, error)
	DeleteClan(ctx context.Context, clanTag string) error
}

type listMsg struct {
	seq   int
	clans []model.TrackedClan
	err   error
}

type mutatedMsg struct {
	seq int
	err error
}

// Model is the clan management screen.
type Model struct {
	svc  Service
	keys *keys.KeyMap

	clans   []model.TrackedClan
	loading bool
	errMsg  string
	seq     int

	cursor int
	adding bool
	input  textinput.Model

	width  int
	height int
}

// New creates the clan screen model.
func New(svc Service, k *keys.KeyMap, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "#CLANTAG"
	ti.Prompt = "add clan: "
	ti.CharLimit = 16

	return Model{
		svc:    svc,
		keys:   k,
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init is a no-op. The root model triggers the initial Reload so the
// sequence token in the resulting message matches the retained model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Reload starts a fresh fetch of the authoritative list.
func (m Model) Reload() (Model, tea.Cmd) {
	m.loading = true
	m.errMsg = ""
	m.seq++
	seq := m.seq
	svc := m.svc
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ui.OpTimeout)
		defer cancel()
		clans, err := svc.Clans(ctx)
		return listMsg{seq: seq, clans: clans, err: err}
	}
}

// Update handles messages for the clan screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = ui.FaultMessage(msg.err, "loading clans")
			return m, nil
		}
		m.clans = msg.clans
		if m.cursor >= len(m.clans) && m.cursor > 0 {
			m.cursor = len(m.clans) - 1
		}
		return m, nil

	case mutatedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.loading = false
			m.errMsg = ui.FaultMessage(msg.err, "saving clan")
			return m, nil
		}
		return m.Reload()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.handleInputKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

func (m Model) handleInputKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		tag := strings.TrimSpace(m.input.Value())
		if tag == "" {
			m.errMsg = "enter a valid clan tag"
			return m, nil
		}
		m.adding = false
		m.input.Reset()
		return m.add(tag)

	case "esc":
		m.adding = false
		m.input.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.clans)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Add):
		m.adding = true
		m.errMsg = ""
		m.input.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Delete):
		if m.cursor < len(m.clans) {
			return m.delete(m.clans[m.cursor].ClanTag)
		}
	case key.Matches(msg, m.keys.Refresh):
		return m.Reload()
	}
	return m, nil
}

func (m Model) add(tag string) (Model, tea.Cmd) {
	m.loading = true
	m.errMsg = ""
	m.seq++
	seq := m.seq
	svc := m.svc
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ui.OpTimeout)
		defer cancel()
		_, err := svc.AddClan(ctx, tag)
		return mutatedMsg{seq: seq, err: err}
	}
}

func (m Model) delete(tag string) (Model, tea.Cmd) {
	m.loading = true
	m.errMsg = ""
	m.seq++
	seq := m.seq
	svc := m.svc
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ui.OpTimeout)
		defer cancel()
		err := svc.DeleteClan(ctx, tag)
		return mutatedMsg{seq: seq, err: err}
	}
}

// Clans exposes the current data cell.
func (m Model) Clans() []model.TrackedClan { return m.clans }

// Loading exposes the loading flag.
func (m Model) Loading() bool { return m.loading }

// ErrMsg exposes the error message cell ("" when clear).
func (m Model) ErrMsg() string { return m.errMsg }

// Typing reports whether the add input currently has focus.
func (m Model) Typing() bool { return m.adding }

// View renders the clan screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(theme.HeaderStyle.Render("Clans"))
	if m.loading {
		b.WriteString(theme.DimStyle.Render("  loading..."))
	}
	b.WriteString("\n\n")

	if m.adding {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	}

	if len(m.clans) == 0 && !m.loading {
		b.WriteString(theme.DimStyle.Render("  no clans monitored yet, press 'a' to add one"))
		b.WriteString("\n")
	}

	for i, clan := range m.clans {
		name := clan.ClanName
		if name == "" {
			name = clan.ClanTag
		}
		line := fmt.Sprintf("%s  %s", name, theme.DimStyle.Render(clan.ClanTag))
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
	b.WriteString(theme.HelpStyle.Render("a add · d delete · r refresh"))
	return b.String()
}
