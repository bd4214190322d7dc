// Package accounts is the screen for managing tracked game accounts.
package accounts

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
	Accounts(ctx context.Context) ([]model.Account, error)
	AddAccount(ctx context.Context, tag string) (*model.Account, error)
	DeleteAccount(ctx context.Context, tag string) error
}

// listMsg carries a fetched account list. seq ties it to the request
// that produced it; stale responses are discarded.
type listMsg struct {
	seq      int
	accounts []model.Account
	err      error
}

// mutatedMsg reports the outcome of an add or delete. The authoritative
// list is always re-fetched afterwards; there is no local merge.
type mutatedMsg struct {
	seq int
	err error
}

// Model is the account management screen. It owns one data cell (the
// account list), a loading flag, and an error message cell.
type Model struct {
	svc  Service
	keys *keys.KeyMap

	accounts []model.Account
	loading  bool
	errMsg   string
	seq      int

	cursor int
	adding bool
	input  textinput.Model

	width  int
	height int
}

// New creates the account screen model.
func New(svc Service, k *keys.KeyMap, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "#PLAYERTAG"
	ti.Prompt = "add account: "
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
		accounts, err := svc.Accounts(ctx)
		return listMsg{seq: seq, accounts: accounts, err: err}
	}
}

// Update handles messages for the account screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = ui.FaultMessage(msg.err, "loading accounts")
			return m, nil
		}
		m.accounts = msg.accounts
		if m.cursor >= len(m.accounts) {
			m.cursor = max(0, len(m.accounts)-1)
		}
		return m, nil

	case mutatedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.loading = false
			m.errMsg = ui.FaultMessage(msg.err, "saving account")
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
			m.errMsg = "enter a valid player tag"
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
		if m.cursor < len(m.accounts)-1 {
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
		if m.cursor < len(m.accounts) {
			return m.delete(m.accounts[m.cursor].Tag)
		}
	case key.Matches(msg, m.keys.Refresh):
		return m.Reload()
	}
	return m, nil
}

// add issues the create call; the list converges via Reload afterwards.
func (m Model) add(tag string) (Model, tea.Cmd) {
	m.loading = true
	m.errMsg = ""
	m.seq++
	seq := m.seq
	svc := m.svc
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ui.OpTimeout)
		defer cancel()
		_, err := svc.AddAccount(ctx, tag)
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
		err := svc.DeleteAccount(ctx, tag)
		return mutatedMsg{seq: seq, err: err}
	}
}

// Accounts exposes the current data cell.
func (m Model) Accounts() []model.Account { return m.accounts }

// Loading exposes the loading flag.
func (m Model) Loading() bool { return m.loading }

// ErrMsg exposes the error message cell ("" when clear).
func (m Model) ErrMsg() string { return m.errMsg }

// Typing reports whether the add input currently has focus.
func (m Model) Typing() bool { return m.adding }

// View renders the account screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(theme.HeaderStyle.Render("Accounts"))
	if m.loading {
		b.WriteString(theme.DimStyle.Render("  loading..."))
	}
	b.WriteString("\n\n")

	if m.adding {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	}

	if len(m.accounts) == 0 && !m.loading {
		b.WriteString(theme.DimStyle.Render("  no accounts tracked yet, press 'a' to add one"))
		b.WriteString("\n")
	}

	for i, acc := range m.accounts {
		name := acc.DisplayName
		if name == "" {
			name = acc.Name
		}
		if name == "" {
			name = acc.Tag
		}
		line := fmt.Sprintf("%s  %s", name, theme.DimStyle.Render(acc.Tag))
		if acc.CurrentClanName != "" {
			line += theme.DimStyle.Render("  in " + acc.CurrentClanName)
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
	b.WriteString(theme.HelpStyle.Render("a add · d delete · r refresh"))
	return b.String()
}
