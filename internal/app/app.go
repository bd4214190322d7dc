// Package app holds the root Bubble Tea model that routes between the
// screens, owns the status poller, and wires the screens to the domain
// repository and the local store.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/clanwatch/clanwatch/internal/keys"
	"github.com/clanwatch/clanwatch/internal/repo"
	"github.com/clanwatch/clanwatch/internal/store"
	appsync "github.com/clanwatch/clanwatch/internal/sync"
	"github.com/clanwatch/clanwatch/internal/ui"
	"github.com/clanwatch/clanwatch/internal/ui/accounts"
	"github.com/clanwatch/clanwatch/internal/ui/clans"
	"github.com/clanwatch/clanwatch/internal/ui/inbox"
	"github.com/clanwatch/clanwatch/internal/ui/onboarding"
	"github.com/clanwatch/clanwatch/internal/ui/reminders"
	"github.com/clanwatch/clanwatch/internal/ui/status"
)

// bootMsg kicks off the initial loads once the program is running, so
// the screen models retained by the program carry the sequence tokens
// of the in-flight requests.
type bootMsg struct{}

// unreadCountMsg carries the number of unread notifications to the UI.
type unreadCountMsg struct {
	count int
}

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewOnboarding ViewState = iota
	ViewStatus
	ViewAccounts
	ViewClans
	ViewReminders
	ViewInbox
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and the lifecycle of the polling loop.
type Model struct {
	currentView ViewState
	layout      ui.Layout
	repo        *repo.Repository
	db          *store.SQLiteStore
	keys        *keys.KeyMap

	onboardView  onboarding.Model
	statusView   status.Model
	accountView  accounts.Model
	clanView     clans.Model
	reminderView reminders.Model
	inboxView    inbox.Model

	poller      *appsync.Poller
	ready       bool
	unreadCount int
}

// New creates the root application model. The poll interval drives the
// foreground status poller.
func New(r *repo.Repository, db *store.SQLiteStore, pollInterval time.Duration) Model {
	k := keys.DefaultKeyMap()

	view := ViewOnboarding
	if r.IsLoggedIn() {
		view = ViewStatus
	}

	return Model{
		currentView:  view,
		repo:         r,
		db:           db,
		keys:         k,
		onboardView:  onboarding.New(r, 80, 24),
		statusView:   status.New(r, k, 80, 24),
		accountView:  accounts.New(r, k, 80, 24),
		clanView:     clans.New(r, k, 80, 24),
		reminderView: reminders.New(r, k, 80, 24),
		inboxView:    inbox.New(db.Notifications(), k, 80, 24),
		poller:       appsync.New(r, pollInterval),
	}
}

// Init starts the onboarding form when no session exists, or schedules
// the boot loads when one does.
func (m Model) Init() tea.Cmd {
	if m.currentView == ViewOnboarding {
		return m.onboardView.Init()
	}
	return tea.Batch(
		m.statusView.Init(),
		func() tea.Msg { return bootMsg{} },
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		sized := tea.WindowSizeMsg{
			Width:  m.layout.ContentWidth(),
			Height: m.layout.ContentHeight(),
		}
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.onboardView, cmd = m.onboardView.Update(sized)
		cmds = append(cmds, cmd)
		m.statusView, cmd = m.statusView.Update(sized)
		cmds = append(cmds, cmd)
		m.accountView, cmd = m.accountView.Update(sized)
		cmds = append(cmds, cmd)
		m.clanView, cmd = m.clanView.Update(sized)
		cmds = append(cmds, cmd)
		m.reminderView, cmd = m.reminderView.Update(sized)
		cmds = append(cmds, cmd)
		m.inboxView, cmd = m.inboxView.Update(sized)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case bootMsg:
		return m.boot()

	case onboarding.DoneMsg:
		m.currentView = ViewStatus
		return m.boot()

	case appsync.StatusMsg:
		m.statusView = m.statusView.SetPolled(msg.Status, msg.Err)
		return m, tea.Batch(
			m.poller.WaitForNextMsg(),
			m.fetchUnreadCount(),
		)

	case unreadCountMsg:
		m.unreadCount = msg.count
		return m, nil

	case tea.KeyMsg:
		if model, cmd, handled := m.handleGlobalKey(msg); handled {
			return model, cmd
		}
	}

	return m.updateActiveView(msg)
}

// boot starts the poller and triggers the initial load on every screen.
// It runs on first entry to the onboarded state, either at startup or
// right after onboarding completes.
func (m Model) boot() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	cmds = append(cmds, m.poller.Start())

	var cmd tea.Cmd
	m.accountView, cmd = m.accountView.Reload()
	cmds = append(cmds, cmd)
	m.clanView, cmd = m.clanView.Reload()
	cmds = append(cmds, cmd)
	m.reminderView, cmd = m.reminderView.Reload()
	cmds = append(cmds, cmd)
	m.inboxView, cmd = m.inboxView.Reload()
	cmds = append(cmds, cmd)
	cmds = append(cmds, m.fetchUnreadCount())

	return m, tea.Batch(cmds...)
}

// handleGlobalKey processes keys that work across screens. It reports
// handled=false when the key should fall through to the active view,
// in particular while a text input has focus.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		m.poller.Stop()
		return m, tea.Quit, true
	}

	// During onboarding only quitting is global; everything else
	// belongs to the form.
	if m.currentView == ViewOnboarding {
		return m, nil, false
	}

	// Digit keys and q must reach a focused text input as characters.
	if m.typing() {
		return m, nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.poller.Stop()
		return m, tea.Quit, true

	case key.Matches(msg, m.keys.Status):
		m.currentView = ViewStatus
		return m, nil, true

	case key.Matches(msg, m.keys.Accounts):
		m.currentView = ViewAccounts
		return m, nil, true

	case key.Matches(msg, m.keys.Clans):
		m.currentView = ViewClans
		return m, nil, true

	case key.Matches(msg, m.keys.Reminders):
		m.currentView = ViewReminders
		return m, nil, true

	case key.Matches(msg, m.keys.Notifications):
		m.currentView = ViewInbox
		var cmd tea.Cmd
		m.inboxView, cmd = m.inboxView.Reload()
		return m, tea.Batch(cmd, m.fetchUnreadCount()), true
	}

	return m, nil, false
}

// typing reports whether the active view has a focused text input.
func (m Model) typing() bool {
	switch m.currentView {
	case ViewAccounts:
		return m.accountView.Typing()
	case ViewClans:
		return m.clanView.Typing()
	default:
		return false
	}
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewOnboarding:
		m.onboardView, cmd = m.onboardView.Update(msg)
	case ViewStatus:
		m.statusView, cmd = m.statusView.Update(msg)
	case ViewAccounts:
		m.accountView, cmd = m.accountView.Update(msg)
	case ViewClans:
		m.clanView, cmd = m.clanView.Update(msg)
	case ViewReminders:
		m.reminderView, cmd = m.reminderView.Update(msg)
	case ViewInbox:
		m.inboxView, cmd = m.inboxView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	headerTitle := "Clanwatch"
	if m.unreadCount > 0 {
		headerTitle = fmt.Sprintf("Clanwatch [%d new]", m.unreadCount)
	}
	header := m.layout.RenderHeader(headerTitle, m.pollStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.Frame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewOnboarding:
		return m.onboardView.View()
	case ViewStatus:
		return m.statusView.View()
	case ViewAccounts:
		return m.accountView.View()
	case ViewClans:
		return m.clanView.View()
	case ViewReminders:
		return m.reminderView.View()
	case ViewInbox:
		return m.inboxView.View()
	default:
		return ""
	}
}

// pollStatus returns a short string describing the polling loop state.
func (m Model) pollStatus() string {
	if m.currentView == ViewOnboarding {
		return "not registered"
	}
	if m.poller.Running() {
		return "live"
	}
	return "paused"
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewOnboarding:
		return "enter submit | ctrl+c quit"
	case ViewAccounts:
		return "a add | d delete | r refresh | 1-5 screens | q quit"
	case ViewClans:
		return "a add | d delete | r refresh | 1-5 screens | q quit"
	case ViewReminders:
		return "space toggle | a add time | d delete time | 1-5 screens | q quit"
	case ViewInbox:
		return "enter mark read | r refresh | 1-5 screens | q quit"
	default:
		return "r refresh | 1 status | 2 accounts | 3 clans | 4 reminders | 5 inbox | q quit"
	}
}

// fetchUnreadCount returns a tea.Cmd that queries the store for the
// number of unread notifications.
func (m Model) fetchUnreadCount() tea.Cmd {
	notifs := m.db.Notifications()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ui.OpTimeout)
		defer cancel()
		count, err := notifs.UnreadCount(ctx)
		if err != nil {
			return unreadCountMsg{count: 0}
		}
		return unreadCountMsg{count: count}
	}
}
