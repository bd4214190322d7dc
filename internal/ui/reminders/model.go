// Package reminders is the screen for configuring per-event reminders.
package reminders

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/clanwatch/clanwatch/internal/keys"
	"github.com/clanwatch/clanwatch/internal/model"
	"github.com/clanwatch/clanwatch/internal/theme"
	"github.com/clanwatch/clanwatch/internal/ui"
)

// Service is the slice of the repository this screen uses.
type Service interface {
	Reminders(ctx context.Context) (*model.Reminders, error)
	ToggleReminder(ctx context.Context, eventType model.EventType, enabled bool) error
	AddReminderTime(ctx context.Context, eventType model.EventType, draft model.ReminderTimeDraft) (*model.ReminderTime, error)
	DeleteReminderTime(ctx context.Context, eventType model.EventType, timeID string) error
}

// timePresets are the minutes-before-end options offered when adding a
// reminder time. Entries already present for an event type are hidden.
var timePresets = []int{15, 30, 60, 120, 240, 480, 720, 1440}

// FormatMinutes renders a minutes-before-end value compactly (90 -> "1h 30m").
func FormatMinutes(minutes int) string {
	if minutes >= 1440 {
		return fmt.Sprintf("%dd", minutes/1440)
	}
	if minutes >= 60 {
		h, m := minutes/60, minutes%60
		if m > 0 {
			return fmt.Sprintf("%dh %dm", h, m)
		}
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", minutes)
}

// AvailablePresets returns the preset options not already used by the
// given config. Uniqueness of minutes values is enforced here, at the
// presentation layer.
func AvailablePresets(cfg model.ReminderConfig) []int {
	used := make(map[int]bool, len(cfg.Times))
	for _, t := range cfg.Times {
		used[t.MinutesBeforeEnd] = true
	}
	var out []int
	for _, p := range timePresets {
		if !used[p] {
			out = append(out, p)
		}
	}
	return out
}

type listMsg struct {
	seq     int
	configs []model.ReminderConfig
	err     error
}

type mutatedMsg struct {
	seq int
	err error
}

// row is one line of the flattened reminder view: either a config
// header or a time entry under it.
type row struct {
	config    int // index into configs
	timeIndex int // index into configs[config].Times, -1 for the header
}

// Model is the reminder settings screen.
type Model struct {
	svc  Service
	keys *keys.KeyMap

	configs []model.ReminderConfig
	loading bool
	errMsg  string
	seq     int

	cursor  int
	rows    []row
	picking bool
	picks   []int
	pickIdx int
	pickFor model.EventType

	width  int
	height int
}

// New creates the reminder screen model.
func New(svc Service, k *keys.KeyMap, width, height int) Model {
	return Model{
		svc:    svc,
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

// Reload starts a fresh fetch of the full reminder configuration.
func (m Model) Reload() (Model, tea.Cmd) {
	m.loading = true
	m.errMsg = ""
	m.seq++
	seq := m.seq
	svc := m.svc
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ui.OpTimeout)
		defer cancel()
		reminders, err := svc.Reminders(ctx)
		if err != nil {
			return listMsg{seq: seq, err: err}
		}
		return listMsg{seq: seq, configs: reminders.Reminders}
	}
}

// Update handles messages for the reminder screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = ui.FaultMessage(msg.err, "loading reminders")
			return m, nil
		}
		m.configs = msg.configs
		m.rebuildRows()
		return m, nil

	case mutatedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.loading = false
			m.errMsg = ui.FaultMessage(msg.err, "updating reminders")
			return m, nil
		}
		return m.Reload()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.picking {
			return m.handlePickerKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

func (m *Model) rebuildRows() {
	m.rows = m.rows[:0]
	for ci, cfg := range m.configs {
		m.rows = append(m.rows, row{config: ci, timeIndex: -1})
		for ti := range cfg.Times {
			m.rows = append(m.rows, row{config: ci, timeIndex: ti})
		}
	}
	if m.cursor >= len(m.rows) && m.cursor > 0 {
		m.cursor = len(m.rows) - 1
	}
}

func (m Model) handlePickerKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.pickIdx < len(m.picks)-1 {
			m.pickIdx++
		}
	case key.Matches(msg, m.keys.Up):
		if m.pickIdx > 0 {
			m.pickIdx--
		}
	case key.Matches(msg, m.keys.Select):
		minutes := m.picks[m.pickIdx]
		eventType := m.pickFor
		m.picking = false
		return m.addTime(eventType, minutes)
	case key.Matches(msg, m.keys.Back):
		m.picking = false
	}
	return m, nil
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Toggle):
		if r, ok := m.currentRow(); ok && r.timeIndex == -1 {
			cfg := m.configs[r.config]
			return m.toggle(cfg.EventType, !cfg.Enabled)
		}
	case key.Matches(msg, m.keys.Add):
		if r, ok := m.currentRow(); ok {
			cfg := m.configs[r.config]
			picks := AvailablePresets(cfg)
			if len(picks) == 0 {
				m.errMsg = "all reminder times already configured"
				return m, nil
			}
			m.picking = true
			m.picks = picks
			m.pickIdx = 0
			m.pickFor = cfg.EventType
			m.errMsg = ""
		}
	case key.Matches(msg, m.keys.Delete):
		if r, ok := m.currentRow(); ok && r.timeIndex >= 0 {
			cfg := m.configs[r.config]
			return m.deleteTime(cfg.EventType, cfg.Times[r.timeIndex].ID)
		}
	case key.Matches(msg, m.keys.Refresh):
		return m.Reload()
	}
	return m, nil
}

func (m Model) currentRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m Model) toggle(eventType model.EventType, enabled bool) (Model, tea.Cmd) {
	m.loading = true
	m.errMsg = ""
	m.seq++
	seq := m.seq
	svc := m.svc
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ui.OpTimeout)
		defer cancel()
		err := svc.ToggleReminder(ctx, eventType, enabled)
		return mutatedMsg{seq: seq, err: err}
	}
}

func (m Model) addTime(eventType model.EventType, minutes int) (Model, tea.Cmd) {
	m.loading = true
	m.errMsg = ""
	m.seq++
	seq := m.seq
	svc := m.svc
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ui.OpTimeout)
		defer cancel()
		_, err := svc.AddReminderTime(ctx, eventType, model.ReminderTimeDraft{MinutesBeforeEnd: minutes})
		return mutatedMsg{seq: seq, err: err}
	}
}

func (m Model) deleteTime(eventType model.EventType, timeID string) (Model, tea.Cmd) {
	m.loading = true
	m.errMsg = ""
	m.seq++
	seq := m.seq
	svc := m.svc
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ui.OpTimeout)
		defer cancel()
		err := svc.DeleteReminderTime(ctx, eventType, timeID)
		return mutatedMsg{seq: seq, err: err}
	}
}

// Configs exposes the current data cell.
func (m Model) Configs() []model.ReminderConfig { return m.configs }

// Loading exposes the loading flag.
func (m Model) Loading() bool { return m.loading }

// ErrMsg exposes the error message cell ("" when clear).
func (m Model) ErrMsg() string { return m.errMsg }

// View renders the reminder screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(theme.HeaderStyle.Render("Reminders"))
	if m.loading {
		b.WriteString(theme.DimStyle.Render("  loading..."))
	}
	b.WriteString("\n\n")

	if m.picking {
		b.WriteString("add reminder time for " + m.pickFor.Label() + ":\n")
		for i, p := range m.picks {
			line := FormatMinutes(p) + " before end"
			if i == m.pickIdx {
				b.WriteString(theme.SelectedItemStyle.Render(line))
			} else {
				b.WriteString(theme.ListItemStyle.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(theme.HelpStyle.Render("enter confirm · esc cancel"))
		return b.String()
	}

	for ri, r := range m.rows {
		cfg := m.configs[r.config]
		var line string
		if r.timeIndex == -1 {
			mark := "[ ]"
			if cfg.Enabled {
				mark = "[x]"
			}
			line = fmt.Sprintf("%s %s", mark, cfg.EventType.Label())
		} else {
			t := cfg.Times[r.timeIndex]
			label := t.Label
			if label == "" {
				label = FormatMinutes(t.MinutesBeforeEnd)
			}
			line = "    " + label + theme.DimStyle.Render(
				fmt.Sprintf("  %d min before end", t.MinutesBeforeEnd))
		}
		if ri == m.cursor {
			b.WriteString(theme.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(theme.ListItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if len(m.rows) == 0 && !m.loading {
		b.WriteString(theme.DimStyle.Render("  no reminder configuration yet"))
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("space toggle · a add time · d delete time · r refresh"))
	return b.String()
}
