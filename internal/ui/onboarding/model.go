// Package onboarding is the first-run screen: register a user and add
// the first tracked account in one flow.
package onboarding

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/clanwatch/clanwatch/internal/model"
	"github.com/clanwatch/clanwatch/internal/theme"
	"github.com/clanwatch/clanwatch/internal/ui"
)

// Service is the slice of the repository this screen uses.
type Service interface {
	Register(ctx context.Context, pushToken string) (*model.User, error)
	AddAccount(ctx context.Context, tag string) (*model.Account, error)
}

// DoneMsg signals that onboarding finished and the app should switch
// to the onboarded state.
type DoneMsg struct{}

type resultMsg struct {
	seq int
	err error
	// stage distinguishes which call failed, for the error message.
	stage string
}

// Model is the onboarding screen.
type Model struct {
	svc Service

	form    *huh.Form
	tag     string
	loading bool
	errMsg  string
	seq     int

	spin spinner.Model

	width  int
	height int
}

// New creates the onboarding screen model.
func New(svc Service, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		svc:    svc,
		spin:   sp,
		width:  width,
		height: height,
	}
	m.form = m.buildForm()
	return m
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Player tag").
				Description("The in-game tag of your first account (e.g. #2PP0J99LV)").
				Placeholder("#PLAYERTAG").
				Value(&m.tag).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("enter a valid player tag")
					}
					return nil
				}),
		),
	).WithWidth(60)
}

// Init starts the form and spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.form.Init(), m.spin.Tick)
}

// Update handles messages for the onboarding screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			switch msg.stage {
			case "register":
				m.errMsg = "registration failed, please try again"
			default:
				m.errMsg = "account could not be added, check the tag"
			}
			// Re-arm the form for another attempt.
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		return m, func() tea.Msg { return DoneMsg{} }

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	if m.loading {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m.submit()
	}

	return m, cmd
}

// submit registers the user and adds the first account. The session id
// is persisted by the repository as part of Register.
func (m Model) submit() (Model, tea.Cmd) {
	tag := strings.TrimSpace(m.tag)
	m.loading = true
	m.errMsg = ""
	m.seq++
	seq := m.seq
	svc := m.svc
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ui.OpTimeout)
		defer cancel()

		if _, err := svc.Register(ctx, ""); err != nil {
			return resultMsg{seq: seq, err: err, stage: "register"}
		}
		if _, err := svc.AddAccount(ctx, tag); err != nil {
			return resultMsg{seq: seq, err: err, stage: "account"}
		}
		return resultMsg{seq: seq}
	}
}

// Loading exposes the loading flag.
func (m Model) Loading() bool { return m.loading }

// ErrMsg exposes the error message cell ("" when clear).
func (m Model) ErrMsg() string { return m.errMsg }

// View renders the onboarding screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(theme.HeaderStyle.Render("Welcome to Clanwatch"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spin.View() + " registering...")
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.form.View())

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	return b.String()
}
