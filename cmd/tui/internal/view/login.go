package view

import (
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/kittipatv/shopdesk/internal/localstore"
	"github.com/kittipatv/shopdesk/internal/session"
)

// LoggedInMsg is emitted once the password checks out.
type LoggedInMsg struct{}

type LoginModel struct {
	CommonModel
	sessions *session.Manager
	local    *localstore.Store

	form    *huh.Form
	failMsg string

	formPassword string
}

func NewLoginModel(sessions *session.Manager, local *localstore.Store) LoginModel {
	m := LoginModel{
		sessions: sessions,
		local:    local,
	}
	m.form = m.buildForm()

	return m
}

func (m LoginModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.formPassword),
		),
	).WithWidth(36).WithShowHelp(false)
}

func (m LoginModel) Title() string     { return "Login" }
func (m LoginModel) ShortHelp() string { return "Enter password | Ctrl+C: quit" }

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	// Read the completed value off the form itself: the model flowing
	// through bubbletea is a copy, so the bound field is only a prefill.
	token, err := m.sessions.Login(m.form.GetString("password"))
	if err != nil {
		if errors.Is(err, session.ErrBadPassword) {
			m.failMsg = "Wrong password"
		} else {
			m.failMsg = "Login failed"
		}

		m.formPassword = ""
		m.form = m.buildForm()

		return m, m.form.Init()
	}

	if saveErr := m.local.SaveSessionToken(token); saveErr != nil {
		slog.Warn("saving session token", "error", saveErr)
	}

	return m, func() tea.Msg { return LoggedInMsg{} }
}

func (m LoginModel) View() string {
	content := panelStyle.Width(40).Render("Shopdesk\n\n" + m.form.View())

	if m.failMsg != "" {
		content = errStyle.Render(m.failMsg) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(2).Render(content)
}
