package view

import (
	"fmt"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/kittipatv/shopdesk/internal/appstate"
)

// SettingsModel configures the sheet endpoint URL. Saving with an empty
// URL switches to offline/demo mode, which is a supported steady state.
type SettingsModel struct {
	CommonModel
	store *appstate.Store

	form    *huh.Form
	testing bool
	banner  string
	failed  bool

	formURL string
}

type endpointSavedMsg struct {
	url       string
	connected bool
	err       error
}

func NewSettingsModel(store *appstate.Store, currentURL string) SettingsModel {
	m := SettingsModel{
		store:   store,
		formURL: currentURL,
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("url").
				Title("Sheet endpoint URL").
				Placeholder("https://script.google.com/macros/s/.../exec").
				Value(&m.formURL).
				Validate(validEndpoint),
		),
	).WithWidth(70).WithShowHelp(false)

	return m
}

func (m SettingsModel) Title() string     { return "Settings" }
func (m SettingsModel) ShortHelp() string { return "Enter to save | Esc: back" }

func (m SettingsModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case endpointSavedMsg:
		m.testing = false

		switch {
		case msg.err != nil:
			m.failed = true
			m.banner = fmt.Sprintf("Could not save: %v", msg.err)
		case msg.connected:
			m.failed = false
			m.banner = "Saved & connected"
		case msg.url == "":
			m.failed = false
			m.banner = "Offline mode: using local demo data"
		default:
			m.failed = true
			m.banner = "Saved, but the endpoint did not respond"
		}

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.testing {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.testing = true
	endpoint := strings.TrimSpace(m.form.GetString("url"))

	return m, func() tea.Msg {
		ctx, cancel := NetCtx()
		defer cancel()

		connected, err := m.store.ConfigureEndpoint(ctx, endpoint)

		return endpointSavedMsg{url: endpoint, connected: connected, err: err}
	}
}

func (m SettingsModel) View() string {
	body := m.form.View()
	if m.testing {
		body = "Testing connection..."
	}

	content := panelStyle.Width(74).Render("Sheet Endpoint\n\n" + body + "\n\n" +
		faintStyle.Render("Leave empty for offline/demo mode."))

	if m.banner != "" {
		style := okStyle
		if m.failed {
			style = errStyle
		}

		content = style.Render(m.banner) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func validEndpoint(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("enter an http(s) URL or leave empty")
	}

	return nil
}
