package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/kittipatv/shopdesk/internal/appstate"
	"github.com/kittipatv/shopdesk/internal/company"
	"github.com/kittipatv/shopdesk/internal/sheets"
)

// ProfileModel edits the company profile. Unlike the other forms this
// save is awaited: the user is told whether the write reached the sheet.
type ProfileModel struct {
	CommonModel
	store *appstate.Store

	form   *huh.Form
	saving bool
	banner string
	failed bool

	p company.Profile
}

type profileSavedMsg struct {
	outcome sheets.Outcome
	err     error
}

func NewProfileModel(store *appstate.Store) ProfileModel {
	m := ProfileModel{
		store: store,
		p:     store.Profile(),
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("name").Title("Company name").Value(&m.p.Name).Validate(nonEmpty("name")),
			huh.NewInput().Key("address").Title("Address").Value(&m.p.Address),
			huh.NewInput().Key("phone").Title("Phone").Value(&m.p.Phone),
			huh.NewInput().Key("email").Title("Email").Value(&m.p.Email),
			huh.NewInput().Key("taxid").Title("Tax ID").Value(&m.p.TaxID),
			huh.NewInput().Key("website").Title("Website").Value(&m.p.Website),
		),
		huh.NewGroup(
			huh.NewInput().Key("bank").Title("Bank").Value(&m.p.BankName),
			huh.NewInput().Key("accname").Title("Account name").Value(&m.p.AccountName),
			huh.NewInput().Key("accno").Title("Account number").Value(&m.p.AccountNumber),
		),
	).WithWidth(50).WithShowHelp(false)

	return m
}

func (m ProfileModel) Title() string     { return "Company Profile" }
func (m ProfileModel) ShortHelp() string { return "Navigate form | Esc: back" }

func (m ProfileModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case profileSavedMsg:
		m.saving = false

		switch {
		case msg.err != nil:
			m.failed = true
			m.banner = fmt.Sprintf("Not saved: %v", msg.err)
		case msg.outcome == sheets.OutcomeFailed:
			m.failed = true
			m.banner = "Saved locally, but the sheet could not be updated"
		case msg.outcome == sheets.OutcomeSkipped:
			m.failed = false
			m.banner = "Saved locally (no sheet endpoint configured)"
		default:
			m.failed = false
			m.banner = "Profile saved"
		}

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.saving {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.saving = true

	// Rebuild the profile from the form's own results: the bound struct
	// only carried the prefill. Logo and QR code are not edited here.
	profile := m.p
	profile.Name = m.form.GetString("name")
	profile.Address = m.form.GetString("address")
	profile.Phone = m.form.GetString("phone")
	profile.Email = m.form.GetString("email")
	profile.TaxID = m.form.GetString("taxid")
	profile.Website = m.form.GetString("website")
	profile.BankName = m.form.GetString("bank")
	profile.AccountName = m.form.GetString("accname")
	profile.AccountNumber = m.form.GetString("accno")

	return m, func() tea.Msg {
		ctx, cancel := NetCtx()
		defer cancel()

		outcome, err := m.store.UpdateCompanyProfile(ctx, profile)

		return profileSavedMsg{outcome: outcome, err: err}
	}
}

func (m ProfileModel) View() string {
	body := m.form.View()
	if m.saving {
		body = "Saving profile..."
	}

	content := panelStyle.Width(54).Render("Company Profile\n\n" + body)

	if m.banner != "" {
		style := okStyle
		if m.failed {
			style = errStyle
		}

		content = style.Render(m.banner) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
