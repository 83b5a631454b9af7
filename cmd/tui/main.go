package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/kittipatv/shopdesk/cmd/tui/internal/view"
	"github.com/kittipatv/shopdesk/internal/appstate"
	"github.com/kittipatv/shopdesk/internal/config"
	"github.com/kittipatv/shopdesk/internal/importer"
	"github.com/kittipatv/shopdesk/internal/localstore"
	"github.com/kittipatv/shopdesk/internal/session"
	"github.com/kittipatv/shopdesk/internal/sheets"
)

type model struct {
	store         *appstate.Store
	local         *localstore.Store
	sessions      *session.Manager
	importService *importer.Service

	currentView View
	loading     bool

	loginView      view.LoginModel
	ledgerView     view.LedgerModel
	inventoryView  view.InventoryModel
	jobsView       view.JobsModel
	warrantyView   view.WarrantyModel
	calculatorView view.CalculatorModel
	profileView    view.ProfileModel
	settingsView   view.SettingsModel
}

type View int

const (
	ViewLogin      View = 0
	ViewMenu       View = 1
	ViewLedger     View = 2
	ViewInventory  View = 3
	ViewJobs       View = 4
	ViewWarranties View = 5
	ViewCalculator View = 6
	ViewProfile    View = 7
	ViewSettings   View = 8
)

type loadedMsg struct{}

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	local, err := localstore.New(cfg.App.DataDir)
	if err != nil {
		slog.Error("failed to open local store", "error", err)
		os.Exit(1)
	}

	client := sheets.New(local, cfg.Sheets.DefaultURL, cfg.Sheets.Timeout)
	store := appstate.New(client, local)
	sessions := session.NewManager(cfg.Auth.SessionSecret, cfg.Auth.AdminPassword, cfg.Auth.SessionTTL)
	impSvc := importer.NewService()

	current := ViewLogin
	if sessions.Valid(local.SessionToken()) {
		current = ViewMenu
	}

	return model{
		store:         store,
		local:         local,
		sessions:      sessions,
		importService: impSvc,
		currentView:   current,
		loading:       true,
		loginView:     view.NewLoginModel(sessions, local),
	}
}

func (m model) Init() tea.Cmd {
	load := func() tea.Msg {
		ctx, cancel := view.NetCtx()
		defer cancel()

		m.store.Load(ctx)

		return loadedMsg{}
	}

	if m.currentView == ViewLogin {
		return tea.Batch(m.loginView.Init(), load)
	}

	return load
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case loadedMsg:
		m.loading = false
		return m, nil
	case view.LoggedInMsg:
		m.currentView = ViewMenu
		return m, nil
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				m.store.Close()
				return m, tea.Quit
			case "1":
				m.currentView = ViewLedger
				m.ledgerView = view.NewLedgerModel(m.store, m.importService)

				return m, m.ledgerView.Init()
			case "2":
				m.currentView = ViewInventory
				m.inventoryView = view.NewInventoryModel(m.store)

				return m, m.inventoryView.Init()
			case "3":
				m.currentView = ViewJobs
				m.jobsView = view.NewJobsModel(m.store)

				return m, m.jobsView.Init()
			case "4":
				m.currentView = ViewWarranties
				m.warrantyView = view.NewWarrantyModel(m.store)

				return m, m.warrantyView.Init()
			case "5":
				m.currentView = ViewCalculator
				m.calculatorView = view.NewCalculatorModel()

				return m, m.calculatorView.Init()
			case "6":
				m.currentView = ViewProfile
				m.profileView = view.NewProfileModel(m.store)

				return m, m.profileView.Init()
			case "7":
				m.currentView = ViewSettings
				m.settingsView = view.NewSettingsModel(m.store, m.local.EndpointURL())

				return m, m.settingsView.Init()
			}
		}
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewLedger:
		var newModel tea.Model
		newModel, cmd = m.ledgerView.Update(msg)
		m.ledgerView = newModel.(view.LedgerModel)
	case ViewInventory:
		var newModel tea.Model
		newModel, cmd = m.inventoryView.Update(msg)
		m.inventoryView = newModel.(view.InventoryModel)
	case ViewJobs:
		var newModel tea.Model
		newModel, cmd = m.jobsView.Update(msg)
		m.jobsView = newModel.(view.JobsModel)
	case ViewWarranties:
		var newModel tea.Model
		newModel, cmd = m.warrantyView.Update(msg)
		m.warrantyView = newModel.(view.WarrantyModel)
	case ViewCalculator:
		var newModel tea.Model
		newModel, cmd = m.calculatorView.Update(msg)
		m.calculatorView = newModel.(view.CalculatorModel)
	case ViewProfile:
		var newModel tea.Model
		newModel, cmd = m.profileView.Update(msg)
		m.profileView = newModel.(view.ProfileModel)
	case ViewSettings:
		var newModel tea.Model
		newModel, cmd = m.settingsView.Update(msg)
		m.settingsView = newModel.(view.SettingsModel)
	}

	return m, cmd
}

func (m model) connectivity() string {
	if m.loading {
		return lipgloss.NewStyle().Faint(true).Render("Loading sheet data...")
	}

	if m.store.Connected() {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("Connected")
	}

	return lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("Offline demo mode")
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Shopdesk  " + m.connectivity() + "\n\n" +
				"1. Income & Expenses\n" +
				"2. Inventory\n" +
				"3. Jobs\n" +
				"4. Warranties\n" +
				"5. Pricing Calculator\n" +
				"6. Company Profile\n" +
				"7. Settings\n\n" +
				"q. Quit",
		)
	case ViewLedger:
		return m.ledgerView.View()
	case ViewInventory:
		return m.inventoryView.View()
	case ViewJobs:
		return m.jobsView.View()
	case ViewWarranties:
		return m.warrantyView.View()
	case ViewCalculator:
		return m.calculatorView.View()
	case ViewProfile:
		return m.profileView.View()
	case ViewSettings:
		return m.settingsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
