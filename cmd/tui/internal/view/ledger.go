package view

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/kittipatv/shopdesk/internal/appstate"
	"github.com/kittipatv/shopdesk/internal/importer"
	"github.com/kittipatv/shopdesk/internal/ledger"
)

type ledgerState int

const (
	ledgerStateBrowse ledgerState = iota
	ledgerStateAdd
	ledgerStateImport
)

type LedgerModel struct {
	CommonModel
	store     *appstate.Store
	importSvc *importer.Service

	state  ledgerState
	table  table.Model
	txs    []ledger.Transaction
	form   *huh.Form
	status string

	// Form bindings
	formDate     string
	formDesc     string
	formCategory string
	formAmount   string
	formType     string
	formPay      string
	formPath     string
}

func NewLedgerModel(store *appstate.Store, importSvc *importer.Service) LedgerModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Description", Width: 32},
		{Title: "Category", Width: 12},
		{Title: "Type", Width: 9},
		{Title: "Paid", Width: 9},
		{Title: "Amount", Width: 12},
	}

	m := LedgerModel{
		store:     store,
		importSvc: importSvc,
		table:     newTable(columns),
	}
	m.refresh()

	return m
}

func (m LedgerModel) Title() string { return "Ledger" }

func (m LedgerModel) ShortHelp() string {
	if m.state != ledgerStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add entry | i: import statement | r: refresh"
}

func (m LedgerModel) Init() tea.Cmd { return nil }

func (m *LedgerModel) refresh() {
	m.txs = m.store.Transactions()

	rows := make([]table.Row, len(m.txs))
	for i, t := range m.txs {
		amount := FormatMoney(t.Amount)
		if t.Type == ledger.TypeExpense {
			amount = "-" + amount
		}

		rows[i] = table.Row{t.Date, t.Description, t.Category, string(t.Type), string(t.PaymentMethod), amount}
	}

	m.table.SetRows(rows)
}

func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case ledgerStateBrowse:
		return m.updateBrowse(msg)
	default:
		return m.updateForm(msg)
	}
}

func (m LedgerModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.refresh()
			return m, nil
		case "a":
			return m.enterAdd()
		case "i":
			return m.enterImport()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m LedgerModel) enterAdd() (tea.Model, tea.Cmd) {
	m.formDate = time.Now().Format(time.DateOnly)
	m.formDesc = ""
	m.formCategory = "Service"
	m.formAmount = ""
	m.formType = string(ledger.TypeIncome)
	m.formPay = string(ledger.PaymentCash)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("date").
				Title("Date").
				Value(&m.formDate).
				Validate(validDate),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc).
				Validate(nonEmpty("description")),

			huh.NewInput().
				Key("category").
				Title("Category").
				Value(&m.formCategory),

			huh.NewInput().
				Key("amount").
				Title("Amount (฿)").
				Value(&m.formAmount).
				Validate(validAmount),

			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Income", string(ledger.TypeIncome)),
					huh.NewOption("Expense", string(ledger.TypeExpense)),
				).
				Value(&m.formType),

			huh.NewSelect[string]().
				Key("payment").
				Title("Payment").
				Options(
					huh.NewOption("Cash", string(ledger.PaymentCash)),
					huh.NewOption("Transfer", string(ledger.PaymentTransfer)),
				).
				Value(&m.formPay),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = ledgerStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m LedgerModel) enterImport() (tea.Model, tea.Cmd) {
	m.formPath = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Statement CSV path").
				Placeholder("statement.csv").
				Value(&m.formPath).
				Validate(nonEmpty("path")),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = ledgerStateImport
	m.table.Blur()

	return m, m.form.Init()
}

func (m LedgerModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m.closeForm(), nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case ledgerStateAdd:
		amount, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("amount")), 64)

		m.store.AddTransaction(ledger.Transaction{
			Date:          strings.TrimSpace(m.form.GetString("date")),
			Description:   strings.TrimSpace(m.form.GetString("description")),
			Category:      strings.TrimSpace(m.form.GetString("category")),
			Amount:        amount,
			Type:          ledger.Type(m.form.GetString("type")),
			PaymentMethod: ledger.PaymentMethod(m.form.GetString("payment")),
		})

		m.status = "Entry added"
	case ledgerStateImport:
		m.status = m.runImport(strings.TrimSpace(m.form.GetString("path")))
	}

	model := m.closeForm()
	model.refresh()

	return model, nil
}

func (m *LedgerModel) runImport(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Sprintf("Import failed: %v", err)
	}
	defer f.Close()

	entries, err := m.importSvc.Import(importer.BankKBiz, f)
	if err != nil {
		return fmt.Sprintf("Import failed: %v", err)
	}

	for _, e := range entries {
		m.store.AddTransaction(e)
	}

	return fmt.Sprintf("Imported %d entries", len(entries))
}

func (m LedgerModel) closeForm() LedgerModel {
	m.state = ledgerStateBrowse
	m.form = nil
	m.table.Focus()

	return m
}

func (m LedgerModel) View() string {
	summary := ledger.Summarize(m.txs)

	header := fmt.Sprintf(
		"Income: %s | Expense: %s | Net: %s",
		okStyle.Render(FormatMoney(summary.Income)),
		errStyle.Render(FormatMoney(summary.Expense)),
		activeStyle(FormatMoney(summary.Net())),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		borderedTable(m.table),
	)

	if m.state != ledgerStateBrowse && m.form != nil {
		title := "New Entry"
		if m.state == ledgerStateImport {
			title = "Import Statement"
		}

		panel := panelStyle.Width(48).Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func nonEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}

		return nil
	}
}

func validDate(s string) error {
	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}

	return nil
}

func validAmount(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative number")
	}

	return nil
}
