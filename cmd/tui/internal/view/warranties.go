package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/kittipatv/shopdesk/internal/appstate"
	"github.com/kittipatv/shopdesk/internal/warranty"
)

type warrantyState int

const (
	warrantyStateBrowse warrantyState = iota
	warrantyStateAdd
)

type WarrantyModel struct {
	CommonModel
	store *appstate.Store

	state      warrantyState
	table      table.Model
	warranties []warranty.Warranty
	form       *huh.Form
	status     string

	formProduct  string
	formSerial   string
	formVendor   string
	formPrice    string
	formDuration string
	formStart    string
}

func NewWarrantyModel(store *appstate.Store) WarrantyModel {
	columns := []table.Column{
		{Title: "Receipt", Width: 13},
		{Title: "Product", Width: 28},
		{Title: "Serial", Width: 14},
		{Title: "Vendor", Width: 14},
		{Title: "Expires", Width: 12},
		{Title: "Coverage", Width: 10},
	}

	m := WarrantyModel{
		store: store,
		table: newTable(columns),
	}
	m.refresh()

	return m
}

func (m WarrantyModel) Title() string { return "Warranties" }

func (m WarrantyModel) ShortHelp() string {
	if m.state == warrantyStateAdd {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: file receipt | x: delete"
}

func (m WarrantyModel) Init() tea.Cmd { return nil }

func (m *WarrantyModel) refresh() {
	m.warranties = m.store.Warranties()
	now := time.Now()

	rows := make([]table.Row, len(m.warranties))
	for i, w := range m.warranties {
		rows[i] = table.Row{w.ID, w.ProductName, w.SerialNumber, w.Vendor, w.ExpiryDate, string(w.StateAt(now))}
	}

	m.table.SetRows(rows)
}

func (m WarrantyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == warrantyStateAdd {
		return m.updateAdd(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "a":
			return m.enterAdd()
		case "x":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.warranties) {
				w := m.warranties[idx]
				m.store.DeleteWarranty(w.ID)
				m.status = fmt.Sprintf("Deleted %s", w.ID)
				m.refresh()
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m WarrantyModel) enterAdd() (tea.Model, tea.Cmd) {
	m.formProduct = ""
	m.formSerial = ""
	m.formVendor = ""
	m.formPrice = "0"
	m.formDuration = "1 ปี"
	m.formStart = time.Now().Format(time.DateOnly)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("product").Title("Product").Value(&m.formProduct).Validate(nonEmpty("product")),
			huh.NewInput().Key("serial").Title("Serial number").Value(&m.formSerial),
			huh.NewInput().Key("vendor").Title("Vendor").Value(&m.formVendor),
			huh.NewInput().Key("price").Title("Price (฿)").Value(&m.formPrice).Validate(validAmount),
			huh.NewInput().Key("duration").Title("Coverage (e.g. 1 ปี, 6 เดือน)").Value(&m.formDuration),
			huh.NewInput().Key("start").Title("Coverage start").Value(&m.formStart).Validate(validDate),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = warrantyStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m WarrantyModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = warrantyStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	price, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("price")), 64)
	start := strings.TrimSpace(m.form.GetString("start"))

	created := m.store.AddWarranty(warranty.Warranty{
		PurchaseDate: start,
		ProductName:  strings.TrimSpace(m.form.GetString("product")),
		SerialNumber: strings.TrimSpace(m.form.GetString("serial")),
		Quantity:     1,
		Vendor:       strings.TrimSpace(m.form.GetString("vendor")),
		Price:        price,
		Duration:     strings.TrimSpace(m.form.GetString("duration")),
		StartDate:    start,
		HasDocuments: true,
	})

	m.status = fmt.Sprintf("Filed %s (expires %s)", created.ID, created.ExpiryDate)

	m.state = warrantyStateBrowse
	m.form = nil
	m.table.Focus()
	m.refresh()

	return m, nil
}

func (m WarrantyModel) View() string {
	now := time.Now()
	expiring := 0

	for _, w := range m.warranties {
		if w.StateAt(now) == warranty.CoverageExpiring {
			expiring++
		}
	}

	header := fmt.Sprintf("%d receipts | %s expiring soon", len(m.warranties), activeStyle(strconv.Itoa(expiring)))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		borderedTable(m.table),
	)

	if m.state == warrantyStateAdd && m.form != nil {
		panel := panelStyle.Width(48).Render("File Receipt\n\n" + m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
