package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/kittipatv/shopdesk/internal/appstate"
	"github.com/kittipatv/shopdesk/internal/inventory"
)

type inventoryState int

const (
	inventoryStateBrowse inventoryState = iota
	inventoryStateForm
)

type InventoryModel struct {
	CommonModel
	store *appstate.Store

	state    inventoryState
	table    table.Model
	products []inventory.Product
	form     *huh.Form
	status   string

	editingID string

	formCode string
	formName string
	formCost string
	formQty  string
	formUnit string
	formMin  string
}

func NewInventoryModel(store *appstate.Store) InventoryModel {
	columns := []table.Column{
		{Title: "Code", Width: 8},
		{Title: "Name", Width: 30},
		{Title: "Cost", Width: 10},
		{Title: "Qty", Width: 8},
		{Title: "Unit", Width: 8},
		{Title: "Stock", Width: 8},
	}

	m := InventoryModel{
		store: store,
		table: newTable(columns),
	}
	m.refresh()

	return m
}

func (m InventoryModel) Title() string { return "Inventory" }

func (m InventoryModel) ShortHelp() string {
	if m.state == inventoryStateForm {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | e: edit | +/-: adjust qty | x: delete"
}

func (m InventoryModel) Init() tea.Cmd { return nil }

func (m *InventoryModel) refresh() {
	m.products = m.store.Products()

	rows := make([]table.Row, len(m.products))
	for i, p := range m.products {
		stock := "ok"
		if p.LowStock() {
			stock = "LOW"
		}

		rows[i] = table.Row{
			p.Code, p.Name, FormatMoney(p.Cost),
			strconv.FormatFloat(p.Quantity, 'f', -1, 64), p.Unit, stock,
		}
	}

	m.table.SetRows(rows)
}

func (m InventoryModel) selected() (inventory.Product, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.products) {
		return inventory.Product{}, false
	}

	return m.products[idx], true
}

func (m InventoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == inventoryStateForm {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "a":
			return m.enterForm(nil)
		case "e":
			if p, ok := m.selected(); ok {
				return m.enterForm(&p)
			}
		case "+":
			if p, ok := m.selected(); ok {
				m.store.AdjustQuantity(p.ID, 1)
				m.refresh()
			}
		case "-":
			if p, ok := m.selected(); ok {
				m.store.AdjustQuantity(p.ID, -1)
				m.refresh()
			}
		case "x":
			if p, ok := m.selected(); ok {
				m.store.DeleteProduct(p.ID)
				m.status = fmt.Sprintf("Deleted %s", p.Name)
				m.refresh()
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InventoryModel) enterForm(p *inventory.Product) (tea.Model, tea.Cmd) {
	if p != nil {
		m.editingID = p.ID
		m.formCode = p.Code
		m.formName = p.Name
		m.formCost = strconv.FormatFloat(p.Cost, 'f', -1, 64)
		m.formQty = strconv.FormatFloat(p.Quantity, 'f', -1, 64)
		m.formUnit = p.Unit
		m.formMin = strconv.FormatFloat(p.MinStockThreshold, 'f', -1, 64)
	} else {
		m.editingID = ""
		m.formCode = ""
		m.formName = ""
		m.formCost = "0"
		m.formQty = "0"
		m.formUnit = "ชิ้น"
		m.formMin = "5"
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("code").Title("Code").Value(&m.formCode).Validate(nonEmpty("code")),
			huh.NewInput().Key("name").Title("Name").Value(&m.formName).Validate(nonEmpty("name")),
			huh.NewInput().Key("cost").Title("Unit cost (฿)").Value(&m.formCost).Validate(validAmount),
			huh.NewInput().Key("quantity").Title("Quantity").Value(&m.formQty).Validate(validAmount),
			huh.NewInput().Key("unit").Title("Unit label").Value(&m.formUnit),
			huh.NewInput().Key("min").Title("Min stock").Value(&m.formMin).Validate(validAmount),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = inventoryStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m InventoryModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = inventoryStateBrowse
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

	cost, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("cost")), 64)
	qty, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("quantity")), 64)
	minStock, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("min")), 64)
	code := strings.TrimSpace(m.form.GetString("code"))
	name := strings.TrimSpace(m.form.GetString("name"))
	unit := strings.TrimSpace(m.form.GetString("unit"))

	if m.editingID != "" {
		m.store.UpdateProduct(m.editingID, inventory.Patch{
			Code:              &code,
			Name:              &name,
			Cost:              &cost,
			Quantity:          &qty,
			Unit:              &unit,
			MinStockThreshold: &minStock,
		})
		m.status = fmt.Sprintf("Updated %s", name)
	} else {
		m.store.AddProduct(inventory.Product{
			Code:              code,
			Name:              name,
			Cost:              cost,
			Quantity:          qty,
			Unit:              unit,
			MinStockThreshold: minStock,
		})
		m.status = fmt.Sprintf("Added %s", name)
	}

	m.state = inventoryStateBrowse
	m.form = nil
	m.table.Focus()
	m.refresh()

	return m, nil
}

func (m InventoryModel) View() string {
	low := 0

	for _, p := range m.products {
		if p.LowStock() {
			low++
		}
	}

	header := fmt.Sprintf("%d products | %s low on stock", len(m.products), activeStyle(strconv.Itoa(low)))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		borderedTable(m.table),
	)

	if m.state == inventoryStateForm && m.form != nil {
		title := "New Product"
		if m.editingID != "" {
			title = "Edit Product"
		}

		panel := panelStyle.Width(44).Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
