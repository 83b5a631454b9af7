package view

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/kittipatv/shopdesk/internal/pricing"
)

// CalculatorModel is the cost-plus selling price calculator.
type CalculatorModel struct {
	CommonModel

	form   *huh.Form
	result *pricing.Breakdown

	formCost   string
	formMargin string
	formVAT    string
}

func NewCalculatorModel() CalculatorModel {
	m := CalculatorModel{
		formCost:   "0",
		formMargin: strconv.Itoa(pricing.DefaultMarginPct),
		formVAT:    strconv.Itoa(pricing.DefaultVATPct),
	}
	m.form = m.buildForm()

	return m
}

func (m CalculatorModel) Title() string     { return "Pricing Calculator" }
func (m CalculatorModel) ShortHelp() string { return "Enter values | n: new quote | Esc: back" }

func (m CalculatorModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m CalculatorModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("cost").Title("Cost (฿)").Value(&m.formCost).Validate(validAmount),
			huh.NewInput().Key("margin").Title("Profit margin (%)").Value(&m.formMargin).Validate(validAmount),
			huh.NewInput().Key("vat").Title("VAT (%)").Value(&m.formVAT).Validate(validAmount),
		),
	).WithWidth(36).WithShowHelp(false)
}

func (m CalculatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "n":
			if m.result != nil {
				m.result = nil
				m.form = m.buildForm()

				return m, m.form.Init()
			}
		}
	}

	if m.result != nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	cost, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("cost")), 64)
	margin, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("margin")), 64)
	vat, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("vat")), 64)

	breakdown := pricing.Quote{Cost: cost, MarginPct: margin, VATPct: vat}.Calculate()
	m.result = &breakdown

	return m, nil
}

func (m CalculatorModel) View() string {
	if m.result == nil {
		return lipgloss.NewStyle().Padding(1).Render(
			panelStyle.Width(40).Render("Quote\n\n" + m.form.View()),
		)
	}

	b := m.result

	lines := []string{
		"Selling Price Breakdown",
		"",
		fmt.Sprintf("Cost            %12s", FormatMoney(b.Cost)),
		fmt.Sprintf("Profit          %12s", okStyle.Render("+"+FormatMoney(b.Profit))),
		fmt.Sprintf("Subtotal        %12s", FormatMoney(b.Subtotal)),
		fmt.Sprintf("VAT             %12s", FormatMoney(b.VAT)),
		"",
		fmt.Sprintf("Total           %12s THB", activeStyle(FormatMoney(b.Total))),
		"",
		faintStyle.Render("n: new quote | Esc: back"),
	}

	return lipgloss.NewStyle().Padding(1).Render(
		panelStyle.Width(40).Render(strings.Join(lines, "\n")),
	)
}
