package view

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const netTimeout = 30 * time.Second

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// NetCtx returns a context with the standard timeout for endpoint calls.
func NetCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), netTimeout)
}

// FormatMoney renders a baht amount with two decimals.
func FormatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

var (
	panelStyle = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))

	faintStyle = lipgloss.NewStyle().Faint(true)

	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	okStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)
