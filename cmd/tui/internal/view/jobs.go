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
	"github.com/kittipatv/shopdesk/internal/jobs"
)

type jobsState int

const (
	jobsStateBrowse jobsState = iota
	jobsStateIntake
)

// statusCycle is the order the s key walks a ticket through.
var statusCycle = []jobs.Status{
	jobs.StatusPending,
	jobs.StatusInProgress,
	jobs.StatusCompleted,
	jobs.StatusCanceled,
}

type JobsModel struct {
	CommonModel
	store *appstate.Store

	state  jobsState
	table  table.Model
	tasks  []jobs.Task
	form   *huh.Form
	status string

	formType     string
	formTitle    string
	formDesc     string
	formStart    string
	formLocation string
	formAssignee string
	formCustomer string
	formPhone    string
	formEstimate string
	formDeposit  string
}

func NewJobsModel(store *appstate.Store) JobsModel {
	columns := []table.Column{
		{Title: "Job No.", Width: 14},
		{Title: "Type", Width: 13},
		{Title: "Title", Width: 28},
		{Title: "Start", Width: 12},
		{Title: "Assignee", Width: 12},
		{Title: "Status", Width: 12},
	}

	m := JobsModel{
		store: store,
		table: newTable(columns),
	}
	m.refresh()

	return m
}

func (m JobsModel) Title() string { return "Job Intake" }

func (m JobsModel) ShortHelp() string {
	if m.state == jobsStateIntake {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: new job | s: advance status | x: delete"
}

func (m JobsModel) Init() tea.Cmd { return nil }

func (m *JobsModel) refresh() {
	m.tasks = m.store.Tasks()

	rows := make([]table.Row, len(m.tasks))
	for i, t := range m.tasks {
		rows[i] = table.Row{t.ID, string(t.Type), t.Title, t.StartDate, t.Assignee, string(t.Status)}
	}

	m.table.SetRows(rows)
}

func (m JobsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == jobsStateIntake {
		return m.updateIntake(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "a":
			return m.enterIntake()
		case "s":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.tasks) {
				t := m.tasks[idx]
				m.store.UpdateTaskStatus(t.ID, nextStatus(t.Status))
				m.refresh()
			}
		case "x":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.tasks) {
				t := m.tasks[idx]
				m.store.DeleteTask(t.ID)
				m.status = fmt.Sprintf("Deleted %s", t.ID)
				m.refresh()
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func nextStatus(s jobs.Status) jobs.Status {
	for i, candidate := range statusCycle {
		if candidate == s {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}

	return jobs.StatusPending
}

func (m JobsModel) enterIntake() (tea.Model, tea.Cmd) {
	m.formType = string(jobs.TypeRepair)
	m.formTitle = ""
	m.formDesc = ""
	m.formStart = time.Now().Format(time.DateOnly)
	m.formLocation = ""
	m.formAssignee = ""
	m.formCustomer = ""
	m.formPhone = ""
	m.formEstimate = "0"
	m.formDeposit = "0"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("type").
				Title("Job type").
				Options(
					huh.NewOption("Repair", string(jobs.TypeRepair)),
					huh.NewOption("Installation", string(jobs.TypeInstallation)),
					huh.NewOption("System", string(jobs.TypeSystem)),
				).
				Value(&m.formType),

			huh.NewInput().Key("title").Title("Title").Value(&m.formTitle).Validate(nonEmpty("title")),
			huh.NewInput().Key("desc").Title("Details").Value(&m.formDesc),
			huh.NewInput().Key("start").Title("Start date").Value(&m.formStart).Validate(validDate),
			huh.NewInput().Key("location").Title("Location").Value(&m.formLocation),
			huh.NewInput().Key("assignee").Title("Assignee").Value(&m.formAssignee),
		),
		huh.NewGroup(
			huh.NewInput().Key("customer").Title("Customer name").Value(&m.formCustomer),
			huh.NewInput().Key("phone").Title("Customer phone").Value(&m.formPhone),
			huh.NewInput().Key("estimate").Title("Estimated cost (฿)").Value(&m.formEstimate).Validate(validAmount),
			huh.NewInput().Key("deposit").Title("Deposit (฿)").Value(&m.formDeposit).Validate(validAmount),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = jobsStateIntake
	m.table.Blur()

	return m, m.form.Init()
}

func (m JobsModel) updateIntake(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = jobsStateBrowse
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

	estimate, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("estimate")), 64)
	deposit, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("deposit")), 64)

	task := jobs.Task{
		Type:          jobs.Type(m.form.GetString("type")),
		Title:         strings.TrimSpace(m.form.GetString("title")),
		Description:   strings.TrimSpace(m.form.GetString("desc")),
		StartDate:     strings.TrimSpace(m.form.GetString("start")),
		Location:      strings.TrimSpace(m.form.GetString("location")),
		Assignee:      strings.TrimSpace(m.form.GetString("assignee")),
		Status:        jobs.StatusPending,
		EstimatedCost: estimate,
		Deposit:       deposit,
	}

	if name := strings.TrimSpace(m.form.GetString("customer")); name != "" {
		task.Customer = &jobs.Customer{
			Name:  name,
			Phone: strings.TrimSpace(m.form.GetString("phone")),
		}
	}

	created := m.store.AddTask(task)
	m.status = fmt.Sprintf("Created %s", created.ID)

	m.state = jobsStateBrowse
	m.form = nil
	m.table.Focus()
	m.refresh()

	return m, nil
}

func (m JobsModel) View() string {
	open := 0

	for _, t := range m.tasks {
		if t.Status == jobs.StatusPending || t.Status == jobs.StatusInProgress {
			open++
		}
	}

	header := fmt.Sprintf("%d jobs | %s open", len(m.tasks), activeStyle(strconv.Itoa(open)))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		borderedTable(m.table),
	)

	if m.state == jobsStateIntake && m.form != nil {
		panel := panelStyle.Width(48).Render("New Job\n\n" + m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
