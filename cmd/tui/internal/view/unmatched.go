package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mvisser/banknote/internal/exception"
	"github.com/mvisser/banknote/internal/record"
	"github.com/mvisser/banknote/internal/report"
	"github.com/mvisser/banknote/internal/reporting"
	"github.com/mvisser/banknote/internal/rules"
	"github.com/mvisser/banknote/internal/statement"
)

type unmatchedState int

const (
	unmatchedStateBrowse unmatchedState = iota
	unmatchedStateAssign
)

// UnmatchedModel lists the records no rule claimed and lets the user file
// them under a category as an exception override.
type UnmatchedModel struct {
	CommonModel
	reportingSvc *reporting.Service
	rulesSvc     *rules.Service
	exceptionSvc *exception.Service

	batch    *statement.Batch
	months   []string
	monthIdx int
	expenses bool

	state   unmatchedState
	table   table.Model
	records []record.Record

	form         *huh.Form
	formCategory string

	status string
	err    error
}

func NewUnmatchedModel(reportingSvc *reporting.Service, rulesSvc *rules.Service, exceptionSvc *exception.Service) UnmatchedModel {
	columns := []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Amount", Width: 10},
		{Title: "Name", Width: 28},
		{Title: "Description", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return UnmatchedModel{
		reportingSvc: reportingSvc,
		rulesSvc:     rulesSvc,
		exceptionSvc: exceptionSvc,
		expenses:     true,
		table:        t,
	}
}

// SetBatch points the view at a new batch and resets the selected month.
func (m *UnmatchedModel) SetBatch(batch *statement.Batch, months []string) {
	m.batch = batch
	m.months = months
	m.monthIdx = 0
	m.records = nil
}

func (m UnmatchedModel) Title() string { return "Unmatched Records" }

func (m UnmatchedModel) ShortHelp() string {
	if m.state == unmatchedStateAssign {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | m: month | tab: income/expenses | e: assign category | r: refresh"
}

type loadUnmatchedMsg struct {
	rep *report.Report
	err error
}

type categoriesMsg struct {
	categories []string
	err        error
}

type assignDoneMsg struct {
	err error
}

func (m UnmatchedModel) loadCmd() tea.Cmd {
	batchID := m.batch.ID
	month := m.month()

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rep, err := m.reportingSvc.Build(ctx, batchID, month, false)

		return loadUnmatchedMsg{rep: rep, err: err}
	}
}

func (m UnmatchedModel) categoriesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		cfg, err := m.rulesSvc.Load(ctx)
		if err != nil {
			return categoriesMsg{err: err}
		}

		names := make([]string, 0, len(cfg.Categories))
		for _, cat := range cfg.Categories {
			names = append(names, cat.Name)
		}

		return categoriesMsg{categories: names}
	}
}

func (m UnmatchedModel) assignCmd(rec record.Record, category string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return assignDoneMsg{err: m.exceptionSvc.Assign(ctx, rec, category)}
	}
}

func (m UnmatchedModel) month() string {
	if len(m.months) == 0 {
		return ""
	}

	return m.months[m.monthIdx]
}

func (m UnmatchedModel) Init() tea.Cmd {
	if m.batch == nil {
		return nil
	}

	return m.loadCmd()
}

func (m UnmatchedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadUnmatchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.records = msg.rep.UnmatchedIncomeRecords

		if m.expenses {
			m.records = msg.rep.UnmatchedExpenseRecords
		}

		m.refreshTable()

		return m, nil

	case categoriesMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.formCategory = ""
		m.form = huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("File under category").
				Options(huh.NewOptions(msg.categories...)...).
				Value(&m.formCategory),
		))
		m.state = unmatchedStateAssign

		return m, m.form.Init()

	case assignDoneMsg:
		m.state = unmatchedStateBrowse
		m.form = nil

		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving exception: %v", msg.err)
			return m, nil
		}

		m.status = "Exception saved."

		return m, m.loadCmd()
	}

	if m.state == unmatchedStateAssign {
		return m.updateAssign(msg)
	}

	return m.updateBrowse(msg)
}

func (m UnmatchedModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, Back
		case "m":
			if len(m.months) > 0 {
				m.monthIdx = (m.monthIdx + 1) % len(m.months)
				return m, m.loadCmd()
			}
		case "tab":
			m.expenses = !m.expenses
			return m, m.loadCmd()
		case "e":
			if len(m.records) > 0 {
				return m, m.categoriesCmd()
			}
		case "r":
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m UnmatchedModel) updateAssign(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		m.state = unmatchedStateBrowse
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		rec := m.records[m.table.Cursor()]
		return m, m.assignCmd(rec, m.formCategory)
	}

	return m, cmd
}

func (m *UnmatchedModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.records))
	for _, rec := range m.records {
		rows = append(rows, table.Row{
			FormatDate(rec.Date),
			FormatAmount(rec.Amount),
			rec.Name,
			rec.Description,
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

func (m UnmatchedModel) View() string {
	header := lipgloss.NewStyle().Bold(true).Render(m.Title())

	if m.batch == nil {
		return header + "\n\nImport or open a batch first."
	}

	if m.err != nil {
		return header + fmt.Sprintf("\n\nError: %v", m.err)
	}

	if m.state == unmatchedStateAssign && m.form != nil {
		return header + "\n\n" + m.form.View()
	}

	side := "Income"
	if m.expenses {
		side = "Expenses"
	}

	s := header + "\n" + fmt.Sprintf("%s | %s", m.month(), side) + "\n\n" + m.table.View()

	if m.status != "" {
		s += "\n" + m.status
	}

	return s + "\n\n" + m.ShortHelp()
}
