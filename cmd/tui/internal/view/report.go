package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mvisser/banknote/internal/report"
	"github.com/mvisser/banknote/internal/reporting"
	"github.com/mvisser/banknote/internal/statement"
)

type ReportModel struct {
	CommonModel
	reportingSvc *reporting.Service

	batch    *statement.Batch
	months   []string
	monthIdx int
	payday   bool
	expenses bool

	table   table.Model
	rep     *report.Report
	summary reporting.Summary
	loading bool
	err     error
}

func NewReportModel(reportingSvc *reporting.Service) ReportModel {
	columns := []table.Column{
		{Title: "Category", Width: 24},
		{Title: "Amount", Width: 12},
		{Title: "Records", Width: 8},
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

	return ReportModel{
		reportingSvc: reportingSvc,
		expenses:     true,
		table:        t,
	}
}

// SetBatch points the view at a new batch and resets the selected month.
func (m *ReportModel) SetBatch(batch *statement.Batch, months []string) {
	m.batch = batch
	m.months = months
	m.monthIdx = 0
	m.rep = nil
}

func (m ReportModel) Title() string { return "Report" }

func (m ReportModel) ShortHelp() string {
	return "Esc: back | m/n: month | tab: income/expenses | p: payday window | r: refresh"
}

type loadReportMsg struct {
	rep     *report.Report
	summary reporting.Summary
	err     error
}

func (m ReportModel) loadCmd() tea.Cmd {
	batchID := m.batch.ID
	month := m.month()
	payday := m.payday

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rep, err := m.reportingSvc.Build(ctx, batchID, month, payday)
		if err != nil {
			return loadReportMsg{err: err}
		}

		return loadReportMsg{rep: rep, summary: m.reportingSvc.Summarize(rep)}
	}
}

func (m ReportModel) month() string {
	if len(m.months) == 0 {
		return ""
	}

	return m.months[m.monthIdx]
}

func (m ReportModel) Init() tea.Cmd {
	if m.batch == nil {
		return nil
	}

	return m.loadCmd()
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadReportMsg:
		m.loading = false
		m.err = msg.err
		m.rep = msg.rep
		m.summary = msg.summary
		m.refreshTable()

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "m":
			if len(m.months) > 0 {
				m.monthIdx = (m.monthIdx + 1) % len(m.months)
				return m, m.loadCmd()
			}
		case "n":
			if len(m.months) > 0 {
				m.monthIdx = (m.monthIdx + len(m.months) - 1) % len(m.months)
				return m, m.loadCmd()
			}
		case "p":
			m.payday = !m.payday
			return m, m.loadCmd()
		case "tab":
			m.expenses = !m.expenses
			m.refreshTable()

			return m, nil
		case "r":
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *ReportModel) refreshTable() {
	if m.rep == nil {
		m.table.SetRows(nil)
		return
	}

	categories := m.rep.IncomeCategories
	unmatchedTotal := m.rep.UnmatchedIncomeTotal
	unmatchedCount := len(m.rep.UnmatchedIncomeRecords)

	if m.expenses {
		categories = m.rep.ExpenseCategories
		unmatchedTotal = m.rep.UnmatchedExpenseTotal
		unmatchedCount = len(m.rep.UnmatchedExpenseRecords)
	}

	rows := make([]table.Row, 0, len(categories)+1)
	for _, cat := range categories {
		rows = append(rows, table.Row{cat.Name, FormatAmount(cat.Amount), fmt.Sprintf("%d", len(cat.MatchedRecords))})
	}

	rows = append(rows, table.Row{"Unknown", FormatAmount(unmatchedTotal), fmt.Sprintf("%d", unmatchedCount)})

	m.table.SetRows(rows)
}

func (m ReportModel) View() string {
	header := lipgloss.NewStyle().Bold(true).Render(m.Title())

	if m.batch == nil {
		return header + "\n\nImport or open a batch first."
	}

	if m.err != nil {
		return header + fmt.Sprintf("\n\nError: %v", m.err)
	}

	side := "Income"
	if m.expenses {
		side = "Expenses"
	}

	windowLabel := "calendar month"
	if m.payday {
		windowLabel = "payday to payday"
	}

	status := fmt.Sprintf("%s | %s | %s", m.month(), side, windowLabel)

	summary := fmt.Sprintf(
		"Income: %s  Outgoing: %s  Savings: %s  Rest: %s",
		FormatAmount(m.summary.IncomeTotal),
		FormatAmount(m.summary.OutgoingTotal),
		FormatAmount(m.summary.SavingsTotal),
		FormatAmount(m.summary.RestTotal),
	)

	return header + "\n" + status + "\n\n" + m.table.View() + "\n" + summary + "\n\n" + m.ShortHelp()
}
