package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/mvisser/banknote/cmd/tui/internal/view"
	"github.com/mvisser/banknote/internal/config"
	"github.com/mvisser/banknote/internal/database"
	"github.com/mvisser/banknote/internal/exception"
	excStore "github.com/mvisser/banknote/internal/exception/store"
	"github.com/mvisser/banknote/internal/importer"
	"github.com/mvisser/banknote/internal/reporting"
	"github.com/mvisser/banknote/internal/rules"
	rulesStore "github.com/mvisser/banknote/internal/rules/store"
	"github.com/mvisser/banknote/internal/statement"
	stmtStore "github.com/mvisser/banknote/internal/statement/store"
)

type model struct {
	statementService *statement.Service
	importService    *importer.Service

	currentView View

	importView    view.ImportModel
	batchesView   view.BatchesModel
	reportView    view.ReportModel
	unmatchedView view.UnmatchedModel
}

type View int

const (
	ViewMenu      View = 0
	ViewImport    View = 1
	ViewBatches   View = 2
	ViewReport    View = 3
	ViewUnmatched View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	stmtSvc := statement.NewService(stmtStore.New(db))
	rulesSvc := rules.NewService(rulesStore.New(db))
	excSvc := exception.NewService(excStore.New(db))
	impSvc := importer.NewService()
	reportingSvc := reporting.NewService(stmtSvc, rulesSvc, excSvc, cfg.Report.SavingsCategory)

	return model{
		statementService: stmtSvc,
		importService:    impSvc,
		currentView:      ViewMenu,
		importView:       view.NewImportModel(impSvc, stmtSvc),
		batchesView:      view.NewBatchesModel(stmtSvc),
		reportView:       view.NewReportModel(reportingSvc),
		unmatchedView:    view.NewUnmatchedModel(reportingSvc, rulesSvc, excSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.importService, m.statementService)

				return m, m.importView.Init()
			case "2":
				m.currentView = ViewBatches
				m.batchesView = view.NewBatchesModel(m.statementService)

				return m, m.batchesView.Init()
			case "3":
				m.currentView = ViewReport
				return m, m.reportView.Init()
			case "4":
				m.currentView = ViewUnmatched
				return m, m.unmatchedView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	case view.BatchSelectedMsg:
		m.reportView.SetBatch(msg.Batch, msg.Months)
		m.unmatchedView.SetBatch(msg.Batch, msg.Months)
		m.currentView = ViewReport

		return m, m.reportView.Init()
	}

	switch m.currentView {
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewBatches:
		var newModel tea.Model
		newModel, cmd = m.batchesView.Update(msg)
		m.batchesView = newModel.(view.BatchesModel)
	case ViewReport:
		var newModel tea.Model
		newModel, cmd = m.reportView.Update(msg)
		m.reportView = newModel.(view.ReportModel)
	case ViewUnmatched:
		var newModel tea.Model
		newModel, cmd = m.unmatchedView.Update(msg)
		m.unmatchedView = newModel.(view.UnmatchedModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Banknote TUI\n\n" +
				"1. Import Statement\n" +
				"2. Statement Batches\n" +
				"3. Report\n" +
				"4. Unmatched Records\n\n" +
				"q. Quit",
		)
	case ViewImport:
		return m.importView.View()
	case ViewBatches:
		return m.batchesView.View()
	case ViewReport:
		return m.reportView.View()
	case ViewUnmatched:
		return m.unmatchedView.View()
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
