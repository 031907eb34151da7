package view

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mvisser/banknote/internal/importer"
	"github.com/mvisser/banknote/internal/statement"
)

type importState int

const (
	importStateFilePick importState = iota
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	importService *importer.Service
	statementSvc  *statement.Service

	state      importState
	filePicker filepicker.Model

	batch  *statement.Batch
	status string
	err    error
}

func NewImportModel(impSvc *importer.Service, stmtSvc *statement.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv"}
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		importService: impSvc,
		statementSvc:  stmtSvc,
		filePicker:    fp,
	}
}

func (m ImportModel) Title() string { return "Import Statement" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateResult {
		return "Enter: view report | Esc: back"
	}

	return "Esc: back | Enter: select file"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

type importResultMsg struct {
	batch *statement.Batch
	err   error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		records, err := m.importService.Import(importer.BankING, f)
		if err != nil {
			return importResultMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		batch, err := m.statementSvc.Create(ctx, path, records)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{batch: batch}
	}
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		if m.state == importStateResult && msg.Type == tea.KeyEnter && m.batch != nil {
			return m, selectBatch(m.batch)
		}

	case importResultMsg:
		m.state = importStateResult

		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.batch = msg.batch
		m.status = fmt.Sprintf("Imported %d records from %s.", len(msg.batch.Records), msg.batch.Filename)

		return m, nil
	}

	if m.state == importStateFilePick {
		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if ok, path := m.filePicker.DidSelectFile(msg); ok {
			m.state = importStateImporting
			return m, m.importCmd(path)
		}

		return m, cmd
	}

	return m, nil
}

func (m ImportModel) View() string {
	header := lipgloss.NewStyle().Bold(true).Render(m.Title())

	switch m.state {
	case importStateImporting:
		return header + "\n\nImporting..."
	case importStateResult:
		return header + "\n\n" + m.status + "\n\n" + m.ShortHelp()
	}

	return header + "\n\nSelect a statement CSV:\n\n" + m.filePicker.View()
}
