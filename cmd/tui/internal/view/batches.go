package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/mvisser/banknote/internal/statement"
)

type BatchesModel struct {
	CommonModel
	statementSvc *statement.Service

	batches []statement.BatchInfo
	cursor  int
	loading bool
	err     error
}

func NewBatchesModel(stmtSvc *statement.Service) BatchesModel {
	return BatchesModel{statementSvc: stmtSvc, loading: true}
}

func (m BatchesModel) Title() string     { return "Statement Batches" }
func (m BatchesModel) ShortHelp() string { return "Esc: back | Enter: open | ↑/↓: move" }

type loadBatchesMsg struct {
	batches []statement.BatchInfo
	err     error
}

type openBatchMsg struct {
	batch *statement.Batch
	err   error
}

func (m BatchesModel) Init() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		batches, err := m.statementSvc.List(ctx)

		return loadBatchesMsg{batches: batches, err: err}
	}
}

func (m BatchesModel) openCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		batch, err := m.statementSvc.Get(ctx, id)

		return openBatchMsg{batch: batch, err: err}
	}
}

func (m BatchesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadBatchesMsg:
		m.loading = false
		m.batches = msg.batches
		m.err = msg.err

		return m, nil

	case openBatchMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		return m, selectBatch(msg.batch)

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.batches)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.batches) > 0 {
				return m, m.openCmd(m.batches[m.cursor].ID)
			}
		}
	}

	return m, nil
}

func (m BatchesModel) View() string {
	header := lipgloss.NewStyle().Bold(true).Render(m.Title())

	if m.loading {
		return header + "\n\nLoading..."
	}

	if m.err != nil {
		return header + fmt.Sprintf("\n\nError: %v", m.err)
	}

	if len(m.batches) == 0 {
		return header + "\n\nNo batches imported yet."
	}

	s := header + "\n\n"

	for i, b := range m.batches {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}

		s += fmt.Sprintf("%s%s (%d records, %s)\n", marker, b.Filename, b.RecordCount, b.CreatedAt.Format("2006-01-02"))
	}

	return s + "\n" + m.ShortHelp()
}
