package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mvisser/banknote/internal/statement"
	"github.com/mvisser/banknote/internal/window"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// BatchSelectedMsg announces the active statement batch to the other views.
type BatchSelectedMsg struct {
	Batch  *statement.Batch
	Months []string
}

func selectBatch(batch *statement.Batch) tea.Cmd {
	return func() tea.Msg {
		return BatchSelectedMsg{Batch: batch, Months: window.Months(batch.Records)}
	}
}
