package tui

import (
	"github.com/Veraticus/superstore-dash/internal/model"
	"github.com/Veraticus/superstore-dash/internal/pipeline"
	tea "github.com/charmbracelet/bubbletea"
)

// aggregate recomputes the dashboard off the update loop.
func aggregate(records []model.Record, sel model.FilterSelection, generation int) tea.Cmd {
	return func() tea.Msg {
		return dashboardMsg{
			dash:       pipeline.Aggregate(records, sel),
			generation: generation,
		}
	}
}
