package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the explorer and blocks until the user quits or ctx is canceled.
// The returned model holds the selection active at exit.
func Run(ctx context.Context, cfg Config) (Model, error) {
	p := tea.NewProgram(newModel(cfg),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil && !(errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return Model{}, fmt.Errorf("explorer failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return Model{}, fmt.Errorf("explorer returned unexpected model %T", final)
	}
	return m, nil
}
