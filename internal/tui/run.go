package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"intervaltimer/internal/core/session"
)

// Run shows the session in the terminal until it ends or ctx is cancelled.
func Run(ctx context.Context, running *session.Session, options ...tea.ProgramOption) error {
	model := New(running, running.Subscribe(64))
	options = append(options, tea.WithContext(ctx))
	if _, err := tea.NewProgram(model, options...).Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
