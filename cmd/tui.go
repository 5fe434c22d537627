package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/agenda/internal/book"
	"github.com/desertthunder/agenda/internal/shared"
	"github.com/desertthunder/agenda/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive address book.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Log.Level))
	r.SetLogger(fileLogger)

	queue := &book.Queue{}
	ctrl, err := r.controller(queue)
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, ctrl, queue)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
