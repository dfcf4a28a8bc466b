package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/Inxkls/xerces/internal/shared"
	"github.com/Inxkls/xerces/internal/ui"
)

const tuiLogPath = "./tmp/xerces-tui.log"

// TUI launches the interactive album browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAPIKey(); err != nil {
		return err
	}

	// Logs go to a file so they do not corrupt the terminal.
	fileLogger, err := shared.NewFileLogger(tuiLogPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	fileLogger.SetLevel(r.logger.GetLevel())
	r.SetLogger(fileLogger)

	lib, err := r.collection(ctx)
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, lib, r.logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
