package cmd

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	// RunProgram drives the interactive screen until it quits.
	RunProgram func(m tea.Model) error
}

// DefaultDeps returns the default production dependencies.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		RunProgram: runProgram,
	}
}

func runProgram(m tea.Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
