// Package bubbletea provides a Bubble Tea viewer for formatted documents.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// LoadFunc produces the markdown to display. It runs off the UI goroutine
// and should return once ctx is cancelled.
type LoadFunc func(ctx context.Context) (string, error)

// Run creates and runs the Bubble Tea program. It blocks until the program
// exits. When ctx is cancelled, the program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// LoadedMsg carries the result of the model's LoadFunc.
type LoadedMsg struct {
	Text string
	Err  error
}
