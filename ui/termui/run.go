package termui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/they4kman/minesweep/game"
)

// Run plays in the terminal until the player quits
func Run(config game.GameConfig) error {
	session, err := game.NewSession(config)
	if err != nil {
		return err
	}

	program := tea.NewProgram(newModel(session), tea.WithAltScreen())

	// Ticks come from the timer's goroutine, never from inside Update
	unsubscribe := session.Subscribe(func(event game.Event) {
		if tick, ok := event.(game.TimerTick); ok {
			program.Send(tickMsg{seconds: tick.Seconds})
		}
	})
	defer unsubscribe()

	if _, err := program.Run(); err != nil {
		return errors.Wrap(err, "terminal ui")
	}
	return nil
}
