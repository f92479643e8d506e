package cmd

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/they4kman/minesweep/director/constraint"
	"github.com/they4kman/minesweep/game"
)

// Tally counts finished games by outcome
type Tally struct {
	Won, Lost, Unfinished int
}

func runHeadless(config game.GameConfig, games int, log logrus.FieldLogger) error {
	tally, err := playHeadless(config, games)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"difficulty": config.Difficulty.Name,
		"games":      games,
		"won":        tally.Won,
		"lost":       tally.Lost,
		"unfinished": tally.Unfinished,
	}).Info("headless run finished")
	return nil
}

func playHeadless(config game.GameConfig, games int) (Tally, error) {
	var tally Tally
	if games < 1 {
		return tally, errors.Errorf("invalid number of games %d", games)
	}

	if config.Director == nil {
		config.Director = &constraint.Director{}
	}
	config.TickInterval = 0

	session, err := game.NewSession(config)
	if err != nil {
		return tally, err
	}

	for i := 0; i < games; i++ {
		if i > 0 {
			session.NewGame()
		}

		// Every useful action reveals or flags at least one cell
		switch session.Autoplay(session.Board().NumCells()) {
		case game.Won:
			tally.Won++
		case game.Lost:
			tally.Lost++
		default:
			tally.Unfinished++
		}
	}
	return tally, nil
}
