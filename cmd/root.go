package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/faiface/pixel/pixelgl"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/they4kman/minesweep/director/constraint"
	"github.com/they4kman/minesweep/director/random"
	"github.com/they4kman/minesweep/game"
	"github.com/they4kman/minesweep/ui/pixelui"
	"github.com/they4kman/minesweep/ui/termui"
)

var gameConfig = game.NewGameConfig()

var (
	seed         int64
	uiName       string
	directorName string
	snapshotPath string
	numGames     int
	logLevel     string
	logFile      string
)

var rootCmd = &cobra.Command{
	Use:   "gosweep",
	Short: "Play manual or computer-driven Minesweeper",
	Long: `gosweep is a Minesweeper game which supports human- or
computer-driven playing.

Run with no arguments to play manually in a window
	gosweep

Play in the terminal instead
	gosweep --ui terminal

Let the computer play a hundred hard games and report how it did
	gosweep --ui headless --difficulty hard --games 100
`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, closeLog, err := newLogger()
		if err != nil {
			return err
		}
		defer closeLog()

		config := gameConfig
		config.Logger = log

		if seed != 0 {
			config.Seed = seed
		}

		if snapshotPath != "" {
			snapshot, err := game.LoadSnapshotFile(snapshotPath)
			if err != nil {
				return err
			}
			config.Snapshot = snapshot
		}

		if config.Director, err = newDirector(directorName); err != nil {
			return err
		}

		switch uiName {
		case "pixel":
			var runErr error
			pixelgl.Run(func() {
				runErr = pixelui.Run(config)
			})
			return runErr
		case "terminal":
			return termui.Run(config)
		case "headless":
			return runHeadless(config, numGames, log)
		}
		return errors.Errorf("unknown ui %q", uiName)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newDirector(name string) (game.Director, error) {
	switch name {
	case "", "none":
		return nil, nil
	case "random":
		return &random.Director{}, nil
	case "constraint":
		return &constraint.Director{}, nil
	}
	return nil, errors.Errorf("unknown director %q", name)
}

func newLogger() (*logrus.Logger, func(), error) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return nil, nil, errors.Wrap(err, "log level")
	}

	log := logrus.New()
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.StampMilli,
	})

	closeLog := func() {}
	switch {
	case logFile != "":
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open log file")
		}
		log.SetOutput(file)
		closeLog = func() { file.Close() }
	case uiName == "terminal":
		// stderr shares the screen with the terminal UI
		log.SetOutput(io.Discard)
	default:
		log.SetOutput(os.Stderr)
	}

	return log, closeLog, nil
}

type difficultyValue game.Difficulty

func newDifficultyValue(val game.Difficulty, p *game.Difficulty) *difficultyValue {
	*p = val
	return (*difficultyValue)(p)
}

func (difficultyVal *difficultyValue) String() string {
	return difficultyVal.Name
}

func (difficultyVal *difficultyValue) Set(value string) error {
	difficulty, err := game.LookupDifficulty(value)
	if err != nil {
		return err
	}
	*difficultyVal = difficultyValue(difficulty)
	return nil
}

func (difficultyVal *difficultyValue) Type() string {
	return "game.Difficulty"
}

type gameModeValue game.GameMode

func newGameModeValue(val game.GameMode, p *game.GameMode) *gameModeValue {
	*p = val
	return (*gameModeValue)(p)
}

var gameModes = map[string]game.GameMode{
	"classic":   game.Classic,
	"safe-zone": game.SafeZone,
}

func (modeVal *gameModeValue) String() string {
	return game.GameMode(*modeVal).String()
}

func (modeVal *gameModeValue) Set(value string) error {
	if mode, isValid := gameModes[value]; isValid {
		*modeVal = gameModeValue(mode)
		return nil
	} else {
		return fmt.Errorf("invalid game mode")
	}
}

func (modeVal *gameModeValue) Type() string {
	return "game.GameMode"
}

func init() {
	rootCmd.Flags().VarP(newDifficultyValue(game.Easy, &gameConfig.Difficulty), "difficulty", "d", "Board preset: easy (6x6, 4 mines), medium (16x16, 40 mines) or hard (16x30, 99 mines)")
	rootCmd.Flags().Var(newGameModeValue(game.Classic, &gameConfig.Mode), "mode", `Game mode, controlling behaviour of first click.
classic: only the first-clicked cell is guaranteed free of mines
safe-zone: all cells surrounding the first-clicked cell are kept free of mines too`)
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "Seed for mine placement (0 picks one from the clock)")
	rootCmd.Flags().StringVar(&uiName, "ui", "pixel", "Frontend: pixel, terminal or headless")
	rootCmd.Flags().StringVar(&directorName, "director", "none", "Computer player: none, random or constraint")
	rootCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Load the mine layout from a saved board snapshot")
	rootCmd.Flags().StringVar(&gameConfig.SavedSnapshotsDir, "save-snapshots", "", "Directory to save a snapshot of every finished board into")
	rootCmd.Flags().IntVar(&numGames, "games", 1, "Number of games to play with the headless ui")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")
}
