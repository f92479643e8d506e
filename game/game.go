package game

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type GameConfig struct {
	Difficulty Difficulty
	Mode       GameMode

	Seed int64

	// Snapshot to load the mine layout from, instead of generating one
	Snapshot *BoardSnapshot

	Director Director

	// How often running games emit TimerTick; zero disables ticks
	TickInterval time.Duration
	// Clock for elapsed time; defaults to time.Now
	Now func() time.Time

	// Path to directory where final snapshots of boards should be saved
	SavedSnapshotsDir string

	Logger logrus.FieldLogger
}

func NewGameConfig() GameConfig {
	return GameConfig{
		Difficulty:   Easy,
		Mode:         Classic,
		Seed:         time.Now().UnixNano(),
		Director:     nil,
		Snapshot:     nil,
		TickInterval: time.Second,
	}
}

func (config GameConfig) saveSnapshot(board *Board, t time.Time) (string, error) {
	if config.SavedSnapshotsDir == "" {
		return "", nil
	}

	stat, err := os.Stat(config.SavedSnapshotsDir)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(config.SavedSnapshotsDir, 0777); err != nil {
			return "", errors.Wrap(err, "create snapshots directory")
		}
	case err != nil:
		return "", errors.Wrap(err, "stat snapshots directory")
	case !stat.Mode().IsDir():
		return "", errors.Errorf("%s is not a directory; cannot save snapshots to it", config.SavedSnapshotsDir)
	}

	serialized, err := board.snapshot().Serialize()
	if err != nil {
		return "", err
	}

	path := filepath.Join(config.SavedSnapshotsDir, config.generateReplayFilename(board, t))
	// TODO: prevent duplicate filenames when two games end within the same second
	if err := os.WriteFile(path, []byte(serialized), 0666); err != nil {
		return "", errors.Wrap(err, "write snapshot")
	}
	return path, nil
}

func (config GameConfig) generateReplayFilename(board *Board, t time.Time) string {
	filenameBuilder := strings.Builder{}

	filenameBuilder.WriteString(t.Format("20060102_150405_"))

	var stateStr string
	switch board.state {
	case Won:
		stateStr = "win"
	case Lost:
		stateStr = "loss"
	default:
		stateStr = "other"
	}
	filenameBuilder.WriteString(stateStr)

	filenameBuilder.WriteString(".yaml")

	return filenameBuilder.String()
}
