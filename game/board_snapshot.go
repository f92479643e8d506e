package game

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// BoardSnapshot records a board's mine layout, together with what the player
// uncovered, one character per cell:
//
//	*  the mine that lost the game
//	F  flagged mine
//	O  mine
//	f  flagged safe cell
//	.  revealed safe cell
//	#  covered safe cell
type BoardSnapshot struct {
	Seed            int64  `yaml:"seed"`
	SerializedBoard string `yaml:"board,flow"`
}

func (snapshot *BoardSnapshot) Serialize() (string, error) {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		return "", errors.Wrap(err, "marshal snapshot")
	}
	return string(out), nil
}

func (board *Board) snapshot() *BoardSnapshot {
	var serialized strings.Builder
	for row := 0; row < board.rows; row++ {
		if row > 0 {
			serialized.WriteByte('\n')
		}
		for col := 0; col < board.cols; col++ {
			serialized.WriteString(board.cells[row][col].serialize())
		}
	}

	return &BoardSnapshot{
		Seed:            board.seed,
		SerializedBoard: serialized.String(),
	}
}

// Snapshot captures the board's current layout
func (board *Board) Snapshot() *BoardSnapshot {
	return board.snapshot()
}

// Difficulty describes the snapshot's board as a custom difficulty
func (snapshot *BoardSnapshot) Difficulty() (Difficulty, error) {
	rows := snapshot.rows()
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Difficulty{}, errors.New("snapshot board is empty")
	}

	difficulty := Difficulty{
		Name: "snapshot",
		Rows: len(rows),
		Cols: len(rows[0]),
	}
	for y, row := range rows {
		if len(row) != difficulty.Cols {
			return Difficulty{}, errors.Errorf("snapshot row %d has %d cells, expected %d", y, len(row), difficulty.Cols)
		}
		difficulty.Mines += strings.Count(row, "*") + strings.Count(row, "F") + strings.Count(row, "O")
	}
	return difficulty, nil
}

func (snapshot *BoardSnapshot) rows() []string {
	trimmed := strings.TrimSpace(snapshot.SerializedBoard)
	if trimmed == "" {
		return nil
	}
	rows := strings.Split(trimmed, "\n")
	for i := range rows {
		rows[i] = strings.TrimSpace(rows[i])
	}
	return rows
}

// CreateBoard builds a fresh board with the snapshot's mines already in place.
// Flags and revealed cells in the snapshot are not restored.
func (snapshot *BoardSnapshot) CreateBoard(config boardConfig) (*Board, error) {
	difficulty, err := snapshot.Difficulty()
	if err != nil {
		return nil, err
	}

	config.Rows = difficulty.Rows
	config.Cols = difficulty.Cols
	config.NumMines = difficulty.Mines
	config.Seed = snapshot.Seed
	if err := config.validate(); err != nil {
		return nil, err
	}

	board := createBoard(config)
	for y, row := range snapshot.rows() {
		for x, c := range []rune(row) {
			if cell := board.CellAt(y, x); cell == nil || !cell.deserialize(c) {
				return nil, errors.Errorf("invalid snapshot cell %q at (%d, %d)", c, y, x)
			}
		}
	}
	board.countMines()

	return board, nil
}

func LoadSnapshot(in string) (*BoardSnapshot, error) {
	var snapshot BoardSnapshot
	if err := yaml.Unmarshal([]byte(in), &snapshot); err != nil {
		return nil, errors.Wrap(err, "parse snapshot")
	}
	return &snapshot, nil
}

func LoadSnapshotFile(path string) (*BoardSnapshot, error) {
	in, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read snapshot")
	}
	return LoadSnapshot(string(in))
}
