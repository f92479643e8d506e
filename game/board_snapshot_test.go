package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCreatesFreshBoard(t *testing.T) {
	snapshot := &BoardSnapshot{
		Seed:            9,
		SerializedBoard: "*f.\n#F#\nO..",
	}

	board, err := snapshot.CreateBoard(boardConfig{})
	require.NoError(t, err)

	assert.Equal(t, 3, board.Rows())
	assert.Equal(t, 3, board.Cols())
	assert.Equal(t, 3, board.NumMines())
	assert.Equal(t, int64(9), board.Seed())
	assert.Equal(t, Waiting, board.State())
	assert.True(t, board.minesPlaced)

	for _, cell := range board.Cells() {
		assert.False(t, cell.IsRevealed(), "%v", cell)
		assert.False(t, cell.IsFlagged(), "%v", cell)
	}
	assert.True(t, board.CellAt(0, 0).isMine)
	assert.True(t, board.CellAt(1, 1).isMine)
	assert.True(t, board.CellAt(2, 0).isMine)
	assert.Equal(t, 3, board.CellAt(1, 0).numMines)
	assert.Equal(t, 1, board.CellAt(0, 2).numMines)
}

func TestSnapshotOfPlayedBoard(t *testing.T) {
	board := newScenarioBoard()
	board.ToggleFlag(0, 0)
	board.ToggleFlag(4, 0)
	board.Reveal(2, 2)

	snapshot := board.Snapshot()
	assert.Equal(t, "FO####\n######\n##.###\n###O##\nf#####\n#####O", snapshot.SerializedBoard)

	serialized, err := snapshot.Serialize()
	require.NoError(t, err)
	loaded, err := LoadSnapshot(serialized)
	require.NoError(t, err)
	assert.Equal(t, snapshot, loaded)
}

func TestSnapshotDifficulty(t *testing.T) {
	snapshot := &BoardSnapshot{SerializedBoard: "OO####\n######\n###O##\n#####*"}

	difficulty, err := snapshot.Difficulty()
	require.NoError(t, err)
	assert.Equal(t, Difficulty{Name: "snapshot", Rows: 4, Cols: 6, Mines: 4}, difficulty)
}

func TestSnapshotErrors(t *testing.T) {
	tests := []struct {
		name  string
		board string
	}{
		{"empty", ""},
		{"ragged rows", "###\n##\n###"},
		{"unknown cell", "#?#\n###"},
		{"all mines", "OO\nOO"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			snapshot := &BoardSnapshot{SerializedBoard: test.board}
			_, err := snapshot.CreateBoard(boardConfig{})
			assert.Error(t, err)
		})
	}
}

func TestLoadSnapshotFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 5\nboard: |-\n  O#\n  ##\n"), 0666))

	snapshot, err := LoadSnapshotFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), snapshot.Seed)
	assert.Equal(t, "O#\n##", snapshot.SerializedBoard)

	_, err = LoadSnapshotFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadSnapshot("seed: [not a number")
	assert.Error(t, err)
}
