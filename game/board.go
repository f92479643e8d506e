package game

import (
	"math/rand"

	"github.com/pkg/errors"
)

type Board struct {
	rows, cols int // in number of cells
	numMines   int
	cells      [][]Cell
	cellList   []*Cell

	state       BoardState
	mode        GameMode
	numFlags    int
	numRevealed int // safe cells only
	minesPlaced bool

	seed int64
	rand *rand.Rand

	publish func(Event)
}

type boardConfig struct {
	Rows, Cols int
	NumMines   int
	Mode       GameMode
	Seed       int64
	Publish    func(Event)
}

var ErrTooManyMines = errors.New("board must leave at least one safe cell")

func (config boardConfig) validate() error {
	if config.Rows <= 0 || config.Cols <= 0 {
		return errors.Errorf("invalid board dimensions %dx%d", config.Rows, config.Cols)
	}
	if config.NumMines < 0 {
		return errors.Errorf("invalid mine count %d", config.NumMines)
	}
	if config.NumMines >= config.Rows*config.Cols {
		return errors.Wrapf(ErrTooManyMines, "%d mines on %dx%d", config.NumMines, config.Rows, config.Cols)
	}
	return nil
}

// NewBoard creates an empty board for the difficulty. Mines are placed on the
// first reveal.
func NewBoard(difficulty Difficulty, mode GameMode, seed int64) (*Board, error) {
	config := boardConfig{
		Rows:     difficulty.Rows,
		Cols:     difficulty.Cols,
		NumMines: difficulty.Mines,
		Mode:     mode,
		Seed:     seed,
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return createBoard(config), nil
}

func createBoard(config boardConfig) *Board {
	board := &Board{
		state:    Waiting,
		rows:     config.Rows,
		cols:     config.Cols,
		numMines: config.NumMines,
		mode:     config.Mode,
		seed:     config.Seed,
		rand:     rand.New(rand.NewSource(config.Seed)),
		cells:    make([][]Cell, config.Rows),
		cellList: make([]*Cell, 0, config.Rows*config.Cols),
		publish:  config.Publish,
	}

	cellIdx := 0
	for row := 0; row < config.Rows; row++ {
		board.cells[row] = make([]Cell, config.Cols)

		for col := 0; col < config.Cols; col++ {
			cell := &board.cells[row][col]
			cell.board = board
			cell.idx = cellIdx
			cell.row, cell.col = row, col
			cell.state = Unrevealed

			board.cellList = append(board.cellList, cell)
			cellIdx++
		}
	}

	return board
}

func (board *Board) Rows() int {
	return board.rows
}

func (board *Board) Cols() int {
	return board.cols
}

func (board *Board) NumCells() int {
	return board.rows * board.cols
}

func (board *Board) NumMines() int {
	return board.numMines
}

func (board *Board) NumFlags() int {
	return board.numFlags
}

// MinesRemaining is the mine count less the flag count. It goes negative when
// the player places more flags than there are mines.
func (board *Board) MinesRemaining() int {
	return board.numMines - board.numFlags
}

func (board *Board) NumRevealed() int {
	return board.numRevealed
}

func (board *Board) State() BoardState {
	return board.state
}

func (board *Board) Mode() GameMode {
	return board.mode
}

func (board *Board) Seed() int64 {
	return board.seed
}

func (board *Board) Rand() *rand.Rand {
	return board.rand
}

func (board *Board) CellAt(row, col int) *Cell {
	if row >= 0 && col >= 0 && row < board.rows && col < board.cols {
		return &board.cells[row][col]
	}
	return nil
}

// Cells lists every cell in row-major order. The slice is shared; do not modify.
func (board *Board) Cells() []*Cell {
	return board.cellList
}

func (board *Board) canPlay() bool {
	return !board.state.IsOver()
}

func (board *Board) numSafe() int {
	return board.NumCells() - board.numMines
}

// Reveal uncovers the cell at (row, col), flooding outward from cells with no
// neighbouring mines.
func (board *Board) Reveal(row, col int) RevealOutcome {
	cell := board.CellAt(row, col)
	if cell == nil || !board.canPlay() || cell.isFlagged || cell.isRevealed {
		return Ignored
	}

	if board.state == Waiting {
		if !board.minesPlaced {
			board.placeMines(row, col)
		}
		board.setState(Playing)
	}

	return board.revealFrom(cell)
}

func (board *Board) revealFrom(cell *Cell) RevealOutcome {
	if cell.isMine {
		if !cell.reveal() {
			return Ignored
		}
		board.lose()
		return Exploded
	}

	revealedAny := false
	flood(
		cell,
		func(cell *Cell) bool {
			if !cell.reveal() {
				return false
			}
			revealedAny = true
			return cell.numMines == 0
		},
		func(cell *Cell) []*Cell {
			return cell.Neighbors()
		},
	)
	if !revealedAny {
		return Ignored
	}

	if board.numRevealed == board.numSafe() {
		board.win()
		return Cleared
	}
	return Revealed
}

// ToggleFlag flags or unflags a covered cell
func (board *Board) ToggleFlag(row, col int) FlagOutcome {
	cell := board.CellAt(row, col)
	if cell == nil || !board.canPlay() || cell.isRevealed {
		return FlagIgnored
	}

	cell.setFlagged(!cell.isFlagged)
	board.emit(MinesRemainingChanged{Remaining: board.MinesRemaining()})

	if cell.isFlagged {
		return Flagged
	}
	return Unflagged
}

// Chord reveals every covered, unflagged neighbour of a revealed number whose
// neighbouring flags already account for all of its mines.
func (board *Board) Chord(row, col int) RevealOutcome {
	cell := board.CellAt(row, col)
	if cell == nil || board.state != Playing || !cell.isRevealed || cell.isMine || cell.numMines == 0 {
		return Ignored
	}

	neighbors := cell.Neighbors()
	numFlaggedNeighbors := 0
	for _, neighbor := range neighbors {
		if neighbor.isFlagged {
			numFlaggedNeighbors++
		}
	}
	if numFlaggedNeighbors != cell.numMines {
		return Ignored
	}

	outcome := Ignored
	for _, neighbor := range neighbors {
		if neighbor.isFlagged || neighbor.isRevealed {
			continue
		}
		if result := board.revealFrom(neighbor); result > outcome {
			outcome = result
		}
		if !board.canPlay() {
			break
		}
	}
	return outcome
}

// placeMines picks numMines distinct cells by rejection sampling, never
// choosing the excluded cell, then counts every cell's neighbouring mines
func (board *Board) placeMines(excludeRow, excludeCol int) {
	excluded := func(row, col int) bool {
		return row == excludeRow && col == excludeCol
	}

	// Keep the whole 3x3 around the first click clear when there's room
	if board.mode == SafeZone {
		zone := 1 + len(board.CellAt(excludeRow, excludeCol).Neighbors())
		if board.numMines <= board.NumCells()-zone {
			excluded = func(row, col int) bool {
				return abs(row-excludeRow) <= 1 && abs(col-excludeCol) <= 1
			}
		}
	}

	for minesPlaced := 0; minesPlaced < board.numMines; {
		row := board.rand.Intn(board.rows)
		col := board.rand.Intn(board.cols)

		cell := &board.cells[row][col]
		if excluded(row, col) || cell.isMine {
			continue
		}

		cell.isMine = true
		minesPlaced++
	}

	board.countMines()
}

// countMines recomputes every safe cell's neighbouring mine count
func (board *Board) countMines() {
	for _, cell := range board.cellList {
		if cell.isMine {
			cell.numMines = 0
		} else {
			cell.numMines = cell.countMineNeighbors()
		}
	}
	board.minesPlaced = true
}

func (board *Board) win() {
	board.setState(Won)
	board.revealEnded(false)
}

func (board *Board) lose() {
	board.setState(Lost)
	board.revealEnded(true)
}

func (board *Board) revealEnded(lost bool) {
	for _, cell := range board.cellList {
		cell.revealEnded(lost)
	}
}

func (board *Board) setState(state BoardState) {
	if board.state == state {
		return
	}
	previous := board.state
	board.state = state
	board.emit(StateChanged{State: state, Previous: previous})
}

func (board *Board) markChanged(cell *Cell) {
	board.emit(CellChanged{Row: cell.row, Col: cell.col, State: cell.state})
}

func (board *Board) emit(event Event) {
	if board.publish != nil {
		board.publish(event)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
