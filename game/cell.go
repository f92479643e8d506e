package game

import (
	"fmt"
)

type Cell struct {
	board *Board

	row, col int
	idx      int
	numMines int

	isMine, isRevealed, isFlagged bool
	isLosingMine                  bool

	state CellState
}

func (cell *Cell) String() string {
	return fmt.Sprintf("Cell(%v, %v)", cell.row, cell.col)
}

func (cell *Cell) serialize() string {
	switch {
	case cell.isMine:
		switch {
		case cell.isLosingMine:
			return "*"
		case cell.isFlagged:
			return "F"
		default:
			return "O"
		}
	case cell.isFlagged:
		return "f"
	case cell.isRevealed:
		return "."
	default:
		return "#"
	}
}

// deserialize reads the mine layout from a snapshot character. Player
// knowledge (flags, revealed cells) is discarded: snapshots always load fresh.
func (cell *Cell) deserialize(c rune) bool {
	switch c {
	case '*', 'F', 'O':
		cell.isMine = true
	case 'f', '.', '#':
		cell.isMine = false
	default:
		return false
	}
	return true
}

func (cell *Cell) Row() int {
	return cell.row
}

func (cell *Cell) Col() int {
	return cell.col
}

// Idx is the cell's row-major index within its board
func (cell *Cell) Idx() int {
	return cell.idx
}

func (cell *Cell) Board() *Board {
	return cell.board
}

func (cell *Cell) IsRevealed() bool {
	return cell.isRevealed
}

func (cell *Cell) IsFlagged() bool {
	return cell.isFlagged
}

// State returns the cell as the player sees it
func (cell *Cell) State() CellState {
	return cell.state
}

var neighborOffsets = [8][2]int{
	{-1, -1},
	{-1, 0},
	{-1, 1},
	{0, 1},
	{1, 1},
	{1, 0},
	{1, -1},
	{0, -1},
}

// Neighbors returns the up to 8 in-bounds cells surrounding this one
func (cell *Cell) Neighbors() []*Cell {
	neighbors := make([]*Cell, 0, len(neighborOffsets))
	for _, offset := range neighborOffsets {
		if neighbor := cell.board.CellAt(cell.row+offset[0], cell.col+offset[1]); neighbor != nil {
			neighbors = append(neighbors, neighbor)
		}
	}
	return neighbors
}

func (cell *Cell) Click() CellAction {
	return CellAction{
		cell:   cell,
		action: Click,
	}
}

func (cell *Cell) RightClick() CellAction {
	return CellAction{
		cell:   cell,
		action: RightClick,
	}
}

func (cell *Cell) MiddleClick() CellAction {
	return CellAction{
		cell:   cell,
		action: MiddleClick,
	}
}

func (cell *Cell) countMineNeighbors() int {
	count := 0
	for _, neighbor := range cell.Neighbors() {
		if neighbor.isMine {
			count++
		}
	}
	return count
}

func (cell *Cell) setFlagged(isFlagged bool) {
	if cell.isFlagged == isFlagged {
		return
	}
	cell.isFlagged = isFlagged

	if cell.isFlagged {
		cell.setState(Flag)
		cell.board.numFlags++
	} else {
		cell.setState(Unrevealed)
		cell.board.numFlags--
	}
}

// reveal uncovers this single cell, reporting whether anything changed.
// Flagged and already-revealed cells are left alone.
func (cell *Cell) reveal() bool {
	if cell.isFlagged || cell.isRevealed {
		return false
	}
	cell.isRevealed = true

	if cell.isMine {
		cell.isLosingMine = true
		cell.setState(MineLosing)
	} else {
		cell.board.numRevealed++
		cell.setState(CellState(cell.numMines))
	}
	return true
}

// revealEnded uncovers what is left to show once the game is over: unflagged
// mines, and on a loss any flag placed on a safe cell.
func (cell *Cell) revealEnded(lost bool) {
	switch {
	case cell.isFlagged:
		if lost && !cell.isMine {
			cell.setState(FlagWrong)
		}
	case cell.isMine:
		if !cell.isLosingMine {
			cell.isRevealed = true
			cell.setState(Mine)
		}
	}
}

func (cell *Cell) setState(state CellState) {
	if cell.state != state {
		cell.state = state
		cell.board.markChanged(cell)
	}
}
