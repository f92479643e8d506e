package random

import (
	"github.com/they4kman/minesweep/game"
)

// Director clicks covered cells in a random order
type Director struct {
	board *game.Board
	order []*game.Cell
	next  int
}

func (director *Director) Init(board *game.Board) {
	director.board = board
	director.next = 0

	director.order = make([]*game.Cell, len(board.Cells()))
	copy(director.order, board.Cells())

	board.Rand().Shuffle(len(director.order), func(i, j int) {
		director.order[i], director.order[j] = director.order[j], director.order[i]
	})
}

func (director *Director) Act() (game.CellAction, bool) {
	for ; director.next < len(director.order); director.next++ {
		cell := director.order[director.next]
		if !cell.IsRevealed() && !cell.IsFlagged() {
			return cell.Click(), true
		}
	}
	return game.CellAction{}, false
}

func (director *Director) End() {
	director.board = nil
	director.order = nil
}
