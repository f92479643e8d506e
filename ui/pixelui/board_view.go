package pixelui

import (
	"fmt"
	"image/color"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/text"
	"github.com/they4kman/minesweep/game"
	"golang.org/x/image/colornames"
)

// boardView caches the drawn board until the next cell change
type boardView struct {
	cells  *imdraw.IMDraw
	labels *text.Text
}

func newBoardView(atlas *text.Atlas) *boardView {
	return &boardView{
		cells:  imdraw.New(nil),
		labels: text.New(pixel.ZV, atlas),
	}
}

func cellColor(state game.CellState) color.Color {
	switch {
	case state == game.Unrevealed, state == game.Flag, state == game.FlagWrong:
		return colornames.Darkgray
	case state == game.MineLosing:
		return colornames.Red
	default:
		return colornames.Whitesmoke
	}
}

func cellLabel(state game.CellState) (string, color.Color) {
	switch {
	case state == game.Flag:
		return "F", colornames.Orangered
	case state == game.FlagWrong:
		return "X", colornames.Purple
	case state == game.Mine, state == game.MineLosing:
		return "*", colornames.Black
	case state.IsNumber() && state != game.Empty:
		return fmt.Sprint(int(state)), numberColors[state]
	}
	return "", nil
}

func (view *boardView) render(board *game.Board, topLeft pixel.Vec) {
	view.cells.Clear()
	view.labels.Clear()

	for _, cell := range board.Cells() {
		min := topLeft.Add(pixel.V(
			float64(cellWidth*cell.Col()),
			-float64(cellWidth*(cell.Row()+1)),
		))
		max := min.Add(pixel.V(cellWidth, cellWidth))

		// Border, then the cell face
		view.cells.Color = colornames.Gray
		view.cells.Push(min, max)
		view.cells.Rectangle(0)

		view.cells.Color = cellColor(cell.State())
		view.cells.Push(min.Add(pixel.V(1, 1)), max.Sub(pixel.V(1, 1)))
		view.cells.Rectangle(0)

		if label, labelColor := cellLabel(cell.State()); label != "" {
			view.labels.Color = labelColor
			view.labels.Dot = min.Add(pixel.V(5, 3))
			fmt.Fprint(view.labels, label)
		}
	}
}

func (view *boardView) draw(target pixel.Target) {
	view.cells.Draw(target)
	view.labels.Draw(target, pixel.IM)
}
