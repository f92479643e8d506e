package pixelui

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
	"github.com/faiface/pixel/text"
	"github.com/pkg/errors"
	"github.com/they4kman/minesweep/game"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	cellWidth      = 16
	headerHeight   = 50
	minWindowWidth = 200

	// Delay between director actions while autoplaying
	actInterval = 100 * time.Millisecond
)

var numberColors = map[game.CellState]color.Color{
	game.Number1: colornames.Blue,
	game.Number2: colornames.Green,
	game.Number3: colornames.Red,
	game.Number4: colornames.Navy,
	game.Number5: colornames.Maroon,
	game.Number6: colornames.Teal,
	game.Number7: colornames.Black,
	game.Number8: colornames.Dimgray,
}

var difficultyKeys = map[pixelgl.Button]game.Difficulty{
	pixelgl.Key1: game.Easy,
	pixelgl.Key2: game.Medium,
	pixelgl.Key3: game.Hard,
}

// Run opens a window and plays until it is closed. It must be called from
// within pixelgl.Run.
func Run(config game.GameConfig) error {
	session, err := game.NewSession(config)
	if err != nil {
		return err
	}

	cfg := pixelgl.WindowConfig{
		Title:  "gosweep",
		Bounds: windowBounds(session.Board()),
	}
	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return errors.Wrap(err, "create window")
	}
	defer win.Destroy()

	basicAtlas := text.NewAtlas(basicfont.Face7x13, text.ASCII)
	view := newBoardView(basicAtlas)

	var (
		boardTopLeft pixel.Vec
		scoreText    *text.Text
		cellPosText  *text.Text
	)
	resized, dirty := true, true

	// TimerTick arrives on another goroutine and is deliberately not handled
	unsubscribe := session.Subscribe(func(event game.Event) {
		switch event.(type) {
		case game.BoardReset:
			resized = true
			dirty = true
		case game.CellChanged:
			dirty = true
		}
	})
	defer unsubscribe()

	autoplay := false
	lastAct := time.Now()

	bgColor := colornames.Gainsboro
	for !win.Closed() {
		board := session.Board()

		if resized {
			win.SetBounds(windowBounds(board))

			topLeft := win.Bounds().Vertices()[1]
			topRight := win.Bounds().Max
			boardTopLeft = topLeft.Sub(pixel.V(0, headerHeight))

			scoreText = text.New(topLeft.Add(pixel.V(20, -30)), basicAtlas)
			cellPosText = text.New(topRight.Add(pixel.V(-60, -30)), basicAtlas)
			cellPosText.Color = colornames.Darkcyan
			resized = false
		}
		if dirty {
			view.render(board, boardTopLeft)
			dirty = false
		}

		win.Update()
		win.Clear(bgColor)

		scoreText.Clear()
		scoreText.Color = colornames.Black
		fmt.Fprintf(scoreText, "%03d  %03d", session.MinesRemaining(), session.ElapsedSeconds())
		switch session.State() {
		case game.Won:
			scoreText.Color = colornames.Green
			fmt.Fprint(scoreText, "   WIN!")
		case game.Lost:
			scoreText.Color = colornames.Red
			fmt.Fprint(scoreText, "   LOSE :(")
		}
		scoreText.Draw(win, pixel.IM)

		var hoveredCell *game.Cell
		if win.MouseInsideWindow() {
			hoveredCell = screenToCell(board, boardTopLeft, win.MousePosition())
		}

		cellPosText.Clear()
		if hoveredCell != nil {
			fmt.Fprintf(cellPosText, "(%d, %d)", hoveredCell.Row(), hoveredCell.Col())
			cellPosText.Draw(win, pixel.IM)
		}

		view.draw(win)

		for key, difficulty := range difficultyKeys {
			if win.JustPressed(key) {
				if err := session.SetDifficulty(difficulty); err != nil {
					return err
				}
			}
		}

		if win.JustPressed(pixelgl.KeyEnter) {
			session.NewGame()
			continue
		}

		// Autoplay with A, single director step with Right Arrow
		if win.JustPressed(pixelgl.KeyA) {
			autoplay = !autoplay
		}
		if win.JustPressed(pixelgl.KeyRight) || win.Repeated(pixelgl.KeyRight) {
			session.Step()
		} else if autoplay && time.Since(lastAct) >= actInterval {
			session.Step()
			lastAct = time.Now()
		}

		if hoveredCell == nil {
			continue
		}
		switch {
		case win.JustPressed(pixelgl.MouseButtonLeft):
			session.Reveal(hoveredCell.Row(), hoveredCell.Col())
		case win.JustPressed(pixelgl.MouseButtonRight):
			session.ToggleFlag(hoveredCell.Row(), hoveredCell.Col())
		case win.JustPressed(pixelgl.MouseButtonMiddle):
			session.Chord(hoveredCell.Row(), hoveredCell.Col())
		}
	}

	return nil
}

func windowBounds(board *game.Board) pixel.Rect {
	return pixel.R(
		0, 0,
		math.Max(float64(board.Cols()*cellWidth), minWindowWidth),
		float64(board.Rows()*cellWidth+headerHeight),
	)
}

func screenToCell(board *game.Board, boardTopLeft, pos pixel.Vec) *game.Cell {
	if pos.X < boardTopLeft.X || pos.Y > boardTopLeft.Y {
		return nil
	}
	col := int((pos.X - boardTopLeft.X) / cellWidth)
	row := int((boardTopLeft.Y - pos.Y) / cellWidth)
	return board.CellAt(row, col)
}
