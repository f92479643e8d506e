package game

// Director plays the game in place of a human
type Director interface {
	/**
	 * Prepare to play a freshly created board
	 */
	Init(*Board)

	/**
	 * Choose the next action, or report false if there's nothing left to do
	 */
	Act() (CellAction, bool)

	/**
	 * Stop playing the current board
	 */
	End()
}

type Action int

const (
	Click Action = iota
	RightClick
	MiddleClick
)

func (action Action) String() string {
	switch action {
	case Click:
		return "click"
	case RightClick:
		return "right-click"
	case MiddleClick:
		return "middle-click"
	}
	return "unknown"
}

// CellAction is a single input aimed at a cell
type CellAction struct {
	cell   *Cell
	action Action
}

func (cellAction CellAction) Cell() *Cell {
	return cellAction.cell
}

func (cellAction CellAction) Action() Action {
	return cellAction.action
}
