package game

import "fmt"

// CellState is what a player can see of a cell.
type CellState int

type BoardState int

const (
	Unrevealed CellState = iota - 1
	Empty
	Number1
	Number2
	Number3
	Number4
	Number5
	Number6
	Number7
	Number8
	Flag
	FlagWrong
	Mine
	MineLosing
)

var CellStates = []CellState{
	Unrevealed,
	Empty,
	Number1,
	Number2,
	Number3,
	Number4,
	Number5,
	Number6,
	Number7,
	Number8,
	Flag,
	FlagWrong,
	Mine,
	MineLosing,
}

// IsNumber reports whether the state shows an adjacent-mine count (including 0)
func (state CellState) IsNumber() bool {
	return state >= Empty && state <= Number8
}

func (state CellState) String() string {
	switch {
	case state == Unrevealed:
		return "unrevealed"
	case state.IsNumber():
		return fmt.Sprintf("number%d", int(state))
	case state == Flag:
		return "flag"
	case state == FlagWrong:
		return "flag_wrong"
	case state == Mine:
		return "mine"
	case state == MineLosing:
		return "mine_losing"
	}
	return fmt.Sprintf("CellState(%d)", int(state))
}

const (
	Waiting BoardState = iota
	Playing
	Won
	Lost
)

func (state BoardState) String() string {
	switch state {
	case Waiting:
		return "waiting"
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return fmt.Sprintf("BoardState(%d)", int(state))
}

// IsOver reports whether the state is terminal
func (state BoardState) IsOver() bool {
	return state == Won || state == Lost
}

// RevealOutcome describes the effect of a reveal or chord
type RevealOutcome int

const (
	// Ignored means nothing changed: out of bounds, game over, flagged or
	// already revealed
	Ignored RevealOutcome = iota
	Revealed
	Exploded
	Cleared
)

func (outcome RevealOutcome) String() string {
	switch outcome {
	case Ignored:
		return "ignored"
	case Revealed:
		return "revealed"
	case Exploded:
		return "exploded"
	case Cleared:
		return "cleared"
	}
	return fmt.Sprintf("RevealOutcome(%d)", int(outcome))
}

type FlagOutcome int

const (
	FlagIgnored FlagOutcome = iota
	Flagged
	Unflagged
)

type GameMode int

const (
	// Classic keeps only the first-clicked cell free of mines
	Classic GameMode = iota
	// SafeZone also keeps the first-clicked cell's neighbours free of mines,
	// when the board has room for it
	SafeZone
)

func (mode GameMode) String() string {
	switch mode {
	case Classic:
		return "classic"
	case SafeZone:
		return "safe-zone"
	}
	return fmt.Sprintf("GameMode(%d)", int(mode))
}
