package game

import "time"

// Event is a plain data notification from a Session to its subscribers
type Event interface {
	isEvent()
}

// Listener receives session events. TimerTick events arrive on the timer's
// own goroutine; every other event arrives synchronously on the caller's.
type Listener func(Event)

// CellChanged reports a cell whose visible state changed
type CellChanged struct {
	Row, Col int
	State    CellState
}

type StateChanged struct {
	State    BoardState
	Previous BoardState
}

type MinesRemainingChanged struct {
	Remaining int
}

// BoardReset reports that a fresh board replaced the previous one, so every
// cell must be redrawn
type BoardReset struct {
	Difficulty Difficulty
	Seed       int64
}

type TimerStarted struct {
	At time.Time
}

type TimerStopped struct {
	Elapsed time.Duration
}

type TimerTick struct {
	Seconds int
}

func (CellChanged) isEvent()           {}
func (StateChanged) isEvent()          {}
func (MinesRemainingChanged) isEvent() {}
func (BoardReset) isEvent()            {}
func (TimerStarted) isEvent()          {}
func (TimerStopped) isEvent()          {}
func (TimerTick) isEvent()             {}
