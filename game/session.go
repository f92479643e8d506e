package game

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Session drives one board at a time for a single player. Actions run to
// completion on the caller's goroutine; only one goroutine may drive a session.
type Session struct {
	config GameConfig
	log    logrus.FieldLogger

	difficulty Difficulty
	snapshot   *BoardSnapshot
	seed       int64

	board     *Board
	timer     *Timer
	directing bool

	listenersLock sync.RWMutex
	listeners     []Listener
}

// NewSession validates the configuration and creates the first board
func NewSession(config GameConfig) (*Session, error) {
	session := &Session{
		config:     config,
		log:        config.Logger,
		difficulty: config.Difficulty,
		snapshot:   config.Snapshot,
		seed:       config.Seed,
	}
	if session.log == nil {
		session.log = logrus.StandardLogger()
	}

	if session.snapshot != nil {
		difficulty, err := session.snapshot.Difficulty()
		if err != nil {
			return nil, errors.Wrap(err, "load snapshot")
		}
		session.difficulty = difficulty
	}

	board, err := session.createBoard()
	if err != nil {
		return nil, err
	}
	session.replaceBoard(board)

	return session, nil
}

func (session *Session) createBoard() (*Board, error) {
	config := boardConfig{
		Rows:     session.difficulty.Rows,
		Cols:     session.difficulty.Cols,
		NumMines: session.difficulty.Mines,
		Mode:     session.config.Mode,
		Seed:     session.seed,
		Publish:  session.publish,
	}

	if session.snapshot != nil {
		return session.snapshot.CreateBoard(config)
	}

	if err := config.validate(); err != nil {
		return nil, errors.Wrapf(err, "difficulty %s", session.difficulty)
	}
	return createBoard(config), nil
}

func (session *Session) replaceBoard(board *Board) {
	previous := Waiting
	if session.board != nil {
		previous = session.board.state
		session.endGame()
	}

	session.board = board
	session.timer = NewTimer(session.config.Now, session.config.TickInterval, func(seconds int) {
		session.publish(TimerTick{Seconds: seconds})
	})

	session.publish(BoardReset{Difficulty: session.difficulty, Seed: board.seed})
	session.publish(StateChanged{State: board.state, Previous: previous})
	session.publish(MinesRemainingChanged{Remaining: board.MinesRemaining()})

	if director := session.config.Director; director != nil {
		director.Init(board)
		session.directing = true
	}
}

// NewGame discards the current board for a fresh one of the same difficulty
func (session *Session) NewGame() {
	session.seed = session.board.rand.Int63()

	board, err := session.createBoard()
	if err != nil {
		// The same configuration already produced a board
		session.log.WithError(err).Error("could not create new board")
		return
	}
	session.replaceBoard(board)
}

// SetDifficulty starts a new game with another difficulty. A loaded snapshot
// layout is dropped.
func (session *Session) SetDifficulty(difficulty Difficulty) error {
	config := boardConfig{Rows: difficulty.Rows, Cols: difficulty.Cols, NumMines: difficulty.Mines}
	if err := config.validate(); err != nil {
		return errors.Wrapf(err, "difficulty %s", difficulty)
	}

	session.difficulty = difficulty
	session.snapshot = nil
	session.NewGame()
	return nil
}

func (session *Session) SetDifficultyName(name string) error {
	difficulty, err := LookupDifficulty(name)
	if err != nil {
		return err
	}
	return session.SetDifficulty(difficulty)
}

// Reveal uncovers the cell at (row, col). The first reveal of a board places
// its mines and starts the timer.
func (session *Session) Reveal(row, col int) RevealOutcome {
	previous := session.board.state
	outcome := session.board.Reveal(row, col)
	session.settle(previous, outcome, row, col)
	return outcome
}

func (session *Session) ToggleFlag(row, col int) FlagOutcome {
	outcome := session.board.ToggleFlag(row, col)
	if outcome == FlagIgnored {
		session.log.WithFields(logrus.Fields{"row": row, "col": col}).Debug("ignored flag")
	}
	return outcome
}

func (session *Session) Chord(row, col int) RevealOutcome {
	previous := session.board.state
	outcome := session.board.Chord(row, col)
	session.settle(previous, outcome, row, col)
	return outcome
}

// Interact applies a primary, secondary or middle click to (row, col),
// reporting whether anything changed
func (session *Session) Interact(row, col int, action Action) bool {
	switch action {
	case Click:
		return session.Reveal(row, col) != Ignored
	case RightClick:
		return session.ToggleFlag(row, col) != FlagIgnored
	case MiddleClick:
		return session.Chord(row, col) != Ignored
	}
	return false
}

// Apply performs an action chosen against the current board. Actions aimed
// at a discarded board are ignored.
func (session *Session) Apply(cellAction CellAction) bool {
	cell := cellAction.cell
	if cell == nil || cell.board != session.board {
		return false
	}
	return session.Interact(cell.row, cell.col, cellAction.action)
}

// Step asks the configured director for one action and applies it
func (session *Session) Step() bool {
	director := session.config.Director
	if director == nil || session.board.state.IsOver() {
		return false
	}

	cellAction, ok := director.Act()
	if !ok {
		return false
	}
	return session.Apply(cellAction)
}

// Autoplay lets the director play until the game ends, it gives up, or
// maxSteps actions have been taken
func (session *Session) Autoplay(maxSteps int) BoardState {
	for i := 0; i < maxSteps && !session.board.state.IsOver(); i++ {
		if !session.Step() {
			break
		}
	}
	return session.board.state
}

func (session *Session) settle(previous BoardState, outcome RevealOutcome, row, col int) {
	state := session.board.state
	fields := logrus.Fields{"row": row, "col": col}

	if outcome == Ignored {
		session.log.WithFields(fields).Debug("ignored reveal")
		return
	}

	if previous == Waiting && state != Waiting {
		if at, started := session.timer.Start(); started {
			session.publish(TimerStarted{At: at})
		}
		session.log.WithFields(fields).WithFields(logrus.Fields{
			"difficulty": session.difficulty.Name,
			"seed":       session.board.seed,
		}).Debug("game started")
	}

	if !previous.IsOver() && state.IsOver() {
		session.endGame()

		session.log.WithFields(logrus.Fields{
			"difficulty": session.difficulty.Name,
			"outcome":    state,
			"elapsed":    session.timer.Elapsed().Round(time.Millisecond),
			"revealed":   session.board.numRevealed,
		}).Info("game over")

		if path, err := session.config.saveSnapshot(session.board, time.Now()); err != nil {
			session.log.WithError(err).Warn("could not save snapshot")
		} else if path != "" {
			session.log.WithField("path", path).Debug("saved snapshot")
		}
	}
}

// endGame stops the timer and the director; safe to repeat
func (session *Session) endGame() {
	if session.timer.Stop() {
		session.publish(TimerStopped{Elapsed: session.timer.Elapsed()})
	}
	if session.directing {
		session.directing = false
		session.config.Director.End()
	}
}

// Subscribe registers a listener for session events, returning a function
// that removes it
func (session *Session) Subscribe(listener Listener) func() {
	session.listenersLock.Lock()
	defer session.listenersLock.Unlock()

	idx := len(session.listeners)
	session.listeners = append(session.listeners, listener)

	return func() {
		session.listenersLock.Lock()
		defer session.listenersLock.Unlock()
		session.listeners[idx] = nil
	}
}

func (session *Session) publish(event Event) {
	session.listenersLock.RLock()
	listeners := make([]Listener, len(session.listeners))
	copy(listeners, session.listeners)
	session.listenersLock.RUnlock()

	for _, listener := range listeners {
		if listener != nil {
			listener(event)
		}
	}
}

func (session *Session) Board() *Board {
	return session.board
}

func (session *Session) Difficulty() Difficulty {
	return session.difficulty
}

func (session *Session) State() BoardState {
	return session.board.state
}

// CellView returns what the player sees at (row, col)
func (session *Session) CellView(row, col int) (CellState, bool) {
	cell := session.board.CellAt(row, col)
	if cell == nil {
		return Unrevealed, false
	}
	return cell.state, true
}

func (session *Session) MinesRemaining() int {
	return session.board.MinesRemaining()
}

func (session *Session) Elapsed() time.Duration {
	return session.timer.Elapsed()
}

func (session *Session) ElapsedSeconds() int {
	return int(session.timer.Elapsed() / time.Second)
}
