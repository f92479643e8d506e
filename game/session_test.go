package game

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioLayout = `
OO####
######
######
###O##
######
#####O`

type fakeClock struct {
	now time.Time
}

func (clock *fakeClock) Now() time.Time {
	return clock.now
}

func (clock *fakeClock) Advance(d time.Duration) {
	clock.now = clock.now.Add(d)
}

type recorder struct {
	lock   sync.Mutex
	events []Event
}

func (rec *recorder) listen(event Event) {
	rec.lock.Lock()
	defer rec.lock.Unlock()
	rec.events = append(rec.events, event)
}

func (rec *recorder) reset() {
	rec.lock.Lock()
	defer rec.lock.Unlock()
	rec.events = nil
}

func (rec *recorder) stateChanges() []BoardState {
	rec.lock.Lock()
	defer rec.lock.Unlock()

	var states []BoardState
	for _, event := range rec.events {
		if change, ok := event.(StateChanged); ok {
			states = append(states, change.State)
		}
	}
	return states
}

func (rec *recorder) count(match func(Event) bool) int {
	rec.lock.Lock()
	defer rec.lock.Unlock()

	n := 0
	for _, event := range rec.events {
		if match(event) {
			n++
		}
	}
	return n
}

func isTimerStarted(event Event) bool {
	_, ok := event.(TimerStarted)
	return ok
}

func isTimerStopped(event Event) bool {
	_, ok := event.(TimerStopped)
	return ok
}

func newTestConfig(clock *fakeClock) (GameConfig, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	config := NewGameConfig()
	config.Seed = 1
	config.TickInterval = 0
	config.Logger = logger
	if clock != nil {
		config.Now = clock.Now
	}
	return config, hook
}

func newScenarioSession(t *testing.T, clock *fakeClock) (*Session, *recorder, *test.Hook) {
	config, hook := newTestConfig(clock)
	snapshot, err := LoadSnapshot("seed: 1\nboard: |" + indent(scenarioLayout))
	require.NoError(t, err)
	config.Snapshot = snapshot

	session, err := NewSession(config)
	require.NoError(t, err)

	rec := &recorder{}
	session.Subscribe(rec.listen)
	return session, rec, hook
}

func indent(layout string) string {
	out := ""
	for _, c := range layout {
		out += string(c)
		if c == '\n' {
			out += "  "
		}
	}
	return out
}

func TestNewSession(t *testing.T) {
	config, _ := newTestConfig(nil)
	config.Difficulty = Hard

	session, err := NewSession(config)
	require.NoError(t, err)

	assert.Equal(t, Hard, session.Difficulty())
	assert.Equal(t, Waiting, session.State())
	assert.Equal(t, 99, session.MinesRemaining())
	assert.Zero(t, session.Elapsed())

	view, ok := session.CellView(15, 29)
	assert.True(t, ok)
	assert.Equal(t, Unrevealed, view)

	_, ok = session.CellView(16, 0)
	assert.False(t, ok)
}

func TestNewSessionRejectsInvalidDifficulty(t *testing.T) {
	config, _ := newTestConfig(nil)
	config.Difficulty = Difficulty{Name: "full", Rows: 3, Cols: 3, Mines: 9}

	_, err := NewSession(config)
	assert.ErrorIs(t, err, ErrTooManyMines)
}

func TestSessionScenarioLoss(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	session, rec, hook := newScenarioSession(t, clock)

	assert.Equal(t, Exploded, session.Reveal(0, 0))
	assert.Equal(t, Lost, session.State())
	assert.Equal(t, []BoardState{Playing, Lost}, rec.stateChanges())

	for _, pos := range [][2]int{{0, 1}, {5, 5}, {3, 3}} {
		view, _ := session.CellView(pos[0], pos[1])
		assert.Equal(t, Mine, view, "%v", pos)
	}
	view, _ := session.CellView(0, 0)
	assert.Equal(t, MineLosing, view)

	assert.Equal(t, 1, rec.count(isTimerStarted))
	assert.Equal(t, 1, rec.count(isTimerStopped))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "game over", entry.Message)
	assert.Equal(t, Lost, entry.Data["outcome"])
}

func TestSessionScenarioWin(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	session, rec, _ := newScenarioSession(t, clock)

	assert.Equal(t, Revealed, session.Reveal(5, 0))
	clock.Advance(7500 * time.Millisecond)
	assert.Equal(t, 7, session.ElapsedSeconds())

	assert.Equal(t, Cleared, session.Reveal(0, 5))
	assert.Equal(t, Won, session.State())
	assert.Equal(t, []BoardState{Playing, Won}, rec.stateChanges())

	// The clock stops with the game
	clock.Advance(time.Minute)
	assert.Equal(t, 7500*time.Millisecond, session.Elapsed())
}

func TestSessionIgnoredActionsLeaveTimerAlone(t *testing.T) {
	session, rec, _ := newScenarioSession(t, nil)

	assert.Equal(t, Flagged, session.ToggleFlag(0, 0))
	assert.Equal(t, Ignored, session.Reveal(0, 0))
	assert.Equal(t, Ignored, session.Reveal(-1, -1))

	assert.Equal(t, Waiting, session.State())
	assert.Zero(t, rec.count(isTimerStarted))
	view, _ := session.CellView(0, 0)
	assert.Equal(t, Flag, view)
}

func TestSessionTimerStartsOnce(t *testing.T) {
	session, rec, _ := newScenarioSession(t, nil)

	session.Reveal(2, 2)
	session.Reveal(2, 3)
	session.Reveal(1, 2)

	assert.Equal(t, 1, rec.count(isTimerStarted))
	assert.True(t, session.timer.Running())
}

func TestSessionFlagEvents(t *testing.T) {
	session, rec, _ := newScenarioSession(t, nil)

	session.ToggleFlag(1, 1)
	session.ToggleFlag(1, 2)
	session.ToggleFlag(1, 3)
	session.ToggleFlag(1, 4)
	session.ToggleFlag(1, 5)

	var remaining []int
	for _, event := range rec.events {
		if change, ok := event.(MinesRemainingChanged); ok {
			remaining = append(remaining, change.Remaining)
		}
	}
	assert.Equal(t, []int{3, 2, 1, 0, -1}, remaining)
	assert.Equal(t, -1, session.MinesRemaining())
}

func TestSessionCellChangedEvents(t *testing.T) {
	session, rec, _ := newScenarioSession(t, nil)

	session.Reveal(2, 2)

	assert.Contains(t, rec.events, CellChanged{Row: 2, Col: 2, State: Number1})
}

func TestSessionNewGame(t *testing.T) {
	config, _ := newTestConfig(nil)
	session, err := NewSession(config)
	require.NoError(t, err)

	rec := &recorder{}
	session.Subscribe(rec.listen)

	session.Reveal(0, 0)
	session.ToggleFlag(5, 5)
	require.NotEqual(t, Waiting, session.State())
	first := session.Board()

	session.NewGame()

	assert.NotSame(t, first, session.Board())
	assert.Equal(t, Waiting, session.State())
	assert.Equal(t, Easy.Mines, session.MinesRemaining())
	assert.Zero(t, session.Elapsed())
	assert.False(t, session.Board().minesPlaced)
	assert.Equal(t, 1, rec.count(isTimerStopped))
	assert.Equal(t, Waiting, rec.stateChanges()[len(rec.stateChanges())-1])

	// Actions aimed at the discarded board do nothing
	assert.False(t, session.Apply(first.CellAt(1, 1).Click()))
}

func TestSessionNewGameBeforeFirstClick(t *testing.T) {
	session, rec, _ := newScenarioSession(t, nil)

	session.NewGame()
	session.NewGame()

	assert.Zero(t, rec.count(isTimerStopped))
	assert.Equal(t, Waiting, session.State())
}

func TestSessionSnapshotLayoutSurvivesNewGame(t *testing.T) {
	session, _, _ := newScenarioSession(t, nil)
	session.Reveal(5, 0)

	session.NewGame()

	assert.Equal(t, Exploded, session.Reveal(3, 3))
}

func TestSessionSetDifficulty(t *testing.T) {
	session, rec, _ := newScenarioSession(t, nil)
	session.Reveal(5, 0)
	rec.reset()

	require.NoError(t, session.SetDifficultyName("medium"))

	assert.Equal(t, Medium, session.Difficulty())
	assert.Equal(t, 16, session.Board().Rows())
	assert.Equal(t, 16, session.Board().Cols())
	assert.Equal(t, 40, session.MinesRemaining())
	assert.Equal(t, Waiting, session.State())
	assert.Equal(t, 1, rec.count(isTimerStopped))
	assert.Equal(t, 1, rec.count(func(event Event) bool {
		reset, ok := event.(BoardReset)
		return ok && reset.Difficulty == Medium
	}))

	// The snapshot layout is gone: the first click is safe again
	outcome := session.Reveal(3, 3)
	assert.Contains(t, []RevealOutcome{Revealed, Cleared}, outcome)
}

func TestSessionSetDifficultyErrors(t *testing.T) {
	session, _, _ := newScenarioSession(t, nil)

	assert.ErrorIs(t, session.SetDifficultyName("impossible"), ErrUnknownDifficulty)
	assert.Error(t, session.SetDifficulty(Difficulty{Name: "full", Rows: 1, Cols: 1, Mines: 1}))
	assert.Equal(t, "snapshot", session.Difficulty().Name)
}

func TestSessionInteract(t *testing.T) {
	session, _, _ := newScenarioSession(t, nil)

	assert.True(t, session.Interact(2, 2, Click))
	assert.False(t, session.Interact(2, 2, Click))
	assert.True(t, session.Interact(3, 3, RightClick))
	assert.True(t, session.Interact(2, 2, MiddleClick))
	assert.Equal(t, Won, session.State())
}

func TestSessionUnsubscribe(t *testing.T) {
	session, rec, _ := newScenarioSession(t, nil)
	other := &recorder{}
	unsubscribe := session.Subscribe(other.listen)

	session.ToggleFlag(0, 0)
	unsubscribe()
	session.ToggleFlag(0, 0)

	assert.Len(t, other.events, 2) // CellChanged, MinesRemainingChanged
	assert.Len(t, rec.events, 4)
}

func TestSessionTicks(t *testing.T) {
	config, _ := newTestConfig(nil)
	config.TickInterval = 5 * time.Millisecond

	session, err := NewSession(config)
	require.NoError(t, err)

	ticks := make(chan TimerTick, 100)
	session.Subscribe(func(event Event) {
		if tick, ok := event.(TimerTick); ok {
			select {
			case ticks <- tick:
			default:
			}
		}
	})

	session.Reveal(0, 0)
	if session.State().IsOver() {
		t.Skip("first click cleared the board")
	}

	select {
	case tick := <-ticks:
		assert.GreaterOrEqual(t, tick.Seconds, 0)
	case <-time.After(time.Second):
		t.Fatal("no tick received")
	}

	session.NewGame()
	assert.False(t, session.timer.Running())
}

func TestSessionSavesSnapshots(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snapshots")

	config, _ := newTestConfig(nil)
	snapshot, err := LoadSnapshot("seed: 1\nboard: |" + indent(scenarioLayout))
	require.NoError(t, err)
	config.Snapshot = snapshot
	config.SavedSnapshotsDir = dir

	session, err := NewSession(config)
	require.NoError(t, err)
	session.ToggleFlag(0, 1)
	session.Reveal(0, 0)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "_loss.yaml")

	contents, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	saved, err := LoadSnapshot(string(contents))
	require.NoError(t, err)
	assert.Equal(t, "*F####\n######\n######\n###O##\n######\n#####O", saved.SerializedBoard)
}
