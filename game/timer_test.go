package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerElapsed(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	timer := NewTimer(clock.Now, 0, nil)

	assert.Zero(t, timer.Elapsed())
	assert.False(t, timer.Running())

	at, started := timer.Start()
	require.True(t, started)
	assert.Equal(t, clock.now, at)
	assert.True(t, timer.Running())

	clock.Advance(3 * time.Second)
	assert.Equal(t, 3*time.Second, timer.Elapsed())

	assert.True(t, timer.Stop())
	clock.Advance(time.Hour)
	assert.Equal(t, 3*time.Second, timer.Elapsed())
	assert.False(t, timer.Running())
}

func TestTimerStartsOnlyOnce(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	timer := NewTimer(clock.Now, 0, nil)

	first, started := timer.Start()
	require.True(t, started)

	clock.Advance(time.Second)
	again, started := timer.Start()
	assert.False(t, started)
	assert.Equal(t, first, again)

	timer.Stop()
	_, started = timer.Start()
	assert.False(t, started)
}

func TestTimerStopIsIdempotent(t *testing.T) {
	timer := NewTimer(nil, 0, nil)

	assert.False(t, timer.Stop(), "stopping a timer that never started")

	timer.Start()
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	assert.False(t, timer.Stop())
}

func TestTimerTicks(t *testing.T) {
	ticks := make(chan int, 10)
	timer := NewTimer(nil, time.Millisecond, func(seconds int) {
		select {
		case ticks <- seconds:
		default:
		}
	})

	timer.Start()
	select {
	case seconds := <-ticks:
		assert.Equal(t, 0, seconds)
	case <-time.After(time.Second):
		t.Fatal("no tick received")
	}

	timer.Stop()
	// Drain anything sent while stopping, then make sure ticking has ceased
	time.Sleep(10 * time.Millisecond)
	for len(ticks) > 0 {
		<-ticks
	}
	time.Sleep(10 * time.Millisecond)
	assert.Empty(t, ticks)
}
