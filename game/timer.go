package game

import (
	"sync"
	"time"
)

// Timer tracks a game's elapsed time. It can run at most once; Stop is safe to
// call at any time, any number of times.
type Timer struct {
	now      func() time.Time
	interval time.Duration
	onTick   func(seconds int)

	lock             sync.Mutex
	started, stopped bool
	start, end       time.Time
	quit             chan struct{}
}

// NewTimer creates a stopped timer. When interval and onTick are both set, a
// running timer calls onTick with the elapsed whole seconds every interval.
func NewTimer(now func() time.Time, interval time.Duration, onTick func(seconds int)) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{
		now:      now,
		interval: interval,
		onTick:   onTick,
	}
}

// Start begins timing, reporting false if the timer had already been started
func (timer *Timer) Start() (time.Time, bool) {
	timer.lock.Lock()
	defer timer.lock.Unlock()

	if timer.started {
		return timer.start, false
	}
	timer.started = true
	timer.start = timer.now()

	if timer.interval > 0 && timer.onTick != nil {
		timer.quit = make(chan struct{})
		go timer.tick(timer.quit)
	}
	return timer.start, true
}

func (timer *Timer) tick(quit <-chan struct{}) {
	ticker := time.NewTicker(timer.interval)
	defer ticker.Stop()

	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
			timer.lock.Lock()
			running := !timer.stopped
			seconds := int(timer.elapsed() / time.Second)
			timer.lock.Unlock()

			if !running {
				return
			}
			timer.onTick(seconds)
		}
	}
}

// Stop freezes the elapsed time, reporting false if there was nothing to stop
func (timer *Timer) Stop() bool {
	timer.lock.Lock()
	defer timer.lock.Unlock()

	if !timer.started || timer.stopped {
		return false
	}
	timer.stopped = true
	timer.end = timer.now()

	if timer.quit != nil {
		close(timer.quit)
		timer.quit = nil
	}
	return true
}

func (timer *Timer) Running() bool {
	timer.lock.Lock()
	defer timer.lock.Unlock()
	return timer.started && !timer.stopped
}

func (timer *Timer) Elapsed() time.Duration {
	timer.lock.Lock()
	defer timer.lock.Unlock()
	return timer.elapsed()
}

func (timer *Timer) elapsed() time.Duration {
	switch {
	case !timer.started:
		return 0
	case timer.stopped:
		return timer.end.Sub(timer.start)
	default:
		return timer.now().Sub(timer.start)
	}
}
