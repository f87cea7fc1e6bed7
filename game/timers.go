package game

import (
	"sync"
	"time"
)

// TickerGen abstracts timer construction so state-machine transitions can be
// driven deterministically in tests. Both constructors return the tick
// channel plus a stop function releasing the underlying timer.
type TickerGen interface {
	Ticker(d time.Duration) (<-chan time.Time, func())
	After(d time.Duration) (<-chan time.Time, func())
}

// RealTickerGen backs timers with the wall clock.
type RealTickerGen struct{}

func (RealTickerGen) Ticker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

func (RealTickerGen) After(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTimer(d)
	return t.C, func() { t.Stop() }
}

// TimerHandle is a cancellable timer owned by a room. Cancel is idempotent.
// A tick already queued on the engine loop when Cancel returns may still
// run; tick callbacks re-validate room and handle identity before acting.
type TimerHandle struct {
	stop func()
	quit chan struct{}
	once sync.Once
}

func (h *TimerHandle) Cancel() {
	h.once.Do(func() {
		h.stop()
		close(h.quit)
	})
}

// every posts fn to the engine loop at each interval until cancelled.
func (e *Engine) every(d time.Duration, fn func()) *TimerHandle {
	ticks, stop := e.tickers.Ticker(d)
	h := &TimerHandle{stop: stop, quit: make(chan struct{})}
	go func() {
		for {
			select {
			case <-h.quit:
				return
			case _, ok := <-ticks:
				if !ok {
					return
				}
				e.post(fn)
			}
		}
	}()
	return h
}

// after posts fn to the engine loop once after the delay unless cancelled
// first. Delayed transitions re-check room existence at fire time.
func (e *Engine) after(d time.Duration, fn func()) *TimerHandle {
	fire, stop := e.tickers.After(d)
	h := &TimerHandle{stop: stop, quit: make(chan struct{})}
	go func() {
		select {
		case <-h.quit:
		case _, ok := <-fire:
			if ok {
				e.post(fn)
			}
		}
	}()
	return h
}
