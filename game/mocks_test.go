package game

import (
	"encoding/json"
	"sync"
	"time"

	"sketchparty/protocol"
)

// recordingConn captures every frame sent to one connection, decoded back
// into envelopes so tests can assert on event names and payloads.
type recordingConn struct {
	mu     sync.Mutex
	frames []protocol.Envelope
	closed bool
	reason string
}

func (c *recordingConn) Send(frame []byte) error {
	var env protocol.Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return err
	}
	c.mu.Lock()
	c.frames = append(c.frames, env)
	c.mu.Unlock()
	return nil
}

func (c *recordingConn) Close(reason string) {
	c.mu.Lock()
	c.closed = true
	c.reason = reason
	c.mu.Unlock()
}

func (c *recordingConn) events() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, len(c.frames))
	for i, f := range c.frames {
		names[i] = f.Event
	}
	return names
}

func (c *recordingConn) count(event string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, f := range c.frames {
		if f.Event == event {
			n++
		}
	}
	return n
}

// last decodes the most recent frame carrying event into dst and reports
// whether one was found.
func (c *recordingConn) last(event string, dst any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.frames) - 1; i >= 0; i-- {
		if c.frames[i].Event != event {
			continue
		}
		if dst != nil {
			if err := json.Unmarshal(c.frames[i].Data, dst); err != nil {
				return false
			}
		}
		return true
	}
	return false
}

func (c *recordingConn) reset() {
	c.mu.Lock()
	c.frames = nil
	c.mu.Unlock()
}

// fakeTickerGen hands out channels the test fires by hand; nothing ticks on
// its own.
type fakeTickerGen struct {
	mu      sync.Mutex
	tickers []chan time.Time
	afters  []chan time.Time
}

func (f *fakeTickerGen) Ticker(time.Duration) (<-chan time.Time, func()) {
	ch := make(chan time.Time)
	f.mu.Lock()
	f.tickers = append(f.tickers, ch)
	f.mu.Unlock()
	return ch, func() {}
}

func (f *fakeTickerGen) After(time.Duration) (<-chan time.Time, func()) {
	ch := make(chan time.Time)
	f.mu.Lock()
	f.afters = append(f.afters, ch)
	f.mu.Unlock()
	return ch, func() {}
}

func (f *fakeTickerGen) lastAfter() chan time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.afters) == 0 {
		return nil
	}
	return f.afters[len(f.afters)-1]
}
