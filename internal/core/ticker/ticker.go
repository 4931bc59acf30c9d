// Package ticker delivers countdown notifications at a fixed resolution.
package ticker

import (
	"sync"
	"time"
)

// DefaultInterval is the tick resolution used when none is configured.
const DefaultInterval = 10 * time.Millisecond

// Handle identifies one countdown started by a Ticker.
type Handle uint64

// Event is a single countdown notification.
type Event struct {
	Handle    Handle
	Remaining time.Duration
	Finished  bool
}

// Ticker runs countdowns and publishes their events on one channel.
// Events for a handle are ordered; Finished is always the last one.
type Ticker struct {
	mu       sync.Mutex
	interval time.Duration
	events   chan Event
	next     Handle
	active   map[Handle]chan struct{}
	now      func() time.Time
}

// New creates a Ticker with the given resolution.
func New(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Ticker{
		interval: interval,
		events:   make(chan Event, 16),
		active:   make(map[Handle]chan struct{}),
		now:      time.Now,
	}
}

// Events returns the channel all countdown events are delivered on.
func (ticker *Ticker) Events() <-chan Event {
	return ticker.events
}

// Start begins counting down from duration and returns its handle.
func (ticker *Ticker) Start(duration time.Duration) Handle {
	ticker.mu.Lock()
	ticker.next++
	handle := ticker.next
	stopCh := make(chan struct{})
	ticker.active[handle] = stopCh
	ticker.mu.Unlock()

	go ticker.run(handle, duration, stopCh)
	return handle
}

// Cancel stops the countdown for handle. Safe to call more than once
// and after the countdown finished.
func (ticker *Ticker) Cancel(handle Handle) {
	ticker.mu.Lock()
	defer ticker.mu.Unlock()
	if stopCh, ok := ticker.active[handle]; ok {
		close(stopCh)
		delete(ticker.active, handle)
	}
}

// Stop cancels every running countdown.
func (ticker *Ticker) Stop() {
	ticker.mu.Lock()
	defer ticker.mu.Unlock()
	for handle, stopCh := range ticker.active {
		close(stopCh)
		delete(ticker.active, handle)
	}
}

func (ticker *Ticker) run(handle Handle, duration time.Duration, stopCh chan struct{}) {
	if duration < 0 {
		duration = 0
	}
	deadline := ticker.now().Add(duration)
	last := duration

	clock := time.NewTicker(ticker.interval)
	defer clock.Stop()

	for last > 0 {
		select {
		case <-stopCh:
			return
		case tickTime := <-clock.C:
			remaining := deadline.Sub(tickTime)
			if remaining <= 0 {
				last = 0
				break
			}
			if remaining >= last {
				continue
			}
			last = remaining
			if !ticker.send(stopCh, Event{Handle: handle, Remaining: remaining}) {
				return
			}
		}
	}

	ticker.send(stopCh, Event{Handle: handle, Finished: true})
	ticker.release(handle)
}

func (ticker *Ticker) send(stopCh chan struct{}, event Event) bool {
	select {
	case <-stopCh:
		return false
	case ticker.events <- event:
		return true
	}
}

func (ticker *Ticker) release(handle Handle) {
	ticker.mu.Lock()
	defer ticker.mu.Unlock()
	delete(ticker.active, handle)
}
