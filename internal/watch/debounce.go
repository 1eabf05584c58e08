package watch

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers into a single request on C.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	c     chan struct{}
}

// NewDebouncer returns a Debouncer that fires delay after the last trigger.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay, c: make(chan struct{}, 1)}
}

// C delivers coalesced requests. It holds at most one unread request.
func (d *Debouncer) C() <-chan struct{} { return d.c }

// Trigger restarts the delay.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Request queues a request immediately, bypassing the delay.
func (d *Debouncer) Request() { d.fire() }

// Stop cancels a pending delayed trigger.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}

func (d *Debouncer) fire() {
	select {
	case d.c <- struct{}{}:
	default:
	}
}
