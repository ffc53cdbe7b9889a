package toast

import (
	"sync"
	"time"

	"github.com/spec-kit/ticket-triage/internal/clock"
)

// DefaultTTL is how long a toast stays visible.
const DefaultTTL = 3 * time.Second

// Dismisser clears each new toast after its TTL. A newer message abandons
// the pending countdown and starts a fresh one; expiry leaves a message
// alone if it was already cleared or replaced.
type Dismisser struct {
	store *Store
	clk   clock.Clock
	ttl   time.Duration

	mu          sync.Mutex
	timer       *clock.Timer
	stopped     bool
	unsubscribe func()
}

// NewDismisser attaches the auto-dismiss policy to store. Call Stop on
// teardown.
func NewDismisser(store *Store, clk clock.Clock, ttl time.Duration) *Dismisser {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	d := &Dismisser{store: store, clk: clk, ttl: ttl}
	d.unsubscribe = store.Subscribe(d)
	return d
}

// Notify implements events.Listener.
func (d *Dismisser) Notify(msg Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if !msg.Present {
		return
	}
	version := msg.Version
	d.timer = d.clk.AfterFunc(d.ttl, func() {
		d.mu.Lock()
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			d.store.ClearIf(version)
		}
	})
}

// Stop cancels any pending countdown and detaches from the store. No
// expiry fires after Stop returns.
func (d *Dismisser) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.unsubscribe()
}
