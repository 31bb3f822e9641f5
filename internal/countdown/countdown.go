// Package countdown replaces delayed invocation by name with an explicit
// timer that the owner ticks once per frame.
package countdown

// epsilon absorbs accumulated float error from repeated frame deltas.
const epsilon = 1e-9

type Timer struct {
	remaining float64
	active    bool
	fire      func()
}

// New returns an idle timer that calls fire when a started countdown ends.
func New(fire func()) *Timer {
	return &Timer{fire: fire}
}

// Start arms the timer for delay seconds, replacing any countdown in progress.
// A non-positive delay fires on the next Tick.
func (t *Timer) Start(delay float64) {
	if delay < 0 {
		delay = 0
	}
	t.remaining = delay
	t.active = true
}

func (t *Timer) Stop() {
	t.active = false
	t.remaining = 0
}

func (t *Timer) Active() bool {
	return t != nil && t.active
}

func (t *Timer) Remaining() float64 {
	if t == nil || !t.active {
		return 0
	}
	return t.remaining
}

// Tick advances the countdown by dt and reports whether it fired. The
// callback runs at most once per Start, after the timer is already idle, so
// it may Start the timer again.
func (t *Timer) Tick(dt float64) bool {
	if t == nil || !t.active {
		return false
	}
	if dt > 0 {
		t.remaining -= dt
	}
	if t.remaining > epsilon {
		return false
	}
	t.active = false
	t.remaining = 0
	if t.fire != nil {
		t.fire()
	}
	return true
}
