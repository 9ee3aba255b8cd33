package evloop

// Timer is a zero-interval repeating timer: while active, its callback runs
// once per scheduling turn.
type Timer struct {
	loop   *Loop
	fn     func()
	active bool
	closed bool
}

func (l *Loop) NewTimer(fn func()) *Timer {
	t := &Timer{loop: l, fn: fn}
	l.mu.Lock()
	l.timers = append(l.timers, t)
	l.mu.Unlock()
	return t
}

// Start arms the timer. Starting a closed timer does nothing.
func (t *Timer) Start() {
	t.loop.mu.Lock()
	if !t.closed {
		t.active = true
	}
	t.loop.mu.Unlock()
	t.loop.notify()
}

func (t *Timer) Stop() {
	t.loop.mu.Lock()
	t.active = false
	t.loop.mu.Unlock()
}

func (t *Timer) IsActive() bool {
	t.loop.mu.Lock()
	defer t.loop.mu.Unlock()
	return t.active
}

// Close stops the timer and detaches it from the loop for good.
func (t *Timer) Close() {
	l := t.loop
	l.mu.Lock()
	defer l.mu.Unlock()
	t.active = false
	t.closed = true
	for i, other := range l.timers {
		if other == t {
			l.timers = append(l.timers[:i], l.timers[i+1:]...)
			break
		}
	}
}

func (t *Timer) fire() {
	if t.IsActive() {
		t.fn()
	}
}
