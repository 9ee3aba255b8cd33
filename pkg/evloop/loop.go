// Package evloop is a single-goroutine cooperative scheduler.
//
// All callbacks registered on a Loop run on the goroutine that drives it,
// either through Run or by calling Turn directly. Other goroutines hand work
// to the loop with Post or Invoke.
package evloop

import (
	"context"
	"sync"
)

// Loop runs posted tasks, fired notifiers and active timers, one scheduling
// turn at a time.
type Loop struct {
	mu     sync.Mutex
	tasks  []func()
	ready  []*Notifier
	timers []*Timer
	wake   chan struct{}
}

func New() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
	}
}

// Post queues fn to run on the loop. Safe for concurrent use.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()
	l.notify()
}

// Invoke runs fn on the loop and waits for its result. It must not be
// called from the loop goroutine.
func (l *Loop) Invoke(ctx context.Context, fn func() error) error {
	res := make(chan error, 1)
	l.Post(func() {
		res <- fn()
	})
	select {
	case err := <-res:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loop) notify() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Turn runs one scheduling turn: every task posted so far, every notifier
// that fired, then each active timer once. It reports whether anything ran.
func (l *Loop) Turn() bool {
	l.mu.Lock()
	tasks, ready := l.tasks, l.ready
	l.tasks, l.ready = nil, nil
	var timers []*Timer
	for _, t := range l.timers {
		if t.active {
			timers = append(timers, t)
		}
	}
	l.mu.Unlock()

	for _, fn := range tasks {
		fn()
	}
	for _, n := range ready {
		n.fire()
	}
	for _, t := range timers {
		t.fire()
	}
	return len(tasks)+len(ready)+len(timers) > 0
}

// Run drives the loop until ctx is done. While a timer is active the loop
// keeps turning; otherwise it sleeps until new work arrives.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if l.Turn() {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

func (l *Loop) markReady(n *Notifier) {
	l.mu.Lock()
	l.ready = append(l.ready, n)
	l.mu.Unlock()
	l.notify()
}
