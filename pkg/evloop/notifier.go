package evloop

import "context"

// Waiter is a readiness source: Wait returns once the source has been
// signaled, or with an error when waiting failed or ctx is done.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Notifier runs a callback on the loop each time its Waiter signals.
//
// A helper goroutine blocks in Wait. After a signal the notifier is not
// re-armed until the loop has run the callback, so one signal yields exactly
// one callback and the callback is expected to drain the source.
type Notifier struct {
	loop    *Loop
	fn      func()
	onErr   func(error)
	enabled bool
	pending bool
	closed  bool

	rearm  chan struct{}
	cancel context.CancelFunc
	done   chan struct{}
}

// NewNotifier starts watching w. The notifier starts disabled; signals that
// arrive before SetEnabled(true) are held until then. onErr, if set, runs on
// the loop when Wait fails, after which the notifier stops watching.
func (l *Loop) NewNotifier(w Waiter, fn func(), onErr func(error)) *Notifier {
	ctx, cancel := context.WithCancel(context.Background())
	n := &Notifier{
		loop:   l,
		fn:     fn,
		onErr:  onErr,
		rearm:  make(chan struct{}, 1),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go n.watch(ctx, w)
	return n
}

func (n *Notifier) watch(ctx context.Context, w Waiter) {
	defer close(n.done)
	for {
		if err := w.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			n.loop.Post(func() {
				if n.live() && n.onErr != nil {
					n.onErr(err)
				}
			})
			return
		}
		n.loop.markReady(n)
		select {
		case <-ctx.Done():
			return
		case <-n.rearm:
		}
	}
}

func (n *Notifier) live() bool {
	n.loop.mu.Lock()
	defer n.loop.mu.Unlock()
	return !n.closed
}

// SetEnabled turns delivery on or off. A signal held while disabled is
// delivered on the next turn after enabling.
func (n *Notifier) SetEnabled(enabled bool) {
	l := n.loop
	l.mu.Lock()
	if n.closed {
		l.mu.Unlock()
		return
	}
	n.enabled = enabled
	redeliver := enabled && n.pending
	if redeliver {
		n.pending = false
		l.ready = append(l.ready, n)
	}
	l.mu.Unlock()
	if redeliver {
		l.notify()
	}
}

func (n *Notifier) IsEnabled() bool {
	n.loop.mu.Lock()
	defer n.loop.mu.Unlock()
	return n.enabled
}

// Close stops watching and waits for the helper goroutine to return.
// Signals still queued on the loop are discarded.
func (n *Notifier) Close() {
	n.loop.mu.Lock()
	n.closed = true
	n.enabled = false
	n.pending = false
	n.loop.mu.Unlock()
	n.cancel()
	<-n.done
}

func (n *Notifier) fire() {
	l := n.loop
	l.mu.Lock()
	if n.closed {
		l.mu.Unlock()
		return
	}
	if !n.enabled {
		n.pending = true
		l.mu.Unlock()
		return
	}
	l.mu.Unlock()

	n.fn()

	select {
	case n.rearm <- struct{}{}:
	default:
	}
}
