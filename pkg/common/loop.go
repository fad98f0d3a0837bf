package common

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Cancel stops a scheduled task. Calling it after the task ran, or twice, is
// a no-op.
type Cancel func()

type Scheduler interface {
	Schedule(fn func(), delay time.Duration) Cancel
}

// Loop runs posted functions one at a time, in order, on the goroutine that
// called Run. Everything touching view state goes through it so handlers
// never overlap.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	closed bool
}

func NewLoop() *Loop {
	return &Loop{
		queue: make([]func(), 0),
		wake:  make(chan struct{}, 1),
	}
}

// Post queues fn and reports false when the loop is closed.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Call posts fn and waits for it to finish.
func (l *Loop) Call(fn func()) bool {
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		fn()
	}) {
		return false
	}
	<-done
	return true
}

// Schedule posts fn onto the loop after delay.
func (l *Loop) Schedule(fn func(), delay time.Duration) Cancel {
	var cancelled atomic.Bool
	timer := time.AfterFunc(delay, func() {
		l.Post(func() {
			if !cancelled.Load() {
				fn()
			}
		})
	})
	return func() {
		cancelled.Store(true)
		timer.Stop()
	}
}

// Close stops accepting work. Run drains what is already queued and returns.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) next() (func(), bool, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, false, l.closed
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn, true, false
}

func (l *Loop) Run(ctx context.Context) error {
	for {
		fn, ok, closed := l.next()
		if ok {
			fn()
			continue
		}
		if closed {
			return nil
		}
		select {
		case <-ctx.Done():
			l.Close()
			return ctx.Err()
		case <-l.wake:
		}
	}
}
