package dispatch

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned when dispatching onto a stopped queue.
var ErrClosed = errors.New("dispatch queue closed")

// Queue serializes actions onto one goroutine.
type Queue struct {
	actions chan func()
	quit    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// New starts a queue. buffer bounds how many posted actions may wait before
// Post blocks.
func New(buffer int) *Queue {
	if buffer < 1 {
		buffer = 64
	}
	q := &Queue{
		actions: make(chan func(), buffer),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go q.loop()
	return q
}

func (q *Queue) loop() {
	defer close(q.done)
	for {
		select {
		case fn := <-q.actions:
			fn()
		case <-q.quit:
			// Drain what was already accepted so Do callers are released.
			for {
				select {
				case fn := <-q.actions:
					fn()
				default:
					return
				}
			}
		}
	}
}

// Do enqueues fn and waits until it has run. It must not be called from
// inside another action.
func (q *Queue) Do(ctx context.Context, fn func()) error {
	ran := make(chan struct{})
	wrapped := func() {
		defer close(ran)
		fn()
	}
	select {
	case <-q.quit:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	case q.actions <- wrapped:
	}
	// Once accepted the action will run; wait for it even if ctx ends so the
	// caller never observes a half-applied transition.
	select {
	case <-ran:
		return nil
	case <-q.done:
		select {
		case <-ran:
			return nil
		default:
			return ErrClosed
		}
	}
}

// Post enqueues fn without waiting. Actions posted after Close are dropped.
func (q *Queue) Post(fn func()) bool {
	select {
	case <-q.quit:
		return false
	case q.actions <- fn:
		return true
	}
}

// Close stops accepting actions, runs the ones already queued, and waits for
// the loop to exit.
func (q *Queue) Close() {
	q.once.Do(func() { close(q.quit) })
	<-q.done
}
