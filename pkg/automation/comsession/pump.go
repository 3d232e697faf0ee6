// Package comsession implements automation.Session over MediaMonkey's COM
// automation surface. COM apartments have thread affinity: every call
// against the application must come from the thread that initialized the
// apartment. A single pump goroutine, locked to its OS thread, owns the
// apartment and executes every external call; callers from any goroutine
// are serialized through its request channel.
package comsession

import (
	"errors"
	"runtime"
	"sync"
)

// ErrClosed is returned for calls against a closed session.
var ErrClosed = errors.New("automation session is closed")

// pump owns the single execution context all external calls run on.
type pump struct {
	reqs chan func()
	done chan struct{}
	once sync.Once
}

// newPump starts the owner goroutine, runs init on it, and hands the pump
// back once init succeeded. teardown runs on the same thread when the
// pump closes.
func newPump(init func() error, teardown func()) (*pump, error) {
	p := &pump{
		reqs: make(chan func()),
		done: make(chan struct{}),
	}
	ready := make(chan error, 1)

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		if err := init(); err != nil {
			ready <- err
			return
		}
		ready <- nil
		defer teardown()

		for {
			select {
			case <-p.done:
				return
			case fn := <-p.reqs:
				fn()
			}
		}
	}()

	if err := <-ready; err != nil {
		return nil, err
	}
	return p, nil
}

// Do runs fn on the owner thread and waits for it to finish. There is no
// mid-call cancellation: the native calls fn makes are not individually
// interruptible, so an impatient caller abandons the wait at a higher
// level rather than aborting the call.
func (p *pump) Do(fn func() error) error {
	errc := make(chan error, 1)
	select {
	case p.reqs <- func() { errc <- fn() }:
	case <-p.done:
		return ErrClosed
	}
	select {
	case err := <-errc:
		return err
	case <-p.done:
		return ErrClosed
	}
}

// Close stops the owner goroutine after the in-flight call, if any,
// completes. Idempotent.
func (p *pump) Close() {
	p.once.Do(func() { close(p.done) })
}
