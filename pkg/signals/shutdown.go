// Package signals turns the process termination signals into a single
// shutdown event that any number of goroutines can wait on.
//
// The signal handlers are process-global, so New succeeds only once per
// process. The returned Shutdown is a small value that can be copied freely:
//
//	shutdown, err := signals.New()
//	if err != nil {
//		return err
//	}
//	go worker(shutdown.Clone())
//	shutdown.Wait()
package signals

import (
	"context"
	"sync/atomic"

	"github.com/hashicorp/go-hclog"
)

// AlreadyCreatedError is returned by New when it has already succeeded once in
// this process.
type AlreadyCreatedError struct{}

func (AlreadyCreatedError) Error() string {
	return "shutdown handler already created"
}

// ErrAlreadyCreated is the AlreadyCreatedError value returned by New.
var ErrAlreadyCreated error = AlreadyCreatedError{}

// created ensures at most 1 set of signal handlers is registered
var created atomic.Bool

type options struct {
	logger hclog.Logger
}

// Option configures New.
type Option func(*options)

// WithLogger sets the logger the signal watcher reports to.
func WithLogger(logger hclog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Shutdown is the handle to the process shutdown event. Copies share the same
// event and dropping one has no effect on the others.
type Shutdown struct {
	l *latch
}

// New installs the handlers for the termination signals and returns a handle
// that is released by the first of them to arrive.
//
// Only the first call in a process succeeds. Every later call returns
// ErrAlreadyCreated and leaves the existing handlers untouched, since a second
// registration would silently compete with the first one.
func New(opts ...Option) (Shutdown, error) {
	if !created.CompareAndSwap(false, true) {
		return Shutdown{}, ErrAlreadyCreated
	}
	o := options{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	// Hooks are registered before returning, so a signal sent once New has
	// returned is never lost.
	return start(notifySources(), o.logger), nil
}

// start spawns the watcher for the given sources and returns its handle.
func start(src sources, logger hclog.Logger) Shutdown {
	l := newLatch()
	go watch(src, l, logger)
	return Shutdown{l: l}
}

// Clone returns another handle to the same shutdown event. It is equivalent to
// copying the value.
func (s Shutdown) Clone() Shutdown {
	return Shutdown{l: s.l}
}

// Wait blocks until a termination signal has been received. It returns
// immediately if that already happened.
func (s Shutdown) Wait() {
	<-s.Done()
}

// Done returns a channel that is closed once a termination signal has been
// received. Use it to combine the shutdown event with other channels in a
// select.
func (s Shutdown) Done() <-chan struct{} {
	if s.l == nil {
		return nil
	}
	return s.l.done()
}

// Requested reports whether a termination signal has been received.
func (s Shutdown) Requested() bool {
	return s.l != nil && s.l.fired()
}

// Context returns a copy of parent that is cancelled when shutdown is
// requested.
func (s Shutdown) Context(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	go func() {
		select {
		case <-s.Done():
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
