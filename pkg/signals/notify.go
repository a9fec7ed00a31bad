package signals

import (
	"sync"
	"sync/atomic"
)

// latch is a one-shot broadcast. It starts pending and fire moves it to
// signaled for good; every receive on done, before or after the fire, observes
// the closed channel.
type latch struct {
	ch     chan struct{}
	once   sync.Once
	closed atomic.Bool
}

func newLatch() *latch {
	return &latch{ch: make(chan struct{})}
}

// fire closes the channel on the first call and does nothing afterwards.
func (l *latch) fire() {
	l.once.Do(func() {
		l.closed.Store(true)
		close(l.ch)
	})
}

func (l *latch) done() <-chan struct{} {
	return l.ch
}

func (l *latch) fired() bool {
	return l.closed.Load()
}
