package signals

import (
	"sync"
	"testing"
	"time"
)

func TestLatch_fire(t *testing.T) {
	t.Run("fire() should release waiters registered before it", func(t *testing.T) {
		l := newLatch()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-l.done()
			}()
		}
		if l.fired() {
			t.Fatalf("latch reported fired before fire() was called")
		}
		l.fire()
		if !waitGroupDone(&wg, time.Second) {
			t.Fatalf("waiters still blocked after fire()")
		}
	})

	t.Run("fire() should release waiters arriving after it", func(t *testing.T) {
		l := newLatch()
		l.fire()
		select {
		case <-l.done():
		default:
			t.Fatalf("done() blocked after fire()")
		}
		if !l.fired() {
			t.Errorf("fired() = false after fire()")
		}
	})

	t.Run("fire() should be safe to call repeatedly and concurrently", func(t *testing.T) {
		l := newLatch()
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				l.fire()
			}()
		}
		wg.Wait()
		l.fire()
		if !l.fired() {
			t.Errorf("fired() = false after fire()")
		}
	})
}

// waitGroupDone waits for wg for at most d and reports whether it finished.
func waitGroupDone(wg *sync.WaitGroup, d time.Duration) bool {
	ch := make(chan struct{})
	go func() {
		wg.Wait()
		close(ch)
	}()
	select {
	case <-ch:
		return true
	case <-time.After(d):
		return false
	}
}
