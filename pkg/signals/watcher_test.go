package signals

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
)

type fakeSignal string

func (s fakeSignal) String() string { return string(s) }
func (fakeSignal) Signal()          {}

func TestWatch(t *testing.T) {
	tests := []struct {
		name      string
		interrupt bool
		terminate bool
		want      string
	}{
		{"interrupt releases the latch", true, false, "signal=interrupt"},
		{"terminate releases the latch", false, true, "signal=terminated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interrupt := make(chan os.Signal, 1)
			terminate := make(chan os.Signal, 1)
			buf := &syncBuffer{}
			logger := hclog.New(&hclog.LoggerOptions{Output: buf, Level: hclog.Info})
			s := start(sources{interrupt: interrupt, terminate: terminate}, logger)

			if s.Requested() {
				t.Fatalf("shutdown requested before any signal")
			}
			if tt.interrupt {
				interrupt <- fakeSignal("interrupt")
			}
			if tt.terminate {
				terminate <- fakeSignal("terminated")
			}

			select {
			case <-s.Done():
			case <-time.After(time.Second):
				t.Fatalf("watcher did not release the latch")
			}
			if got := buf.String(); !strings.Contains(got, "shutdown signal received") || !strings.Contains(got, tt.want) {
				t.Errorf("unexpected log output: %q", got)
			}
		})
	}

	t.Run("a missing terminate source should not block interrupt", func(t *testing.T) {
		interrupt := make(chan os.Signal, 1)
		s := start(sources{interrupt: interrupt}, hclog.NewNullLogger())

		select {
		case <-s.Done():
			t.Fatalf("released without a signal")
		case <-time.After(50 * time.Millisecond):
		}
		interrupt <- fakeSignal("interrupt")
		select {
		case <-s.Done():
		case <-time.After(time.Second):
			t.Errorf("interrupt did not release the latch with a nil terminate source")
		}
	})

	t.Run("the watcher should consume exactly one signal", func(t *testing.T) {
		interrupt := make(chan os.Signal, 2)
		terminate := make(chan os.Signal, 1)
		s := start(sources{interrupt: interrupt, terminate: terminate}, hclog.NewNullLogger())

		interrupt <- fakeSignal("first")
		interrupt <- fakeSignal("second")
		s.Wait()
		time.Sleep(50 * time.Millisecond)
		if n := len(interrupt); n != 1 {
			t.Errorf("watcher left %d signals queued, want 1", n)
		}
		terminate <- fakeSignal("terminated")
		time.Sleep(50 * time.Millisecond)
		if n := len(terminate); n != 1 {
			t.Errorf("watcher consumed a signal after it returned")
		}
	})
}

// syncBuffer guards a bytes.Buffer written by the watcher goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
