package signals

import (
	"os"
	"os/signal"

	"github.com/hashicorp/go-hclog"
)

// sources are the channels the watcher races. A nil channel is never ready and
// stands for a signal the platform does not deliver.
type sources struct {
	interrupt <-chan os.Signal
	terminate <-chan os.Signal
}

// notifySources registers the signal handlers. The channels keep their
// registration for the life of the process.
func notifySources() sources {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	return sources{
		interrupt: interrupt,
		terminate: notifyTerminate(),
	}
}

// watch waits for the first signal from src, fires l and returns.
func watch(src sources, l *latch, logger hclog.Logger) {
	var sig os.Signal
	select {
	case sig = <-src.interrupt:
	case sig = <-src.terminate:
	}
	logger.Info("shutdown signal received", "signal", sig)
	l.fire()
}
