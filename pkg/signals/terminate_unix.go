//go:build !windows && !plan9

package signals

import (
	"os"
	"os/signal"
	"syscall"
)

// notifyTerminate returns a channel that receives SIGTERM, the signal process
// managers (systemd, kubernetes, docker stop) use to request shutdown.
func notifyTerminate() <-chan os.Signal {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM)
	return c
}
