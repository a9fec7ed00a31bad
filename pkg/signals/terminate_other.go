//go:build windows || plan9

package signals

import "os"

// notifyTerminate returns nil: there is no SIGTERM to watch, so only the
// interrupt source can release the watcher.
func notifyTerminate() <-chan os.Signal {
	return nil
}
