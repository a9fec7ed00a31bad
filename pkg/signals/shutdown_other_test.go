//go:build windows || plan9

package signals

import "testing"

func raiseTerminate(t *testing.T) {
	t.Skip("the process cannot send itself a termination signal on this platform")
}
