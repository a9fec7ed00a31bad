package retry

import (
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
)

// ErrStopped is returned when the stop channel closes while waiting to retry.
var ErrStopped = errors.New("retry stopped")

type Retryer struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	Sleep       time.Duration `mapstructure:"sleep"`

	Logger hclog.Logger `mapstructure:"-"`
}

// Do calls f until it succeeds, returns a non-retryable error or runs out of
// attempts. A close of stop abandons the pending sleep.
func (r Retryer) Do(stop <-chan struct{}, f func() (error, bool)) error {
	logger := r.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return Retry(stop, r.MaxAttempts, r.Sleep, logger, f)
}

func Retry(stop <-chan struct{}, attempts int, sleep time.Duration, logger hclog.Logger, f func() (error, bool)) error {
	for {
		err, isRetryable := f()
		if err == nil {
			return nil
		}
		if !isRetryable {
			return err
		}
		if attempts = attempts - 1; attempts <= 0 {
			return err
		}
		logger.Warn("attempt failed, sleeping before retrying", "error", err, "sleep", sleep)
		timer := time.NewTimer(sleep)
		select {
		case <-timer.C:
		case <-stop:
			timer.Stop()
			return fmt.Errorf("%w: %w", ErrStopped, err)
		}
		logger.Info("retrying", "remaining_attempts", attempts)
	}
}
