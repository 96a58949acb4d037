package utils

import (
	"fmt"
	"time"
)

// Retry runs fn up to attempts times, sleeping between tries, and keeps the
// last error. shouldRetry decides whether a failure is worth another attempt;
// nil retries everything.
func Retry(name string, attempts int, sleep time.Duration, shouldRetry func(error) bool, fn func() error) error {
	var lastErr error
	for i := 0; i < attempts; i++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if shouldRetry != nil && !shouldRetry(lastErr) {
			return lastErr
		}
		time.Sleep(sleep)
	}
	if lastErr == nil {
		return fmt.Errorf("%s: retry time over", name)
	}
	return lastErr
}
