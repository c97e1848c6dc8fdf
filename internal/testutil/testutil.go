// Package testutil provides test utilities shared across adpasswd packages.
package testutil

import (
	"log/slog"
	"time"

	"adpasswd/internal/logging"
)

// Logger returns a test logger for use in tests.
func Logger() *slog.Logger {
	return logging.NewTestLogger()
}

// FixedClock returns a clock function that always reports now.
func FixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}
