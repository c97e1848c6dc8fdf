package output

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"adpasswd/internal/domain"
)

// ConsoleReporter prints one line per evaluation.
type ConsoleReporter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleReporter creates a reporter writing to w.
func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{w: w}
}

// Report implements domain.StatusReporter.
func (r *ConsoleReporter) Report(_ context.Context, status domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := fmt.Fprintln(r.w, FormatStatus(status))
	return err
}

// FormatStatus renders a status as "<time> [<level>] <message>". The
// timestamp is omitted when the status was never stamped.
func FormatStatus(status domain.Status) string {
	if status.CheckedAt.IsZero() {
		return fmt.Sprintf("[%s] %s", status.Level, status.Message)
	}
	return fmt.Sprintf("%s [%s] %s", status.CheckedAt.Format(time.RFC3339), status.Level, status.Message)
}
