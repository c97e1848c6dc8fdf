// Package exec runs the external Kerberos and LDAP tools adpasswd relies on.
package exec

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	osexec "os/exec"
	"time"

	"adpasswd/internal/domain"
	apperrors "adpasswd/internal/errors"
)

// waitDelay bounds how long Run waits for output pipes after the process is killed.
const waitDelay = time.Second

// Runner executes commands on the host.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a new command runner.
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{
		logger: logger,
	}
}

// Run executes cmd and returns its standard output. The command is killed when
// ctx is done. Failures are returned as *errors.ToolError.
func (r *Runner) Run(ctx context.Context, cmd domain.Command) ([]byte, error) {
	c := osexec.CommandContext(ctx, cmd.Name, cmd.Args...)
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	c.Stdin = cmd.Stdin
	c.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()

	r.logger.DebugContext(ctx, "External command finished",
		"command", cmd.Name,
		"args", cmd.Args,
		"duration", time.Since(start),
		"error", err)

	if err == nil {
		return stdout.Bytes(), nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, apperrors.NewToolError(cmd.Name, -1, stderr.String(), ctxErr)
	}

	exitCode := -1
	var exitErr *osexec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return stdout.Bytes(), apperrors.NewToolError(cmd.Name, exitCode, stderr.String(), err)
}
