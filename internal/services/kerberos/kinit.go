package kerberos

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"adpasswd/internal/domain"
)

// DefaultKinitTimeout bounds a single kinit invocation.
const DefaultKinitTimeout = 15 * time.Second

// KinitRequester obtains a ticket-granting ticket by running kinit with the
// password passed through an owner-only temporary file.
type KinitRequester struct {
	runner  domain.CommandRunner
	fs      domain.FileSystemAdapter
	binary  string
	flavor  Flavor
	ccache  string
	timeout time.Duration
	logger  *slog.Logger
}

// KinitOption configures a KinitRequester.
type KinitOption func(*KinitRequester)

// WithKinitBinary overrides the kinit executable.
func WithKinitBinary(binary string) KinitOption {
	return func(r *KinitRequester) {
		r.binary = binary
	}
}

// WithKinitFlavor selects the kinit dialect.
func WithKinitFlavor(flavor Flavor) KinitOption {
	return func(r *KinitRequester) {
		r.flavor = flavor
	}
}

// WithKinitCredentialCache stores the new ticket in a specific credential cache.
func WithKinitCredentialCache(ccache string) KinitOption {
	return func(r *KinitRequester) {
		r.ccache = ccache
	}
}

// WithKinitTimeout overrides DefaultKinitTimeout.
func WithKinitTimeout(timeout time.Duration) KinitOption {
	return func(r *KinitRequester) {
		r.timeout = timeout
	}
}

// NewKinitRequester creates a ticket requester backed by kinit.
func NewKinitRequester(
	runner domain.CommandRunner,
	fs domain.FileSystemAdapter,
	logger *slog.Logger,
	opts ...KinitOption,
) *KinitRequester {
	r := &KinitRequester{
		runner:  runner,
		fs:      fs,
		binary:  "kinit",
		flavor:  FlavorAuto,
		timeout: DefaultKinitTimeout,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RequestTicket runs kinit for principal. The password file is removed on
// every return path.
func (r *KinitRequester) RequestTicket(ctx context.Context, principal, password string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	file, err := r.fs.CreateTemp("", "adpasswd-*")
	if err != nil {
		return fmt.Errorf("create password file: %w", err)
	}
	path := file.Name()
	defer func() {
		file.Close()
		if removeErr := r.fs.Remove(path); removeErr != nil {
			r.logger.WarnContext(ctx, "Failed to remove password file", "path", path, "error", removeErr)
		}
	}()

	if _, err := io.WriteString(file, password+"\n"); err != nil {
		return fmt.Errorf("write password file: %w", err)
	}

	cmd := domain.Command{Name: r.binary}
	if r.ccache != "" {
		cmd.Env = []string{"KRB5CCNAME=" + r.ccache}
	}

	switch r.flavor.Resolve() {
	case FlavorHeimdal:
		cmd.Args = []string{"--enterprise", "--password-file=" + path, principal}
	default:
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("rewind password file: %w", err)
		}
		cmd.Args = []string{"-E", principal}
		cmd.Stdin = file
	}

	r.logger.DebugContext(ctx, "Requesting ticket-granting ticket", "principal", principal)
	if _, err := r.runner.Run(ctx, cmd); err != nil {
		return err
	}
	r.logger.InfoContext(ctx, "Obtained ticket-granting ticket", "principal", principal)
	return nil
}
