package commands

import (
	"context"
	"fmt"
	"log/slog"

	"adpasswd/internal/domain"
)

// PasswordPrompt obtains the account password for ticket acquisition.
type PasswordPrompt struct {
	reader domain.PasswordReader
	logger *slog.Logger
}

// NewPasswordPrompt creates a password prompt backed by reader.
func NewPasswordPrompt(reader domain.PasswordReader, logger *slog.Logger) *PasswordPrompt {
	return &PasswordPrompt{
		reader: reader,
		logger: logger,
	}
}

// Resolve returns the password for principal. When tickets is non-nil and
// already holds a TGT no password is needed and none is asked for. A
// non-interactive session without a password yields "", leaving ticket
// acquisition to be skipped.
func (p *PasswordPrompt) Resolve(
	ctx context.Context,
	principal string,
	tickets domain.TicketCacheReader,
) (string, error) {
	if tickets != nil {
		snapshot, err := tickets.ListTickets(ctx)
		if err == nil && snapshot.HasTGT() {
			p.logger.DebugContext(ctx, "Credential cache holds a TGT, not asking for a password")
			return "", nil
		}
	}

	password, err := p.reader.ReadPassword(ctx, fmt.Sprintf("Password for %s: ", principal))
	if err != nil {
		if !p.reader.IsInteractive() {
			p.logger.WarnContext(ctx, "No password available, tickets cannot be renewed", "error", err)
			return "", nil
		}
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}
