package kerberos

import (
	"context"
	"log/slog"

	"adpasswd/internal/domain"
)

// Store tracks the credential cache for one evaluation cycle.
type Store struct {
	credential domain.Credential
	reader     domain.TicketCacheReader
	requester  domain.TicketRequester
	snapshot   domain.TicketSnapshot
	logger     *slog.Logger
}

// NewStore creates a store with an empty snapshot.
func NewStore(
	credential domain.Credential,
	reader domain.TicketCacheReader,
	requester domain.TicketRequester,
	logger *slog.Logger,
) *Store {
	return &Store{
		credential: credential,
		reader:     reader,
		requester:  requester,
		snapshot:   domain.TicketSnapshot{},
		logger:     logger,
	}
}

// ListTickets refreshes the snapshot from the credential cache. A failed
// listing leaves the snapshot empty.
func (s *Store) ListTickets(ctx context.Context) domain.TicketSnapshot {
	tickets, err := s.reader.ListTickets(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to list credential cache", "error", err)
		tickets = domain.TicketSnapshot{}
	}
	if tickets == nil {
		tickets = domain.TicketSnapshot{}
	}
	s.snapshot = tickets
	return s.snapshot
}

// RequestTicket asks the KDC for a ticket-granting ticket. Failures are logged;
// callers list the cache again to observe the outcome.
func (s *Store) RequestTicket(ctx context.Context) {
	if !s.credential.HasPassword() {
		s.logger.WarnContext(ctx, "No password available, skipping ticket request", "credential", s.credential)
		return
	}
	if err := s.requester.RequestTicket(ctx, s.credential.Principal(), s.credential.Password); err != nil {
		s.logger.WarnContext(ctx, "Ticket request failed", "credential", s.credential, "error", err)
	}
}

// HasValidTicket reports whether the last snapshot holds a ticket-granting ticket.
func (s *Store) HasValidTicket() bool {
	return s.snapshot.HasTGT()
}

// Snapshot returns the tickets seen by the last ListTickets call.
func (s *Store) Snapshot() domain.TicketSnapshot {
	return s.snapshot
}
