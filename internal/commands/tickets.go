package commands

import (
	"context"
	"fmt"
	"log/slog"

	"adpasswd/internal/domain"
)

// TicketsCommand lists the valid tickets in the credential cache.
type TicketsCommand struct {
	reader domain.TicketCacheReader
	logger *slog.Logger
}

// NewTicketsCommand creates a new tickets command.
func NewTicketsCommand(reader domain.TicketCacheReader, logger *slog.Logger) *TicketsCommand {
	return &TicketsCommand{
		reader: reader,
		logger: logger,
	}
}

// TicketsResult contains the result of the tickets command.
type TicketsResult struct {
	Tickets domain.TicketSnapshot
	HasTGT  bool
}

// Execute reads the credential cache once.
func (c *TicketsCommand) Execute(ctx context.Context) (*TicketsResult, error) {
	tickets, err := c.reader.ListTickets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	c.logger.DebugContext(ctx, "Listed tickets", "count", len(tickets))
	return &TicketsResult{
		Tickets: tickets,
		HasTGT:  tickets.HasTGT(),
	}, nil
}
