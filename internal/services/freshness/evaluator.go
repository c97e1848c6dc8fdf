// Package freshness evaluates how long the account password remains valid and
// classifies the outcome for presentation.
package freshness

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"adpasswd/internal/domain"
	apperrors "adpasswd/internal/errors"
	"adpasswd/internal/services/directory"
	"adpasswd/internal/services/filter"
	"adpasswd/internal/services/kerberos"
)

// DefaultAttribute holds the computed password expiry of a user object.
const DefaultAttribute = "msDS-UserPasswordExpiryTimeComputed"

// Evaluator runs the ticket, discovery and directory pipeline for one account.
type Evaluator struct {
	credential domain.Credential
	reader     domain.TicketCacheReader
	requester  domain.TicketRequester
	locator    domain.ServiceLocator
	directory  domain.DirectorySearchClient
	hostFilter domain.HostFilter
	attribute  string
	now        func() time.Time
	logger     *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithAttribute overrides DefaultAttribute.
func WithAttribute(attribute string) Option {
	return func(e *Evaluator) {
		if attribute != "" {
			e.attribute = attribute
		}
	}
}

// WithHostFilter skips discovered hosts the filter excludes.
func WithHostFilter(hostFilter domain.HostFilter) Option {
	return func(e *Evaluator) {
		if hostFilter != nil {
			e.hostFilter = hostFilter
		}
	}
}

// WithClock overrides the clock used to compute the remaining time.
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) {
		e.now = now
	}
}

// NewEvaluator creates an evaluator for credential.
func NewEvaluator(
	credential domain.Credential,
	reader domain.TicketCacheReader,
	requester domain.TicketRequester,
	locator domain.ServiceLocator,
	directoryClient domain.DirectorySearchClient,
	logger *slog.Logger,
	opts ...Option,
) *Evaluator {
	e := &Evaluator{
		credential: credential,
		reader:     reader,
		requester:  requester,
		locator:    locator,
		directory:  directoryClient,
		hostFilter: filter.NewNoOpFilter(),
		attribute:  DefaultAttribute,
		now:        time.Now,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs one complete cycle. It never returns an error: every failure
// is folded into an Unavailable result naming the stage that failed.
func (e *Evaluator) Evaluate(ctx context.Context) domain.FreshnessResult {
	logger := e.logger.With("credential", e.credential)

	store := kerberos.NewStore(e.credential, e.reader, e.requester, e.logger)
	store.ListTickets(ctx)
	if !store.HasValidTicket() {
		logger.InfoContext(ctx, "No ticket-granting ticket, requesting one")
		store.RequestTicket(ctx)
		store.ListTickets(ctx)
		if !store.HasValidTicket() {
			return domain.Unavailable(domain.ReasonNoTicket, apperrors.ErrNoTicket)
		}
	}

	hosts, err := e.locator.Locate(ctx, "ldap", "tcp", e.credential.Realm)
	if err != nil {
		return domain.Unavailable(domain.ReasonDNSFailure, err)
	}
	hosts = e.filterHosts(ctx, hosts)
	if len(hosts) == 0 {
		return domain.Unavailable(domain.ReasonDirectoryFailure,
			fmt.Errorf("%w: no directory servers found for %s", apperrors.ErrDirectoryQuery, e.credential.Realm))
	}

	baseDN := directory.BaseDNFor(e.credential.Realm)
	searchFilter := directory.AccountFilter(e.credential.Username)
	attributes := []string{e.attribute}

	var failures []error
	for _, host := range hosts {
		record, err := e.directory.Search(ctx, host, baseDN, searchFilter, attributes)
		if err != nil {
			logger.WarnContext(ctx, "Directory server failed, trying next", "server", host, "error", err)
			failures = append(failures, err)
			continue
		}
		return e.decode(ctx, host, searchFilter, record)
	}

	return domain.Unavailable(domain.ReasonDirectoryFailure, apperrors.Join(failures...))
}

func (e *Evaluator) filterHosts(ctx context.Context, hosts []string) []string {
	kept := make([]string, 0, len(hosts))
	for _, host := range hosts {
		if e.hostFilter.ShouldExclude(host) {
			e.logger.DebugContext(ctx, "Skipping excluded directory server", "server", host)
			continue
		}
		kept = append(kept, host)
	}
	return kept
}

func (e *Evaluator) decode(ctx context.Context, host, searchFilter string, record domain.DirectoryRecord) domain.FreshnessResult {
	value, ok := record[e.attribute]
	if !ok {
		return domain.Unavailable(domain.ReasonDirectoryFailure,
			apperrors.NewDirectoryQueryError(host, searchFilter, fmt.Errorf("attribute %s not returned", e.attribute)))
	}

	raw, err := directory.ParseTimestamp(value)
	if err != nil {
		return domain.Unavailable(domain.ReasonDirectoryFailure,
			apperrors.NewDirectoryQueryError(host, searchFilter, err))
	}

	switch raw {
	case directory.NeverExpires:
		return domain.NeverExpires()
	case directory.MustChange:
		return domain.MustChange()
	}

	expiresAt := directory.ToTime(raw)
	e.logger.DebugContext(ctx, "Decoded password expiry", "server", host, "expires_at", expiresAt)
	return domain.ExpiresIn(expiresAt.Sub(e.now()))
}
