// Package locator discovers network services through DNS SRV records.
package locator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"adpasswd/internal/domain"
	apperrors "adpasswd/internal/errors"
)

// DefaultTimeout bounds a single SRV lookup.
const DefaultTimeout = 5 * time.Second

// Locator turns a (service, protocol, domain) triple into an ordered host list.
type Locator struct {
	resolver domain.SRVResolver
	timeout  time.Duration
	logger   *slog.Logger
}

// NewLocator creates a locator. A non-positive timeout selects DefaultTimeout.
func NewLocator(resolver domain.SRVResolver, timeout time.Duration, logger *slog.Logger) *Locator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Locator{
		resolver: resolver,
		timeout:  timeout,
		logger:   logger,
	}
}

// Key builds the SRV owner name, e.g. "_ldap._tcp.corp.example.com".
func Key(service, protocol, domainName string) string {
	return fmt.Sprintf("_%s._%s.%s", service, protocol, domainName)
}

// Locate returns the SRV targets for the service in resolver order, without
// the trailing root dot. An empty answer is not an error.
func (l *Locator) Locate(ctx context.Context, service, protocol, domainName string) ([]string, error) {
	key := Key(service, protocol, domainName)

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	records, err := l.resolver.LookupSRV(ctx, key)
	if err != nil {
		l.logger.WarnContext(ctx, "SRV lookup failed", "key", key, "error", err)
		return nil, apperrors.NewDiscoveryError(key, err)
	}

	hosts := make([]string, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		host := strings.TrimSuffix(record.Target, ".")
		if host == "" {
			continue
		}
		hosts = append(hosts, host)
	}

	l.logger.DebugContext(ctx, "Located service hosts", "key", key, "hosts", hosts)
	return hosts, nil
}
