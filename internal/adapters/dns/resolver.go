// Package dns resolves DNS service records for directory server discovery.
package dns

import (
	"context"
	"log/slog"
	"net"
	"sort"

	"github.com/jcmturner/dnsutils/v2"
)

type lookupResult struct {
	records []*net.SRV
	err     error
}

// Resolver looks up SRV records through the system resolver.
// Records are returned in RFC 2782 priority/weight order.
type Resolver struct {
	logger *slog.Logger
}

// NewResolver creates a new SRV resolver.
func NewResolver(logger *slog.Logger) *Resolver {
	return &Resolver{
		logger: logger,
	}
}

// LookupSRV resolves key, e.g. "_ldap._tcp.corp.example.com". The lookup is
// abandoned when ctx is done.
func (r *Resolver) LookupSRV(ctx context.Context, key string) ([]*net.SRV, error) {
	done := make(chan lookupResult, 1)

	go func() {
		// Empty service and proto make the resolver query key verbatim.
		_, ordered, err := dnsutils.OrderedSRV("", "", key)
		if err != nil {
			done <- lookupResult{err: err}
			return
		}
		done <- lookupResult{records: flatten(ordered)}
	}()

	select {
	case <-ctx.Done():
		r.logger.DebugContext(ctx, "SRV lookup abandoned", "key", key, "error", ctx.Err())
		return nil, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return nil, res.err
		}
		r.logger.DebugContext(ctx, "SRV lookup finished", "key", key, "records", len(res.records))
		return res.records, nil
	}
}

// flatten turns the position-keyed map returned by dnsutils into a slice.
func flatten(ordered map[int]*net.SRV) []*net.SRV {
	positions := make([]int, 0, len(ordered))
	for pos := range ordered {
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	records := make([]*net.SRV, 0, len(positions))
	for _, pos := range positions {
		if srv := ordered[pos]; srv != nil {
			records = append(records, srv)
		}
	}
	return records
}
