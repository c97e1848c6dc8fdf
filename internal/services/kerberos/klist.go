package kerberos

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"adpasswd/internal/domain"
)

// MaxTickets caps the number of cache entries parsed from one listing.
const MaxTickets = 256

// DefaultTimeout bounds a single klist invocation.
const DefaultTimeout = 5 * time.Second

// Timestamp layouts printed by klist, after whitespace has been collapsed.
var (
	heimdalLayouts = []string{"Jan 2 15:04:05 2006"}
	mitLayouts     = []string{"01/02/2006 15:04:05", "01/02/06 15:04:05", "2006-01-02 15:04:05"}
)

// KlistReader lists the credential cache by running klist.
type KlistReader struct {
	runner   domain.CommandRunner
	binary   string
	flavor   Flavor
	ccache   string
	timeout  time.Duration
	location *time.Location
	now      func() time.Time
	logger   *slog.Logger
}

// KlistOption configures a KlistReader.
type KlistOption func(*KlistReader)

// WithKlistBinary overrides the klist executable.
func WithKlistBinary(binary string) KlistOption {
	return func(r *KlistReader) {
		r.binary = binary
	}
}

// WithKlistFlavor selects the klist dialect.
func WithKlistFlavor(flavor Flavor) KlistOption {
	return func(r *KlistReader) {
		r.flavor = flavor
	}
}

// WithKlistCredentialCache pins the reader to one credential cache.
func WithKlistCredentialCache(ccache string) KlistOption {
	return func(r *KlistReader) {
		r.ccache = ccache
	}
}

// WithKlistTimeout overrides DefaultTimeout.
func WithKlistTimeout(timeout time.Duration) KlistOption {
	return func(r *KlistReader) {
		r.timeout = timeout
	}
}

// WithKlistClock overrides the clock used to drop expired tickets.
func WithKlistClock(now func() time.Time) KlistOption {
	return func(r *KlistReader) {
		r.now = now
	}
}

// WithKlistLocation sets the zone klist timestamps are printed in.
func WithKlistLocation(loc *time.Location) KlistOption {
	return func(r *KlistReader) {
		r.location = loc
	}
}

// NewKlistReader creates a ticket cache reader backed by klist.
func NewKlistReader(runner domain.CommandRunner, logger *slog.Logger, opts ...KlistOption) *KlistReader {
	r := &KlistReader{
		runner:   runner,
		binary:   "klist",
		flavor:   FlavorAuto,
		timeout:  DefaultTimeout,
		location: time.Local,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ListTickets runs klist and returns the unexpired tickets it reports.
func (r *KlistReader) ListTickets(ctx context.Context) (domain.TicketSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var args []string
	if r.flavor.Resolve() == FlavorHeimdal {
		args = append(args, "--json")
	}

	var env []string
	if r.ccache != "" {
		env = append(env, "KRB5CCNAME="+r.ccache)
	}

	output, err := r.runner.Run(ctx, domain.Command{Name: r.binary, Args: args, Env: env})
	if err != nil {
		return nil, err
	}

	tickets, truncated := ParseTickets(output, r.now(), r.location)
	if truncated {
		r.logger.WarnContext(ctx, "Ticket listing truncated", "max_tickets", MaxTickets)
	}
	r.logger.DebugContext(ctx, "Listed credential cache", "tickets", len(tickets))
	return tickets, nil
}

// ParseTickets parses klist output, either the Heimdal JSON document or a
// tabular MIT/Heimdal listing. Entries whose expiry cannot be parsed (such as
// ">>>Expired<<<") or lies at or before now are dropped. The boolean reports
// whether the listing held more than MaxTickets entries.
func ParseTickets(output []byte, now time.Time, loc *time.Location) (domain.TicketSnapshot, bool) {
	trimmed := bytes.TrimSpace(output)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if tickets, truncated, err := parseJSON(trimmed, now, loc); err == nil {
			return tickets, truncated
		}
	}
	return parseTable(trimmed, now, loc)
}

type klistDocument struct {
	Tickets []struct {
		Issued    string `json:"Issued"`
		Expires   string `json:"Expires"`
		Principal string `json:"Principal"`
	} `json:"tickets"`
}

func parseJSON(data []byte, now time.Time, loc *time.Location) (domain.TicketSnapshot, bool, error) {
	var doc klistDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false, fmt.Errorf("decode klist json: %w", err)
	}

	tickets := domain.TicketSnapshot{}
	for i, entry := range doc.Tickets {
		if i == MaxTickets {
			return tickets, true, nil
		}
		issued, err := parseTime(entry.Issued, loc)
		if err != nil {
			continue
		}
		expires, err := parseTime(entry.Expires, loc)
		if err != nil || !expires.After(now) {
			continue
		}
		tickets = append(tickets, domain.Ticket{Issued: issued, Expires: expires, Principal: entry.Principal})
	}
	return tickets, false, nil
}

func parseTable(data []byte, now time.Time, loc *time.Location) (domain.TicketSnapshot, bool) {
	tickets := domain.TicketSnapshot{}
	entries := 0

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		principal := fields[len(fields)-1]
		if !strings.Contains(principal, "@") {
			continue
		}

		issued, rest, ok := splitIssued(fields[:len(fields)-1], loc)
		if !ok {
			continue
		}

		if entries == MaxTickets {
			return tickets, true
		}
		entries++

		expires, err := parseTime(strings.Join(rest, " "), loc)
		if err != nil || !expires.After(now) {
			continue
		}
		tickets = append(tickets, domain.Ticket{Issued: issued, Expires: expires, Principal: principal})
	}
	return tickets, false
}

// splitIssued finds the leading issue timestamp (two tokens for MIT, four
// for Heimdal) and returns the remaining tokens.
func splitIssued(fields []string, loc *time.Location) (time.Time, []string, bool) {
	for _, n := range []int{2, 4} {
		if len(fields) <= n {
			continue
		}
		if issued, err := parseTime(strings.Join(fields[:n], " "), loc); err == nil {
			return issued, fields[n:], true
		}
	}
	return time.Time{}, nil, false
}

func parseTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.Join(strings.Fields(value), " ")
	for _, layouts := range [][]string{heimdalLayouts, mitLayouts} {
		for _, layout := range layouts {
			if t, err := time.ParseInLocation(layout, value, loc); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised ticket timestamp %q", value)
}
