package domain

import (
	"context"
	"strings"
	"time"
)

// TGTServicePrefix identifies ticket-granting tickets by their service component.
const TGTServicePrefix = "krbtgt/"

// Ticket is a single entry of the local Kerberos credential cache.
type Ticket struct {
	Issued    time.Time
	Expires   time.Time
	Principal string
}

// Service returns the principal component before the '@', e.g. "krbtgt/CORP.EXAMPLE.COM".
func (t Ticket) Service() string {
	service, _, _ := strings.Cut(t.Principal, "@")
	return service
}

// Realm returns the principal component after the '@'.
func (t Ticket) Realm() string {
	_, realm, _ := strings.Cut(t.Principal, "@")
	return realm
}

// IsTGT reports whether the ticket is a ticket-granting ticket.
func (t Ticket) IsTGT() bool {
	return strings.HasPrefix(t.Service(), TGTServicePrefix)
}

// TicketSnapshot is the credential cache contents at one point in time.
// It only ever holds tickets that had not expired when they were listed.
type TicketSnapshot []Ticket

// HasTGT reports whether the snapshot holds at least one ticket-granting ticket.
func (s TicketSnapshot) HasTGT() bool {
	for _, t := range s {
		if t.IsTGT() {
			return true
		}
	}
	return false
}

// TicketCacheReader lists the tickets held in the local credential cache.
type TicketCacheReader interface {
	ListTickets(ctx context.Context) (TicketSnapshot, error)
}

// TicketRequester asks the KDC for a new ticket-granting ticket.
// A nil error only means the attempt ran; callers re-list the cache to learn the outcome.
type TicketRequester interface {
	RequestTicket(ctx context.Context, principal, password string) error
}
