package output

import (
	"time"

	"adpasswd/internal/domain"
)

const timeLayout = "2006-01-02 15:04:05"

// TicketTable renders a ticket snapshot.
type TicketTable struct {
	tickets domain.TicketSnapshot
	now     time.Time
}

// NewTicketTable creates a table of tickets; remaining lifetimes are computed against now.
func NewTicketTable(tickets domain.TicketSnapshot, now time.Time) *TicketTable {
	return &TicketTable{tickets: tickets, now: now}
}

// Headers implements TableRenderer.
func (t *TicketTable) Headers() []string {
	return []string{"Principal", "Issued", "Expires", "Remaining", "TGT"}
}

// Rows implements TableRenderer.
func (t *TicketTable) Rows() [][]string {
	rows := make([][]string, 0, len(t.tickets))
	for _, ticket := range t.tickets {
		tgt := "no"
		if ticket.IsTGT() {
			tgt = "yes"
		}
		rows = append(rows, []string{
			ticket.Principal,
			ticket.Issued.Format(timeLayout),
			ticket.Expires.Format(timeLayout),
			ticket.Expires.Sub(t.now).Truncate(time.Minute).String(),
			tgt,
		})
	}
	return rows
}
