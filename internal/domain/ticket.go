package domain

import "time"

// TicketStatus is a lifecycle state for tickets. Open and Resolved carry
// transition semantics; any other string value is accepted as-is.
type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "Open"
	TicketStatusResolved TicketStatus = "Resolved"
)

// Ticket is the aggregate for support requests ("chamados").
type Ticket struct {
	ID                 int64        `json:"id"`
	Sector             string       `json:"sector"`
	User               string       `json:"user"`
	Responsible        string       `json:"responsible"`
	Equipment          string       `json:"equipment"`
	ProblemDescription string       `json:"problemDescription"`
	Status             TicketStatus `json:"status"`
	ResolutionComment  string       `json:"resolutionComment"`
	OpenedAt           time.Time    `json:"openedAt"`
	ClosedAt           *time.Time   `json:"closedAt"`
}

// Age reports how long the ticket has been open relative to now.
func (t Ticket) Age(now time.Time) time.Duration {
	return now.Sub(t.OpenedAt)
}
