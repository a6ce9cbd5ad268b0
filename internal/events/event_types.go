package events

import (
	"time"

	"github.com/spec-kit/chamado-tracker/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketsArchived     EventType = "tickets_archived"
	EventUserRegistered      EventType = "user_registered"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  int64       `json:"ticket_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Sector    string `json:"sector"`
	User      string `json:"user"`
	Equipment string `json:"equipment"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketsArchivedPayload payload.
type TicketsArchivedPayload struct {
	Archived    int    `json:"archived"`
	Retained    int    `json:"retained"`
	ArchiveFile string `json:"archive_file"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Name string `json:"name"`
}
