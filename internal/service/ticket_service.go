package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/chamado-tracker/internal/domain"
	"github.com/spec-kit/chamado-tracker/internal/events"
	"github.com/spec-kit/chamado-tracker/internal/store"
	util "github.com/spec-kit/chamado-tracker/pkg/util/errorutil"
)

// TicketService coordinates the ticket lifecycle: creation-time validation,
// partial updates with the resolved/closedAt transition rule, and the
// backup-warning read.
type TicketService struct {
	tickets     *store.TicketStore
	users       *store.UserStore
	reference   *store.ReferenceStore
	dispatcher  events.Dispatcher
	retention   time.Duration
	warningLead time.Duration
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	Tickets     *store.TicketStore
	Users       *store.UserStore
	Reference   *store.ReferenceStore
	Dispatcher  events.Dispatcher
	Retention   time.Duration
	WarningLead time.Duration
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Sector             string
	User               string
	Equipment          string
	ProblemDescription string
	Responsible        string
}

// TicketUpdateInput carries the partial update; nil fields are left
// untouched.
type TicketUpdateInput struct {
	Sector             *string
	User               *string
	Equipment          *string
	ProblemDescription *string
	Responsible        *string
	Status             *string
	ResolutionComment  *string
}

// BackupWarning reports tickets due for archival within the warning window.
type BackupWarning struct {
	Warning bool `json:"warning"`
	Count   int  `json:"count"`
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:     deps.Tickets,
		users:       deps.Users,
		reference:   deps.Reference,
		dispatcher:  deps.Dispatcher,
		retention:   deps.Retention,
		warningLead: deps.WarningLead,
	}
}

// CreateTicket validates the request against reference data and the user
// registry, then appends and persists the new ticket. Checks run in a fixed
// order: sector, user, equipment.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (domain.Ticket, error) {
	if !s.reference.HasSector(input.Sector) {
		return domain.Ticket{}, util.NewValidationError(util.CodeInvalidSector, "invalid sector", map[string]any{"sector": input.Sector})
	}
	if !s.users.Contains(input.User) {
		return domain.Ticket{}, util.NewValidationError(util.CodeInvalidUser, "invalid user", map[string]any{"user": input.User})
	}
	if !s.reference.HasEquipment(input.Equipment) {
		return domain.Ticket{}, util.NewValidationError(util.CodeInvalidEquipment, "invalid equipment", map[string]any{"equipment": input.Equipment})
	}

	ticket := domain.Ticket{
		Sector:             input.Sector,
		User:               input.User,
		Responsible:        input.Responsible,
		Equipment:          input.Equipment,
		ProblemDescription: input.ProblemDescription,
		Status:             domain.TicketStatusOpen,
		ResolutionComment:  "",
		OpenedAt:           time.Now(),
		ClosedAt:           nil,
	}

	created, err := s.tickets.Append(ticket)
	if err != nil {
		return domain.Ticket{}, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: created.ID,
		Payload: events.TicketCreatedPayload{
			Sector:    created.Sector,
			User:      created.User,
			Equipment: created.Equipment,
		},
	})
	return created, nil
}

// UpdateTicket applies the supplied fields to an existing ticket. Reference
// data is not consulted again on this path. The closedAt transition is
// driven by the requested status value: Resolved sets it, any other supplied
// status clears it, an absent status leaves it alone.
func (s *TicketService) UpdateTicket(ctx context.Context, id int64, input TicketUpdateInput) (domain.Ticket, error) {
	var oldStatus domain.TicketStatus
	updated, err := s.tickets.Update(id, func(t *domain.Ticket) {
		oldStatus = t.Status
		if input.Sector != nil {
			t.Sector = *input.Sector
		}
		if input.User != nil {
			t.User = *input.User
		}
		if input.Equipment != nil {
			t.Equipment = *input.Equipment
		}
		if input.ProblemDescription != nil {
			t.ProblemDescription = *input.ProblemDescription
		}
		if input.Responsible != nil {
			t.Responsible = *input.Responsible
		}
		if input.ResolutionComment != nil {
			t.ResolutionComment = *input.ResolutionComment
		}
		if input.Status != nil {
			t.Status = domain.TicketStatus(*input.Status)
			if t.Status == domain.TicketStatusResolved {
				now := time.Now()
				t.ClosedAt = &now
			} else {
				t.ClosedAt = nil
			}
		}
	})
	if err != nil {
		return domain.Ticket{}, err
	}
	if input.Status != nil && updated.Status != oldStatus {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: updated.ID,
			Payload: events.TicketStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: updated.Status,
			},
		})
	}
	return updated, nil
}

// ListTickets returns all live tickets in creation order.
func (s *TicketService) ListTickets(ctx context.Context) []domain.Ticket {
	return s.tickets.List()
}

// GetBackupWarning reports whether any ticket will be archived within the
// warning window. Pure read.
func (s *TicketService) GetBackupWarning(now time.Time) BackupWarning {
	count := s.tickets.CountAgedBetween(now, s.retention-s.warningLead, s.retention)
	return BackupWarning{Warning: count > 0, Count: count}
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
