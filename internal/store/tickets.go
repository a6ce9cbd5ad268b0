package store

import (
	"sync"
	"time"

	"github.com/spec-kit/chamado-tracker/internal/domain"
	util "github.com/spec-kit/chamado-tracker/pkg/util/errorutil"
)

// TicketStore owns the ordered ticket collection, persisted as one JSON
// document rewritten whole on every mutation. A single mutex serializes all
// reads and writes so a timer-driven rotation cannot race a request-driven
// update.
type TicketStore struct {
	mu      sync.Mutex
	path    string
	tickets []domain.Ticket
	lastID  int64
}

// OpenTicketStore loads the ticket document. A missing file yields an empty
// store.
func OpenTicketStore(path string) (*TicketStore, error) {
	tickets := []domain.Ticket{}
	if _, err := readJSON(path, &tickets); err != nil {
		return nil, util.NewStorageFailure(err)
	}
	var lastID int64
	for _, t := range tickets {
		if t.ID > lastID {
			lastID = t.ID
		}
	}
	return &TicketStore{path: path, tickets: tickets, lastID: lastID}, nil
}

// List returns a copy of all tickets in creation order.
func (s *TicketStore) List() []domain.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Ticket, len(s.tickets))
	copy(out, s.tickets)
	return out
}

// Len returns the number of live tickets.
func (s *TicketStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tickets)
}

// Append assigns an id derived from the ticket's opening time, appends the
// ticket and persists the document. Ids are wall-clock milliseconds; a
// candidate that does not exceed the last issued id is bumped so ids stay
// unique and monotonically increasing.
func (s *TicketStore) Append(t domain.Ticket) (domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := t.OpenedAt.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	t.ID = id

	next := append(append([]domain.Ticket{}, s.tickets...), t)
	if err := writeJSONAtomic(s.path, next); err != nil {
		return domain.Ticket{}, util.NewStorageFailure(err)
	}
	s.tickets = next
	s.lastID = id
	return t, nil
}

// Update applies a mutation to the ticket with the given id and persists the
// document. The apply callback runs inside the critical section and must not
// touch the store.
func (s *TicketStore) Update(id int64, apply func(*domain.Ticket)) (domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.tickets {
		if s.tickets[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.Ticket{}, util.NewNotFound("ticket", map[string]any{"id": id})
	}

	next := make([]domain.Ticket, len(s.tickets))
	copy(next, s.tickets)
	apply(&next[idx])
	next[idx].ID = id // id is immutable

	if err := writeJSONAtomic(s.path, next); err != nil {
		return domain.Ticket{}, util.NewStorageFailure(err)
	}
	s.tickets = next
	return next[idx], nil
}

// RotateExpired partitions tickets by age against the retention window,
// hands the expired partition to the archive callback, and only after the
// callback succeeds replaces and persists the retained partition. The whole
// rotation runs inside the critical section, so concurrent updates cannot be
// lost between the partition and the replace. With no expired tickets the
// document is left untouched and the callback is not invoked.
func (s *TicketStore) RotateExpired(now time.Time, retention time.Duration, archive func(expired []domain.Ticket) error) (archived, retained int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired, kept []domain.Ticket
	for _, t := range s.tickets {
		if t.Age(now) >= retention {
			expired = append(expired, t)
		} else {
			kept = append(kept, t)
		}
	}
	if len(expired) == 0 {
		return 0, len(s.tickets), nil
	}

	if err := archive(expired); err != nil {
		return 0, len(s.tickets), util.NewArchivalFailure(err)
	}

	if kept == nil {
		kept = []domain.Ticket{}
	}
	// Replace-and-persist is the last step: a failure here leaves the
	// in-memory store and the document as they were.
	if err := writeJSONAtomic(s.path, kept); err != nil {
		return 0, len(s.tickets), util.NewStorageFailure(err)
	}
	s.tickets = kept
	return len(expired), len(kept), nil
}

// CountAgedBetween counts tickets whose age lies in [from, to). Pure read.
func (s *TicketStore) CountAgedBetween(now time.Time, from, to time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, t := range s.tickets {
		age := t.Age(now)
		if age >= from && age < to {
			count++
		}
	}
	return count
}
