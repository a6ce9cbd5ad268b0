package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/chamado-tracker/internal/archive"
	"github.com/spec-kit/chamado-tracker/internal/domain"
	"github.com/spec-kit/chamado-tracker/internal/events"
	"github.com/spec-kit/chamado-tracker/internal/observability"
	"github.com/spec-kit/chamado-tracker/internal/store"
)

// ArchiveService enforces the retention window: tickets older than the
// window move into a dated archive file and the live store shrinks to the
// retained partition.
type ArchiveService struct {
	tickets    *store.TicketStore
	sink       archive.Sink
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	retention  time.Duration
}

// ArchiveDependencies bundles collaborators for the archive service.
type ArchiveDependencies struct {
	Tickets    *store.TicketStore
	Sink       archive.Sink
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Retention  time.Duration
}

// CycleReport summarizes one archival cycle.
type CycleReport struct {
	Archived    int
	Retained    int
	ArchiveFile string
}

// NewArchiveService constructs the service.
func NewArchiveService(deps ArchiveDependencies) *ArchiveService {
	return &ArchiveService{
		tickets:    deps.Tickets,
		sink:       deps.Sink,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
		retention:  deps.Retention,
	}
}

// RunArchivalCycle partitions the live store by age against the retention
// window, writes the expired partition to a dated archive, then replaces and
// persists the retained partition as the final step. A sink or persist
// failure leaves the live store untouched; expired tickets stay live until
// the next scheduled run.
func (s *ArchiveService) RunArchivalCycle(ctx context.Context, now time.Time) (CycleReport, error) {
	var archiveFile string
	archived, retained, err := s.tickets.RotateExpired(now, s.retention, func(expired []domain.Ticket) error {
		path, err := s.sink.Write(now, expired)
		if err != nil {
			return err
		}
		archiveFile = path
		return nil
	})
	s.metrics.RecordArchivalCycle(archived, err)
	if err != nil {
		s.logger.Error("archival cycle failed", zap.Error(err))
		return CycleReport{}, err
	}

	report := CycleReport{Archived: archived, Retained: retained, ArchiveFile: archiveFile}
	if archived == 0 {
		s.logger.Info("archival cycle: nothing to archive", zap.Int("retained", retained))
		return report, nil
	}

	s.logger.Info("archival cycle complete",
		zap.Int("archived", archived),
		zap.Int("retained", retained),
		zap.String("file", archiveFile))
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTicketsArchived,
			Timestamp: now,
			Payload: events.TicketsArchivedPayload{
				Archived:    archived,
				Retained:    retained,
				ArchiveFile: archiveFile,
			},
		})
	}
	return report, nil
}
