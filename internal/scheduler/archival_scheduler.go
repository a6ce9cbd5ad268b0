package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/chamado-tracker/internal/service"
)

// CycleRunner runs one archival cycle. Implemented by service.ArchiveService.
type CycleRunner interface {
	RunArchivalCycle(ctx context.Context, now time.Time) (service.CycleReport, error)
}

// ArchivalScheduler fires archival cycles on a fixed cadence: once eagerly
// at start, then at every anchor time (a fixed hour of day, off-peak) spaced
// by the period. Cycle failures are logged and not retried until the next
// scheduled run.
type ArchivalScheduler struct {
	runner     CycleRunner
	logger     *zap.Logger
	period     time.Duration
	anchorHour int

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewArchivalScheduler constructs the scheduler. period is the spacing
// between runs, anchorHour the local hour of day runs are aligned to.
func NewArchivalScheduler(runner CycleRunner, logger *zap.Logger, period time.Duration, anchorHour int) *ArchivalScheduler {
	return &ArchivalScheduler{
		runner:     runner,
		logger:     logger,
		period:     period,
		anchorHour: anchorHour,
		stopChan:   make(chan struct{}),
	}
}

// Start runs an eager cycle, then schedules the anchored loop in the
// background until Stop is called or ctx is cancelled.
func (s *ArchivalScheduler) Start(ctx context.Context) {
	s.runCycle(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		next := nextAnchor(time.Now(), s.anchorHour)
		for {
			timer := time.NewTimer(time.Until(next))
			select {
			case <-timer.C:
				s.runCycle(ctx)
				next = next.Add(s.period)
			case <-ctx.Done():
				timer.Stop()
				return
			case <-s.stopChan:
				timer.Stop()
				return
			}
		}
	}()
}

// Stop signals the loop to exit and waits for it.
func (s *ArchivalScheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}

func (s *ArchivalScheduler) runCycle(ctx context.Context) {
	report, err := s.runner.RunArchivalCycle(ctx, time.Now())
	if err != nil {
		// Already logged by the service; the live store is untouched and the
		// next scheduled run will retry.
		return
	}
	s.logger.Debug("scheduled archival cycle done",
		zap.Int("archived", report.Archived),
		zap.Int("retained", report.Retained))
}

// nextAnchor returns the next occurrence of the anchor hour strictly after
// now, in local time.
func nextAnchor(now time.Time, hour int) time.Time {
	anchor := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !anchor.After(now) {
		anchor = anchor.AddDate(0, 0, 1)
	}
	return anchor
}
