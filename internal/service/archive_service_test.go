package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/chamado-tracker/internal/archive"
	"github.com/spec-kit/chamado-tracker/internal/domain"
	"github.com/spec-kit/chamado-tracker/internal/observability"
	"github.com/spec-kit/chamado-tracker/internal/store"
	util "github.com/spec-kit/chamado-tracker/pkg/util/errorutil"
)

type failingSink struct{ err error }

func (s failingSink) Write(time.Time, []domain.Ticket) (string, error) {
	return "", s.err
}

func newArchiveFixture(t *testing.T, sink archive.Sink) (*ArchiveService, *store.TicketStore) {
	t.Helper()
	tickets, err := store.OpenTicketStore(filepath.Join(t.TempDir(), "chamados.json"))
	if err != nil {
		t.Fatalf("open ticket store: %v", err)
	}
	svc := NewArchiveService(ArchiveDependencies{
		Tickets:   tickets,
		Sink:      sink,
		Logger:    zap.NewNop(),
		Metrics:   observability.NewMetrics(),
		Retention: retention,
	})
	return svc, tickets
}

func appendAgedTicket(t *testing.T, tickets *store.TicketStore, now time.Time, age time.Duration) domain.Ticket {
	t.Helper()
	created, err := tickets.Append(domain.Ticket{
		Sector:    "TI",
		User:      "ana",
		Equipment: "notebook",
		Status:    domain.TicketStatusOpen,
		OpenedAt:  now.Add(-age),
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	return created
}

func TestRunArchivalCycleArchivesExpired(t *testing.T) {
	archiveDir := t.TempDir()
	sink, err := archive.NewXLSXSink(archiveDir)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	svc, tickets := newArchiveFixture(t, sink)

	now := time.Now()
	fresh := appendAgedTicket(t, tickets, now, 10*day)
	appendAgedTicket(t, tickets, now, 14*day)
	appendAgedTicket(t, tickets, now, 20*day)

	report, err := svc.RunArchivalCycle(context.Background(), now)
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if report.Archived != 2 || report.Retained != 1 {
		t.Fatalf("expected 2 archived / 1 retained, got %+v", report)
	}
	if filepath.Base(report.ArchiveFile) != archive.FileName(now) {
		t.Fatalf("unexpected archive file: %q", report.ArchiveFile)
	}
	if _, err := os.Stat(report.ArchiveFile); err != nil {
		t.Fatalf("archive file missing: %v", err)
	}

	live := tickets.List()
	if len(live) != 1 || live[0].ID != fresh.ID {
		t.Fatalf("expected only the fresh ticket to remain, got %+v", live)
	}
}

func TestRunArchivalCycleNoExpiredWritesNoFile(t *testing.T) {
	archiveDir := t.TempDir()
	sink, err := archive.NewXLSXSink(archiveDir)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	svc, tickets := newArchiveFixture(t, sink)

	now := time.Now()
	appendAgedTicket(t, tickets, now, 2*day)

	report, err := svc.RunArchivalCycle(context.Background(), now)
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if report.Archived != 0 {
		t.Fatalf("expected zero archived, got %d", report.Archived)
	}
	entries, err := os.ReadDir(archiveDir)
	if err != nil {
		t.Fatalf("read archive dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no archive file, found %d entries", len(entries))
	}
}

func TestRunArchivalCycleSinkFailureLeavesStoreUntouched(t *testing.T) {
	sinkErr := errors.New("sink unavailable")
	svc, tickets := newArchiveFixture(t, failingSink{err: sinkErr})

	now := time.Now()
	appendAgedTicket(t, tickets, now, 30*day)

	_, err := svc.RunArchivalCycle(context.Background(), now)
	if !util.HasCode(err, util.CodeArchivalFailure) {
		t.Fatalf("expected ARCHIVAL_FAILURE, got %v", err)
	}
	if !errors.Is(err, sinkErr) {
		t.Fatalf("expected wrapped sink error, got %v", err)
	}
	if tickets.Len() != 1 {
		t.Fatalf("live store shrank despite sink failure")
	}
}
