package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spec-kit/chamado-tracker/internal/domain"
	"github.com/spec-kit/chamado-tracker/internal/store"
	util "github.com/spec-kit/chamado-tracker/pkg/util/errorutil"
)

const (
	day       = 24 * time.Hour
	retention = 14 * day
)

type fixture struct {
	tickets *store.TicketStore
	users   *store.UserStore
	svc     *TicketService
	userSvc *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	tickets, err := store.OpenTicketStore(filepath.Join(dir, "chamados.json"))
	if err != nil {
		t.Fatalf("open ticket store: %v", err)
	}
	users, err := store.OpenUserStore(filepath.Join(dir, "usuarios.json"))
	if err != nil {
		t.Fatalf("open user store: %v", err)
	}
	if err := users.Add("ana"); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	reference := store.NewReferenceStore(domain.ReferenceData{
		SectorResponsible: map[string]string{"TI": "carlos", "RH": "paula"},
		Equipment:         []string{"notebook", "printer"},
	})

	svc := NewTicketService(TicketDependencies{
		Tickets:     tickets,
		Users:       users,
		Reference:   reference,
		Retention:   retention,
		WarningLead: day,
	})
	return &fixture{
		tickets: tickets,
		users:   users,
		svc:     svc,
		userSvc: NewUserService(users, nil),
	}
}

func validInput() TicketCreateInput {
	return TicketCreateInput{
		Sector:             "TI",
		User:               "ana",
		Equipment:          "notebook",
		ProblemDescription: "screen flickers",
	}
}

func TestCreateTicketSetsOpenState(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.CreateTicket(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := f.svc.CreateTicket(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if first.Status != domain.TicketStatusOpen {
		t.Fatalf("expected status Open, got %q", first.Status)
	}
	if first.ClosedAt != nil {
		t.Fatalf("expected closedAt absent on creation")
	}
	if first.OpenedAt.IsZero() {
		t.Fatalf("expected openedAt to be set")
	}
	if first.ResolutionComment != "" {
		t.Fatalf("expected empty resolution comment, got %q", first.ResolutionComment)
	}
	if first.ID == second.ID {
		t.Fatalf("expected unique ids, both %d", first.ID)
	}
}

func TestCreateTicketValidationOrder(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name  string
		input TicketCreateInput
		code  string
	}{
		{"unknown sector", TicketCreateInput{Sector: "Jur", User: "nobody", Equipment: "toaster"}, util.CodeInvalidSector},
		{"unknown user", TicketCreateInput{Sector: "TI", User: "nobody", Equipment: "toaster"}, util.CodeInvalidUser},
		{"unknown equipment", TicketCreateInput{Sector: "TI", User: "ana", Equipment: "toaster"}, util.CodeInvalidEquipment},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := f.tickets.Len()
			_, err := f.svc.CreateTicket(context.Background(), tc.input)
			if !util.HasCode(err, tc.code) {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
			if f.tickets.Len() != before {
				t.Fatalf("store mutated by rejected create")
			}
		})
	}
}

func TestUpdateTicketResolvedSetsClosedAt(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.CreateTicket(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	resolved := string(domain.TicketStatusResolved)
	comment := "replaced the cable"
	updated, err := f.svc.UpdateTicket(context.Background(), created.ID, TicketUpdateInput{
		Status:            &resolved,
		ResolutionComment: &comment,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.TicketStatusResolved {
		t.Fatalf("expected Resolved, got %q", updated.Status)
	}
	if updated.ClosedAt == nil {
		t.Fatalf("expected closedAt set on resolve")
	}
	if updated.ClosedAt.Before(updated.OpenedAt) {
		t.Fatalf("closedAt %v before openedAt %v", updated.ClosedAt, updated.OpenedAt)
	}
	if updated.ResolutionComment != comment {
		t.Fatalf("resolution comment not applied: %q", updated.ResolutionComment)
	}

	// Reopening clears closedAt.
	open := string(domain.TicketStatusOpen)
	reopened, err := f.svc.UpdateTicket(context.Background(), created.ID, TicketUpdateInput{Status: &open})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if reopened.ClosedAt != nil {
		t.Fatalf("expected closedAt cleared after leaving Resolved")
	}
}

func TestUpdateTicketWithoutStatusKeepsClosedAt(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.CreateTicket(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	resolved := string(domain.TicketStatusResolved)
	if _, err := f.svc.UpdateTicket(context.Background(), created.ID, TicketUpdateInput{Status: &resolved}); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	comment := "user confirmed fix"
	updated, err := f.svc.UpdateTicket(context.Background(), created.ID, TicketUpdateInput{ResolutionComment: &comment})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ClosedAt == nil {
		t.Fatalf("closedAt cleared by update without status field")
	}
	if updated.Status != domain.TicketStatusResolved {
		t.Fatalf("status changed by update without status field: %q", updated.Status)
	}
}

func TestUpdateTicketPartialFieldsLeaveOthersUntouched(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.CreateTicket(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	sector := "RH"
	updated, err := f.svc.UpdateTicket(context.Background(), created.ID, TicketUpdateInput{Sector: &sector})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Sector != "RH" {
		t.Fatalf("sector not applied: %q", updated.Sector)
	}
	if updated.User != created.User || updated.Equipment != created.Equipment {
		t.Fatalf("unrelated fields changed: %+v", updated)
	}
	if !updated.OpenedAt.Equal(created.OpenedAt) {
		t.Fatalf("openedAt changed by update")
	}
}

func TestUpdateTicketDoesNotRevalidate(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.CreateTicket(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Creation-time rules do not apply on update: unknown values pass through.
	sector := "Totally Unknown"
	user := "ghost"
	updated, err := f.svc.UpdateTicket(context.Background(), created.ID, TicketUpdateInput{Sector: &sector, User: &user})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Sector != sector || updated.User != user {
		t.Fatalf("update did not apply unvalidated fields: %+v", updated)
	}
}

func TestUpdateTicketUnknownIDNotFound(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.CreateTicket(context.Background(), validInput()); err != nil {
		t.Fatalf("create: %v", err)
	}

	status := "Open"
	_, err := f.svc.UpdateTicket(context.Background(), 999, TicketUpdateInput{Status: &status})
	if !util.HasCode(err, util.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if f.tickets.Len() != 1 {
		t.Fatalf("store mutated by failed update")
	}
}

func TestRegisterUserIdempotentRejecting(t *testing.T) {
	f := newFixture(t)

	before := len(f.users.List())
	name, err := f.userSvc.Register(context.Background(), "bruno")
	if err != nil {
		t.Fatalf("first register: %v", err)
	}
	if name != "bruno" {
		t.Fatalf("expected registered name bruno, got %q", name)
	}
	_, err = f.userSvc.Register(context.Background(), "bruno")
	if !util.HasCode(err, util.CodeDuplicateUser) {
		t.Fatalf("expected DUPLICATE_USER, got %v", err)
	}
	if got := len(f.users.List()); got != before+1 {
		t.Fatalf("expected registry to grow by one, was %d now %d", before, got)
	}
}

func TestRegisterUserBlankNameRejected(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"", "   ", "\t"} {
		_, err := f.userSvc.Register(context.Background(), name)
		if !util.HasCode(err, util.CodeInvalidName) {
			t.Fatalf("expected INVALID_NAME for %q, got %v", name, err)
		}
	}
}

func TestGetBackupWarningWindow(t *testing.T) {
	f := newFixture(t)
	now := time.Now()

	appendAged := func(age time.Duration) {
		t.Helper()
		ticket := domain.Ticket{
			Sector:    "TI",
			User:      "ana",
			Equipment: "notebook",
			Status:    domain.TicketStatusOpen,
			OpenedAt:  now.Add(-age),
		}
		if _, err := f.tickets.Append(ticket); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	appendAged(12 * day)
	warning := f.svc.GetBackupWarning(now)
	if warning.Warning || warning.Count != 0 {
		t.Fatalf("expected no warning for 12-day-old ticket, got %+v", warning)
	}

	appendAged(13*day + 12*time.Hour)
	warning = f.svc.GetBackupWarning(now)
	if !warning.Warning || warning.Count != 1 {
		t.Fatalf("expected warning with count 1, got %+v", warning)
	}
}
