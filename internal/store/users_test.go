package store

import (
	"path/filepath"
	"testing"

	util "github.com/spec-kit/chamado-tracker/pkg/util/errorutil"
)

func TestUserStoreAddAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usuarios.json")
	s, err := OpenUserStore(path)
	if err != nil {
		t.Fatalf("open user store: %v", err)
	}

	if err := s.Add("ana"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add("bruno"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !s.Contains("ana") {
		t.Fatalf("expected ana to be registered")
	}

	reloaded, err := OpenUserStore(path)
	if err != nil {
		t.Fatalf("reopen user store: %v", err)
	}
	got := reloaded.List()
	if len(got) != 2 || got[0] != "ana" || got[1] != "bruno" {
		t.Fatalf("registry not preserved across reload: %v", got)
	}
}

func TestUserStoreRejectsDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usuarios.json")
	s, err := OpenUserStore(path)
	if err != nil {
		t.Fatalf("open user store: %v", err)
	}

	if err := s.Add("ana"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	err = s.Add("ana")
	if !util.HasCode(err, util.CodeDuplicateUser) {
		t.Fatalf("expected DUPLICATE_USER, got %v", err)
	}
	if got := len(s.List()); got != 1 {
		t.Fatalf("expected registry size 1, got %d", got)
	}
}
