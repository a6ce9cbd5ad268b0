package store

import (
	"sync"

	util "github.com/spec-kit/chamado-tracker/pkg/util/errorutil"
)

// UserStore is the append-only registry of known user names, persisted as a
// JSON array. All access is serialized by a single mutex.
type UserStore struct {
	mu    sync.Mutex
	path  string
	users []string
}

// OpenUserStore loads the registry document. A missing file yields an empty
// registry.
func OpenUserStore(path string) (*UserStore, error) {
	users := []string{}
	if _, err := readJSON(path, &users); err != nil {
		return nil, util.NewStorageFailure(err)
	}
	return &UserStore{path: path, users: users}, nil
}

// List returns the registered names in registration order.
func (s *UserStore) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.users))
	copy(out, s.users)
	return out
}

// Contains reports whether name is registered (exact match).
func (s *UserStore) Contains(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contains(name)
}

// Add appends a name if absent and persists the registry.
func (s *UserStore) Add(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.contains(name) {
		return util.NewValidationError(util.CodeDuplicateUser, "user already exists", map[string]any{"name": name})
	}
	next := append(append([]string{}, s.users...), name)
	if err := writeJSONAtomic(s.path, next); err != nil {
		return util.NewStorageFailure(err)
	}
	s.users = next
	return nil
}

func (s *UserStore) contains(name string) bool {
	for _, u := range s.users {
		if u == name {
			return true
		}
	}
	return false
}
