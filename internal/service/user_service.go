package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/chamado-tracker/internal/events"
	"github.com/spec-kit/chamado-tracker/internal/store"
	util "github.com/spec-kit/chamado-tracker/pkg/util/errorutil"
)

// UserService manages the user registry.
type UserService struct {
	users      *store.UserStore
	dispatcher events.Dispatcher
}

// NewUserService constructs the service.
func NewUserService(users *store.UserStore, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, dispatcher: dispatcher}
}

// Register appends a new user name if valid and absent, returning the name
// as registered.
func (s *UserService) Register(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", util.NewValidationError(util.CodeInvalidName, "name must not be blank", nil)
	}
	if err := s.users.Add(name); err != nil {
		return "", err
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserRegistered,
			Timestamp: time.Now(),
			Payload:   events.UserRegisteredPayload{Name: name},
		})
	}
	return name, nil
}

// List returns all registered user names.
func (s *UserService) List(ctx context.Context) []string {
	return s.users.List()
}
