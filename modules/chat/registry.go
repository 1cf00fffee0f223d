package chat

import (
	"errors"
	"slices"
	"sync"

	domain "github.com/example/code-playground/domain/chat"
	"github.com/samber/lo"
)

// ErrDuplicateConnection is returned when a connection ID is registered twice.
var ErrDuplicateConnection = errors.New("connection already registered")

// Registry maps joined connection IDs to users, remembering join order.
type Registry struct {
	mu    sync.RWMutex
	users map[string]domain.User
	order []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		users: make(map[string]domain.User),
	}
}

// Register adds a joined connection.
func (r *Registry) Register(connID, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[connID]; exists {
		return ErrDuplicateConnection
	}
	r.users[connID] = domain.User{ID: connID, Username: username}
	r.order = append(r.order, connID)
	return nil
}

// Remove deletes a connection and returns the user it held.
// Removing an unknown ID is a no-op.
func (r *Registry) Remove(connID string) (domain.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[connID]
	if !ok {
		return domain.User{}, false
	}
	delete(r.users, connID)
	if i := slices.Index(r.order, connID); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return user, true
}

// Lookup returns the user registered under connID.
func (r *Registry) Lookup(connID string) (domain.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[connID]
	return user, ok
}

// Snapshot returns the registered users in join order.
func (r *Registry) Snapshot() []domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Map(r.order, func(id string, _ int) domain.User {
		return r.users[id]
	})
}

// Len returns the number of registered users.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
