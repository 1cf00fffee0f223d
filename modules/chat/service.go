package chat

import (
	"sync"
	"time"

	domain "github.com/example/code-playground/domain/chat"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/microcosm-cc/bluemonday"
)

// Service runs presence and message relay for every connection.
//
// Registry mutation and the sends it triggers happen under mu, so every
// client observes snapshots and per-sender messages in relay order.
type Service struct {
	registry    *Registry
	broadcaster Broadcaster
	observer    Observer
	policy      *bluemonday.Policy
	opts        Options
	now         func() time.Time
	logger      types.Logger

	mu sync.Mutex
}

// NewService creates a Service delivering through broadcaster.
func NewService(broadcaster Broadcaster, logger types.Logger, opts Options) *Service {
	if broadcaster == nil {
		panic("chat: Broadcaster is nil")
	}
	defaults := DefaultOptions()
	if opts.MaxUsernameLength <= 0 {
		opts.MaxUsernameLength = defaults.MaxUsernameLength
	}
	if opts.MaxMessageLength <= 0 {
		opts.MaxMessageLength = defaults.MaxMessageLength
	}
	return &Service{
		registry:    NewRegistry(),
		broadcaster: broadcaster,
		policy:      bluemonday.StrictPolicy(),
		opts:        opts,
		now:         time.Now,
		logger:      logger,
	}
}

// SetObserver registers the observer of accepted chat actions.
func (s *Service) SetObserver(o Observer) {
	s.observer = o
}

// Registry exposes the connection registry for read access.
func (s *Service) Registry() *Registry {
	return s.registry
}

// Users returns the joined users in join order.
func (s *Service) Users() []domain.User {
	return s.registry.Snapshot()
}

// OnlineCount returns the number of joined users.
func (s *Service) OnlineCount() int {
	return s.registry.Len()
}
