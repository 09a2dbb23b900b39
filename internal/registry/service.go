package registry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ccteam/dashboard/internal/models"
)

// ErrAgentNotFound is returned by Heartbeat for unknown agent IDs.
var ErrAgentNotFound = errors.New("agent not found")

// Store is the storage surface the service needs. Implemented by
// *Repository; stubbed in tests.
type Store interface {
	GetByName(ctx context.Context, name string) (*models.Agent, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Agent, error)
	Create(ctx context.Context, ag *models.Agent) error
	Update(ctx context.Context, ag *models.Agent) error
	List(ctx context.Context) ([]*models.Agent, error)
	SweepStale(ctx context.Context, cutoff time.Time) error
}

// Service is the agent liveness state machine: register/update agents,
// record heartbeats, and sweep stale agents to offline.
type Service struct {
	store   Store
	timeout time.Duration
	now     func() time.Time
}

func NewService(store Store, heartbeatTimeout time.Duration) *Service {
	return &Service{
		store:   store,
		timeout: heartbeatTimeout,
		now:     time.Now,
	}
}

// Register creates the named agent, or updates role/status/last_active in
// place when the name already exists. The second return value reports
// whether a new record was created.
func (s *Service) Register(ctx context.Context, name, role, status string) (*models.Agent, bool, error) {
	if status == "" {
		status = models.AgentStatusOnline
	}
	now := s.now().UTC()

	existing, err := s.store.GetByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		existing.Role = role
		existing.Status = status
		existing.LastActive = &now
		if err := s.store.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	ag := &models.Agent{
		ID:         uuid.New(),
		Name:       name,
		Role:       role,
		Status:     status,
		LastActive: &now,
		CreatedAt:  now,
	}
	if err := s.store.Create(ctx, ag); err != nil {
		return nil, false, err
	}
	return ag, true, nil
}

// Heartbeat sets last_active to now. Status and current task are replaced
// only when the caller supplied them; nil preserves the prior value.
func (s *Service) Heartbeat(ctx context.Context, id uuid.UUID, status, currentTask *string) (*models.Agent, error) {
	ag, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ag == nil {
		return nil, ErrAgentNotFound
	}

	now := s.now().UTC()
	ag.LastActive = &now
	if status != nil {
		ag.Status = *status
	}
	if currentTask != nil {
		ag.CurrentTask = *currentTask
	}
	if err := s.store.Update(ctx, ag); err != nil {
		return nil, err
	}
	return ag, nil
}

// Sweep demotes online/idle agents not heard from within the configured
// timeout to offline. Already-offline agents and custom statuses are
// untouched, so the sweep is idempotent.
func (s *Service) Sweep(ctx context.Context) error {
	return s.store.SweepStale(ctx, s.now().UTC().Add(-s.timeout))
}

// List sweeps first so the listing reflects current liveness.
func (s *Service) List(ctx context.Context) ([]*models.Agent, error) {
	if err := s.Sweep(ctx); err != nil {
		return nil, err
	}
	return s.store.List(ctx)
}
