package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ccteam/dashboard/internal/models"
)

// AgentLister is the registry surface the heartbeat source reads from.
type AgentLister interface {
	List(ctx context.Context) ([]*models.Agent, error)
}

// HeartbeatSource emits one event per registered agent that has ever been
// active.
type HeartbeatSource struct {
	registry AgentLister
	log      *slog.Logger
}

func NewHeartbeatSource(registry AgentLister, log *slog.Logger) *HeartbeatSource {
	if log == nil {
		log = slog.Default()
	}
	return &HeartbeatSource{registry: registry, log: log}
}

func (s *HeartbeatSource) Events(ctx context.Context) []Event {
	agents, err := s.registry.List(ctx)
	if err != nil {
		s.log.Debug("heartbeat source: list agents failed", "error", err)
		return nil
	}

	var events []Event
	for _, ag := range agents {
		if ag.LastActive == nil {
			continue
		}
		events = append(events, Event{
			Type:      TypeHeartbeat,
			Timestamp: ag.LastActive.UTC().Format(time.RFC3339),
			Agent:     ag.Name,
			Message:   fmt.Sprintf("Heartbeat from %s (%s)", ag.Name, ag.Status),
		})
	}
	return events
}
