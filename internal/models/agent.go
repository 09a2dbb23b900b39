package models

import (
	"time"

	"github.com/google/uuid"
)

// Agent statuses. The timeout sweep only ever touches online and idle; any
// other caller-supplied status string is stored as-is.
const (
	AgentStatusOnline  = "online"
	AgentStatusIdle    = "idle"
	AgentStatusOffline = "offline"
)

type Agent struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	CurrentTask string     `json:"current_task"`
	LastActive  *time.Time `json:"last_active"`
	CreatedAt   time.Time  `json:"created_at"`
}
