package registry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ccteam/dashboard/internal/models"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates the agents table if it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS agents (
			id           uuid PRIMARY KEY,
			name         text UNIQUE NOT NULL,
			role         text NOT NULL DEFAULT '',
			status       text NOT NULL DEFAULT 'offline',
			current_task text NOT NULL DEFAULT '',
			last_active  timestamptz,
			created_at   timestamptz NOT NULL
		)
	`)
	return err
}

const agentColumns = `id, name, role, status, current_task, last_active, created_at`

func scanAgent(row pgx.Row) (*models.Agent, error) {
	var ag models.Agent
	err := row.Scan(&ag.ID, &ag.Name, &ag.Role, &ag.Status, &ag.CurrentTask, &ag.LastActive, &ag.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &ag, nil
}

// GetByName returns the agent with the given name, or nil when absent.
func (r *Repository) GetByName(ctx context.Context, name string) (*models.Agent, error) {
	ag, err := scanAgent(r.pool.QueryRow(ctx, `
		SELECT `+agentColumns+` FROM agents WHERE name = $1
	`, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return ag, err
}

// GetByID returns the agent with the given id, or nil when absent.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Agent, error) {
	ag, err := scanAgent(r.pool.QueryRow(ctx, `
		SELECT `+agentColumns+` FROM agents WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return ag, err
}

func (r *Repository) Create(ctx context.Context, ag *models.Agent) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO agents (id, name, role, status, current_task, last_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, ag.ID, ag.Name, ag.Role, ag.Status, ag.CurrentTask, ag.LastActive, ag.CreatedAt)
	return err
}

func (r *Repository) Update(ctx context.Context, ag *models.Agent) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE agents SET role = $2, status = $3, current_task = $4, last_active = $5
		WHERE id = $1
	`, ag.ID, ag.Role, ag.Status, ag.CurrentTask, ag.LastActive)
	return err
}

// List returns all agents ordered by name.
func (r *Repository) List(ctx context.Context) ([]*models.Agent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+agentColumns+` FROM agents ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.Agent
	for rows.Next() {
		ag, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, ag)
	}
	return list, rows.Err()
}

// SweepStale demotes online/idle agents whose last_active is older than
// cutoff to offline. Agents with any other status are left alone.
func (r *Repository) SweepStale(ctx context.Context, cutoff time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE agents SET status = $1
		WHERE status IN ($2, $3) AND last_active IS NOT NULL AND last_active < $4
	`, models.AgentStatusOffline, models.AgentStatusOnline, models.AgentStatusIdle, cutoff)
	return err
}
