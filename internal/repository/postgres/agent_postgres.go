package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"crmapi/internal/model"
	"crmapi/internal/repository"
)

const agentColumns = `id, firstname, lastname, is_active, created_at`

// AgentPostgres is the PostgreSQL implementation of repository.AgentRepository.
type AgentPostgres struct {
	db *sql.DB
}

func NewAgentPostgres(db *sql.DB) *AgentPostgres {
	return &AgentPostgres{db: db}
}

var _ repository.AgentRepository = (*AgentPostgres)(nil)

func scanAgent(row scanner) (*model.Agent, error) {
	var a model.Agent
	if err := row.Scan(&a.ID, &a.Firstname, &a.Lastname, &a.IsActive, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns agents ordered by lastname, filtered to active rows
// unless includeInactive is set.
func (r *AgentPostgres) List(ctx context.Context, includeInactive bool) ([]model.Agent, error) {
	q := "SELECT " + agentColumns + " FROM agent"
	if !includeInactive {
		q += " WHERE is_active = TRUE"
	}
	q += " ORDER BY lastname"

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Agent, 0)
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

func (r *AgentPostgres) FindByID(ctx context.Context, id string) (*model.Agent, error) {
	q := "SELECT " + agentColumns + " FROM agent WHERE id = $1"
	return scanAgent(r.db.QueryRowContext(ctx, q, id))
}

func (r *AgentPostgres) Create(ctx context.Context, a *model.Agent) (*model.Agent, error) {
	const q = `
		INSERT INTO agent (firstname, lastname, is_active)
		VALUES ($1, $2, $3)
		RETURNING ` + agentColumns
	return scanAgent(r.db.QueryRowContext(ctx, q, a.Firstname, a.Lastname, a.IsActive))
}

func (r *AgentPostgres) Update(ctx context.Context, id string, upd model.AgentUpdate) (*model.Agent, error) {
	var set []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if upd.Firstname != nil {
		add("firstname", *upd.Firstname)
	}
	if upd.Lastname != nil {
		add("lastname", *upd.Lastname)
	}
	if upd.IsActive != nil {
		add("is_active", *upd.IsActive)
	}

	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	args = append(args, id)
	q := "UPDATE agent SET " + strings.Join(set, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING ", len(args)) + agentColumns
	return scanAgent(r.db.QueryRowContext(ctx, q, args...))
}

func (r *AgentPostgres) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM agent WHERE id = $1", id)
	return err
}
