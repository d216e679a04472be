package repository

import (
	"context"

	"crmapi/internal/model"
)

// AgentRepository is the persistence contract for agents.
type AgentRepository interface {
	// List returns agents ordered by lastname; inactive rows are
	// excluded unless includeInactive is set.
	List(ctx context.Context, includeInactive bool) ([]model.Agent, error)

	FindByID(ctx context.Context, id string) (*model.Agent, error)

	Create(ctx context.Context, a *model.Agent) (*model.Agent, error)

	Update(ctx context.Context, id string, upd model.AgentUpdate) (*model.Agent, error)

	Delete(ctx context.Context, id string) error
}
