package repository

import (
	"context"

	"crmapi/internal/model"
)

// ClientRepository is the persistence contract for clients. Single-row
// fetches signal a missing row with sql.ErrNoRows.
type ClientRepository interface {
	// List returns a page of clients with the agent name reference
	// joined in, plus the total row count for the filter.
	List(ctx context.Context, q ClientQuery) (*PageResult[model.Client], error)

	// FindByID returns one client with the full agent reference.
	FindByID(ctx context.Context, id string) (*model.Client, error)

	// Exists reports whether a client row exists.
	Exists(ctx context.Context, id string) (bool, error)

	// FindIDByEmail returns the id of the client holding email, excluding
	// excludeID when non-empty. Missing rows return sql.ErrNoRows.
	// Comparison is exact (case-sensitive, not normalized).
	FindIDByEmail(ctx context.Context, email, excludeID string) (string, error)

	// Create inserts a client and returns the stored row.
	Create(ctx context.Context, c *model.Client) (*model.Client, error)

	// Update applies the non-nil fields of upd and returns the updated row.
	Update(ctx context.Context, id string, upd model.ClientUpdate) (*model.Client, error)

	// Delete removes a client row. Missing rows are not an error.
	Delete(ctx context.Context, id string) error
}
