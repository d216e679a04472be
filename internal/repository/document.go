package repository

import (
	"context"

	"crmapi/internal/model"
)

// DocumentRepository is the persistence contract for document metadata
// rows. Blob handling lives in the storage package; rows only carry the
// file_path reference.
type DocumentRepository interface {
	// List returns a page of documents with the owning client's name
	// reference joined in, plus the total row count for the filter.
	List(ctx context.Context, q DocumentQuery) (*PageResult[model.Document], error)

	// FindByID returns one document with the full client reference.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// ListByClient returns a client's documents, newest upload first.
	ListByClient(ctx context.Context, clientID string) ([]model.Document, error)

	// CountByClient reports how many documents reference clientID.
	CountByClient(ctx context.Context, clientID string) (int, error)

	// Create inserts a document row and returns the stored record.
	Create(ctx context.Context, d *model.Document) (*model.Document, error)

	// Update applies the non-nil fields of upd and returns the updated row.
	Update(ctx context.Context, id string, upd model.DocumentUpdate) (*model.Document, error)

	// Delete removes a document row. Missing rows are not an error.
	Delete(ctx context.Context, id string) error
}
