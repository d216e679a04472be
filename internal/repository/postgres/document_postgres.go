package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"crmapi/internal/model"
	"crmapi/internal/query"
	"crmapi/internal/repository"
)

const documentColumns = `document.id, document.client_id, document.type, document.status,
	document.id_number, document.valid_until, document.notes, document.file_path,
	document.upload_date, document.created_at`

var documentSortable = []string{"created_at", "upload_date", "type", "status", "valid_until"}

// DocumentPostgres is the PostgreSQL implementation of repository.DocumentRepository.
type DocumentPostgres struct {
	db *sql.DB
}

func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

func scanDocument(row scanner, withClientNames bool) (*model.Document, error) {
	var d model.Document
	var clientFirst, clientLast sql.NullString

	dest := []any{
		&d.ID, &d.ClientID, &d.Type, &d.Status,
		&d.IDNumber, &d.ValidUntil, &d.Notes, &d.FilePath,
		&d.UploadDate, &d.CreatedAt,
	}
	if withClientNames {
		dest = append(dest, &clientFirst, &clientLast)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if withClientNames && clientFirst.Valid {
		d.Client = &model.ClientRef{Firstname: clientFirst.String, Lastname: clientLast.String}
	}
	return &d, nil
}

// List returns one page of documents with the owning client's names
// joined in, plus the total count for the same filter. Status and type
// filters compare stored values verbatim.
func (r *DocumentPostgres) List(ctx context.Context, q repository.DocumentQuery) (*repository.PageResult[model.Document], error) {
	var f query.Filter
	f.Search(q.Search, "document.type", "document.id_number", "document.notes").
		Eq("document.client_id", q.ClientID).
		Eq("document.type", q.Type).
		Eq("document.status", q.Status)
	where, args := f.Clause()

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM document"+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	sort := query.NewSort(q.SortBy, q.SortOrder, documentSortable, query.Sort{Column: "created_at", Desc: true})
	qList := "SELECT " + documentColumns + `, client.firstname, client.lastname
		FROM document
		LEFT JOIN client ON client.id = document.client_id` +
		where +
		" ORDER BY document." + sort.Column + sort.Dir() +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", f.NextArg(), f.NextArg()+1)
	args = append(args, q.Page.Limit, q.Page.Offset())

	rows, err := r.db.QueryContext(ctx, qList, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows, true)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{Items: items, Total: total}, nil
}

// FindByID returns one document with the full client reference.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	q := "SELECT " + documentColumns + `, client.id, client.firstname, client.lastname
		FROM document
		LEFT JOIN client ON client.id = document.client_id
		WHERE document.id = $1`

	var d model.Document
	var clientID, clientFirst, clientLast sql.NullString

	dest := []any{
		&d.ID, &d.ClientID, &d.Type, &d.Status,
		&d.IDNumber, &d.ValidUntil, &d.Notes, &d.FilePath,
		&d.UploadDate, &d.CreatedAt,
		&clientID, &clientFirst, &clientLast,
	}
	if err := r.db.QueryRowContext(ctx, q, id).Scan(dest...); err != nil {
		return nil, err
	}
	if clientID.Valid {
		d.Client = &model.ClientRef{
			ID:        clientID.String,
			Firstname: clientFirst.String,
			Lastname:  clientLast.String,
		}
	}
	return &d, nil
}

// ListByClient returns a client's documents, newest upload first.
func (r *DocumentPostgres) ListByClient(ctx context.Context, clientID string) ([]model.Document, error) {
	q := "SELECT " + documentColumns + ` FROM document
		WHERE document.client_id = $1
		ORDER BY document.upload_date DESC`
	rows, err := r.db.QueryContext(ctx, q, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows, false)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	return items, rows.Err()
}

func (r *DocumentPostgres) CountByClient(ctx context.Context, clientID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM document WHERE client_id = $1", clientID).Scan(&n)
	return n, err
}

// Create inserts a document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, d *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO document (client_id, type, status, id_number, valid_until, notes, file_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		d.ClientID, d.Type, d.Status, d.IDNumber, d.ValidUntil, d.Notes, d.FilePath,
	)
	return scanDocument(row, false)
}

// Update builds a SET clause from the non-nil fields of upd and returns
// the updated row. sql.ErrNoRows signals a missing document.
func (r *DocumentPostgres) Update(ctx context.Context, id string, upd model.DocumentUpdate) (*model.Document, error) {
	var set []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if upd.Type != nil {
		add("type", *upd.Type)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.IDNumber != nil {
		add("id_number", *upd.IDNumber)
	}
	if upd.ValidUntil != nil {
		add("valid_until", *upd.ValidUntil)
	}
	if upd.Notes != nil {
		add("notes", *upd.Notes)
	}
	if upd.FilePath != nil {
		add("file_path", *upd.FilePath)
	}

	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	args = append(args, id)
	q := "UPDATE document SET " + strings.Join(set, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING ", len(args)) + documentColumns
	return scanDocument(r.db.QueryRowContext(ctx, q, args...), false)
}

// Delete removes a document row. No error when the row is already gone.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM document WHERE id = $1", id)
	return err
}
