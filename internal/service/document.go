package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"crmapi/internal/apperr"
	"crmapi/internal/model"
	"crmapi/internal/query"
	"crmapi/internal/repository"
	"crmapi/internal/storage"
)

// Signed URL lifetimes. Inline viewing gets an hour; forced downloads
// are short-lived.
const (
	fileURLExpiry     = 60 * time.Minute
	downloadURLExpiry = 5 * time.Minute
)

// FileUpload is an incoming multipart file.
type FileUpload struct {
	Reader      io.Reader
	Filename    string
	Size        int64
	ContentType string
}

// DocumentListParams are the raw list-request parameters.
type DocumentListParams struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
	ClientID  string
	Type      string
	Status    string
}

// DocumentListResult is one page of documents plus totals.
type DocumentListResult struct {
	Items []model.Document
	Total int
	Page  query.Page
}

// DocumentCreateInput is the multipart create payload.
type DocumentCreateInput struct {
	ClientID   string
	Type       string
	Status     string
	IDNumber   *string
	ValidUntil *time.Time
	Notes      *string
	File       *FileUpload
}

// DocumentService coordinates document metadata rows and their blobs.
// Multi-step writes are best-effort sagas: upload-then-insert carries a
// compensating blob delete, delete-blob-then-delete-row never blocks on
// the blob step.
type DocumentService interface {
	List(ctx context.Context, p DocumentListParams) (*DocumentListResult, error)
	Get(ctx context.Context, id string) (*model.Document, error)
	Create(ctx context.Context, in DocumentCreateInput) (*model.Document, error)
	// Update patches metadata; when file is non-nil the new blob is
	// uploaded first and the previous blob deleted best-effort.
	Update(ctx context.Context, id string, upd model.DocumentUpdate, file *FileUpload) (*model.Document, error)
	Delete(ctx context.Context, id string) error
	// FileURL returns an inline-view signed URL (1 hour).
	FileURL(ctx context.Context, id string) (string, error)
	// DownloadURL returns a forced-download signed URL (5 minutes).
	DownloadURL(ctx context.Context, id string) (string, error)
}

type documentService struct {
	store   storage.Storage
	docs    repository.DocumentRepository
	clients repository.ClientRepository
}

func NewDocumentService(store storage.Storage, docs repository.DocumentRepository, clients repository.ClientRepository) DocumentService {
	return &documentService{store: store, docs: docs, clients: clients}
}

func (s *documentService) List(ctx context.Context, p DocumentListParams) (*DocumentListResult, error) {
	page := query.NewPage(p.Page, p.Limit)
	res, err := s.docs.List(ctx, repository.DocumentQuery{
		Search:    p.Search,
		ClientID:  p.ClientID,
		Type:      p.Type,
		Status:    p.Status,
		SortBy:    p.SortBy,
		SortOrder: p.SortOrder,
		Page:      page,
	})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total, Page: page}, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	return s.findDocument(ctx, id)
}

// Create uploads the blob, then inserts the metadata row. The client
// check runs before the upload so a bad client_id never leaves an
// orphan blob. If the insert fails, the uploaded blob is deleted; a
// failed compensation is logged and joined into the returned error.
func (s *documentService) Create(ctx context.Context, in DocumentCreateInput) (*model.Document, error) {
	if in.File == nil || in.ClientID == "" || in.Type == "" {
		return nil, apperr.Validation("File, client_id, and type are required")
	}

	exists, err := s.clients.Exists(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Client not found")
	}

	status := in.Status
	if status == "" {
		status = model.DocStatusValid
	}

	key := storageKey(in.ClientID, in.File.Filename)
	if _, err := s.store.Put(ctx, key, in.File.Reader, storage.PutObjectOptions{
		Size:        in.File.Size,
		ContentType: in.File.ContentType,
		Metadata:    map[string]string{"original-filename": in.File.Filename},
	}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	stored, err := s.docs.Create(ctx, &model.Document{
		ClientID:   in.ClientID,
		Type:       in.Type,
		Status:     status,
		IDNumber:   in.IDNumber,
		ValidUntil: in.ValidUntil,
		Notes:      in.Notes,
		FilePath:   &key,
	})
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			logStorageFailure("document_create_rollback_failed", key, delErr)
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	// Re-read to attach the client name reference.
	return s.docs.FindByID(ctx, stored.ID)
}

// Update replaces the blob first when a new file is supplied: upload
// under a fresh key, then best-effort delete of the prior blob, then
// patch the row. Without a file only metadata changes.
func (s *documentService) Update(ctx context.Context, id string, upd model.DocumentUpdate, file *FileUpload) (*model.Document, error) {
	existing, err := s.findDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	if file != nil {
		key := storageKey(existing.ClientID, file.Filename)
		if _, err := s.store.Put(ctx, key, file.Reader, storage.PutObjectOptions{
			Size:        file.Size,
			ContentType: file.ContentType,
			Metadata:    map[string]string{"original-filename": file.Filename},
		}); err != nil {
			return nil, fmt.Errorf("upload to storage: %w", err)
		}
		if existing.FilePath != nil && *existing.FilePath != "" {
			if delErr := s.store.Delete(ctx, *existing.FilePath); delErr != nil {
				logStorageFailure("document_update_stale_blob_delete_failed", *existing.FilePath, delErr)
			}
		}
		upd.FilePath = &key
	}

	if _, err := s.docs.Update(ctx, id, upd); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Document not found")
		}
		return nil, err
	}
	return s.docs.FindByID(ctx, id)
}

// Delete removes the blob (when present) before the row. Exactly one
// blob-delete attempt is made; its failure is logged and never blocks
// the row delete.
func (s *documentService) Delete(ctx context.Context, id string) error {
	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return err
	}

	if doc.FilePath != nil && *doc.FilePath != "" {
		if delErr := s.store.Delete(ctx, *doc.FilePath); delErr != nil {
			logStorageFailure("document_delete_blob_failed", *doc.FilePath, delErr)
		}
	}

	return s.docs.Delete(ctx, id)
}

func (s *documentService) FileURL(ctx context.Context, id string) (string, error) {
	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return "", err
	}
	if doc.FilePath == nil || *doc.FilePath == "" {
		return "", apperr.Validation("No file associated with this document")
	}
	return s.store.PresignGet(ctx, *doc.FilePath, fileURLExpiry)
}

func (s *documentService) DownloadURL(ctx context.Context, id string) (string, error) {
	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return "", err
	}
	if doc.FilePath == nil || *doc.FilePath == "" {
		return "", apperr.Validation("No file associated with this document")
	}
	name := doc.Type
	if name == "" {
		name = "document"
	}
	return s.store.PresignDownload(ctx, *doc.FilePath, downloadURLExpiry, name)
}

func (s *documentService) findDocument(ctx context.Context, id string) (*model.Document, error) {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Document not found")
		}
		return nil, err
	}
	return doc, nil
}

// storageKey builds {client_id}/{client_id}_{unixMillis}{ext}. Two
// uploads for one client within the same millisecond collide; the key
// format is part of the existing bucket layout, so no uniqueness suffix
// is added here.
func storageKey(clientID, filename string) string {
	ext := filepath.Ext(filename)
	return fmt.Sprintf("%s/%s_%d%s", clientID, clientID, time.Now().UnixMilli(), ext)
}
