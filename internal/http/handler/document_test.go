package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crmapi/internal/apperr"
	"crmapi/internal/model"
	"crmapi/internal/query"
	"crmapi/internal/service"
	"crmapi/internal/service/mocks"
)

func newDocumentApp(svc service.DocumentService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Get("/api/documents", ListDocuments(svc))
	app.Post("/api/documents", CreateDocument(svc))
	app.Get("/api/documents/:id", GetDocument(svc))
	app.Patch("/api/documents/:id", UpdateDocument(svc))
	app.Delete("/api/documents/:id", DeleteDocument(svc))
	app.Get("/api/documents/:id/file", DocumentFileURL(svc))
	app.Get("/api/documents/:id/download", DocumentDownloadURL(svc))
	return app
}

// multipartBody builds a multipart form with the given fields and an
// optional file part named "file".
func multipartBody(t *testing.T, fields map[string]string, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		fw, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestListDocuments(t *testing.T) {
	svc := new(mocks.MockDocumentService)
	app := newDocumentApp(svc)

	svc.On("List", mock.Anything, service.DocumentListParams{
		Page:      1,
		Limit:     10,
		SortBy:    "created_at",
		SortOrder: "desc",
		ClientID:  "c1",
		Status:    "valid",
	}).Return(&service.DocumentListResult{
		Items: []model.Document{{ID: "d1", ClientID: "c1", Type: model.DocTypePassport}},
		Total: 1,
		Page:  query.NewPage(1, 10),
	}, nil)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/documents?clientId=c1&status=valid", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestCreateDocument(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(mocks.MockDocumentService)
		app := newDocumentApp(svc)

		svc.On("Create", mock.Anything, mock.MatchedBy(func(in service.DocumentCreateInput) bool {
			return in.ClientID == "c1" && in.Type == model.DocTypePassport &&
				in.File != nil && in.File.Filename == "passport.pdf"
		})).Return(&model.Document{ID: "d1", ClientID: "c1", Type: model.DocTypePassport}, nil)

		body, ct := multipartBody(t, map[string]string{
			"client_id": "c1",
			"type":      model.DocTypePassport,
		}, "passport.pdf", []byte("%PDF-1.4"))

		req := httptest.NewRequest(fiber.MethodPost, "/api/documents", body)
		req.Header.Set(fiber.HeaderContentType, ct)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("missing client becomes 400", func(t *testing.T) {
		svc := new(mocks.MockDocumentService)
		app := newDocumentApp(svc)

		svc.On("Create", mock.Anything, mock.Anything).
			Return(nil, apperr.NotFound("Client not found"))

		body, ct := multipartBody(t, map[string]string{
			"client_id": "missing",
			"type":      model.DocTypePassport,
		}, "passport.pdf", []byte("x"))

		req := httptest.NewRequest(fiber.MethodPost, "/api/documents", body)
		req.Header.Set(fiber.HeaderContentType, ct)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var out map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "Client not found", out["error"])
	})

	t.Run("missing required fields", func(t *testing.T) {
		svc := new(mocks.MockDocumentService)
		app := newDocumentApp(svc)

		svc.On("Create", mock.Anything, mock.Anything).
			Return(nil, apperr.Validation("File, client_id, and type are required"))

		body, ct := multipartBody(t, map[string]string{"type": model.DocTypePassport}, "", nil)

		req := httptest.NewRequest(fiber.MethodPost, "/api/documents", body)
		req.Header.Set(fiber.HeaderContentType, ct)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("bad valid_until", func(t *testing.T) {
		svc := new(mocks.MockDocumentService)
		app := newDocumentApp(svc)

		body, ct := multipartBody(t, map[string]string{
			"client_id":   "c1",
			"type":        model.DocTypePassport,
			"valid_until": "31-12-2026",
		}, "passport.pdf", []byte("x"))

		req := httptest.NewRequest(fiber.MethodPost, "/api/documents", body)
		req.Header.Set(fiber.HeaderContentType, ct)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUpdateDocument(t *testing.T) {
	svc := new(mocks.MockDocumentService)
	app := newDocumentApp(svc)

	status := model.DocStatusExpired
	svc.On("Update", mock.Anything, "d1", model.DocumentUpdate{Status: &status}, (*service.FileUpload)(nil)).
		Return(&model.Document{ID: "d1", ClientID: "c1", Type: model.DocTypePassport, Status: status}, nil)

	body, ct := multipartBody(t, map[string]string{"status": status}, "", nil)

	req := httptest.NewRequest(fiber.MethodPatch, "/api/documents/d1", body)
	req.Header.Set(fiber.HeaderContentType, ct)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestDeleteDocument(t *testing.T) {
	t.Run("no content", func(t *testing.T) {
		svc := new(mocks.MockDocumentService)
		app := newDocumentApp(svc)

		svc.On("Delete", mock.Anything, "d1").Return(nil)

		resp, err := app.Test(httptest.NewRequest(fiber.MethodDelete, "/api/documents/d1", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(mocks.MockDocumentService)
		app := newDocumentApp(svc)

		svc.On("Delete", mock.Anything, "missing").Return(apperr.NotFound("Document not found"))

		resp, err := app.Test(httptest.NewRequest(fiber.MethodDelete, "/api/documents/missing", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestDocumentFileURL(t *testing.T) {
	t.Run("url", func(t *testing.T) {
		svc := new(mocks.MockDocumentService)
		app := newDocumentApp(svc)

		svc.On("FileURL", mock.Anything, "d1").Return("https://minio/signed", nil)

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/documents/d1/file", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out struct {
			Data map[string]string `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "https://minio/signed", out.Data["url"])
	})

	t.Run("no file", func(t *testing.T) {
		svc := new(mocks.MockDocumentService)
		app := newDocumentApp(svc)

		svc.On("FileURL", mock.Anything, "d1").Return("", apperr.Validation("No file associated with this document"))

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/documents/d1/file", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestDocumentDownloadURL(t *testing.T) {
	svc := new(mocks.MockDocumentService)
	app := newDocumentApp(svc)

	svc.On("DownloadURL", mock.Anything, "d1").Return("https://minio/signed-download", nil)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/documents/d1/download", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "https://minio/signed-download", out.Data["url"])
}
