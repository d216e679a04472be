package handler

import (
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"

	"crmapi/internal/apperr"
	"crmapi/internal/model"
	"crmapi/internal/service"
)

// ListDocuments returns a paginated document list.
// Query: page, limit, search, sortBy, sortOrder, clientId, type, status.
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := service.DocumentListParams{
			Page:      c.QueryInt("page", 1),
			Limit:     c.QueryInt("limit", 10),
			Search:    c.Query("search"),
			SortBy:    c.Query("sortBy", "created_at"),
			SortOrder: c.Query("sortOrder", "desc"),
			ClientID:  c.Query("clientId"),
			Type:      c.Query("type"),
			Status:    c.Query("status"),
		}
		res, err := svc.List(c.UserContext(), p)
		if err != nil {
			return respondError(c, err)
		}
		return pageResponse(c, res.Items, res.Total, res.Page)
	}
}

// CreateDocument creates a document from a multipart form: file,
// client_id and type required; valid_until, id_number, status, notes
// optional.
func CreateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in := service.DocumentCreateInput{
			ClientID: c.FormValue("client_id"),
			Type:     c.FormValue("type"),
			Status:   c.FormValue("status"),
			IDNumber: optFormValue(c, "id_number"),
			Notes:    optFormValue(c, "notes"),
		}

		if v := c.FormValue("valid_until"); v != "" {
			t, err := time.Parse("2006-01-02", v)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "Invalid valid_until date")
			}
			in.ValidUntil = &t
		}

		fh, err := c.FormFile("file")
		if err == nil && fh != nil {
			f, openErr := fh.Open()
			if openErr != nil {
				return writeError(c, fiber.StatusBadRequest, "Cannot open uploaded file")
			}
			defer f.Close()
			in.File = fileUpload(fh, f)
		}

		doc, err := svc.Create(c.UserContext(), in)
		if err != nil {
			// A missing client surfaces as 400 on this route, matching the
			// dashboard's contract.
			if apperr.KindOf(err) == apperr.KindNotFound {
				return writeError(c, fiber.StatusBadRequest, apperr.MessageOf(err))
			}
			return respondError(c, err)
		}
		return dataResponse(c, fiber.StatusCreated, doc)
	}
}

// GetDocument returns one document with its client reference.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return dataResponse(c, fiber.StatusOK, doc)
	}
}

// UpdateDocument patches metadata from a multipart form; a supplied file
// replaces the stored blob.
func UpdateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var upd model.DocumentUpdate
		upd.Type = optFormValue(c, "type")
		upd.Status = optFormValue(c, "status")
		upd.IDNumber = optFormValue(c, "id_number")
		upd.Notes = optFormValue(c, "notes")

		if v := c.FormValue("valid_until"); v != "" {
			t, err := time.Parse("2006-01-02", v)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "Invalid valid_until date")
			}
			upd.ValidUntil = &t
		}

		var file *service.FileUpload
		if fh, err := c.FormFile("file"); err == nil && fh != nil {
			f, openErr := fh.Open()
			if openErr != nil {
				return writeError(c, fiber.StatusBadRequest, "Cannot open uploaded file")
			}
			defer f.Close()
			file = fileUpload(fh, f)
		}

		doc, err := svc.Update(c.UserContext(), c.Params("id"), upd, file)
		if err != nil {
			return respondError(c, err)
		}
		return dataResponse(c, fiber.StatusOK, doc)
	}
}

// DeleteDocument removes the blob (best-effort) and the row. 204 on
// success.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DocumentFileURL returns an inline-view signed URL (1 hour expiry).
func DocumentFileURL(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.FileURL(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return dataResponse(c, fiber.StatusOK, fiber.Map{"url": u})
	}
}

// DocumentDownloadURL returns a forced-download signed URL (5 minute
// expiry).
func DocumentDownloadURL(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.DownloadURL(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return dataResponse(c, fiber.StatusOK, fiber.Map{"url": u})
	}
}

// optFormValue distinguishes "field absent" (nil) from "field present"
// so PATCH semantics survive the multipart form.
func optFormValue(c *fiber.Ctx, name string) *string {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	if vs, ok := form.Value[name]; ok && len(vs) > 0 {
		return &vs[0]
	}
	return nil
}

func fileUpload(fh *multipart.FileHeader, f multipart.File) *service.FileUpload {
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &service.FileUpload{
		Reader:      f,
		Filename:    fh.Filename,
		Size:        fh.Size,
		ContentType: ct,
	}
}
