package handler

import (
	"github.com/gofiber/fiber/v2"

	"crmapi/internal/model"
	"crmapi/internal/service"
)

// ListClients returns a paginated client list.
// Query: page, limit, search, sortBy, sortOrder, agentId.
func ListClients(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := service.ClientListParams{
			Page:      c.QueryInt("page", 1),
			Limit:     c.QueryInt("limit", 10),
			Search:    c.Query("search"),
			SortBy:    c.Query("sortBy", "lastname"),
			SortOrder: c.Query("sortOrder", "asc"),
			AgentID:   c.Query("agentId"),
		}
		res, err := svc.List(c.UserContext(), p)
		if err != nil {
			return respondError(c, err)
		}
		return pageResponse(c, res.Items, res.Total, res.Page)
	}
}

// CreateClient creates a client from a JSON body.
func CreateClient(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.Client
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid request body")
		}
		created, err := svc.Create(c.UserContext(), &in)
		if err != nil {
			return respondError(c, err)
		}
		return dataResponse(c, fiber.StatusCreated, created)
	}
}

// GetClient returns one client with documents, accounts and contact
// moments embedded.
func GetClient(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		detail, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return dataResponse(c, fiber.StatusOK, detail)
	}
}

// UpdateClient applies a partial update from a JSON body.
func UpdateClient(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var upd model.ClientUpdate
		if err := c.BodyParser(&upd); err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid request body")
		}
		updated, err := svc.Update(c.UserContext(), c.Params("id"), upd)
		if err != nil {
			return respondError(c, err)
		}
		return dataResponse(c, fiber.StatusOK, updated)
	}
}

// DeleteClient removes a client. Responds 200 {success:true}, the shape
// the dashboard expects for client deletes.
func DeleteClient(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
