package handler

import (
	"github.com/gofiber/fiber/v2"

	"crmapi/internal/model"
	"crmapi/internal/service"
)

// ListAgents returns agents ordered by lastname. Inactive agents are
// hidden unless includeInactive=true.
func ListAgents(svc service.AgentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		includeInactive := c.Query("includeInactive") == "true"
		agents, err := svc.List(c.UserContext(), includeInactive)
		if err != nil {
			return respondError(c, err)
		}
		return dataResponse(c, fiber.StatusOK, agents)
	}
}

// CreateAgent creates an agent from a JSON body. is_active defaults to
// true when omitted.
func CreateAgent(svc service.AgentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.AgentInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid request body")
		}
		created, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return respondError(c, err)
		}
		return dataResponse(c, fiber.StatusCreated, created)
	}
}

func GetAgent(svc service.AgentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		agent, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return dataResponse(c, fiber.StatusOK, agent)
	}
}

func UpdateAgent(svc service.AgentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var upd model.AgentUpdate
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

// DeleteAgent removes an agent. Responds 200 {success:true} like the
// client delete.
func DeleteAgent(svc service.AgentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
