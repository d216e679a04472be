package handler

import (
	"github.com/gofiber/fiber/v2"

	"crmapi/internal/query"
)

// pageMeta is the pagination block attached to list responses.
type pageMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

func dataResponse(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(fiber.Map{"data": v})
}

func pageResponse(c *fiber.Ctx, items any, total int, p query.Page) error {
	return c.JSON(fiber.Map{
		"data": items,
		"meta": pageMeta{
			Total:      total,
			Page:       p.Page,
			Limit:      p.Limit,
			TotalPages: query.TotalPages(total, p.Limit),
		},
	})
}
