package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"crmapi/internal/service"
)

// RegisterRoutes attaches all HTTP routes. Everything under /api sits
// behind the session middleware; health, metrics and docs stay open.
func RegisterRoutes(
	app *fiber.App,
	db *sql.DB,
	session fiber.Handler,
	clients service.ClientService,
	agents service.AgentService,
	docs service.DocumentService,
) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Static API docs
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	api := app.Group("/api", session)

	api.Get("/clients", ListClients(clients))
	api.Post("/clients", CreateClient(clients))
	api.Get("/clients/:id", GetClient(clients))
	api.Patch("/clients/:id", UpdateClient(clients))
	api.Delete("/clients/:id", DeleteClient(clients))

	api.Get("/agents", ListAgents(agents))
	api.Post("/agents", CreateAgent(agents))
	api.Get("/agents/:id", GetAgent(agents))
	api.Patch("/agents/:id", UpdateAgent(agents))
	api.Delete("/agents/:id", DeleteAgent(agents))

	api.Get("/documents", ListDocuments(docs))
	api.Post("/documents", CreateDocument(docs))
	api.Get("/documents/:id", GetDocument(docs))
	api.Patch("/documents/:id", UpdateDocument(docs))
	api.Delete("/documents/:id", DeleteDocument(docs))
	api.Get("/documents/:id/file", DocumentFileURL(docs))
	api.Get("/documents/:id/download", DocumentDownloadURL(docs))
}
