package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crmapi/internal/apperr"
	"crmapi/internal/model"
	"crmapi/internal/service"
	"crmapi/internal/service/mocks"
)

func newAgentApp(svc service.AgentService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Get("/api/agents", ListAgents(svc))
	app.Post("/api/agents", CreateAgent(svc))
	app.Get("/api/agents/:id", GetAgent(svc))
	app.Patch("/api/agents/:id", UpdateAgent(svc))
	app.Delete("/api/agents/:id", DeleteAgent(svc))
	return app
}

func TestListAgents(t *testing.T) {
	t.Run("active only by default", func(t *testing.T) {
		svc := new(mocks.MockAgentService)
		app := newAgentApp(svc)

		svc.On("List", mock.Anything, false).
			Return([]model.Agent{{ID: "a1", Firstname: "Eva", Lastname: "Bakker", IsActive: true}}, nil)

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/agents", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("includeInactive", func(t *testing.T) {
		svc := new(mocks.MockAgentService)
		app := newAgentApp(svc)

		svc.On("List", mock.Anything, true).Return([]model.Agent{}, nil)

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/agents?includeInactive=true", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})
}

func TestCreateAgent(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(mocks.MockAgentService)
		app := newAgentApp(svc)

		svc.On("Create", mock.Anything, service.AgentInput{Firstname: "Eva", Lastname: "Bakker"}).
			Return(&model.Agent{ID: "a1", Firstname: "Eva", Lastname: "Bakker", IsActive: true}, nil)

		req := httptest.NewRequest(fiber.MethodPost, "/api/agents",
			strings.NewReader(`{"firstname":"Eva","lastname":"Bakker"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var body struct {
			Data model.Agent `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Data.IsActive)
	})

	t.Run("missing names", func(t *testing.T) {
		svc := new(mocks.MockAgentService)
		app := newAgentApp(svc)

		svc.On("Create", mock.Anything, service.AgentInput{}).
			Return(nil, apperr.Validation("First name and last name are required"))

		req := httptest.NewRequest(fiber.MethodPost, "/api/agents", strings.NewReader(`{}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetAgentNotFound(t *testing.T) {
	svc := new(mocks.MockAgentService)
	app := newAgentApp(svc)

	svc.On("Get", mock.Anything, "missing").Return(nil, apperr.NotFound("Agent not found"))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/agents/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateAgent(t *testing.T) {
	svc := new(mocks.MockAgentService)
	app := newAgentApp(svc)

	inactive := false
	svc.On("Update", mock.Anything, "a1", model.AgentUpdate{IsActive: &inactive}).
		Return(&model.Agent{ID: "a1", Firstname: "Eva", Lastname: "Bakker", IsActive: false}, nil)

	req := httptest.NewRequest(fiber.MethodPatch, "/api/agents/a1",
		strings.NewReader(`{"is_active":false}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	svc.AssertExpectations(t)
}

func TestDeleteAgent(t *testing.T) {
	svc := new(mocks.MockAgentService)
	app := newAgentApp(svc)

	svc.On("Delete", mock.Anything, "a1").Return(nil)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodDelete, "/api/agents/a1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body["success"])
}
