package handler

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crmapi/internal/http/middleware"
	"crmapi/internal/model"
	"crmapi/internal/query"
	"crmapi/internal/service"
	"crmapi/internal/service/mocks"
)

func TestRegisterRoutesSessionGuard(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	clientSvc := new(mocks.MockClientService)
	agentSvc := new(mocks.MockAgentService)
	docSvc := new(mocks.MockDocumentService)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	RegisterRoutes(app, db, middleware.Session("secret"), clientSvc, agentSvc, docSvc)

	t.Run("api routes require a session", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/clients", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Unauthorized", body["error"])
		clientSvc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("valid session passes through", func(t *testing.T) {
		clientSvc.On("List", mock.Anything, mock.Anything).Return(&service.ClientListResult{
			Items: []model.Client{},
			Total: 0,
			Page:  query.NewPage(1, 10),
		}, nil)

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte("secret"))
		require.NoError(t, err)

		req := httptest.NewRequest(fiber.MethodGet, "/api/clients", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signed)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("health stays open", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/healthz", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
