package http

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/auroranet/portal-service/internal/observability"
	apperrors "github.com/auroranet/portal-service/pkg/util"
)

type errorBody struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Errors  []string `json:"errors"`
}

func errorApp(exposeDetail bool, handler fiber.Handler) *fiber.App {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0, exposeDetail)
	app.Patch("/api/admin/tickets/:id/status", handler)
	return app
}

func TestErrorEnvelopeCarriesHumanText(t *testing.T) {
	app := errorApp(false, func(c *fiber.Ctx) error {
		return apperrors.NewValidationError("Invalid status value")
	})

	resp, err := app.Test(httptest.NewRequest("PATCH", "/api/admin/tickets/ticket-1/status", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, 400, resp.StatusCode)

	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "Invalid status value", body.Error)
	assert.Equal(t, "VALIDATION_FAILED", body.Code)
	assert.Empty(t, body.Errors)
}

func TestErrorEnvelopeCarriesItemizedErrors(t *testing.T) {
	app := errorApp(false, func(c *fiber.Ctx) error {
		return apperrors.NewValidationErrors([]string{
			"Monthly price cannot be negative",
			"Name is required",
		})
	})

	resp, err := app.Test(httptest.NewRequest("PATCH", "/api/admin/tickets/ticket-1/status", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, 400, resp.StatusCode)

	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Validation failed", body.Error)
	assert.Contains(t, body.Errors, "Monthly price cannot be negative")
	assert.Contains(t, body.Errors, "Name is required")
}

func TestInternalDetailHiddenOutsideDevelopment(t *testing.T) {
	app := errorApp(false, func(c *fiber.Ctx) error {
		return apperrors.NewInternalError(errors.New("dial tcp: connection refused"))
	})

	resp, err := app.Test(httptest.NewRequest("PATCH", "/api/admin/tickets/ticket-1/status", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, 500, resp.StatusCode)

	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Internal server error", body.Error)
}

func TestRequestLoggerRecordsFinalStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	app := fiber.New()
	RegisterMiddlewares(app, zap.New(core), observability.NewMetrics(), 0, false)
	app.Get("/api/orders/:id", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("Order")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/orders/order-1", nil))
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, 404, resp.StatusCode)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, 404, entries[0].ContextMap()["status"])
}
