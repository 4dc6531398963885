package models

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(t *testing.T, status int, err error) ErrorResponse {
	t.Helper()

	app := fiber.New()
	app.Get("/fail", func(c *fiber.Ctx) error {
		return RespondWithError(c, status, err)
	})

	resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.NoError(t, reqErr)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, status, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestRespondWithError_InternalHidesCause(t *testing.T) {
	cause := errors.New(`pq: password authentication failed for user "gems"`)
	body := respond(t, http.StatusInternalServerError, NewInternalError(cause))

	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.Equal(t, "Internal server error", body.Error)
	assert.Empty(t, body.Details, "wrapped cause must not reach the client")
}

func TestRespondWithError_ValidationMessagePassesThrough(t *testing.T) {
	body := respond(t, http.StatusBadRequest, NewValidationError("rating must be between 1 and 5"))

	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	assert.Equal(t, "rating must be between 1 and 5", body.Error)
	assert.Empty(t, body.Details)
}

func TestRespondWithError_PlainError(t *testing.T) {
	body := respond(t, http.StatusBadGateway, errors.New("upstream unavailable"))

	assert.Equal(t, "upstream unavailable", body.Error)
	assert.Empty(t, body.Code)
}
