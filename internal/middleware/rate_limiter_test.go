package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterRejectsOverLimit(t *testing.T) {
	app := fiber.New()
	app.Use(RateLimiter(2, time.Minute))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestRateLimiterSkipsExemptRoutes(t *testing.T) {
	app := fiber.New()
	app.Use(RateLimiter(1, time.Minute, "GET /api/results/view", "PUT /api/job-description"))
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/api/results/view", ok)
	app.Put("/api/job-description", ok)
	app.Post("/api/queue", ok)

	for i := 0; i < 90; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/results/view", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, "poll %d", i)

		resp, err = app.Test(httptest.NewRequest(http.MethodPut, "/api/job-description", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, "edit %d", i)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/queue", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/api/queue", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
