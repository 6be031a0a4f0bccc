package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	promMiddleware, err := NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(promMiddleware.Handler())
	app.Get("/events/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	app.Get("/metrics", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	t.Run("counts requests with route pattern", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/events/abc-123", nil)
		_, err := app.Test(req)
		require.NoError(t, err)

		count := testutil.ToFloat64(promMiddleware.requestCount.WithLabelValues("GET", "/events/:id", "200"))
		assert.Equal(t, float64(1), count)
	})

	t.Run("excludes metrics endpoint", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		_, err := app.Test(req)
		require.NoError(t, err)

		count := testutil.ToFloat64(promMiddleware.requestCount.WithLabelValues("GET", "/metrics", "200"))
		assert.Equal(t, float64(0), count)
	})

	t.Run("observes request duration", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/events/def-456", nil)
		_, err := app.Test(req)
		require.NoError(t, err)

		observed := testutil.CollectAndCount(promMiddleware.requestDuration)
		assert.GreaterOrEqual(t, observed, 1)
	})
}
