package metrics

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveStore(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveStore("memory", "put", time.Now(), nil)
	m.ObserveStore("memory", "put", time.Now(), errors.New("boom"))
	m.ObserveStore("memory", "put", time.Now(), nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.storeOps.WithLabelValues("memory", "put", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeOps.WithLabelValues("memory", "put", OutcomeError)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveStore("memory", "put", time.Now(), nil)
	m.MalformedSkipped("memory")
}

func TestMiddlewareLabelsRoutePattern(t *testing.T) {
	m := New(prometheus.NewRegistry())
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/taxonomy/v1/:section", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/taxonomy/v1/blood", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.httpRequests.WithLabelValues("GET", "/api/taxonomy/v1/:section", "204")))
}
