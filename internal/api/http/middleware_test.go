package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	httptransport "github.com/campus-market/marketplace-service/internal/api/http"
	"github.com/campus-market/marketplace-service/internal/observability"
	apperrors "github.com/campus-market/marketplace-service/pkg/util/errorutil"
)

func newObservedApp(t *testing.T) (*fiber.App, *observer.ObservedLogs, *observability.Metrics) {
	t.Helper()

	core, logs := observer.New(zap.InfoLevel)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, zap.New(core), metrics, 0)

	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return apperrors.NewValidationError("bad input", nil)
	})
	return app, logs, metrics
}

func TestRequestLoggerRecordsFailureStatus(t *testing.T) {
	app, logs, metrics := newObservedApp(t)

	req := httptest.NewRequest(http.MethodGet, "/invalid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(http.StatusBadRequest), fields["status"])

	assert.Equal(t, int64(1), metrics.RequestCount("/invalid", http.MethodGet, http.StatusBadRequest))
	assert.Zero(t, metrics.RequestCount("/invalid", http.MethodGet, http.StatusOK))
}

func TestRequestLoggerRecordsSuccessStatus(t *testing.T) {
	app, logs, metrics := newObservedApp(t)

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])
	assert.Equal(t, int64(1), metrics.RequestCount("/ok", http.MethodGet, http.StatusOK))
}
