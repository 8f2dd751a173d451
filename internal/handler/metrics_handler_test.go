package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/research-admin-gateway/internal/service"
	"github.com/noah-isme/research-admin-gateway/pkg/jobs"
)

type notificationStatsStub struct{}

func (notificationStatsStub) Stats() jobs.Stats { return jobs.Stats{Processed: 4, Retried: 1} }

func TestReadyReportsFailingDependency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewMetricsHandler(service.NewMetricsService(), nil, map[string]ReadinessCheck{
		"redis":  func(context.Context) error { return errors.New("connection refused") },
		"ledger": func(context.Context) error { return nil },
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)
	h.Ready(c)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "connection refused", body.Checks["redis"])
	assert.Equal(t, "ok", body.Checks["ledger"])
}

func TestSummaryIncludesNotificationQueue(t *testing.T) {
	metrics := service.NewMetricsService()
	metrics.RecordBatch("approve", 2, 1)
	h := NewMetricsHandler(metrics, notificationStatsStub{}, nil)

	c, w := adminContext(http.MethodGet, "/metrics/summary", nil)
	h.Summary(c)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	data := env.Data.(map[string]interface{})
	gateway := data["gateway"].(map[string]interface{})
	assert.EqualValues(t, 2, gateway["batchItemsSucceeded"])
	assert.EqualValues(t, 1, gateway["batchItemsFailed"])
	assert.Contains(t, data, "notifications")
}
