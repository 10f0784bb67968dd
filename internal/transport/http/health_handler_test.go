package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylelens/internal/services"
)

type stubHealthService struct {
	ready bool
}

func (s *stubHealthService) Health(ctx context.Context) *services.HealthStatus {
	return &services.HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "test",
		Datasets:  2,
	}
}

func (s *stubHealthService) Ready(ctx context.Context) bool { return s.ready }

func TestHealthz(t *testing.T) {
	h := NewHealthHandler(&stubHealthService{ready: true}, slog.Default())
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var status services.HealthStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, 2, status.Datasets)
}

func TestReadyz(t *testing.T) {
	h := NewHealthHandler(&stubHealthService{ready: true}, slog.Default())
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	h = NewHealthHandler(&stubHealthService{ready: false}, slog.Default())
	w = httptest.NewRecorder()
	h.Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
