package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"stylelens/internal/infrastructure"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	startTime time.Time
	dashboard *DashboardService
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Uptime    string                 `json:"uptime"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Datasets  int                    `json:"datasets"`
}

// NewHealthService creates a health service bound to the dashboard registry.
func NewHealthService(version string, dashboard *DashboardService, logger *slog.Logger) *HealthService {
	return &HealthService{
		version:   version,
		startTime: time.Now(),
		dashboard: dashboard,
		logger:    infrastructure.WithComponent(logger, "health_service"),
	}
}

// Health reports liveness together with basic runtime information.
func (s *HealthService) Health(ctx context.Context) *HealthStatus {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Runtime: map[string]interface{}{
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
			"alloc_mb":   fmt.Sprintf("%.1f", float64(mem.Alloc)/1024/1024),
			"num_cpu":    runtime.NumCPU(),
		},
		Datasets: len(s.dashboard.Datasets(ctx)),
	}
}

// Ready reports whether the service can accept traffic. The dashboard holds
// everything in memory, so readiness only requires the registry to respond.
func (s *HealthService) Ready(ctx context.Context) bool {
	_ = s.dashboard.Datasets(ctx)
	return true
}
