package database

import (
	"context"
	"time"
)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthStatus represents the current health status of the database
type HealthStatus struct {
	Status          string        `json:"status"`
	Timestamp       time.Time     `json:"timestamp"`
	ResponseTime    time.Duration `json:"response_time"`
	OpenConnections int           `json:"open_connections"`
	InUse           int           `json:"in_use"`
	Error           string        `json:"error,omitempty"`
}

// Health pings the database and reports pool utilisation
func (m *Manager) Health(ctx context.Context) *HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	start := time.Now()
	err := m.db.PingContext(ctx)
	stats := m.db.Stats()

	status := &HealthStatus{
		Status:          StatusHealthy,
		Timestamp:       time.Now(),
		ResponseTime:    time.Since(start),
		OpenConnections: stats.OpenConnections,
		InUse:           stats.InUse,
	}

	switch {
	case err != nil:
		status.Status = StatusUnhealthy
		status.Error = err.Error()
	case stats.MaxOpenConnections > 0 && stats.InUse >= stats.MaxOpenConnections:
		status.Status = StatusDegraded
	case status.ResponseTime > time.Second:
		status.Status = StatusDegraded
	}

	return status
}
