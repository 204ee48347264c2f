// Package healthcheck provides health check functionality following the
// Health Check API pattern for cloud-native applications.
package healthcheck

import (
	"context"
	"sync"
	"time"
)

// Status represents the health status.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// Check is the outcome of a single named probe.
type Check struct {
	Name        string        `json:"name"`
	Status      Status        `json:"status"`
	Message     string        `json:"message,omitempty"`
	LastChecked time.Time     `json:"last_checked"`
	Duration    time.Duration `json:"duration_ms"`
}

// Response aggregates all probes. Status is unhealthy if any check is.
type Response struct {
	Status    Status    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Checks    []Check   `json:"checks"`
}

// Checker defines the interface for health checks.
type Checker interface {
	Check(ctx context.Context) Check
}

// CheckFunc adapts a function to the Checker interface.
type CheckFunc func(ctx context.Context) Check

func (f CheckFunc) Check(ctx context.Context) Check {
	return f(ctx)
}

// HealthCheck runs registered probes on demand.
type HealthCheck struct {
	version string

	mu       sync.RWMutex
	names    []string
	checkers map[string]Checker
}

// New creates a health check aggregate reporting the given version.
func New(version string) *HealthCheck {
	return &HealthCheck{
		version:  version,
		checkers: make(map[string]Checker),
	}
}

// Register adds a named probe. Registration order is report order.
func (h *HealthCheck) Register(name string, checker Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.checkers[name]; !exists {
		h.names = append(h.names, name)
	}
	h.checkers[name] = checker
}

// Run executes all probes and aggregates the result.
func (h *HealthCheck) Run(ctx context.Context) Response {
	h.mu.RLock()
	names := make([]string, len(h.names))
	copy(names, h.names)
	checkers := make(map[string]Checker, len(h.checkers))
	for k, v := range h.checkers {
		checkers[k] = v
	}
	h.mu.RUnlock()

	resp := Response{
		Status:    StatusHealthy,
		Version:   h.version,
		Timestamp: time.Now(),
	}
	for _, name := range names {
		start := time.Now()
		check := checkers[name].Check(ctx)
		check.Name = name
		check.LastChecked = start
		check.Duration = time.Since(start)
		if check.Status == "" {
			check.Status = StatusHealthy
		}
		if check.Status != StatusHealthy {
			resp.Status = StatusUnhealthy
		}
		resp.Checks = append(resp.Checks, check)
	}
	return resp
}

// Healthy is a convenience successful check result.
func Healthy(message string) Check {
	return Check{Status: StatusHealthy, Message: message}
}

// Unhealthy is a convenience failed check result.
func Unhealthy(message string) Check {
	return Check{Status: StatusUnhealthy, Message: message}
}
