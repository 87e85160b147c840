// Package service defines the capability surface a host process uses to
// drive this plugin, and the Fly.io implementation of it. The host calls
// named methods with flat parameter bags and receives JSON-shaped results,
// plus startup and health-check hooks.
package service

import (
	"context"
	"time"
)

// HealthStatus is the state of one subsystem as reported by a health check:
// either healthy with an observed latency, or unhealthy with a reason.
type HealthStatus struct {
	Healthy   bool    `json:"healthy"`
	LatencyMS float64 `json:"latency_ms,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

// Healthy returns a healthy status carrying the observed latency.
func Healthy(latency time.Duration) HealthStatus {
	return HealthStatus{
		Healthy:   true,
		LatencyMS: float64(latency) / float64(time.Millisecond),
	}
}

// Unhealthy returns an unhealthy status carrying the given reason.
func Unhealthy(reason string) HealthStatus {
	return HealthStatus{Reason: reason}
}

// Service is the contract between the host and a plugin. Dispatch routes a
// named method with a flat parameter bag to its implementation. OnStart is
// called once at registration to verify connectivity; a returned error is
// reported by the host but must not crash it. HealthCheck reports the state
// of each named subsystem.
type Service interface {
	Name() string
	Version() string
	Dispatch(ctx context.Context, method string, params map[string]any) (any, error)
	OnStart(ctx context.Context) error
	HealthCheck(ctx context.Context) map[string]HealthStatus
}
