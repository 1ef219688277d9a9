package ports

import "context"

// HealthChecker checks external dependency health.
type HealthChecker interface {
	// Ping returns nil when the dependency is reachable.
	Ping(ctx context.Context) error
	// Name identifies the dependency in health output ("postgresql", "redis").
	Name() string
}
