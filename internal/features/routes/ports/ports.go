package ports

import (
	"context"

	"nav-guidance/internal/features/routes/domain"
)

// RouteProvider defines the secondary port for fetching routes from a
// directions backend.
type RouteProvider interface {
	// FetchRoute requests a route between origin and destination.
	FetchRoute(ctx context.Context, origin, destination domain.Point) (*domain.Route, error)
}

// RouteRepository defines the secondary port for per-session route storage.
type RouteRepository interface {
	// Save stores the route for a session.
	Save(ctx context.Context, sessionID string, route *domain.Route) error
	// Get retrieves the route for a session. Returns nil, nil when no route exists.
	Get(ctx context.Context, sessionID string) (*domain.Route, error)
	// Delete removes the route for a session.
	Delete(ctx context.Context, sessionID string) error
}
