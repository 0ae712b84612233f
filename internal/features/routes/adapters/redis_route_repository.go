package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"nav-guidance/internal/core/cache"
	"nav-guidance/internal/features/routes/domain"
)

const routeKeyPrefix = "session_route:"

// RedisRouteRepository implements ports.RouteRepository using the cache port.
type RedisRouteRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisRouteRepository creates a new RedisRouteRepository.
// The ttl bounds how long an idle session's route is retained; 0 means no expiration.
func NewRedisRouteRepository(c cache.Cache, ttl time.Duration) *RedisRouteRepository {
	return &RedisRouteRepository{
		cache: c,
		ttl:   ttl,
	}
}

// Save stores the route for a session.
func (r *RedisRouteRepository) Save(ctx context.Context, sessionID string, route *domain.Route) error {
	data, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("failed to marshal route: %w", err)
	}

	if err := r.cache.Set(ctx, routeKeyPrefix+sessionID, data, r.ttl); err != nil {
		return fmt.Errorf("failed to save route to cache: %w", err)
	}

	return nil
}

// Get retrieves the route for a session. Returns nil, nil when no route exists.
func (r *RedisRouteRepository) Get(ctx context.Context, sessionID string) (*domain.Route, error) {
	key := routeKeyPrefix + sessionID

	data, err := r.cache.Get(ctx, key)
	if err != nil {
		if err.Error() == fmt.Sprintf("key not found: %s", key) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get route from cache: %w", err)
	}

	var route domain.Route
	if err := json.Unmarshal(data, &route); err != nil {
		return nil, fmt.Errorf("failed to unmarshal route: %w", err)
	}

	return &route, nil
}

// Delete removes the route for a session.
func (r *RedisRouteRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.cache.Delete(ctx, routeKeyPrefix+sessionID); err != nil {
		return fmt.Errorf("failed to delete route from cache: %w", err)
	}
	return nil
}
