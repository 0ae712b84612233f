package service

import (
	"context"
	"errors"
	"fmt"

	"nav-guidance/internal/features/routes/domain"
	"nav-guidance/internal/features/routes/ports"

	"github.com/google/uuid"
)

var (
	// ErrSessionNotFound is returned when no route is stored for a session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrNoRouteSource is returned when neither an inline route nor
	// origin/destination coordinates are supplied.
	ErrNoRouteSource = errors.New("either a route or origin and destination are required")
)

// SessionService creates navigation sessions and manages their routes.
type SessionService struct {
	repo     ports.RouteRepository
	provider ports.RouteProvider
}

// NewSessionService creates a new SessionService.
func NewSessionService(repo ports.RouteRepository, provider ports.RouteProvider) *SessionService {
	return &SessionService{
		repo:     repo,
		provider: provider,
	}
}

// CreateSession stores a route under a fresh session identifier.
// The route is either supplied inline or fetched from the directions provider
// using origin/destination coordinates.
func (s *SessionService) CreateSession(ctx context.Context, route *domain.Route, origin, destination *domain.Point) (string, *domain.Route, error) {
	if route == nil {
		if origin == nil || destination == nil {
			return "", nil, ErrNoRouteSource
		}
		fetched, err := s.provider.FetchRoute(ctx, *origin, *destination)
		if err != nil {
			return "", nil, fmt.Errorf("service: failed to fetch route: %w", err)
		}
		route = fetched
	} else if err := route.Validate(); err != nil {
		return "", nil, err
	}

	sessionID := uuid.NewString()

	if err := s.repo.Save(ctx, sessionID, route); err != nil {
		return "", nil, fmt.Errorf("service: failed to save route: %w", err)
	}

	return sessionID, route, nil
}

// GetRoute retrieves the route for a session.
func (s *SessionService) GetRoute(ctx context.Context, sessionID string) (*domain.Route, error) {
	route, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get route: %w", err)
	}
	if route == nil {
		return nil, ErrSessionNotFound
	}
	return route, nil
}

// EndSession removes the route for a session.
func (s *SessionService) EndSession(ctx context.Context, sessionID string) error {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("service: failed to end session: %w", err)
	}
	return nil
}
