package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"nav-guidance/internal/features/routes/domain"
	"nav-guidance/internal/features/routes/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRouteRepository is an in-memory RouteRepository for handler tests.
type mockRouteRepository struct {
	routes map[string]*domain.Route
}

func newMockRouteRepository() *mockRouteRepository {
	return &mockRouteRepository{routes: make(map[string]*domain.Route)}
}

func (m *mockRouteRepository) Save(_ context.Context, sessionID string, route *domain.Route) error {
	m.routes[sessionID] = route
	return nil
}

func (m *mockRouteRepository) Get(_ context.Context, sessionID string) (*domain.Route, error) {
	return m.routes[sessionID], nil
}

func (m *mockRouteRepository) Delete(_ context.Context, sessionID string) error {
	delete(m.routes, sessionID)
	return nil
}

// mockRouteProvider returns a canned route for handler tests.
type mockRouteProvider struct {
	route *domain.Route
}

func (m *mockRouteProvider) FetchRoute(_ context.Context, _, _ domain.Point) (*domain.Route, error) {
	return m.route, nil
}

func handlerRoute() *domain.Route {
	return &domain.Route{
		Distance: 1000,
		Duration: 200,
		Geometry: []domain.Point{{Lon: 10.0, Lat: 59.0}, {Lon: 10.1, Lat: 59.1}},
		Legs: []domain.Leg{
			{
				Distance: 1000,
				Duration: 200,
				Steps: []domain.Step{
					{Distance: 600, Duration: 120, Instruction: "Head north"},
					{Distance: 400, Duration: 80, Instruction: "You have arrived"},
				},
			},
		},
	}
}

func newTestApp(repo *mockRouteRepository, provider *mockRouteProvider) *fiber.App {
	svc := service.NewSessionService(repo, provider)
	h := NewSessionHandler(svc)

	app := fiber.New()
	app.Post("/sessions", h.CreateSession)
	app.Get("/sessions/:id/route", h.GetRoute)
	app.Delete("/sessions/:id", h.EndSession)
	return app
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// TestCreateSession_Inline verifies the 201 happy path with an inline route.
func TestCreateSession_Inline(t *testing.T) {
	repo := newMockRouteRepository()
	app := newTestApp(repo, &mockRouteProvider{})

	req := jsonRequest(http.MethodPost, "/sessions", CreateSessionRequest{Route: handlerRoute()})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created CreateSessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotEmpty(t, created.SessionID)
	require.NotNil(t, created.Route)
	assert.Equal(t, 1000.0, created.Route.Distance)
	assert.Contains(t, repo.routes, created.SessionID)
}

// TestCreateSession_FromCoordinates verifies origin/destination sessions use
// the directions provider.
func TestCreateSession_FromCoordinates(t *testing.T) {
	repo := newMockRouteRepository()
	app := newTestApp(repo, &mockRouteProvider{route: handlerRoute()})

	body := CreateSessionRequest{
		Origin:      &PointRequest{Lon: 10.0, Lat: 59.0},
		Destination: &PointRequest{Lon: 10.1, Lat: 59.1},
	}
	resp, err := app.Test(jsonRequest(http.MethodPost, "/sessions", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

// TestCreateSession_NoRouteSource verifies 400 when neither a route nor
// coordinates are supplied.
func TestCreateSession_NoRouteSource(t *testing.T) {
	app := newTestApp(newMockRouteRepository(), &mockRouteProvider{})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/sessions", CreateSessionRequest{}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestCreateSession_InvalidRoute verifies 400 for a route without legs.
func TestCreateSession_InvalidRoute(t *testing.T) {
	app := newTestApp(newMockRouteRepository(), &mockRouteProvider{})

	body := CreateSessionRequest{Route: &domain.Route{Geometry: []domain.Point{{}, {}}}}
	resp, err := app.Test(jsonRequest(http.MethodPost, "/sessions", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestCreateSession_InvalidBody verifies 400 for malformed JSON.
func TestCreateSession_InvalidBody(t *testing.T) {
	app := newTestApp(newMockRouteRepository(), &mockRouteProvider{})

	req := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewBufferString("not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestCreateSession_CoordinatesOutOfRange verifies validation of lat/lon bounds.
func TestCreateSession_CoordinatesOutOfRange(t *testing.T) {
	app := newTestApp(newMockRouteRepository(), &mockRouteProvider{route: handlerRoute()})

	body := CreateSessionRequest{
		Origin:      &PointRequest{Lon: 200.0, Lat: 59.0},
		Destination: &PointRequest{Lon: 10.1, Lat: 59.1},
	}
	resp, err := app.Test(jsonRequest(http.MethodPost, "/sessions", body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestGetRoute_Handler verifies route retrieval and 404 for unknown sessions.
func TestGetRoute_Handler(t *testing.T) {
	repo := newMockRouteRepository()
	repo.routes["session-1"] = handlerRoute()
	app := newTestApp(repo, &mockRouteProvider{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/sessions/session-1/route", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var route domain.Route
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&route))
	assert.Equal(t, 1000.0, route.Distance)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/sessions/unknown/route", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// TestEndSession_Handler verifies the session's route is removed.
func TestEndSession_Handler(t *testing.T) {
	repo := newMockRouteRepository()
	repo.routes["session-1"] = handlerRoute()
	app := newTestApp(repo, &mockRouteProvider{})

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/sessions/session-1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Session ended")
	assert.NotContains(t, repo.routes, "session-1")
}
