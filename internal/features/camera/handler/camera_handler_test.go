package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nav-guidance/internal/features/camera/service"
	routedomain "nav-guidance/internal/features/routes/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRouteRepository is an in-memory RouteRepository for handler tests.
type memoryRouteRepository struct {
	routes map[string]*routedomain.Route
}

func (m *memoryRouteRepository) Save(_ context.Context, sessionID string, route *routedomain.Route) error {
	m.routes[sessionID] = route
	return nil
}

func (m *memoryRouteRepository) Get(_ context.Context, sessionID string) (*routedomain.Route, error) {
	return m.routes[sessionID], nil
}

func (m *memoryRouteRepository) Delete(_ context.Context, sessionID string) error {
	delete(m.routes, sessionID)
	return nil
}

func newCameraApp() (*fiber.App, *service.CameraService) {
	camera := service.NewCameraService()
	routes := &memoryRouteRepository{routes: map[string]*routedomain.Route{
		"session-1": {
			Distance: 1000,
			Duration: 200,
			Geometry: []routedomain.Point{{Lon: 10.0, Lat: 59.0}, {Lon: 10.1, Lat: 59.1}},
			Legs: []routedomain.Leg{
				{Distance: 1000, Duration: 200, Steps: []routedomain.Step{{Distance: 1000, Duration: 200}}},
			},
		},
	}}

	h := NewCameraHandler(camera, routes)

	app := fiber.New()
	app.Put("/camera/tracking", h.SetTracking)
	app.Get("/sessions/:id/camera/overview", h.GetOverview)
	return app, camera
}

func trackingRequest(t *testing.T, app *fiber.App, body TrackingRequest) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPut, "/camera/tracking", &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

// TestSetTracking_ModeNorth verifies the selected mode is applied and echoed.
func TestSetTracking_ModeNorth(t *testing.T) {
	app, camera := newCameraApp()

	resp := trackingRequest(t, app, TrackingRequest{Enabled: true, Mode: "north"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	assert.Equal(t, "NORTH", parsed["mode"])
	assert.True(t, camera.Tracking())
}

// TestSetTracking_Disabled verifies disabling tracking reports mode NONE.
func TestSetTracking_Disabled(t *testing.T) {
	app, camera := newCameraApp()

	resp := trackingRequest(t, app, TrackingRequest{Enabled: false})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	assert.Equal(t, "NONE", parsed["mode"])
	assert.False(t, camera.Tracking())
}

// TestSetTracking_UnknownMode verifies validation rejects other mode names.
func TestSetTracking_UnknownMode(t *testing.T) {
	app, _ := newCameraApp()

	resp := trackingRequest(t, app, TrackingRequest{Enabled: true, Mode: "satellite"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestGetOverview verifies the route points are returned and tracking stops.
func TestGetOverview(t *testing.T) {
	app, camera := newCameraApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/sessions/session-1/camera/overview", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed struct {
		Points []routedomain.Point `json:"points"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	assert.Len(t, parsed.Points, 2)
	assert.False(t, camera.Tracking())
}

// TestGetOverview_UnknownSession verifies 404 for sessions without a route.
func TestGetOverview_UnknownSession(t *testing.T) {
	app, _ := newCameraApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/sessions/unknown/camera/overview", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
