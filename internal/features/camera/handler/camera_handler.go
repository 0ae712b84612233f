package handler

import (
	"net/http"
	"strings"

	"nav-guidance/internal/core/logger"
	"nav-guidance/internal/features/camera/domain"
	"nav-guidance/internal/features/camera/service"
	routeports "nav-guidance/internal/features/routes/ports"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CameraHandler handles HTTP requests for camera tracking and overview.
type CameraHandler struct {
	camera   *service.CameraService
	routes   routeports.RouteRepository
	validate *validator.Validate
}

// NewCameraHandler creates a new CameraHandler.
func NewCameraHandler(camera *service.CameraService, routes routeports.RouteRepository) *CameraHandler {
	return &CameraHandler{
		camera:   camera,
		routes:   routes,
		validate: validator.New(),
	}
}

// TrackingRequest represents the request body for updating camera tracking.
type TrackingRequest struct {
	Enabled bool `json:"enabled"`
	// Mode is the tracking mode to use while enabled: "gps" or "north".
	Mode string `json:"mode" validate:"omitempty,oneof=gps north"`
}

// SetTracking handles PUT /camera/tracking.
// @Summary Update camera tracking
// @Description Enables or disables camera tracking and selects the tracking mode.
// @Tags Camera
// @Accept json
// @Produce json
// @Param tracking body TrackingRequest true "Tracking settings"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /camera/tracking [put]
func (h *CameraHandler) SetTracking(c *fiber.Ctx) error {
	var req TrackingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Mode must be gps or north",
		})
	}

	h.camera.SetTracking(req.Enabled)
	if req.Mode != "" {
		switch strings.ToLower(req.Mode) {
		case "gps":
			h.camera.SetTrackingMode(domain.ModeGPS)
		case "north":
			h.camera.SetTrackingMode(domain.ModeNorth)
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"mode": string(h.camera.Mode()),
	})
}

// GetOverview handles GET /sessions/:id/camera/overview.
// @Summary Get route overview points
// @Description Returns the session route's polyline points for overview framing. Disables tracking.
// @Tags Camera
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /sessions/{id}/camera/overview [get]
func (h *CameraHandler) GetOverview(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	ctx := c.Context()
	route, err := h.routes.Get(ctx, sessionID)
	if err != nil {
		logger.Get().Error("Failed to load route for overview", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	if route == nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}

	points := h.camera.RouteOverview(domain.FromRoute(route))

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"points": points,
	})
}
