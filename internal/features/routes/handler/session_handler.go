package handler

import (
	"errors"
	"net/http"

	"nav-guidance/internal/core/logger"
	"nav-guidance/internal/features/routes/domain"
	"nav-guidance/internal/features/routes/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SessionHandler handles HTTP requests for navigation sessions.
type SessionHandler struct {
	service  *service.SessionService
	validate *validator.Validate
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(svc *service.SessionService) *SessionHandler {
	return &SessionHandler{
		service:  svc,
		validate: validator.New(),
	}
}

// PointRequest is a coordinate pair in a session request.
type PointRequest struct {
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
}

// CreateSessionRequest represents the request body for creating a session.
// Either an inline route or an origin/destination pair must be supplied.
type CreateSessionRequest struct {
	Route       *domain.Route `json:"route,omitempty"`
	Origin      *PointRequest `json:"origin,omitempty"`
	Destination *PointRequest `json:"destination,omitempty"`
}

// CreateSessionResponse represents the response for a created session.
type CreateSessionResponse struct {
	SessionID string        `json:"session_id"`
	Route     *domain.Route `json:"route"`
}

// CreateSession handles POST /sessions.
// @Summary Create a navigation session
// @Description Creates a session from an inline route or by fetching a route between origin and destination.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param session body CreateSessionRequest true "Session details"
// @Success 201 {object} CreateSessionResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var origin, destination *domain.Point
	if req.Origin != nil {
		origin = &domain.Point{Lon: req.Origin.Lon, Lat: req.Origin.Lat}
	}
	if req.Destination != nil {
		destination = &domain.Point{Lon: req.Destination.Lon, Lat: req.Destination.Lat}
	}

	ctx := c.Context()
	sessionID, route, err := h.service.CreateSession(ctx, req.Route, origin, destination)
	if err != nil {
		if errors.Is(err, service.ErrNoRouteSource) ||
			errors.Is(err, domain.ErrEmptyRoute) ||
			errors.Is(err, domain.ErrEmptyLeg) ||
			errors.Is(err, domain.ErrNoGeometry) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		logger.Get().Error("Failed to create session", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusCreated).JSON(CreateSessionResponse{
		SessionID: sessionID,
		Route:     route,
	})
}

// GetRoute handles GET /sessions/:id/route.
// @Summary Get a session's route
// @Description Retrieves the route stored for a session.
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} domain.Route
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /sessions/{id}/route [get]
func (h *SessionHandler) GetRoute(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	ctx := c.Context()
	route, err := h.service.GetRoute(ctx, sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": "Session not found",
			})
		}
		logger.Get().Error("Failed to get route", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(route)
}

// EndSession handles DELETE /sessions/:id.
// @Summary End a navigation session
// @Description Removes the route stored for a session.
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /sessions/{id} [delete]
func (h *SessionHandler) EndSession(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	ctx := c.Context()
	if err := h.service.EndSession(ctx, sessionID); err != nil {
		logger.Get().Error("Failed to end session", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Session ended",
	})
}
