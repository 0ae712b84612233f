package handler

import (
	"errors"
	"net/http"

	"nav-guidance/internal/core/logger"
	cameradomain "nav-guidance/internal/features/camera/domain"
	cameraservice "nav-guidance/internal/features/camera/service"
	"nav-guidance/internal/features/guidance/domain"
	"nav-guidance/internal/features/guidance/ports"
	"nav-guidance/internal/features/guidance/service"
	routedomain "nav-guidance/internal/features/routes/domain"
	routeports "nav-guidance/internal/features/routes/ports"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProgressHandler handles per-session progress updates: it rebuilds the
// snapshot pair, runs milestone evaluation, derives camera targets and
// persists the snapshot for the next tick.
type ProgressHandler struct {
	evaluator *service.Evaluator
	snapshots ports.SnapshotStore
	routes    routeports.RouteRepository
	camera    *cameraservice.CameraService
	validate  *validator.Validate
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(evaluator *service.Evaluator, snapshots ports.SnapshotStore, routes routeports.RouteRepository, camera *cameraservice.CameraService) *ProgressHandler {
	return &ProgressHandler{
		evaluator: evaluator,
		snapshots: snapshots,
		routes:    routes,
		camera:    camera,
		validate:  validator.New(),
	}
}

// LocationRequest is the raw location fix in a progress update.
type LocationRequest struct {
	Lat     float64 `json:"lat" validate:"min=-90,max=90"`
	Lon     float64 `json:"lon" validate:"min=-180,max=180"`
	Bearing float64 `json:"bearing" validate:"min=0,max=360"`
	Speed   float64 `json:"speed" validate:"min=0"`
}

// ProgressRequest represents one location-driven progress update.
type ProgressRequest struct {
	LegIndex              int              `json:"leg_index" validate:"min=0"`
	StepIndex             int              `json:"step_index" validate:"min=0"`
	StepDistanceRemaining float64          `json:"step_distance_remaining" validate:"min=0"`
	StepDurationRemaining float64          `json:"step_duration_remaining" validate:"min=0"`
	Location              *LocationRequest `json:"location,omitempty"`
}

// FiredMilestone is one fired milestone in a progress response.
type FiredMilestone struct {
	Identifier  int    `json:"identifier"`
	Instruction string `json:"instruction,omitempty"`
}

// ProgressResponse represents the outcome of one progress update.
type ProgressResponse struct {
	Fired  []FiredMilestone          `json:"fired"`
	Camera cameradomain.CameraUpdate `json:"camera"`
}

// UpdateProgress handles POST /sessions/:id/progress.
// @Summary Submit a progress update
// @Description Evaluates all registered milestones against the previous and current snapshots and derives camera targets.
// @Tags Guidance
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param progress body ProgressRequest true "Progress update"
// @Success 200 {object} ProgressResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /sessions/{id}/progress [post]
func (h *ProgressHandler) UpdateProgress(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	var req ProgressRequest
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

	ctx := c.Context()

	route, err := h.routes.Get(ctx, sessionID)
	if err != nil {
		logger.Get().Error("Failed to load route", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	if route == nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}

	current, err := domain.NewProgressSnapshot(route, req.LegIndex, req.StepIndex,
		req.StepDistanceRemaining, req.StepDurationRemaining, toDomainLocation(req.Location))
	if err != nil {
		if errors.Is(err, domain.ErrIndexOutOfRange) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		logger.Get().Error("Failed to build snapshot", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	previous, err := h.snapshots.Last(ctx, sessionID)
	if err != nil {
		logger.Get().Error("Failed to load previous snapshot", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	if previous != nil {
		// Persisted snapshots carry only comparison fields; re-attach the
		// route so property extraction sees the full picture.
		previous.Route = route
	}

	fired := h.evaluator.OnProgressUpdate(previous, current)

	update := h.camera.Update(cameradomain.FromProgress(&current))

	if err := h.snapshots.Save(ctx, sessionID, current); err != nil {
		logger.Get().Error("Failed to save snapshot", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	resp := ProgressResponse{
		Fired:  make([]FiredMilestone, 0, len(fired)),
		Camera: update,
	}
	for _, occurrence := range fired {
		resp.Fired = append(resp.Fired, FiredMilestone{
			Identifier:  occurrence.Identifier,
			Instruction: occurrence.Instruction,
		})
	}

	return c.Status(http.StatusOK).JSON(resp)
}

func toDomainLocation(req *LocationRequest) *routedomain.Location {
	if req == nil {
		return nil
	}
	return &routedomain.Location{
		Lat:     req.Lat,
		Lon:     req.Lon,
		Bearing: req.Bearing,
		Speed:   req.Speed,
	}
}
