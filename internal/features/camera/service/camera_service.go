package service

import (
	"sync"

	"nav-guidance/internal/core/logger"
	"nav-guidance/internal/features/camera/domain"
	routes "nav-guidance/internal/features/routes/domain"

	"go.uber.org/zap"
)

// CameraService keeps the tracking state for the camera and derives camera
// updates from route information. It mirrors the single-camera model of the
// map it drives: one tracking toggle and one selected mode.
type CameraService struct {
	mu       sync.Mutex
	engine   *domain.Engine
	tracking bool
	selected domain.TrackingMode

	lastZoom float64
	lastTilt float64
	hasLast  bool
}

// NewCameraService creates a CameraService with tracking enabled in GPS mode.
func NewCameraService() *CameraService {
	return &CameraService{
		engine:   domain.NewEngine(),
		tracking: true,
		selected: domain.ModeGPS,
	}
}

// SetTracking toggles whether the camera follows the traveler. Disabling
// tracking forces ModeNone regardless of the selected mode.
func (s *CameraService) SetTracking(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracking = enabled
}

// SetTrackingMode selects the mode used while tracking is enabled. The value
// is stored as given; an unrecognized mode resolves to ModeNone at use time.
func (s *CameraService) SetTrackingMode(mode domain.TrackingMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = mode
}

// Tracking reports whether the camera currently follows the traveler.
func (s *CameraService) Tracking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracking
}

// Mode resolves the effective tracking mode: ModeNone when tracking is
// disabled, the selected mode when recognized, and ModeNone with an error
// log otherwise. Resolution never fails.
func (s *CameraService) Mode() domain.TrackingMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modeLocked()
}

func (s *CameraService) modeLocked() domain.TrackingMode {
	if !s.tracking {
		return domain.ModeNone
	}
	switch s.selected {
	case domain.ModeGPS:
		return domain.ModeGPS
	case domain.ModeNorth:
		return domain.ModeNorth
	default:
		logger.Get().Error("Using unsupported camera tracking mode",
			zap.String("mode", string(s.selected)),
		)
		return domain.ModeNone
	}
}

// Update derives the camera targets for the given route information.
// Animation durations are computed from the delta against the previous
// targets; the first update has no previous targets and uses the minimum
// durations.
func (s *CameraService) Update(info domain.RouteInformation) domain.CameraUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()

	zoom := s.engine.Zoom(info)
	tilt := s.engine.Tilt(info)

	var zoomDelta, tiltDelta float64
	if s.hasLast {
		zoomDelta = zoom - s.lastZoom
		tiltDelta = tilt - s.lastTilt
	}

	update := domain.CameraUpdate{
		Zoom:           zoom,
		ZoomDurationMs: domain.AnimationDuration(zoomDelta, domain.MinZoomAdjustmentMs, domain.MaxAdjustmentMs),
		Tilt:           float32(tilt),
		TiltDurationMs: domain.AnimationDuration(tiltDelta, domain.MinTiltAdjustmentMs, domain.MaxAdjustmentMs),
		Mode:           s.modeLocked(),
	}

	s.lastZoom = zoom
	s.lastTilt = tilt
	s.hasLast = true

	return update
}

// ResetPosition re-enables tracking and re-derives the camera targets from
// the given route information, forgetting the previous targets so the next
// transition starts fresh.
func (s *CameraService) ResetPosition(info domain.RouteInformation) domain.CameraUpdate {
	s.mu.Lock()
	s.tracking = true
	s.hasLast = false
	s.mu.Unlock()

	return s.Update(info)
}

// RouteOverview disables tracking and returns the route polyline points for
// overview framing. Fewer than two points means there is nothing to frame
// and an empty list is returned.
func (s *CameraService) RouteOverview(info domain.RouteInformation) []routes.Point {
	s.mu.Lock()
	s.tracking = false
	s.mu.Unlock()

	points := s.engine.Overview(info)
	if len(points) < 2 {
		return nil
	}
	return points
}
