package domain

import (
	"math"

	guidance "nav-guidance/internal/features/guidance/domain"
	routes "nav-guidance/internal/features/routes/domain"
)

// TrackingMode is the camera behavior while following the traveler.
type TrackingMode string

const (
	// ModeGPS tracks the traveler with bearing provided by the location update.
	ModeGPS TrackingMode = "GPS"
	// ModeNorth tracks the traveler with bearing fixed to north.
	ModeNorth TrackingMode = "NORTH"
	// ModeNone stops camera tracking. Not user-selectable: it is the forced
	// state when tracking is disabled or a mode is unrecognized.
	ModeNone TrackingMode = "NONE"
)

// Animation duration bounds for zoom/tilt transitions, in milliseconds.
const (
	// MinZoomAdjustmentMs is the floor for zoom transitions. A zero delta
	// still animates for this long rather than snapping.
	MinZoomAdjustmentMs = 300
	// MinTiltAdjustmentMs is the floor for tilt transitions.
	MinTiltAdjustmentMs = 750
	// MaxAdjustmentMs caps any transition so large deltas do not produce
	// drawn-out camera jumps.
	MaxAdjustmentMs = 1500
)

// Zoom and tilt presets for the dynamic engine.
const (
	minZoom = 12.0
	maxZoom = 16.5

	defaultZoom = 15.0
	defaultTilt = 50.0
)

// AnimationDuration computes the duration in milliseconds for a camera value
// transition: 500ms per unit of delta, clamped to [minMs, maxMs]. A delta of
// 0 yields minMs, never 0.
func AnimationDuration(delta float64, minMs, maxMs int64) int64 {
	scaled := 500 * math.Abs(delta)
	return int64(clamp(scaled, float64(minMs), float64(maxMs)))
}

func clamp(value, low, high float64) float64 {
	return math.Max(low, math.Min(value, high))
}

// RouteInformation is the minimal bundle used to derive camera parameters.
// By construction of the calling site exactly one of the three is present:
// a full route (start of navigation), a raw location (resume), or route
// progress (per-update tracking).
type RouteInformation struct {
	// Route is the full route, used for overview framing.
	Route *routes.Route
	// Location is a raw location fix.
	Location *routes.Location
	// Progress is the current route progress snapshot.
	Progress *guidance.ProgressSnapshot
}

// FromRoute builds route information for the start of navigation.
func FromRoute(route *routes.Route) RouteInformation {
	return RouteInformation{Route: route}
}

// FromLocation builds route information for a bare location fix.
func FromLocation(loc *routes.Location) RouteInformation {
	return RouteInformation{Location: loc}
}

// FromProgress builds route information for a progress update.
func FromProgress(progress *guidance.ProgressSnapshot) RouteInformation {
	return RouteInformation{Progress: progress}
}

// CameraUpdate is the derived camera target for one update. Zoom and tilt
// carry their own animation durations; the consumer issues the actual
// animation commands.
type CameraUpdate struct {
	// Zoom is the target zoom level.
	Zoom float64 `json:"zoom"`
	// ZoomDurationMs is the animation duration for the zoom transition.
	ZoomDurationMs int64 `json:"zoom_duration_ms"`
	// Tilt is the target tilt in degrees.
	Tilt float32 `json:"tilt"`
	// TiltDurationMs is the animation duration for the tilt transition.
	TiltDurationMs int64 `json:"tilt_duration_ms"`
	// Mode is the tracking mode in effect for this update.
	Mode TrackingMode `json:"mode"`
}

// Engine derives zoom and tilt targets from route information. Derivation is
// pure arithmetic over the snapshot; no state is kept between calls.
type Engine struct{}

// NewEngine creates a camera engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Zoom returns the target zoom level. With progress available the camera
// zooms in as the next maneuver approaches; otherwise a preset is used.
func (e *Engine) Zoom(info RouteInformation) float64 {
	if info.Progress == nil {
		return defaultZoom
	}

	d := info.Progress.StepDistanceRemaining
	var zoom float64
	switch {
	case d > 500:
		zoom = 14
	case d > 100:
		zoom = 15.5
	default:
		zoom = maxZoom
	}
	return clamp(zoom, minZoom, maxZoom)
}

// Tilt returns the target tilt in degrees. Far from the maneuver the camera
// stays low over the horizon; near it the view flattens for the turn.
func (e *Engine) Tilt(info RouteInformation) float64 {
	if info.Progress == nil {
		return defaultTilt
	}

	d := info.Progress.StepDistanceRemaining
	switch {
	case d > 200:
		return 60
	case d > 60:
		return 45
	default:
		return 35
	}
}

// Overview returns the route polyline points for overview framing. An empty
// list means there is nothing to frame.
func (e *Engine) Overview(info RouteInformation) []routes.Point {
	route := info.Route
	if route == nil && info.Progress != nil {
		route = info.Progress.Route
	}
	if route == nil {
		return nil
	}
	return route.Geometry
}
