package domain

import (
	"errors"
	"fmt"

	routes "nav-guidance/internal/features/routes/domain"
)

var (
	// ErrNilRoute is returned when a snapshot is built without a route.
	ErrNilRoute = errors.New("progress snapshot requires a route")
	// ErrIndexOutOfRange is returned when leg or step indices do not exist on the route.
	ErrIndexOutOfRange = errors.New("leg or step index out of range")
)

// ProgressSnapshot is an immutable view of route state at one instant.
// Two snapshots (previous, current) are supplied together to every milestone
// evaluation; previous is absent on the very first update.
//
// A snapshot is treated as read-only once built. The Route pointer is not
// serialized; persisted snapshots carry only the comparison fields and are
// re-attached to their session's route on load.
type ProgressSnapshot struct {
	// Route is the route being traveled.
	Route *routes.Route `json:"-"`
	// LegIndex is the index of the current leg.
	LegIndex int `json:"leg_index"`
	// StepIndex is the index of the current step within the leg.
	StepIndex int `json:"step_index"`
	// StepDistanceRemaining is the distance left on the current step, in meters.
	StepDistanceRemaining float64 `json:"step_distance_remaining"`
	// StepDurationRemaining is the expected time left on the current step, in seconds.
	StepDurationRemaining float64 `json:"step_duration_remaining"`
	// LegDistanceRemaining is the distance left on the current leg, in meters.
	LegDistanceRemaining float64 `json:"leg_distance_remaining"`
	// UpcomingStep is the next step of the leg. Nil on the final step.
	UpcomingStep *routes.Step `json:"upcoming_step,omitempty"`
	// Location is the raw location fix behind this snapshot, when available.
	Location *routes.Location `json:"location,omitempty"`
}

// NewProgressSnapshot builds a snapshot of progress along route at the given
// leg/step position. The leg distance remaining and upcoming step are derived
// from the route; loc may be nil when no raw fix is available.
func NewProgressSnapshot(route *routes.Route, legIndex, stepIndex int, stepDistanceRemaining, stepDurationRemaining float64, loc *routes.Location) (ProgressSnapshot, error) {
	if route == nil {
		return ProgressSnapshot{}, ErrNilRoute
	}
	if legIndex < 0 || legIndex >= len(route.Legs) {
		return ProgressSnapshot{}, fmt.Errorf("%w: leg %d of %d", ErrIndexOutOfRange, legIndex, len(route.Legs))
	}
	leg := route.Legs[legIndex]
	if stepIndex < 0 || stepIndex >= len(leg.Steps) {
		return ProgressSnapshot{}, fmt.Errorf("%w: step %d of %d", ErrIndexOutOfRange, stepIndex, len(leg.Steps))
	}

	legRemaining := stepDistanceRemaining
	for i := stepIndex + 1; i < len(leg.Steps); i++ {
		legRemaining += leg.Steps[i].Distance
	}

	var upcoming *routes.Step
	if stepIndex+1 < len(leg.Steps) {
		upcoming = &leg.Steps[stepIndex+1]
	}

	return ProgressSnapshot{
		Route:                 route,
		LegIndex:              legIndex,
		StepIndex:             stepIndex,
		StepDistanceRemaining: stepDistanceRemaining,
		StepDurationRemaining: stepDurationRemaining,
		LegDistanceRemaining:  legRemaining,
		UpcomingStep:          upcoming,
		Location:              loc,
	}, nil
}

// CurrentStep returns the step the traveler is on, or nil when the snapshot
// carries no route.
func (s ProgressSnapshot) CurrentStep() *routes.Step {
	if s.Route == nil || s.LegIndex >= len(s.Route.Legs) {
		return nil
	}
	leg := s.Route.Legs[s.LegIndex]
	if s.StepIndex >= len(leg.Steps) {
		return nil
	}
	return &leg.Steps[s.StepIndex]
}
