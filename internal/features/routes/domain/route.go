package domain

import "errors"

var (
	// ErrEmptyRoute is returned when a route has no legs.
	ErrEmptyRoute = errors.New("route has no legs")
	// ErrEmptyLeg is returned when a leg has no steps.
	ErrEmptyLeg = errors.New("leg has no steps")
	// ErrNoGeometry is returned when a route has fewer than two geometry points.
	ErrNoGeometry = errors.New("route geometry requires at least two points")
)

// Point is a geographic coordinate (longitude, latitude).
type Point struct {
	// Lon is the longitude in degrees.
	Lon float64 `json:"lon"`
	// Lat is the latitude in degrees.
	Lat float64 `json:"lat"`
}

// Location is a raw location fix from the positioning source.
type Location struct {
	// Lat is the latitude in degrees.
	Lat float64 `json:"lat"`
	// Lon is the longitude in degrees.
	Lon float64 `json:"lon"`
	// Bearing is the direction of travel in degrees from north.
	Bearing float64 `json:"bearing"`
	// Speed is the ground speed in meters per second.
	Speed float64 `json:"speed"`
}

// BannerText is one piece of display text for a maneuver banner.
type BannerText struct {
	// Text is the display string.
	Text string `json:"text"`
	// Type describes the maneuver type (e.g., turn, merge).
	Type string `json:"type,omitempty"`
	// Modifier refines the maneuver type (e.g., left, sharp right).
	Modifier string `json:"modifier,omitempty"`
	// Degrees is the roundabout exit angle, when the maneuver is a roundabout.
	Degrees *float64 `json:"degrees,omitempty"`
}

// BannerInstruction is a banner that becomes active once the traveler is
// within DistanceAlongGeometry meters of the step's maneuver point.
type BannerInstruction struct {
	// DistanceAlongGeometry is the activation distance in meters from the maneuver.
	DistanceAlongGeometry float64 `json:"distance_along_geometry"`
	// Primary is the main banner text. Always present.
	Primary *BannerText `json:"primary"`
	// Secondary is the optional second-line banner text.
	Secondary *BannerText `json:"secondary,omitempty"`
	// Sub is the optional sub-banner text (e.g., lane guidance for the next maneuver).
	Sub *BannerText `json:"sub,omitempty"`
}

// Step is a single maneuver-to-maneuver section of a leg.
type Step struct {
	// Distance is the step length in meters.
	Distance float64 `json:"distance"`
	// Duration is the expected travel time for the step in seconds.
	Duration float64 `json:"duration"`
	// Instruction is the spoken/readable instruction for the step's maneuver.
	Instruction string `json:"instruction,omitempty"`
	// Maneuver describes the maneuver type at the end of the step.
	Maneuver string `json:"maneuver,omitempty"`
	// Banners are the banner instructions for the step, if any.
	Banners []BannerInstruction `json:"banners,omitempty"`
}

// Leg is a section of a route between two waypoints.
type Leg struct {
	// Distance is the leg length in meters.
	Distance float64 `json:"distance"`
	// Duration is the expected travel time for the leg in seconds.
	Duration float64 `json:"duration"`
	// Steps are the maneuver steps of the leg, in travel order.
	Steps []Step `json:"steps"`
}

// Route is a full navigable route as returned by a directions API.
type Route struct {
	// Distance is the route length in meters.
	Distance float64 `json:"distance"`
	// Duration is the expected travel time in seconds.
	Duration float64 `json:"duration"`
	// Legs are the waypoint-to-waypoint sections of the route, in travel order.
	Legs []Leg `json:"legs"`
	// Geometry is the route polyline, used for overview framing.
	Geometry []Point `json:"geometry"`
}

// Validate checks the structural invariants of a route: at least one leg,
// at least one step per leg, and a drawable geometry.
func (r *Route) Validate() error {
	if len(r.Legs) == 0 {
		return ErrEmptyRoute
	}
	for i := range r.Legs {
		if len(r.Legs[i].Steps) == 0 {
			return ErrEmptyLeg
		}
	}
	if len(r.Geometry) < 2 {
		return ErrNoGeometry
	}
	return nil
}
