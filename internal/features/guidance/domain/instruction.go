package domain

import (
	routes "nav-guidance/internal/features/routes/domain"
)

// InstructionBanner is the banner content to display for a snapshot: the
// primary/secondary texts of the current step's active banner, plus the sub
// banner of the upcoming step when present.
type InstructionBanner struct {
	// Primary is the main banner text. Nil when the step carries no banners.
	Primary *routes.BannerText
	// Secondary is the second-line banner text, when the active banner has one.
	Secondary *routes.BannerText
	// Sub is the upcoming step's banner text, when an upcoming step exists.
	Sub *routes.BannerText
	// RoundaboutDegrees is the exit angle when the primary banner describes
	// a roundabout.
	RoundaboutDegrees *float64
}

// CurrentInstruction extracts the banner content for a snapshot. A missing
// upcoming step means no sub banner, not an error.
func CurrentInstruction(snapshot ProgressSnapshot) InstructionBanner {
	var banner InstructionBanner

	step := snapshot.CurrentStep()
	if step == nil {
		return banner
	}

	if active := activeBanner(step, snapshot.StepDistanceRemaining); active != nil {
		banner.Primary = active.Primary
		banner.Secondary = active.Secondary
		if active.Primary != nil && active.Primary.Degrees != nil {
			banner.RoundaboutDegrees = active.Primary.Degrees
		}
	}

	if upcoming := snapshot.UpcomingStep; upcoming != nil {
		// The sub banner previews the next maneuver at its full distance.
		if next := activeBanner(upcoming, upcoming.Distance); next != nil {
			banner.Sub = next.Primary
		}
	}

	return banner
}

// activeBanner selects the step banner whose activation distance has been
// reached: among banners with DistanceAlongGeometry >= distanceRemaining,
// the one with the smallest activation distance wins.
func activeBanner(step *routes.Step, distanceRemaining float64) *routes.BannerInstruction {
	var active *routes.BannerInstruction
	for i := range step.Banners {
		candidate := &step.Banners[i]
		if candidate.DistanceAlongGeometry < distanceRemaining {
			continue
		}
		if active == nil || candidate.DistanceAlongGeometry < active.DistanceAlongGeometry {
			active = candidate
		}
	}
	return active
}
