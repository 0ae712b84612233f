package domain

import (
	"testing"

	routes "nav-guidance/internal/features/routes/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bannerRoute builds a route whose first step carries two banners with
// different activation distances and whose second step carries one.
func bannerRoute() *routes.Route {
	degrees := 120.0
	return &routes.Route{
		Distance: 800,
		Duration: 160,
		Legs: []routes.Leg{
			{
				Distance: 800,
				Duration: 160,
				Steps: []routes.Step{
					{
						Distance: 500,
						Duration: 100,
						Banners: []routes.BannerInstruction{
							{
								DistanceAlongGeometry: 500,
								Primary:               &routes.BannerText{Text: "Continue on Ring Road"},
								Secondary:             &routes.BannerText{Text: "toward Center"},
							},
							{
								DistanceAlongGeometry: 80,
								Primary:               &routes.BannerText{Text: "Take the roundabout", Degrees: &degrees},
							},
						},
					},
					{
						Distance: 300,
						Duration: 60,
						Banners: []routes.BannerInstruction{
							{
								DistanceAlongGeometry: 300,
								Primary:               &routes.BannerText{Text: "Turn right onto Elm St"},
							},
						},
					},
				},
			},
		},
		Geometry: []routes.Point{{Lon: 10.0, Lat: 59.0}, {Lon: 10.1, Lat: 59.1}},
	}
}

// TestCurrentInstruction_SelectsByDistance verifies the banner with the
// smallest activation distance still covering the remaining distance wins.
func TestCurrentInstruction_SelectsByDistance(t *testing.T) {
	far, err := NewProgressSnapshot(bannerRoute(), 0, 0, 400, 80, nil)
	require.NoError(t, err)
	banner := CurrentInstruction(far)
	require.NotNil(t, banner.Primary)
	assert.Equal(t, "Continue on Ring Road", banner.Primary.Text)
	require.NotNil(t, banner.Secondary)
	assert.Equal(t, "toward Center", banner.Secondary.Text)
	assert.Nil(t, banner.RoundaboutDegrees)

	near, err := NewProgressSnapshot(bannerRoute(), 0, 0, 50, 10, nil)
	require.NoError(t, err)
	banner = CurrentInstruction(near)
	require.NotNil(t, banner.Primary)
	assert.Equal(t, "Take the roundabout", banner.Primary.Text)
	assert.Nil(t, banner.Secondary)
	require.NotNil(t, banner.RoundaboutDegrees)
	assert.Equal(t, 120.0, *banner.RoundaboutDegrees)
}

// TestCurrentInstruction_SubBanner verifies the upcoming step's banner is
// surfaced as the sub banner, and missing upcoming step means no sub banner.
func TestCurrentInstruction_SubBanner(t *testing.T) {
	onFirst, err := NewProgressSnapshot(bannerRoute(), 0, 0, 400, 80, nil)
	require.NoError(t, err)
	banner := CurrentInstruction(onFirst)
	require.NotNil(t, banner.Sub)
	assert.Equal(t, "Turn right onto Elm St", banner.Sub.Text)

	onFinal, err := NewProgressSnapshot(bannerRoute(), 0, 1, 100, 20, nil)
	require.NoError(t, err)
	banner = CurrentInstruction(onFinal)
	assert.Nil(t, banner.Sub)
}

// TestCurrentInstruction_NoBanners verifies steps without banners yield an
// empty instruction rather than an error.
func TestCurrentInstruction_NoBanners(t *testing.T) {
	s := snapshotAt(t, 0, 100)
	banner := CurrentInstruction(s)
	assert.Nil(t, banner.Primary)
	assert.Nil(t, banner.Secondary)
	assert.Nil(t, banner.Sub)
}

// TestBannerMilestone verifies the banner milestone fires when the active
// banner changes and renders the primary text.
func TestBannerMilestone(t *testing.T) {
	m := NewBannerMilestone()
	require.NotNil(t, m)
	assert.Equal(t, BannerMilestoneIdentifier, m.Identifier())

	far, err := NewProgressSnapshot(bannerRoute(), 0, 0, 400, 80, nil)
	require.NoError(t, err)
	stillFar, err := NewProgressSnapshot(bannerRoute(), 0, 0, 300, 60, nil)
	require.NoError(t, err)
	near, err := NewProgressSnapshot(bannerRoute(), 0, 0, 50, 10, nil)
	require.NoError(t, err)

	// First update with an active banner fires.
	assert.True(t, m.IsOccurring(nil, far))
	// Same banner still active: no fire.
	assert.False(t, m.IsOccurring(&far, stillFar))
	// Crossing the 80m activation distance switches banners: fire.
	assert.True(t, m.IsOccurring(&stillFar, near))

	assert.Equal(t, "Take the roundabout", m.Instruction(near))
}
