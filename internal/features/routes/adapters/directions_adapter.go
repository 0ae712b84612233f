package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"nav-guidance/internal/core/config"
	"nav-guidance/internal/core/httpclient"
	"nav-guidance/internal/core/logger"
	"nav-guidance/internal/features/routes/domain"

	"go.uber.org/zap"
)

// DirectionsAdapter implements the RouteProvider interface against an
// OSRM-compatible directions API.
type DirectionsAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// config holds the directions API connection details.
	config config.DirectionsConfig
}

// NewDirectionsAdapter creates a new instance of DirectionsAdapter.
func NewDirectionsAdapter(cfg config.DirectionsConfig) *DirectionsAdapter {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	return &DirectionsAdapter{
		client: httpclient.NewClient(timeout),
		config: cfg,
	}
}

// directionsResponse mirrors the OSRM route response format.
type directionsResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Legs []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
			Steps    []struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
				Name     string  `json:"name"`
				Maneuver struct {
					Type        string `json:"type"`
					Modifier    string `json:"modifier"`
					Instruction string `json:"instruction"`
				} `json:"maneuver"`
				BannerInstructions []struct {
					DistanceAlongGeometry float64            `json:"distanceAlongGeometry"`
					Primary               *domain.BannerText `json:"primary"`
					Secondary             *domain.BannerText `json:"secondary"`
					Sub                   *domain.BannerText `json:"sub"`
				} `json:"bannerInstructions"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// FetchRoute requests a route between origin and destination and maps it to
// the domain entity.
func (a *DirectionsAdapter) FetchRoute(ctx context.Context, origin, destination domain.Point) (*domain.Route, error) {
	url := fmt.Sprintf("%s/route/v1/%s/%.6f,%.6f;%.6f,%.6f?overview=full&geometries=geojson&steps=true",
		a.config.BaseURL, a.config.Profile, origin.Lon, origin.Lat, destination.Lon, destination.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directions API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var parsed directionsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode directions response: %w", err)
	}

	if parsed.Code != "" && parsed.Code != "Ok" {
		return nil, fmt.Errorf("directions API returned code %q", parsed.Code)
	}
	if len(parsed.Routes) == 0 {
		return nil, fmt.Errorf("directions API returned no routes")
	}

	route := mapRoute(parsed)

	if err := route.Validate(); err != nil {
		return nil, fmt.Errorf("directions API returned invalid route: %w", err)
	}

	logger.Get().Debug("Route fetched",
		zap.Float64("distance", route.Distance),
		zap.Float64("duration", route.Duration),
		zap.Int("legs", len(route.Legs)),
	)

	return route, nil
}

// mapRoute converts the first route of a directions response to the domain model.
func mapRoute(parsed directionsResponse) *domain.Route {
	raw := parsed.Routes[0]

	route := &domain.Route{
		Distance: raw.Distance,
		Duration: raw.Duration,
	}

	for _, pair := range raw.Geometry.Coordinates {
		if len(pair) < 2 {
			continue
		}
		route.Geometry = append(route.Geometry, domain.Point{Lon: pair[0], Lat: pair[1]})
	}

	for _, rawLeg := range raw.Legs {
		leg := domain.Leg{
			Distance: rawLeg.Distance,
			Duration: rawLeg.Duration,
		}
		for _, rawStep := range rawLeg.Steps {
			step := domain.Step{
				Distance:    rawStep.Distance,
				Duration:    rawStep.Duration,
				Instruction: rawStep.Maneuver.Instruction,
				Maneuver:    rawStep.Maneuver.Type,
			}
			if step.Instruction == "" {
				step.Instruction = rawStep.Name
			}
			for _, rawBanner := range rawStep.BannerInstructions {
				step.Banners = append(step.Banners, domain.BannerInstruction{
					DistanceAlongGeometry: rawBanner.DistanceAlongGeometry,
					Primary:               rawBanner.Primary,
					Secondary:             rawBanner.Secondary,
					Sub:                   rawBanner.Sub,
				})
			}
			leg.Steps = append(leg.Steps, step)
		}
		route.Legs = append(route.Legs, leg)
	}

	return route
}
