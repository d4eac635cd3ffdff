package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"coffeefinder-api/internal/models"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// osrmResponse is shaped for the OSRM route service response
type osrmResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message,omitempty"`
	Routes  []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Geometry geojson.Geometry `json:"geometry"`
	Distance float64          `json:"distance"`
	Duration float64          `json:"duration"`
}

// osrmProfiles maps transport types to OSRM routing profiles.
var osrmProfiles = map[models.TransportType]string{
	models.TransportAutomobile: "driving",
	models.TransportWalking:    "walking",
}

// OSRMRouter calculates routes with an OSRM server
type OSRMRouter struct {
	client  *http.Client
	baseURL string
}

// NewOSRMRouter creates a new OSRM route provider
func NewOSRMRouter(client *http.Client, baseURL string) *OSRMRouter {
	return &OSRMRouter{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// FindRoutes returns the main route followed by any alternatives
func (r *OSRMRouter) FindRoutes(ctx context.Context, source, destination models.Coordinate, mode models.TransportType) ([]models.Route, error) {
	profile, ok := osrmProfiles[mode]
	if !ok {
		return nil, fmt.Errorf("repository: unsupported transport type %q", mode)
	}

	params := url.Values{}
	params.Set("alternatives", "true")
	params.Set("geometries", "geojson")
	params.Set("overview", "full")

	u := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?%s",
		r.baseURL, profile,
		source.Longitude, source.Latitude,
		destination.Longitude, destination.Latitude,
		params.Encode(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to build osrm request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("repository: osrm request failed: %w", err)
	}
	defer resp.Body.Close()

	var result osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("repository: failed to decode osrm response (%s): %w", resp.Status, err)
	}

	switch result.Code {
	case "Ok":
	case "NoRoute":
		return []models.Route{}, nil
	default:
		return nil, fmt.Errorf("repository: osrm error %s: %s", result.Code, result.Message)
	}

	routes := make([]models.Route, 0, len(result.Routes))
	for i, rt := range result.Routes {
		line, ok := rt.Geometry.Geometry().(orb.LineString)
		if !ok {
			return nil, fmt.Errorf("repository: osrm route %d has geometry %s, want LineString", i, rt.Geometry.Type)
		}

		polyline := make([]models.Coordinate, len(line))
		for j, p := range line {
			polyline[j] = models.CoordinateFromPoint(p)
		}

		routes = append(routes, models.Route{
			Polyline:        polyline,
			Bounds:          models.BoundFromOrb(line.Bound()),
			DistanceMeters:  rt.Distance,
			DurationSeconds: rt.Duration,
			TransportType:   mode,
		})
	}

	return routes, nil
}
