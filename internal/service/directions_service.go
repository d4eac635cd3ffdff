package service

import (
	"context"
	"errors"
	"fmt"

	"coffeefinder-api/internal/models"
)

// ErrNoRoutes is returned when the directions backend finds no path between the two points.
var ErrNoRoutes = errors.New("service: no routes found")

// DirectionsService contains the business logic for route calculation
type DirectionsService struct {
	provider RouteProvider
}

// RouteProvider interface for dependency injection
type RouteProvider interface {
	FindRoutes(ctx context.Context, source, destination models.Coordinate, mode models.TransportType) ([]models.Route, error)
}

// NewDirectionsService creates a new directions service
func NewDirectionsService(provider RouteProvider) *DirectionsService {
	return &DirectionsService{provider: provider}
}

// Directions returns the candidate routes from source to destination, best first
func (s *DirectionsService) Directions(ctx context.Context, source, destination models.Coordinate, mode models.TransportType) ([]models.Route, error) {
	if err := source.Validate(); err != nil {
		return nil, fmt.Errorf("service: invalid source: %w", err)
	}
	if err := destination.Validate(); err != nil {
		return nil, fmt.Errorf("service: invalid destination: %w", err)
	}
	if mode == "" {
		mode = models.TransportAutomobile
	}

	routes, err := s.provider.FindRoutes(ctx, source, destination, mode)
	if err != nil {
		return nil, fmt.Errorf("service: failed to calculate directions: %w", err)
	}
	if len(routes) == 0 {
		return nil, ErrNoRoutes
	}

	return routes, nil
}
