package service

import (
	"context"
	"fmt"

	"coffeefinder-api/internal/models"
)

// SearchService contains the business logic for region-scoped place searches
type SearchService struct {
	repo  PlaceSearcher
	query string
}

// PlaceSearcher interface for dependency injection
type PlaceSearcher interface {
	SearchPlaces(ctx context.Context, query string, region models.Region) ([]models.Place, error)
}

// NewSearchService creates a new search service that always searches for query
func NewSearchService(repo PlaceSearcher, query string) *SearchService {
	return &SearchService{repo: repo, query: query}
}

// Query returns the fixed search term
func (s *SearchService) Query() string {
	return s.query
}

// Search returns the places matching the service query inside region, in the searcher's order
func (s *SearchService) Search(ctx context.Context, region models.Region) ([]models.Place, error) {
	if s.query == "" {
		return nil, fmt.Errorf("service: search query cannot be empty")
	}
	if err := region.Center.Validate(); err != nil {
		return nil, fmt.Errorf("service: invalid region center: %w", err)
	}
	if region.LatitudinalMeters <= 0 || region.LongitudinalMeters <= 0 {
		return nil, fmt.Errorf("service: invalid region span: %fx%f", region.LatitudinalMeters, region.LongitudinalMeters)
	}

	places, err := s.repo.SearchPlaces(ctx, s.query, region)
	if err != nil {
		return nil, fmt.Errorf("service: failed to search places: %w", err)
	}

	return places, nil
}
