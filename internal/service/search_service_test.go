package service

import (
	"context"
	"testing"

	"coffeefinder-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPlaceSearcher is a mock implementation of the PlaceSearcher interface
type MockPlaceSearcher struct {
	mock.Mock
}

// SearchPlaces implements PlaceSearcher.
func (m *MockPlaceSearcher) SearchPlaces(ctx context.Context, query string, region models.Region) ([]models.Place, error) {
	args := m.Called(ctx, query, region)
	return args.Get(0).([]models.Place), args.Error(1)
}

func TestSearchService_Search(t *testing.T) {
	moscow := models.Coordinate{Latitude: 55.7558, Longitude: 37.6173}

	tests := []struct {
		name        string
		region      models.Region
		callRepo    bool
		mockPlaces  []models.Place
		mockError   error
		expected    []models.Place
		expectError bool
	}{
		{
			name:        "invalid center",
			region:      models.NewRegion(models.Coordinate{Latitude: 91}, 1000),
			expectError: true,
		},
		{
			name:        "zero span",
			region:      models.NewRegion(moscow, 0),
			expectError: true,
		},
		{
			name:     "successful search with results",
			region:   models.NewRegion(moscow, 1000),
			callRepo: true,
			mockPlaces: []models.Place{
				{Name: "Double B", Coordinate: models.Coordinate{Latitude: 55.7601, Longitude: 37.6189}},
				{Name: "Coffeemania", Coordinate: models.Coordinate{Latitude: 55.7539, Longitude: 37.6208}},
			},
			expected: []models.Place{
				{Name: "Double B", Coordinate: models.Coordinate{Latitude: 55.7601, Longitude: 37.6189}},
				{Name: "Coffeemania", Coordinate: models.Coordinate{Latitude: 55.7539, Longitude: 37.6208}},
			},
		},
		{
			name:       "successful search with no results",
			region:     models.NewRegion(moscow, 1000),
			callRepo:   true,
			mockPlaces: []models.Place{},
			expected:   []models.Place{},
		},
		{
			name:        "repository error",
			region:      models.NewRegion(moscow, 1000),
			callRepo:    true,
			mockError:   assert.AnError,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockRepo := new(MockPlaceSearcher)
			service := NewSearchService(mockRepo, "coffee")

			if tt.callRepo {
				mockRepo.On("SearchPlaces", mock.Anything, "coffee", tt.region).Return(tt.mockPlaces, tt.mockError)
			}

			// Execute
			result, err := service.Search(context.Background(), tt.region)

			// Assert
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			mockRepo.AssertExpectations(t)
			if !tt.callRepo {
				mockRepo.AssertNotCalled(t, "SearchPlaces", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestSearchService_EmptyQuery(t *testing.T) {
	mockRepo := new(MockPlaceSearcher)
	service := NewSearchService(mockRepo, "")

	_, err := service.Search(context.Background(), models.NewRegion(models.Coordinate{Latitude: 1, Longitude: 1}, 1000))
	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "SearchPlaces", mock.Anything, mock.Anything, mock.Anything)
}
