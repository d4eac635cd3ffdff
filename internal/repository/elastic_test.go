package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coffeefinder-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newElasticTestSearcher(t *testing.T, handler http.HandlerFunc) *ElasticSearcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewElasticClient(NewHTTPClient(time.Second), srv.URL)
	require.NoError(t, err)
	return NewElasticSearcher(client, "coffee_shops", 5)
}

func TestElasticSearcher_SearchPlaces(t *testing.T) {
	var body map[string]interface{}
	repo := newElasticTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coffee_shops/_search", r.URL.Path)
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &body))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"took": 1,
			"hits": {
				"total": {"value": 3, "relation": "eq"},
				"hits": [
					{"_id": "1", "_source": {"name": "Coffeemania", "address": "Bolshaya Nikitskaya 13", "location": {"lat": 55.7539, "lon": 37.6208}}},
					{"_id": "2", "_source": "broken"},
					{"_id": "3", "_source": {"name": "Double B", "location": {"lat": 55.7601, "lon": 37.6189}}}
				]
			}
		}`))
	})

	region := models.NewRegion(models.Coordinate{Latitude: 55.7520, Longitude: 37.6175}, 2000)
	places, err := repo.SearchPlaces(context.Background(), "coffee", region)
	require.NoError(t, err)

	assert.Equal(t, []models.Place{
		{Name: "Coffeemania", Coordinate: models.Coordinate{Latitude: 55.7539, Longitude: 37.6208}, Address: "Bolshaya Nikitskaya 13", Source: SourceElastic},
		{Name: "Double B", Coordinate: models.Coordinate{Latitude: 55.7601, Longitude: 37.6189}, Source: SourceElastic},
	}, places)

	assert.EqualValues(t, 5, body["size"])
	assert.Contains(t, body, "sort")
	assert.Contains(t, body, "query")
}

func TestElasticSearcher_SearchError(t *testing.T) {
	repo := newElasticTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"type": "search_phase_execution_exception", "reason": "all shards failed"}, "status": 500}`))
	})

	_, err := repo.SearchPlaces(context.Background(), "coffee", models.NewRegion(models.Coordinate{Latitude: 1, Longitude: 1}, 1000))
	assert.Error(t, err)
}

func TestElasticSearcher_EnsureIndex(t *testing.T) {
	var created bool
	repo := newElasticTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			created = true
			w.Write([]byte(`{"acknowledged": true, "index": "coffee_shops"}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	require.NoError(t, repo.EnsureIndex(context.Background()))
	assert.True(t, created)
}

func TestElasticSearcher_IndexShops(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		wantCount int
		wantErr   bool
	}{
		{
			name:      "all indexed",
			response:  `{"took":1,"errors":false,"items":[{"index":{"_index":"coffee_shops","_id":"a","status":201}},{"index":{"_index":"coffee_shops","_id":"b","status":201}}]}`,
			wantCount: 2,
		},
		{
			name:      "partial failure",
			response:  `{"took":1,"errors":true,"items":[{"index":{"_index":"coffee_shops","_id":"a","status":201}},{"index":{"_index":"coffee_shops","_id":"b","status":400,"error":{"type":"mapper_parsing_exception","reason":"bad location"}}}]}`,
			wantCount: 1,
			wantErr:   true,
		},
	}

	shops := []ShopRecord{
		{Name: "Coffeemania", Tags: []string{" Coffee ", ""}, Coordinate: models.Coordinate{Latitude: 55.7539, Longitude: 37.6208}},
		{Name: "Double B", Tags: []string{"espresso"}, Coordinate: models.Coordinate{Latitude: 55.7601, Longitude: 37.6189}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lines int
			repo := newElasticTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/coffee_shops/_bulk", r.URL.Path)
				assert.Equal(t, "true", r.URL.Query().Get("refresh"))
				raw, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Contains(t, string(raw), `"tags":["coffee"]`)
				for _, b := range raw {
					if b == '\n' {
						lines++
					}
				}

				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.response))
			})

			n, err := repo.IndexShops(context.Background(), shops)

			assert.Equal(t, tt.wantCount, n)
			assert.Equal(t, 4, lines) // action + source per shop
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "bad location")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestElasticSearcher_IndexShopsEmpty(t *testing.T) {
	repo := newElasticTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected request to %s", r.URL.Path)
	})

	n, err := repo.IndexShops(context.Background(), nil)

	assert.NoError(t, err)
	assert.Zero(t, n)
}
