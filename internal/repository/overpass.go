package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"coffeefinder-api/internal/models"

	"github.com/paulmach/orb/geo"
)

// SourceOverpass tags places read from the OpenStreetMap Overpass API.
const SourceOverpass = "overpass"

// overpassResponse is shaped for the Overpass JSON output
type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
	Remark   string            `json:"remark,omitempty"`
}

type overpassElement struct {
	ID     int64   `json:"id"`
	Type   string  `json:"type"`
	Lat    float64 `json:"lat,omitempty"`
	Lon    float64 `json:"lon,omitempty"`
	Center *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"center,omitempty"`
	Tags map[string]string `json:"tags,omitempty"`
}

// OverpassSearcher searches cafes in OpenStreetMap through the Overpass API
type OverpassSearcher struct {
	client  *http.Client
	baseURL string
	limit   int
}

// NewOverpassSearcher creates a new Overpass place searcher returning at most limit places
func NewOverpassSearcher(client *http.Client, baseURL string, limit int) *OverpassSearcher {
	return &OverpassSearcher{client: client, baseURL: baseURL, limit: limit}
}

// buildOverpassQuery matches cafes plus any amenity whose name or cuisine contains the query term
func buildOverpassQuery(query string, region models.Region, limit int) string {
	b := region.Bound()
	bbox := fmt.Sprintf("(%f,%f,%f,%f)", b.Min.Lat(), b.Min.Lon(), b.Max.Lat(), b.Max.Lon())
	term := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(regexp.QuoteMeta(query))

	var sb strings.Builder
	sb.WriteString("[out:json][timeout:25];(")
	fmt.Fprintf(&sb, `nwr["amenity"="cafe"]%s;`, bbox)
	fmt.Fprintf(&sb, `nwr["amenity"]["name"~"%s",i]%s;`, term, bbox)
	fmt.Fprintf(&sb, `nwr["cuisine"~"%s",i]%s;`, term, bbox)
	fmt.Fprintf(&sb, ");out center %d;", limit*4)
	return sb.String()
}

// SearchPlaces returns places around the region center, nearest first
func (r *OverpassSearcher) SearchPlaces(ctx context.Context, query string, region models.Region) ([]models.Place, error) {
	form := url.Values{}
	form.Set("data", buildOverpassQuery(query, region, r.limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to build overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("repository: overpass request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("repository: unexpected overpass status: %s", resp.Status)
	}

	var result overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("repository: failed to decode overpass response: %w", err)
	}
	if result.Remark != "" && len(result.Elements) == 0 {
		return nil, fmt.Errorf("repository: overpass error: %s", result.Remark)
	}

	bound := region.Bound()
	places := []models.Place{}
	for _, el := range result.Elements {
		c := models.Coordinate{Latitude: el.Lat, Longitude: el.Lon}
		if el.Center != nil {
			c = models.Coordinate{Latitude: el.Center.Lat, Longitude: el.Center.Lon}
		}
		if !bound.Contains(c.Point()) {
			continue
		}
		places = append(places, models.Place{
			Name:       el.Tags["name"],
			Coordinate: c,
			Address:    formatAddress(el.Tags),
			Source:     SourceOverpass,
		})
	}

	center := region.Center.Point()
	sort.SliceStable(places, func(i, j int) bool {
		return geo.Distance(center, places[i].Coordinate.Point()) < geo.Distance(center, places[j].Coordinate.Point())
	})
	if len(places) > r.limit {
		places = places[:r.limit]
	}

	return places, nil
}

func formatAddress(tags map[string]string) string {
	street := tags["addr:street"]
	if street == "" {
		return ""
	}
	if number := tags["addr:housenumber"]; number != "" {
		return street + " " + number
	}
	return street
}
