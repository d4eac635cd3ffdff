package repository

import (
	"fmt"
	"strings"

	"coffeefinder-api/internal/models"
)

// ShopRecord is a coffee shop as loaded by the importer
type ShopRecord struct {
	Name       string
	Address    string
	Tags       []string
	Coordinate models.Coordinate
}

// EWKT renders the shop location the way PostGIS accepts it for geography columns
func (s ShopRecord) EWKT() string {
	return fmt.Sprintf("SRID=4326;POINT(%f %f)", s.Coordinate.Longitude, s.Coordinate.Latitude) // PostGIS format: lon lat
}

// normalizeTags lowercases and trims tags, dropping empty ones
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
