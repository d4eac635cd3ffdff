package models

import "time"

// Place is a single search result: a named point of interest.
type Place struct {
	Name       string     `json:"name"`
	Coordinate Coordinate `json:"coordinate"`
	Address    string     `json:"address,omitempty"`
	Source     string     `json:"source,omitempty"` // e.g. "postgres", "overpass"
}

// CoffeeShopAnnotation is a map pin created for one place of the latest search.
type CoffeeShopAnnotation struct {
	Title      *string    `json:"title,omitempty"`
	Coordinate Coordinate `json:"coordinate"`
	Info       string     `json:"info"`
	Icon       string     `json:"icon,omitempty"`
	Callout    bool       `json:"callout"`
}

// NewCoffeeShopAnnotation creates the pin for a place.
func NewCoffeeShopAnnotation(title string, c Coordinate, info string) CoffeeShopAnnotation {
	return CoffeeShopAnnotation{Title: &title, Coordinate: c, Info: info, Callout: true}
}

// LocationFix is one position report from the location provider.
type LocationFix struct {
	Coordinate         Coordinate `json:"coordinate"`
	HorizontalAccuracy float64    `json:"accuracy"`
	Timestamp          time.Time  `json:"timestamp"`
}

// Cluster groups nearby pins into one marker labeled with its member count.
type Cluster struct {
	Coordinate Coordinate `json:"coordinate"`
	Count      int        `json:"count"`
	Members    []int      `json:"members"`
}
