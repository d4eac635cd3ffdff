// Package display holds the rendering state of a coffee map screen: the map surface with its
// pins, route overlay and viewport, and the list surface with one row per found shop.
package display

import "coffeefinder-api/internal/models"

// EdgePadding is the inset, in points, kept around a rect fitted into the viewport.
type EdgePadding struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Bottom float64 `json:"bottom"`
	Right  float64 `json:"right"`
}

// UniformPadding returns the same inset on all four sides.
func UniformPadding(p float64) EdgePadding {
	return EdgePadding{Top: p, Left: p, Bottom: p, Right: p}
}

// OverlayStyle describes how a route line is stroked.
type OverlayStyle struct {
	StrokeColor string  `json:"stroke_color"`
	LineWidth   float64 `json:"line_width"`
	Level       string  `json:"level"`
}

// RouteStyle is the style every route overlay is drawn with.
var RouteStyle = OverlayStyle{StrokeColor: "blue", LineWidth: 4, Level: "above_roads"}

// Overlay is a route line drawn on the map.
type Overlay struct {
	Route models.Route `json:"route"`
	Style OverlayStyle `json:"style"`
}

// MapSurface accepts pins and line overlays for rendering.
// Readers never observe a half-replaced set of pins or a route without its viewport.
type MapSurface interface {
	ShowUserLocation(c models.Coordinate)
	SetRegion(r models.Region)
	SetCenter(c models.Coordinate)
	ReplaceAnnotations(pins ...models.CoffeeShopAnnotation)
	ReplaceRoute(route models.Route, rect models.Bound, padding EdgePadding)
}

// ListSurface renders the current result list.
type ListSurface interface {
	Reload(rows []string)
}
