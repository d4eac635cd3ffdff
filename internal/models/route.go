package models

// TransportType selects the travel mode of a directions request.
type TransportType string

const (
	TransportAutomobile TransportType = "automobile"
	TransportWalking    TransportType = "walking"
)

// Route is one candidate path returned by the directions service.
type Route struct {
	Polyline        []Coordinate  `json:"polyline"`
	Bounds          Bound         `json:"bounds"`
	DistanceMeters  float64       `json:"distance_meters"`
	DurationSeconds float64       `json:"duration_seconds"`
	TransportType   TransportType `json:"transport_type"`
}
