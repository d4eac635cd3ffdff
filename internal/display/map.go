package display

import (
	"sync"

	"coffeefinder-api/internal/models"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/maptile"
)

// MaxZoom is the deepest zoom level used for clustering.
const MaxZoom = 22

// Map is an in-memory MapSurface that can be read concurrently.
type Map struct {
	mu sync.RWMutex

	icon         string
	userLocation *models.Coordinate
	region       *models.Region
	center       *models.Coordinate
	annotations  []models.CoffeeShopAnnotation
	overlays     []Overlay
	visibleRect  *models.Bound
	padding      EdgePadding
}

// NewMap creates an empty map whose pins use the given icon asset.
func NewMap(icon string) *Map {
	return &Map{icon: icon}
}

// ShowUserLocation moves the user location marker.
func (m *Map) ShowUserLocation(c models.Coordinate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userLocation = &c
}

// SetRegion sets the displayed region.
func (m *Map) SetRegion(r models.Region) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.region = &r
	m.center = &r.Center
}

// SetCenter recenters the map without changing its span.
func (m *Map) SetCenter(c models.Coordinate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.center = &c
	if m.region != nil {
		m.region.Center = c
	}
}

// ReplaceAnnotations swaps every pin for pins in one step, assigning the map icon to pins without one.
func (m *Map) ReplaceAnnotations(pins ...models.CoffeeShopAnnotation) {
	next := make([]models.CoffeeShopAnnotation, len(pins))
	for i, p := range pins {
		if p.Icon == "" {
			p.Icon = m.icon
		}
		next[i] = p
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.annotations = next
}

// ReplaceRoute removes every route line, draws route and fits the viewport to rect in one step.
func (m *Map) ReplaceRoute(route models.Route, rect models.Bound, padding EdgePadding) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overlays = []Overlay{{Route: route, Style: RouteStyle}}
	m.visibleRect = &rect
	m.padding = padding
}

// Snapshot is a point-in-time copy of the map surface.
type Snapshot struct {
	UserLocation *models.Coordinate            `json:"user_location,omitempty"`
	Region       *models.Region                `json:"region,omitempty"`
	Center       *models.Coordinate            `json:"center,omitempty"`
	Annotations  []models.CoffeeShopAnnotation `json:"annotations"`
	Clusters     []models.Cluster              `json:"clusters"`
	Overlays     []Overlay                     `json:"overlays"`
	VisibleRect  *models.Bound                 `json:"visible_rect,omitempty"`
	EdgePadding  EdgePadding                   `json:"edge_padding"`
	Zoom         int                           `json:"zoom"`
}

// Snapshot copies the current state, grouping pins into clusters at the given zoom level.
func (m *Map) Snapshot(zoom int) Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Snapshot{
		Annotations: append([]models.CoffeeShopAnnotation{}, m.annotations...),
		Overlays:    append([]Overlay{}, m.overlays...),
		EdgePadding: m.padding,
		Zoom:        clampZoom(zoom),
	}
	if m.userLocation != nil {
		c := *m.userLocation
		s.UserLocation = &c
	}
	if m.region != nil {
		r := *m.region
		s.Region = &r
	}
	if m.center != nil {
		c := *m.center
		s.Center = &c
	}
	if m.visibleRect != nil {
		b := *m.visibleRect
		s.VisibleRect = &b
	}
	s.Clusters = Cluster(s.Annotations, s.Zoom)
	return s
}

func clampZoom(zoom int) int {
	if zoom < 0 {
		return 0
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}

// Cluster groups pins that fall into the same web-mercator tile at zoom.
// Each cluster is placed at the mean of its members; clusters are ordered by first member index.
func Cluster(pins []models.CoffeeShopAnnotation, zoom int) []models.Cluster {
	z := maptile.Zoom(clampZoom(zoom))

	clusters := []models.Cluster{}
	byTile := make(map[maptile.Tile]int)
	for i, pin := range pins {
		tile := maptile.At(pin.Coordinate.Point(), z)
		idx, ok := byTile[tile]
		if !ok {
			idx = len(clusters)
			byTile[tile] = idx
			clusters = append(clusters, models.Cluster{})
		}
		clusters[idx].Members = append(clusters[idx].Members, i)
	}

	for i := range clusters {
		var lat, lon float64
		for _, member := range clusters[i].Members {
			lat += pins[member].Coordinate.Latitude
			lon += pins[member].Coordinate.Longitude
		}
		n := float64(len(clusters[i].Members))
		clusters[i].Count = len(clusters[i].Members)
		clusters[i].Coordinate = models.Coordinate{Latitude: lat / n, Longitude: lon / n}
	}
	return clusters
}

// FeatureCollection renders the snapshot as GeoJSON: the user location, one point per pin and the route lines.
func (s Snapshot) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	if s.UserLocation != nil {
		f := geojson.NewFeature(s.UserLocation.Point())
		f.Properties["kind"] = "user"
		fc.Append(f)
	}

	for i, pin := range s.Annotations {
		f := geojson.NewFeature(pin.Coordinate.Point())
		f.Properties["kind"] = "pin"
		f.Properties["index"] = i
		f.Properties["info"] = pin.Info
		f.Properties["icon"] = pin.Icon
		if pin.Title != nil {
			f.Properties["title"] = *pin.Title
		}
		fc.Append(f)
	}

	for _, c := range s.Clusters {
		if c.Count < 2 {
			continue
		}
		f := geojson.NewFeature(c.Coordinate.Point())
		f.Properties["kind"] = "cluster"
		f.Properties["count"] = c.Count
		f.Properties["members"] = c.Members
		fc.Append(f)
	}

	for _, o := range s.Overlays {
		line := make(orb.LineString, len(o.Route.Polyline))
		for i, c := range o.Route.Polyline {
			line[i] = c.Point()
		}
		f := geojson.NewFeature(line)
		f.Properties["kind"] = "route"
		f.Properties["stroke"] = o.Style.StrokeColor
		f.Properties["stroke-width"] = o.Style.LineWidth
		f.Properties["distance_meters"] = o.Route.DistanceMeters
		f.Properties["duration_seconds"] = o.Route.DurationSeconds
		fc.Append(f)
	}

	return fc
}
