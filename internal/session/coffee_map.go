// Package session implements the coffee map screen: it reacts to location fixes by searching for
// nearby shops, keeps the list and the map pins in step, and draws a route to a selected row.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"coffeefinder-api/internal/display"
	"coffeefinder-api/internal/events"
	"coffeefinder-api/internal/models"
	"coffeefinder-api/internal/service"

	"github.com/rs/zerolog/log"
)

// RoutePadding is the viewport inset kept around a drawn route.
const RoutePadding = 40

var (
	ErrNoUserLocation = errors.New("session: user location is not known yet")
	ErrNoRegion       = errors.New("session: no search region yet")
	ErrRowOutOfRange  = errors.New("session: row out of range")
	ErrSuperseded     = errors.New("session: superseded by a newer request")
)

// Searcher finds places inside a region
type Searcher interface {
	Search(ctx context.Context, region models.Region) ([]models.Place, error)
}

// Router calculates candidate routes between two coordinates
type Router interface {
	Directions(ctx context.Context, source, destination models.Coordinate, mode models.TransportType) ([]models.Route, error)
}

// Publisher receives screen change notifications
type Publisher interface {
	Publish(e events.Event)
}

// CoffeeMap is the controller of one coffee map screen.
// Network calls run without holding the lock; their results are applied only if no newer
// request of the same kind has been applied already.
type CoffeeMap struct {
	id         string
	searcher   Searcher
	router     Router
	mapView    display.MapSurface
	list       display.ListSurface
	publisher  Publisher
	radius     float64
	travelMode models.TransportType

	mu            sync.Mutex
	listening     bool
	userLocation  *models.Coordinate
	region        *models.Region
	coffeeShops   []models.Place
	routeOverlays []models.Route
	searchSeq     uint64
	searchApplied uint64
	routeSeq      uint64
	routeApplied  uint64
}

// NewCoffeeMap creates a screen that starts listening for location fixes.
// Searches are scoped to a square region of radiusMeters around the first fix.
func NewCoffeeMap(id string, searcher Searcher, router Router, mapView display.MapSurface, list display.ListSurface, publisher Publisher, radiusMeters float64) *CoffeeMap {
	return &CoffeeMap{
		id:         id,
		searcher:   searcher,
		router:     router,
		mapView:    mapView,
		list:       list,
		publisher:  publisher,
		radius:     radiusMeters,
		travelMode: models.TransportAutomobile,
		listening:  true,
	}
}

// ID returns the session identifier.
func (m *CoffeeMap) ID() string {
	return m.id
}

// Listening reports whether the screen still waits for its first location fix.
func (m *CoffeeMap) Listening() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listening
}

// UserLocation returns the last known user location.
func (m *CoffeeMap) UserLocation() (models.Coordinate, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.userLocation == nil {
		return models.Coordinate{}, false
	}
	return *m.userLocation, true
}

// CoffeeShops returns the places of the latest applied search, in list order.
func (m *CoffeeMap) CoffeeShops() []models.Place {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Place{}, m.coffeeShops...)
}

// Route returns the currently drawn route.
func (m *CoffeeMap) Route() (models.Route, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.routeOverlays) == 0 {
		return models.Route{}, false
	}
	return m.routeOverlays[0], true
}

// HandleLocationUpdate consumes a batch of fixes. Only the first fix of the first non-empty batch is used:
// it centers the map, derives the search region and triggers the search, after which updates are ignored.
// The returned flag reports whether the batch was accepted.
func (m *CoffeeMap) HandleLocationUpdate(ctx context.Context, fixes []models.LocationFix) (bool, error) {
	if len(fixes) == 0 {
		return false, nil
	}
	fix := fixes[0]

	m.mu.Lock()
	if !m.listening {
		m.mu.Unlock()
		log.Debug().Str("session", m.id).Msg("ignoring location update after first fix")
		return false, nil
	}
	if err := fix.Coordinate.Validate(); err != nil {
		m.mu.Unlock()
		return false, fmt.Errorf("session: invalid location fix: %w", err)
	}

	userLocation := fix.Coordinate
	region := models.NewRegion(userLocation, m.radius)
	m.userLocation = &userLocation
	m.region = &region
	m.mapView.ShowUserLocation(userLocation)
	m.mapView.SetRegion(region)
	m.mapView.SetCenter(userLocation)
	m.listening = false
	m.searchSeq++
	seq := m.searchSeq
	m.mu.Unlock()

	m.publish(events.TypeLocation, fix)
	log.Info().
		Str("session", m.id).
		Float64("lat", userLocation.Latitude).
		Float64("lon", userLocation.Longitude).
		Float64("accuracy", fix.HorizontalAccuracy).
		Msg("first location fix")

	return true, m.searchCoffeeShops(ctx, region, seq)
}

// Refresh repeats the search for the current region.
func (m *CoffeeMap) Refresh(ctx context.Context) error {
	m.mu.Lock()
	if m.region == nil {
		m.mu.Unlock()
		return ErrNoRegion
	}
	region := *m.region
	m.searchSeq++
	seq := m.searchSeq
	m.mu.Unlock()

	return m.searchCoffeeShops(ctx, region, seq)
}

func (m *CoffeeMap) searchCoffeeShops(ctx context.Context, region models.Region, seq uint64) error {
	places, err := m.searcher.Search(ctx, region)
	if err != nil {
		log.Error().Err(err).Str("session", m.id).Msg("coffee shop search failed")
		m.publish(events.TypeSearchFailed, err.Error())
		return err
	}

	m.mu.Lock()
	if seq < m.searchApplied {
		m.mu.Unlock()
		log.Warn().Str("session", m.id).Uint64("seq", seq).Msg("dropping stale search result")
		return ErrSuperseded
	}
	m.searchApplied = seq

	m.coffeeShops = places
	rows := make([]string, len(places))
	pins := make([]models.CoffeeShopAnnotation, len(places))
	for i, p := range places {
		rows[i] = p.Name
		pins[i] = models.NewCoffeeShopAnnotation(p.Name, p.Coordinate, "")
	}
	m.list.Reload(rows)
	m.mapView.ReplaceAnnotations(pins...)
	m.mu.Unlock()

	m.publish(events.TypeSearch, places)
	log.Info().Str("session", m.id).Int("count", len(places)).Msg("coffee shops found")
	return nil
}

// Selection is the outcome of selecting a list row.
type Selection struct {
	Destination models.Place `json:"destination"`
	Route       models.Route `json:"route"`
}

// SelectRow draws the route from the user location to the shop at index.
// Previous route overlays are replaced only once the new route is available.
func (m *CoffeeMap) SelectRow(ctx context.Context, index int) (Selection, error) {
	m.mu.Lock()
	if index < 0 || index >= len(m.coffeeShops) {
		n := len(m.coffeeShops)
		m.mu.Unlock()
		return Selection{}, fmt.Errorf("%w: %d of %d", ErrRowOutOfRange, index, n)
	}
	if m.userLocation == nil {
		m.mu.Unlock()
		return Selection{}, ErrNoUserLocation
	}
	source := *m.userLocation
	destination := m.coffeeShops[index]
	m.routeSeq++
	seq := m.routeSeq
	m.mu.Unlock()

	routes, err := m.router.Directions(ctx, source, destination.Coordinate, m.travelMode)
	if err == nil && len(routes) == 0 {
		err = service.ErrNoRoutes
	}
	if err != nil {
		log.Error().Err(err).Str("session", m.id).Str("destination", destination.Name).Msg("directions request failed")
		m.publish(events.TypeRouteFailed, err.Error())
		return Selection{}, err
	}
	route := routes[0]

	m.mu.Lock()
	if seq < m.routeApplied {
		m.mu.Unlock()
		log.Warn().Str("session", m.id).Uint64("seq", seq).Msg("dropping stale route")
		return Selection{}, ErrSuperseded
	}
	m.routeApplied = seq

	m.routeOverlays = []models.Route{route}
	m.mapView.ReplaceRoute(route, route.Bounds, display.UniformPadding(RoutePadding))
	m.mu.Unlock()

	m.publish(events.TypeRoute, route)
	log.Info().
		Str("session", m.id).
		Str("destination", destination.Name).
		Float64("distance_m", route.DistanceMeters).
		Msg("route drawn")
	return Selection{Destination: destination, Route: route}, nil
}

func (m *CoffeeMap) publish(kind string, data interface{}) {
	if m.publisher == nil {
		return
	}
	m.publisher.Publish(events.Event{Type: kind, Session: m.id, Data: data})
}
