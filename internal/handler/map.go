package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// DefaultZoom is the clustering zoom used when the request does not set one.
const DefaultZoom = 15

// EventStreamer interface for dependency injection
type EventStreamer interface {
	ServeWS(w http.ResponseWriter, r *http.Request, session string) error
}

// MapHandler exposes the rendered map surface of a session
type MapHandler struct {
	store  SessionStore
	events EventStreamer
}

// NewMapHandler creates a new map handler
func NewMapHandler(store SessionStore, events EventStreamer) *MapHandler {
	return &MapHandler{store: store, events: events}
}

func zoomParam(c *gin.Context) (int, bool) {
	raw := c.Query("zoom")
	if raw == "" {
		return DefaultZoom, true
	}
	zoom, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid zoom format"})
		return 0, false
	}
	return zoom, true
}

// Snapshot handles GET /sessions/:id/map requests
// @Summary Current map surface: region, pins, clusters, route and viewport
// @Tags map
// @Produce json
// @Param id path string true "session id"
// @Param zoom query int false "clustering zoom level (0-22)"
// @Success 200 {object} display.Snapshot
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/map [get]
func (h *MapHandler) Snapshot(c *gin.Context) {
	sess, ok := lookupSession(c, h.store)
	if !ok {
		return
	}
	zoom, ok := zoomParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Map.Snapshot(zoom))
}

// GeoJSON handles GET /sessions/:id/map/geojson requests
// @Summary Current map surface as a GeoJSON FeatureCollection
// @Tags map
// @Produce json
// @Param id path string true "session id"
// @Param zoom query int false "clustering zoom level (0-22)"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/map/geojson [get]
func (h *MapHandler) GeoJSON(c *gin.Context) {
	sess, ok := lookupSession(c, h.store)
	if !ok {
		return
	}
	zoom, ok := zoomParam(c)
	if !ok {
		return
	}

	body, err := sess.Map.Snapshot(zoom).FeatureCollection().MarshalJSON()
	if err != nil {
		log.Error().Err(err).Str("session", sess.ID()).Msg("failed to encode geojson")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Data(http.StatusOK, "application/geo+json", body)
}

// Events handles GET /sessions/:id/events websocket upgrades
// @Summary Stream screen changes over a WebSocket
// @Tags map
// @Param id path string true "session id"
// @Success 101
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/events [get]
func (h *MapHandler) Events(c *gin.Context) {
	sess, ok := lookupSession(c, h.store)
	if !ok {
		return
	}
	if err := h.events.ServeWS(c.Writer, c.Request, sess.ID()); err != nil {
		log.Warn().Err(err).Str("session", sess.ID()).Msg("websocket upgrade failed")
	}
}
