package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"coffeefinder-api/internal/models"
	"coffeefinder-api/internal/service"
	"coffeefinder-api/internal/session"

	"github.com/gin-gonic/gin"
)

// SessionStore interface for dependency injection
type SessionStore interface {
	Create() *session.Session
	Get(id string) (*session.Session, error)
	Delete(id string) error
}

// SessionHandler handles the coffee map screen operations of a session
type SessionHandler struct {
	store SessionStore
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(store SessionStore) *SessionHandler {
	return &SessionHandler{store: store}
}

type createSessionResponse struct {
	ID string `json:"id"`
}

type fixRequest struct {
	Latitude  *float64  `json:"latitude" binding:"required"`
	Longitude *float64  `json:"longitude" binding:"required"`
	Accuracy  float64   `json:"accuracy"`
	Timestamp time.Time `json:"timestamp"`
}

type locationRequest struct {
	Fixes []fixRequest `json:"fixes" binding:"required,dive"`
}

type locationResponse struct {
	Accepted bool           `json:"accepted"`
	Shops    []models.Place `json:"shops"`
}

type shopsResponse struct {
	Shops []models.Place `json:"shops"`
}

// lookup resolves the :id path parameter, writing a 404 when the session does not exist
func (h *SessionHandler) lookup(c *gin.Context) (*session.Session, bool) {
	return lookupSession(c, h.store)
}

func lookupSession(c *gin.Context, store SessionStore) (*session.Session, bool) {
	sess, err := store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return sess, true
}

// Create handles POST /sessions requests
// @Summary Create a coffee map session
// @Tags sessions
// @Produce json
// @Success 201 {object} createSessionResponse
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	sess := h.store.Create()
	c.JSON(http.StatusCreated, createSessionResponse{ID: sess.ID()})
}

// Delete handles DELETE /sessions/:id requests
// @Summary Delete a session
// @Tags sessions
// @Param id path string true "session id"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateLocation handles POST /sessions/:id/location requests
// @Summary Report location fixes
// @Description Only the first fix ever received is used: it centers the map and triggers the coffee shop search.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "session id"
// @Param fixes body locationRequest true "location fixes"
// @Success 200 {object} locationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /sessions/{id}/location [post]
func (h *SessionHandler) UpdateLocation(c *gin.Context) {
	sess, ok := h.lookup(c)
	if !ok {
		return
	}

	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location payload"})
		return
	}

	fixes := make([]models.LocationFix, len(req.Fixes))
	for i, f := range req.Fixes {
		fixes[i] = models.LocationFix{
			Coordinate:         models.Coordinate{Latitude: *f.Latitude, Longitude: *f.Longitude},
			HorizontalAccuracy: f.Accuracy,
			Timestamp:          f.Timestamp,
		}
	}

	accepted, err := sess.Screen.HandleLocationUpdate(c.Request.Context(), fixes)
	if err != nil && !errors.Is(err, session.ErrSuperseded) {
		writeScreenError(c, err, "search failed")
		return
	}

	c.JSON(http.StatusOK, locationResponse{Accepted: accepted, Shops: sess.Screen.CoffeeShops()})
}

// Refresh handles POST /sessions/:id/refresh requests
// @Summary Repeat the coffee shop search
// @Tags sessions
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} shopsResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /sessions/{id}/refresh [post]
func (h *SessionHandler) Refresh(c *gin.Context) {
	sess, ok := h.lookup(c)
	if !ok {
		return
	}

	if err := sess.Screen.Refresh(c.Request.Context()); err != nil {
		writeScreenError(c, err, "search failed")
		return
	}

	c.JSON(http.StatusOK, shopsResponse{Shops: sess.Screen.CoffeeShops()})
}

// Shops handles GET /sessions/:id/shops requests
// @Summary List the coffee shops of the latest search
// @Tags sessions
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} shopsResponse
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/shops [get]
func (h *SessionHandler) Shops(c *gin.Context) {
	sess, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, shopsResponse{Shops: sess.Screen.CoffeeShops()})
}

// SelectShop handles POST /sessions/:id/shops/:index/route requests
// @Summary Draw the driving route to a listed coffee shop
// @Tags sessions
// @Produce json
// @Param id path string true "session id"
// @Param index path int true "row index"
// @Success 200 {object} session.Selection
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /sessions/{id}/shops/{index}/route [post]
func (h *SessionHandler) SelectShop(c *gin.Context) {
	sess, ok := h.lookup(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid row index"})
		return
	}

	selection, err := sess.Screen.SelectRow(c.Request.Context(), index)
	if err != nil {
		writeScreenError(c, err, "directions failed")
		return
	}

	c.JSON(http.StatusOK, selection)
}

// writeScreenError maps screen controller errors to HTTP responses; upstream failures get fallback as message
func writeScreenError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrInvalidCoordinate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinate"})
	case errors.Is(err, session.ErrRowOutOfRange):
		c.JSON(http.StatusNotFound, gin.H{"error": "no coffee shop at this row"})
	case errors.Is(err, session.ErrNoUserLocation):
		c.JSON(http.StatusConflict, gin.H{"error": "user location is not known yet"})
	case errors.Is(err, session.ErrNoRegion):
		c.JSON(http.StatusConflict, gin.H{"error": "no search region yet"})
	case errors.Is(err, session.ErrSuperseded):
		c.JSON(http.StatusConflict, gin.H{"error": "superseded by a newer request"})
	case errors.Is(err, service.ErrNoRoutes):
		c.JSON(http.StatusBadGateway, gin.H{"error": "no route found"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": fallback})
	}
}
