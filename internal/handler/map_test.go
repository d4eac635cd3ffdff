package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"coffeefinder-api/internal/display"
	"coffeefinder-api/internal/events"
	"coffeefinder-api/internal/models"
	"coffeefinder-api/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func locatedSession(t *testing.T, api *testAPI) *session.Session {
	t.Helper()
	sess := api.store.Create()
	api.searcher.On("Search", mock.Anything, mock.Anything).Return([]models.Place{doubleB, surf}, nil)
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/sessions/"+sess.ID()+"/location", userFix).Code)
	return sess
}

func TestMapHandler_Snapshot(t *testing.T) {
	api := newTestAPI()
	sess := locatedSession(t, api)

	w := api.do(http.MethodGet, "/sessions/"+sess.ID()+"/map?zoom=3", "")
	require.Equal(t, http.StatusOK, w.Code)

	var snap display.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, 3, snap.Zoom)
	assert.Equal(t, &user, snap.UserLocation)
	require.NotNil(t, snap.Region)
	assert.Equal(t, 1000.0, snap.Region.LatitudinalMeters)
	require.Len(t, snap.Annotations, 2)
	assert.Equal(t, "coffee-pin", snap.Annotations[0].Icon)
	require.Len(t, snap.Clusters, 1)
	assert.Equal(t, 2, snap.Clusters[0].Count)
	assert.Empty(t, snap.Overlays)
}

func TestMapHandler_SnapshotDefaultsAndErrors(t *testing.T) {
	api := newTestAPI()
	sess := api.store.Create()

	w := api.do(http.MethodGet, "/sessions/"+sess.ID()+"/map", "")
	require.Equal(t, http.StatusOK, w.Code)
	var snap display.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, DefaultZoom, snap.Zoom)
	assert.Nil(t, snap.Region)

	w = api.do(http.MethodGet, "/sessions/"+sess.ID()+"/map?zoom=close", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]interface{}{"error": "invalid zoom format"}, decode(t, w))
}

func TestMapHandler_GeoJSON(t *testing.T) {
	api := newTestAPI()
	sess := locatedSession(t, api)

	w := api.do(http.MethodGet, "/sessions/"+sess.ID()+"/map/geojson?zoom=22", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/geo+json", w.Header().Get("Content-Type"))

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)

	kinds := []interface{}{}
	for _, f := range fc.Features {
		kinds = append(kinds, f.Properties["kind"])
	}
	assert.Equal(t, []interface{}{"user", "pin", "pin"}, kinds)
}

func TestMapHandler_Events(t *testing.T) {
	gin.SetMode(gin.TestMode)
	searcher := new(MockSearcher)
	searcher.On("Search", mock.Anything, mock.Anything).Return([]models.Place{doubleB}, nil)
	hub := events.NewHub()
	store := session.NewStore(searcher, new(MockRouter), hub, session.Options{RegionRadiusMeters: 1000})
	engine := NewRouter(NewSessionHandler(store), NewMapHandler(store, hub))

	srv := httptest.NewServer(engine)
	defer srv.Close()

	sess := store.Create()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/sessions/" + sess.ID() + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Subscribers(sess.ID()) == 1 }, time.Second, 10*time.Millisecond)

	resp, err := http.Post(srv.URL+"/sessions/"+sess.ID()+"/location", "application/json", strings.NewReader(userFix))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	got := []string{}
	for len(got) < 2 {
		var e events.Event
		require.NoError(t, conn.ReadJSON(&e))
		assert.Equal(t, sess.ID(), e.Session)
		got = append(got, e.Type)
	}
	assert.Equal(t, []string{events.TypeLocation, events.TypeSearch}, got)
}
