package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cardboard/backend/internal/bgg"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBGGTest(t *testing.T, upstream http.HandlerFunc) *gin.Engine {
	t.Helper()
	router := setupTest(t)

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	saved := bgg.DefaultClient
	bgg.DefaultClient = &bgg.Client{
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
		RetryDelay: time.Millisecond,
	}
	t.Cleanup(func() { bgg.DefaultClient = saved })

	router.GET("/api/bgg/search", SearchBGG)
	router.GET("/api/bgg/game/:bggID", GetBGGGame)
	return router
}

func TestSearchBGGRejectsShortQuery(t *testing.T) {
	router := setupBGGTest(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called for a short query")
	})

	w := doJSON(t, router, http.MethodGet, "/api/bgg/search?q=a", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/bgg/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchBGGProxiesResults(t *testing.T) {
	router := setupBGGTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?>
<items total="1">
	<item type="boardgame" id="266192">
		<name type="primary" value="Wingspan"/>
		<yearpublished value="2019"/>
	</item>
</items>`))
	})

	w := doJSON(t, router, http.MethodGet, "/api/bgg/search?q=wingspan", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var results []bgg.SearchResult
	decodeBody(t, w, &results)
	require.Len(t, results, 1)
	assert.Equal(t, int64(266192), results[0].BGGID)
	assert.Equal(t, "Wingspan", results[0].Name)
}

func TestSearchBGGUpstreamDown(t *testing.T) {
	router := setupBGGTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	w := doJSON(t, router, http.MethodGet, "/api/bgg/search?q=wingspan", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetBGGGameNotFound(t *testing.T) {
	router := setupBGGTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?><items></items>`))
	})

	w := doJSON(t, router, http.MethodGet, "/api/bgg/game/999999999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBGGGameStillProcessing(t *testing.T) {
	router := setupBGGTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	w := doJSON(t, router, http.MethodGet, "/api/bgg/game/266192", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp ErrorResponse
	decodeBody(t, w, &resp)
	assert.Contains(t, resp.Error, "still processing")
}

func TestGetBGGGameUpstreamDown(t *testing.T) {
	router := setupBGGTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	w := doJSON(t, router, http.MethodGet, "/api/bgg/game/266192", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetBGGGameInvalidID(t *testing.T) {
	router := setupBGGTest(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called for an invalid id")
	})

	w := doJSON(t, router, http.MethodGet, "/api/bgg/game/notanumber", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
