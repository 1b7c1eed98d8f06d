package bgg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(srv *httptest.Server) *Client {
	return &Client{
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
		RetryDelay: time.Millisecond,
	}
}

const searchXML = `<?xml version="1.0" encoding="utf-8"?>
<items total="3">
	<item type="boardgame" id="9209">
		<name type="primary" value="Ticket to Ride"/>
		<yearpublished value="2004"/>
	</item>
	<item type="boardgame" id="342942">
		<name type="primary" value="Ark Nova"/>
		<yearpublished value="2021"/>
	</item>
	<item type="boardgame" id="1111">
		<name type="primary" value="Mystery Title"/>
	</item>
</items>`

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Ride", r.URL.Query().Get("query"))
		w.Write([]byte(searchXML))
	}))
	defer srv.Close()

	results, err := testClient(srv).Search(context.Background(), "Ride")
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Newest edition first, unknown years last
	assert.Equal(t, "Ark Nova", results[0].Name)
	assert.Equal(t, int64(342942), results[0].BGGID)
	assert.Equal(t, "Ticket to Ride", results[1].Name)
	assert.Equal(t, "Mystery Title", results[2].Name)
	assert.Nil(t, results[2].YearPublished)
}

func TestSearchNoMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?><items total="0"></items>`))
	}))
	defer srv.Close()

	results, err := testClient(srv).Search(context.Background(), "zzzzz")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv).Search(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSearchMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>rate limited"))
	}))
	defer srv.Close()

	_, err := testClient(srv).Search(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrUnavailable)
}

const thingXML = `<?xml version="1.0" encoding="utf-8"?>
<items>
	<item type="boardgame" id="224517">
		<thumbnail>//cf.geekdo-images.com/thumb.jpg</thumbnail>
		<image>//cf.geekdo-images.com/original.jpg</image>
		<name type="primary" sortindex="1" value="Brass: Birmingham"/>
		<name type="alternate" value="Brass II"/>
		<description>Powering the industrial revolution.&amp;#10;&amp;lt;br/&amp;gt;Second edition.</description>
		<yearpublished value="2018"/>
		<minplayers value="2"/>
		<maxplayers value="4"/>
		<minplaytime value="60"/>
		<maxplaytime value="120"/>
		<link type="boardgamecategory" id="1021" value="Economic"/>
		<link type="boardgamecategory" id="1034" value="Trains"/>
		<link type="boardgamemechanic" id="2040" value="Hand Management"/>
		<link type="boardgamedesigner" id="6"    value="Martin Wallace"/>
		<link type="boardgamepublisher" id="23202" value="Roxley"/>
		<statistics page="1">
			<ratings>
				<averageweight value="3.914"/>
			</ratings>
		</statistics>
	</item>
</items>`

func TestFetchGame(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/thing", r.URL.Path)
		assert.Equal(t, "224517", r.URL.Query().Get("id"))
		assert.Equal(t, "1", r.URL.Query().Get("stats"))
		w.Write([]byte(thingXML))
	}))
	defer srv.Close()

	details, err := testClient(srv).FetchGame(context.Background(), 224517)
	require.NoError(t, err)

	assert.Equal(t, int64(224517), details.BGGID)
	assert.Equal(t, "Brass: Birmingham", details.Name)

	require.NotNil(t, details.YearPublished)
	assert.Equal(t, 2018, *details.YearPublished)
	require.NotNil(t, details.MinPlayers)
	assert.Equal(t, 2, *details.MinPlayers)
	require.NotNil(t, details.MaxPlaytime)
	assert.Equal(t, 120, *details.MaxPlaytime)

	// Weight rounded to two decimals
	require.NotNil(t, details.Difficulty)
	assert.Equal(t, 3.91, *details.Difficulty)

	// Entities decoded, markup stripped
	require.NotNil(t, details.Description)
	assert.Equal(t, "Powering the industrial revolution.\nSecond edition.", *details.Description)

	// Protocol-relative URLs get a scheme
	require.NotNil(t, details.ImageURL)
	assert.Equal(t, "https://cf.geekdo-images.com/original.jpg", *details.ImageURL)

	// Link values grouped by type as JSON arrays
	require.NotNil(t, details.Categories)
	assert.JSONEq(t, `["Economic","Trains"]`, *details.Categories)
	require.NotNil(t, details.Mechanics)
	assert.JSONEq(t, `["Hand Management"]`, *details.Mechanics)
	require.NotNil(t, details.Designers)
	assert.JSONEq(t, `["Martin Wallace"]`, *details.Designers)
	require.NotNil(t, details.Publishers)
	assert.JSONEq(t, `["Roxley"]`, *details.Publishers)
}

func TestFetchGameNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?><items></items>`))
	}))
	defer srv.Close()

	_, err := testClient(srv).FetchGame(context.Background(), 999999999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchGameRetriesQueuedThenGivesUp(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	_, err := testClient(srv).FetchGame(context.Background(), 224517)
	assert.ErrorIs(t, err, ErrStillProcessing)
	assert.Equal(t, retryAttempts, attempts)
}

func TestFetchGameRecoversAfterQueued(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusAccepted)
			return
		}
		w.Write([]byte(thingXML))
	}))
	defer srv.Close()

	details, err := testClient(srv).FetchGame(context.Background(), 224517)
	require.NoError(t, err)
	assert.Equal(t, "Brass: Birmingham", details.Name)
	assert.Equal(t, 3, attempts)
}

func TestFetchGameHonorsContextDuringRetry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := testClient(srv)
	client.RetryDelay = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.FetchGame(ctx, 224517)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
