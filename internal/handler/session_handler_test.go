package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSessionAdvancesLastPlayed(t *testing.T) {
	router := setupTest(t)

	game := createGame(t, router, GameInput{Name: "Cascadia"})
	path := fmt.Sprintf("/api/games/%d/sessions", game.ID)

	w := doJSON(t, router, http.MethodPost, path, SessionInput{PlayedAt: "2024-01-01", PlayerCount: intPtr(3)})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	reloaded := fetchGame(t, router, fmt.Sprintf("/api/games/%d", game.ID))
	require.NotNil(t, reloaded.LastPlayed)
	assert.Equal(t, "2024-01-01", *reloaded.LastPlayed)

	// A newer play advances the date
	w = doJSON(t, router, http.MethodPost, path, SessionInput{PlayedAt: "2024-03-01"})
	require.Equal(t, http.StatusCreated, w.Code)

	reloaded = fetchGame(t, router, fmt.Sprintf("/api/games/%d", game.ID))
	require.NotNil(t, reloaded.LastPlayed)
	assert.Equal(t, "2024-03-01", *reloaded.LastPlayed)

	// Backfilling an older play does not move it
	w = doJSON(t, router, http.MethodPost, path, SessionInput{PlayedAt: "2024-02-01"})
	require.Equal(t, http.StatusCreated, w.Code)

	reloaded = fetchGame(t, router, fmt.Sprintf("/api/games/%d", game.ID))
	require.NotNil(t, reloaded.LastPlayed)
	assert.Equal(t, "2024-03-01", *reloaded.LastPlayed)
}

func TestDeleteSessionKeepsLastPlayed(t *testing.T) {
	router := setupTest(t)

	game := createGame(t, router, GameInput{Name: "Cascadia"})
	path := fmt.Sprintf("/api/games/%d/sessions", game.ID)

	w := doJSON(t, router, http.MethodPost, path, SessionInput{PlayedAt: "2024-01-01"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, path, SessionInput{PlayedAt: "2024-03-01"})
	require.Equal(t, http.StatusCreated, w.Code)
	var newest SessionResponse
	decodeBody(t, w, &newest)

	// Deleting the newest logged play must not roll last_played back
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/sessions/%d", newest.ID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	reloaded := fetchGame(t, router, fmt.Sprintf("/api/games/%d", game.ID))
	require.NotNil(t, reloaded.LastPlayed)
	assert.Equal(t, "2024-03-01", *reloaded.LastPlayed)

	var sessions []SessionResponse
	w = doJSON(t, router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &sessions)
	assert.Len(t, sessions, 1)
}

func TestGetSessionsNewestFirst(t *testing.T) {
	router := setupTest(t)

	game := createGame(t, router, GameInput{Name: "Cascadia"})
	path := fmt.Sprintf("/api/games/%d/sessions", game.ID)

	for _, date := range []string{"2024-02-01", "2024-04-01", "2024-01-15"} {
		w := doJSON(t, router, http.MethodPost, path, SessionInput{PlayedAt: date})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var sessions []SessionResponse
	decodeBody(t, w, &sessions)
	require.Len(t, sessions, 3)
	assert.Equal(t, "2024-04-01", sessions[0].PlayedAt)
	assert.Equal(t, "2024-02-01", sessions[1].PlayedAt)
	assert.Equal(t, "2024-01-15", sessions[2].PlayedAt)
}

func TestAddSessionRejectsBadDate(t *testing.T) {
	router := setupTest(t)

	game := createGame(t, router, GameInput{Name: "Cascadia"})

	w := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/games/%d/sessions", game.ID),
		SessionInput{PlayedAt: "01/05/2024"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionsUnknownGame(t *testing.T) {
	router := setupTest(t)

	w := doJSON(t, router, http.MethodGet, "/api/games/9999/sessions", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/games/9999/sessions", SessionInput{PlayedAt: "2024-01-01"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/sessions/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
