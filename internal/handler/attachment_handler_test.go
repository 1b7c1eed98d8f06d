package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoverImageLifecycle(t *testing.T) {
	router := setupTest(t)
	game := createGame(t, router, GameInput{Name: "Frosthaven"})
	path := fmt.Sprintf("/api/games/%d/image", game.ID)

	// Nothing cached yet
	w := doJSON(t, router, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doUpload(t, router, path, "cover.jpg", []byte("jpeg bytes"))
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	reloaded := fetchGame(t, router, fmt.Sprintf("/api/games/%d", game.ID))
	assert.True(t, reloaded.ImageCached)
	require.NotNil(t, reloaded.ImageURL)
	assert.Equal(t, path, *reloaded.ImageURL)

	w = doJSON(t, router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpeg bytes", w.Body.String())

	// A new upload replaces the old file even across extensions
	w = doUpload(t, router, path, "cover.png", []byte("png bytes"))
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png bytes", w.Body.String())

	w = doJSON(t, router, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	reloaded = fetchGame(t, router, fmt.Sprintf("/api/games/%d", game.ID))
	assert.False(t, reloaded.ImageCached)
	assert.Nil(t, reloaded.ImageURL)

	w = doJSON(t, router, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadCoverImageRejectsBadExtension(t *testing.T) {
	router := setupTest(t)
	game := createGame(t, router, GameInput{Name: "Frosthaven"})

	w := doUpload(t, router, fmt.Sprintf("/api/games/%d/image", game.ID), "cover.svg", []byte("<svg/>"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInstructionsLifecycle(t *testing.T) {
	router := setupTest(t)
	game := createGame(t, router, GameInput{Name: "Frosthaven"})
	path := fmt.Sprintf("/api/games/%d/instructions", game.ID)

	w := doJSON(t, router, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doUpload(t, router, path, "rulebook v2.pdf", []byte("%PDF-1.4"))
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	// Unsafe characters in the upload name are replaced
	reloaded := fetchGame(t, router, fmt.Sprintf("/api/games/%d", game.ID))
	require.NotNil(t, reloaded.InstructionsFilename)
	assert.Equal(t, "rulebook_v2.pdf", *reloaded.InstructionsFilename)

	w = doJSON(t, router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "inline")

	// Text rulebooks download instead of rendering
	w = doUpload(t, router, path, "notes.txt", []byte("setup notes"))
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	w = doJSON(t, router, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadInstructionsRejectsBadExtension(t *testing.T) {
	router := setupTest(t)
	game := createGame(t, router, GameInput{Name: "Frosthaven"})

	w := doUpload(t, router, fmt.Sprintf("/api/games/%d/instructions", game.ID), "rules.docx", []byte("zip"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScanSlots(t *testing.T) {
	router := setupTest(t)
	game := createGame(t, router, GameInput{Name: "Frosthaven"})
	gamePath := fmt.Sprintf("/api/games/%d", game.ID)

	w := doUpload(t, router, gamePath+"/scan", "box.usdz", []byte("usdz data"))
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	w = doUpload(t, router, gamePath+"/scan/glb", "box.glb", []byte("glb data"))
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	reloaded := fetchGame(t, router, gamePath)
	require.NotNil(t, reloaded.ScanFilename)
	assert.Equal(t, "box.usdz", *reloaded.ScanFilename)
	require.NotNil(t, reloaded.ScanGLBFilename)
	assert.Equal(t, "box.glb", *reloaded.ScanGLBFilename)

	w = doJSON(t, router, http.MethodGet, gamePath+"/scan", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "model/vnd.usdz+zip", w.Header().Get("Content-Type"))

	w = doJSON(t, router, http.MethodGet, gamePath+"/scan/glb", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "model/gltf-binary", w.Header().Get("Content-Type"))
}

func TestDeletingLastScanClearsFeatured(t *testing.T) {
	router := setupTest(t)
	game := createGame(t, router, GameInput{Name: "Frosthaven"})
	gamePath := fmt.Sprintf("/api/games/%d", game.ID)

	w := doUpload(t, router, gamePath+"/scan", "box.usdz", []byte("usdz"))
	require.Equal(t, http.StatusNoContent, w.Code)
	w = doUpload(t, router, gamePath+"/scan/glb", "box.glb", []byte("glb"))
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRaw(t, router, http.MethodPatch, gamePath, `{"scan_featured": true}`)
	require.Equal(t, http.StatusOK, w.Code)

	// One slot remains, the flag survives
	w = doJSON(t, router, http.MethodDelete, gamePath+"/scan", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	reloaded := fetchGame(t, router, gamePath)
	assert.Nil(t, reloaded.ScanFilename)
	assert.True(t, reloaded.ScanFeatured)

	// Dropping the last slot clears it
	w = doJSON(t, router, http.MethodDelete, gamePath+"/scan/glb", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	reloaded = fetchGame(t, router, gamePath)
	assert.Nil(t, reloaded.ScanGLBFilename)
	assert.False(t, reloaded.ScanFeatured)
}

func TestUploadScanRejectsWrongExtension(t *testing.T) {
	router := setupTest(t)
	game := createGame(t, router, GameInput{Name: "Frosthaven"})

	w := doUpload(t, router, fmt.Sprintf("/api/games/%d/scan", game.ID), "box.glb", []byte("glb"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doUpload(t, router, fmt.Sprintf("/api/games/%d/scan/glb", game.ID), "box.usdz", []byte("usdz"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
