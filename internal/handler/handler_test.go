package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"cardboard/backend/internal/auth"
	"cardboard/backend/internal/config"
	"cardboard/backend/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTest wires a fresh sqlite database and a router with the full API
// surface. Auth is disabled unless a test configures it.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	config.AppConfig = &config.Config{
		Port:           "8080",
		DatabaseDriver: "sqlite",
		DataDir:        dir,
	}

	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	router := gin.New()
	api := router.Group("/api")

	api.POST("/auth/login", Login)

	protected := api.Group("")
	protected.Use(auth.RequireAuth())

	games := protected.Group("/games")
	games.GET("", GetGames)
	games.POST("", CreateGame)
	games.GET("/:id", GetGameByID)
	games.PATCH("/:id", UpdateGame)
	games.DELETE("/:id", DeleteGame)

	games.GET("/:id/sessions", GetSessions)
	games.POST("/:id/sessions", AddSession)

	games.GET("/:id/image", GetGameImage)
	games.POST("/:id/image", UploadGameImage)
	games.DELETE("/:id/image", DeleteGameImage)
	games.GET("/:id/instructions", GetInstructions)
	games.POST("/:id/instructions", UploadInstructions)
	games.DELETE("/:id/instructions", DeleteInstructions)
	games.GET("/:id/scan", GetScan)
	games.POST("/:id/scan", UploadScan)
	games.DELETE("/:id/scan", DeleteScan)
	games.GET("/:id/scan/glb", GetScanGLB)
	games.POST("/:id/scan/glb", UploadScanGLB)
	games.DELETE("/:id/scan/glb", DeleteScanGLB)

	games.GET("/:id/images", GetGalleryImages)
	games.POST("/:id/images", UploadGalleryImage)
	games.PATCH("/:id/images/reorder", ReorderGalleryImages)
	games.GET("/:id/images/:imgID/file", GetGalleryImageFile)
	games.DELETE("/:id/images/:imgID", DeleteGalleryImage)

	protected.DELETE("/sessions/:id", DeleteSession)
	protected.GET("/stats", GetStats)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doRaw(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doUpload(t *testing.T, router *gin.Engine, path, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func createGame(t *testing.T, router *gin.Engine, input GameInput) GameResponse {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/games", input)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp GameResponse
	decodeBody(t, w, &resp)
	return resp
}

func fetchGame(t *testing.T, router *gin.Engine, path string) GameResponse {
	t.Helper()
	w := doJSON(t, router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp GameResponse
	decodeBody(t, w, &resp)
	return resp
}

func strPtr(s string) *string     { return &s }
func intPtr(n int) *int           { return &n }
func int64Ptr(n int64) *int64     { return &n }
func floatPtr(f float64) *float64 { return &f }
