package handler

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"cardboard/backend/internal/config"
	"cardboard/backend/internal/database"
	"cardboard/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// Single-slot attachments: cover image, instructions file, usdz scan, glb
// scan. Each upload replaces the slot; contents are opaque blobs, only the
// extension allowlist is enforced.

func loadGame(c *gin.Context) (*models.Game, bool) {
	id, _ := strconv.Atoi(c.Param("id"))
	var game models.Game
	if err := database.DB.First(&game, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return nil, false
	}
	return &game, true
}

func receiveUpload(c *gin.Context, allowed map[string]bool, maxSize int64, allowedMsg string) (filename, ext string, ok bool) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload"})
		return "", "", false
	}
	safe := safeFilename(file.Filename)
	ext = strings.ToLower(filepath.Ext(safe))
	if !allowed[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": allowedMsg})
		return "", "", false
	}
	if file.Size > maxSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("File exceeds %d MB limit", maxSize>>20)})
		return "", "", false
	}
	return safe, ext, true
}

func saveFormFile(c *gin.Context, dest string) bool {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload"})
		return false
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return false
	}
	if err := c.SaveUploadedFile(file, dest); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return false
	}
	return true
}

func touch(game *models.Game, updates map[string]interface{}) error {
	updates["date_modified"] = time.Now()
	return database.DB.Model(game).Updates(updates).Error
}

// region --- Cover image ---

// GetGameImage godoc
// @Summary      Serve the cached cover image
// @Tags         attachments
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200  "Image bytes"
// @Failure      404  {object}  ErrorResponse "Image not cached"
// @Router       /games/{id}/image [get]
func GetGameImage(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	matches := cachedImageFiles(uint(id))
	if len(matches) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not cached"})
		return
	}
	sort.Strings(matches)
	c.File(matches[0])
}

// UploadGameImage godoc
// @Summary      Upload a cover image
// @Description  Replaces the game's cover with an uploaded file and points image_url at the local copy.
// @Tags         attachments
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int   true  "Game ID"
// @Param        file  formData  file  true  "Image file (.jpg, .png, .gif, .webp)"
// @Success      204  "No Content"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Failure      413  {object}  ErrorResponse "File too large"
// @Router       /games/{id}/image [post]
func UploadGameImage(c *gin.Context) {
	game, ok := loadGame(c)
	if !ok {
		return
	}
	name, ext, ok := receiveUpload(c, allowedImageExts, maxImageSize, "Only image files (.jpg, .png, .gif, .webp) are allowed")
	if !ok {
		return
	}

	deleteCachedImage(game.ID)
	dest := filepath.Join(config.AppConfig.ImagesDir(), fmt.Sprintf("%d%s", game.ID, ext))
	if !saveFormFile(c, dest) {
		return
	}

	if err := touch(game, map[string]interface{}{
		"image_url":    cachedImageURL(game.ID),
		"image_cached": true,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update game"})
		return
	}

	log.Printf("Image uploaded for game %d: %s", game.ID, name)
	c.Status(http.StatusNoContent)
}

// DeleteGameImage godoc
// @Summary      Remove the cover image
// @Tags         attachments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      204  "No Content"
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /games/{id}/image [delete]
func DeleteGameImage(c *gin.Context) {
	game, ok := loadGame(c)
	if !ok {
		return
	}

	deleteCachedImage(game.ID)
	if err := touch(game, map[string]interface{}{
		"image_url":    nil,
		"image_cached": false,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update game"})
		return
	}

	log.Printf("Image deleted for game %d", game.ID)
	c.Status(http.StatusNoContent)
}

// endregion

// region --- Instructions ---

// UploadInstructions godoc
// @Summary      Upload an instructions file
// @Tags         attachments
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int   true  "Game ID"
// @Param        file  formData  file  true  "Rulebook (.pdf or .txt)"
// @Success      204  "No Content"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Failure      413  {object}  ErrorResponse "File too large"
// @Router       /games/{id}/instructions [post]
func UploadInstructions(c *gin.Context) {
	game, ok := loadGame(c)
	if !ok {
		return
	}
	name, _, ok := receiveUpload(c, allowedInstructionsExts, maxInstructionsSize, "Only .pdf and .txt files are allowed")
	if !ok {
		return
	}

	if game.InstructionsFilename != nil {
		os.Remove(instructionsPath(game.ID, *game.InstructionsFilename))
	}

	if !saveFormFile(c, instructionsPath(game.ID, name)) {
		return
	}

	if err := touch(game, map[string]interface{}{"instructions_filename": name}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update game"})
		return
	}

	log.Printf("Instructions uploaded for game %d: %s", game.ID, name)
	c.Status(http.StatusNoContent)
}

// GetInstructions godoc
// @Summary      Serve the instructions file
// @Tags         attachments
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200  "File bytes"
// @Failure      404  {object}  ErrorResponse "No instructions uploaded"
// @Router       /games/{id}/instructions [get]
func GetInstructions(c *gin.Context) {
	game, ok := loadGame(c)
	if !ok {
		return
	}
	if game.InstructionsFilename == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No instructions uploaded"})
		return
	}

	path := instructionsPath(game.ID, *game.InstructionsFilename)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Instructions file not found"})
		return
	}

	disposition := "attachment"
	mediaType := "text/plain"
	if strings.ToLower(filepath.Ext(*game.InstructionsFilename)) == ".pdf" {
		disposition = "inline"
		mediaType = "application/pdf"
	}
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, *game.InstructionsFilename))
	c.Header("Content-Type", mediaType)
	c.File(path)
}

// DeleteInstructions godoc
// @Summary      Remove the instructions file
// @Tags         attachments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      204  "No Content"
// @Failure      404  {object}  ErrorResponse "No instructions to delete"
// @Router       /games/{id}/instructions [delete]
func DeleteInstructions(c *gin.Context) {
	game, ok := loadGame(c)
	if !ok {
		return
	}
	if game.InstructionsFilename == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No instructions to delete"})
		return
	}

	os.Remove(instructionsPath(game.ID, *game.InstructionsFilename))
	if err := touch(game, map[string]interface{}{"instructions_filename": nil}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update game"})
		return
	}

	log.Printf("Instructions deleted for game %d", game.ID)
	c.Status(http.StatusNoContent)
}

// endregion

// region --- 3D scans ---

// Two slots per game: a .usdz scan for iOS viewers and a .glb for the web
// viewer. scan_featured is cleared when the last of the two goes away.

// UploadScan godoc
// @Summary      Upload a usdz 3D scan
// @Tags         attachments
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int   true  "Game ID"
// @Param        file  formData  file  true  "Scan (.usdz)"
// @Success      204  "No Content"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Failure      413  {object}  ErrorResponse "File too large"
// @Router       /games/{id}/scan [post]
func UploadScan(c *gin.Context) {
	game, ok := loadGame(c)
	if !ok {
		return
	}
	name, _, ok := receiveUpload(c, map[string]bool{".usdz": true}, maxScanSize, "Only .usdz files are allowed")
	if !ok {
		return
	}

	os.Remove(scanPath(game.ID))
	if !saveFormFile(c, scanPath(game.ID)) {
		return
	}

	if err := touch(game, map[string]interface{}{"scan_filename": name}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update game"})
		return
	}

	log.Printf("3D scan uploaded for game %d: %s", game.ID, name)
	c.Status(http.StatusNoContent)
}

// GetScan godoc
// @Summary      Serve the usdz 3D scan
// @Tags         attachments
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200  "File bytes"
// @Failure      404  {object}  ErrorResponse "No 3D scan uploaded"
// @Router       /games/{id}/scan [get]
func GetScan(c *gin.Context) {
	game, ok := loadGame(c)
	if !ok {
		return
	}
	if game.ScanFilename == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No 3D scan uploaded"})
		return
	}
	path := scanPath(game.ID)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "3D scan file not found"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", *game.ScanFilename))
	c.Header("Content-Type", "model/vnd.usdz+zip")
	c.File(path)
}

// DeleteScan godoc
// @Summary      Remove the usdz 3D scan
// @Tags         attachments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      204  "No Content"
// @Failure      404  {object}  ErrorResponse "No 3D scan to delete"
// @Router       /games/{id}/scan [delete]
func DeleteScan(c *gin.Context) {
	game, ok := loadGame(c)
	if !ok {
		return
	}
	if game.ScanFilename == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No 3D scan to delete"})
		return
	}

	os.Remove(scanPath(game.ID))
	updates := map[string]interface{}{"scan_filename": nil}
	if game.ScanGLBFilename == nil {
		updates["scan_featured"] = false
	}
	if err := touch(game, updates); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update game"})
		return
	}

	log.Printf("3D scan deleted for game %d", game.ID)
	c.Status(http.StatusNoContent)
}

// UploadScanGLB godoc
// @Summary      Upload a glb 3D scan
// @Tags         attachments
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int   true  "Game ID"
// @Param        file  formData  file  true  "Scan (.glb)"
// @Success      204  "No Content"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Failure      413  {object}  ErrorResponse "File too large"
// @Router       /games/{id}/scan/glb [post]
func UploadScanGLB(c *gin.Context) {
	game, ok := loadGame(c)
	if !ok {
		return
	}
	name, _, ok := receiveUpload(c, map[string]bool{".glb": true}, maxScanSize, "Only .glb files are allowed")
	if !ok {
		return
	}

	os.Remove(scanGLBPath(game.ID))
	if !saveFormFile(c, scanGLBPath(game.ID)) {
		return
	}

	if err := touch(game, map[string]interface{}{"scan_glb_filename": name}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update game"})
		return
	}

	log.Printf("GLB scan uploaded for game %d: %s", game.ID, name)
	c.Status(http.StatusNoContent)
}

// GetScanGLB godoc
// @Summary      Serve the glb 3D scan
// @Tags         attachments
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200  "File bytes"
// @Failure      404  {object}  ErrorResponse "No GLB scan uploaded"
// @Router       /games/{id}/scan/glb [get]
func GetScanGLB(c *gin.Context) {
	game, ok := loadGame(c)
	if !ok {
		return
	}
	if game.ScanGLBFilename == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No GLB scan uploaded"})
		return
	}
	path := scanGLBPath(game.ID)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "GLB file not found"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", *game.ScanGLBFilename))
	c.Header("Content-Type", "model/gltf-binary")
	c.File(path)
}

// DeleteScanGLB godoc
// @Summary      Remove the glb 3D scan
// @Tags         attachments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      204  "No Content"
// @Failure      404  {object}  ErrorResponse "No GLB scan to delete"
// @Router       /games/{id}/scan/glb [delete]
func DeleteScanGLB(c *gin.Context) {
	game, ok := loadGame(c)
	if !ok {
		return
	}
	if game.ScanGLBFilename == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No GLB scan to delete"})
		return
	}

	os.Remove(scanGLBPath(game.ID))
	updates := map[string]interface{}{"scan_glb_filename": nil}
	if game.ScanFilename == nil {
		updates["scan_featured"] = false
	}
	if err := touch(game, updates); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update game"})
		return
	}

	log.Printf("GLB scan deleted for game %d", game.ID)
	c.Status(http.StatusNoContent)
}

// endregion
