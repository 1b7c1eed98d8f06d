package handler

import (
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"cardboard/backend/internal/config"
	"cardboard/backend/internal/database"
	"cardboard/backend/internal/models"
)

const (
	maxImageSize        = 10 << 20  // 10 MB
	maxInstructionsSize = 20 << 20  // 20 MB
	maxScanSize         = 200 << 20 // 200 MB
)

var (
	allowedImageExts        = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}
	allowedInstructionsExts = map[string]bool{".pdf": true, ".txt": true}

	unsafeChars = regexp.MustCompile(`[^\w.\-]`)
)

// safeFilename strips path components and replaces unsafe characters.
func safeFilename(name string) string {
	name = filepath.Base(name)
	name = unsafeChars.ReplaceAllString(name, "_")
	if len(name) > 200 {
		name = name[:200]
	}
	return name
}

// safeExt derives a file extension from the content type, falling back to the URL.
func safeExt(rawURL, contentType string) string {
	mediaType := strings.TrimSpace(strings.Split(contentType, ";")[0])
	exts, _ := mime.ExtensionsByType(mediaType)
	for _, ext := range exts {
		if allowedImageExts[ext] {
			return ext
		}
	}
	urlExt := strings.ToLower(filepath.Ext(strings.Split(rawURL, "?")[0]))
	if allowedImageExts[urlExt] {
		return urlExt
	}
	return ".jpg"
}

func instructionsPath(gameID uint, filename string) string {
	return filepath.Join(config.AppConfig.InstructionsDir(), fmt.Sprintf("%d_%s", gameID, filepath.Base(filename)))
}

func scanPath(gameID uint) string {
	return filepath.Join(config.AppConfig.ScansDir(), fmt.Sprintf("%d.usdz", gameID))
}

func scanGLBPath(gameID uint) string {
	return filepath.Join(config.AppConfig.ScansDir(), fmt.Sprintf("%d.glb", gameID))
}

func galleryGameDir(gameID uint) string {
	return filepath.Join(config.AppConfig.GalleryDir(), fmt.Sprintf("%d", gameID))
}

func galleryFilePath(gameID uint, filename string) string {
	return filepath.Join(galleryGameDir(gameID), filepath.Base(filename))
}

// cachedImageFiles lists any locally cached cover files for a game.
func cachedImageFiles(gameID uint) []string {
	matches, _ := filepath.Glob(filepath.Join(config.AppConfig.ImagesDir(), fmt.Sprintf("%d.*", gameID)))
	return matches
}

func deleteCachedImage(gameID uint) {
	for _, path := range cachedImageFiles(gameID) {
		os.Remove(path)
	}
}

func cachedImageURL(gameID uint) string {
	return fmt.Sprintf("/api/games/%d/image", gameID)
}

// cacheGameImage downloads a remote cover and rewrites the game's image_url
// to the local copy. It runs detached after create/update responds; failure
// leaves the remote URL in place. The URL is re-checked before and after the
// download so an edit made in the meantime wins.
func cacheGameImage(gameID uint, imageURL string) {
	if imageURL == "" || strings.HasPrefix(imageURL, "/api/") {
		return // already local or empty
	}

	parsed, err := url.Parse(imageURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		log.Printf("Image cache refused for game %d: unsupported URL %q", gameID, imageURL)
		return
	}

	var game models.Game
	if err := database.DB.First(&game, gameID).Error; err != nil || game.ImageURL == nil || *game.ImageURL != imageURL {
		log.Printf("Image cache skipped for game %d: URL has changed", gameID)
		return
	}

	if err := os.MkdirAll(config.AppConfig.ImagesDir(), 0o755); err != nil {
		log.Printf("Image cache failed for game %d: %v", gameID, err)
		return
	}

	req, err := http.NewRequest(http.MethodGet, imageURL, nil)
	if err != nil {
		return
	}
	req.Header.Set("User-Agent", "Cardboard/1.0")

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Printf("Image cache failed for game %d: %v", gameID, err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("Image cache failed for game %d: status %d", gameID, resp.StatusCode)
		return
	}

	ext := safeExt(imageURL, resp.Header.Get("Content-Type"))
	dest := filepath.Join(config.AppConfig.ImagesDir(), fmt.Sprintf("%d%s", gameID, ext))

	out, err := os.Create(dest)
	if err != nil {
		log.Printf("Image cache failed for game %d: %v", gameID, err)
		return
	}
	written, err := io.Copy(out, io.LimitReader(resp.Body, maxImageSize+1))
	out.Close()
	if err != nil || written > maxImageSize {
		os.Remove(dest)
		log.Printf("Image cache failed for game %d: oversized or truncated download", gameID)
		return
	}

	// The user may have changed the URL while we were downloading.
	if err := database.DB.First(&game, gameID).Error; err != nil || game.ImageURL == nil || *game.ImageURL != imageURL {
		os.Remove(dest)
		log.Printf("Image cache discarded for game %d: URL changed during download", gameID)
		return
	}

	local := cachedImageURL(gameID)
	database.DB.Model(&game).Updates(map[string]interface{}{
		"image_url":    local,
		"image_cached": true,
	})
	log.Printf("Image cached for game %d", gameID)
}

// deleteGameFiles removes every file attached to a game. Called on game delete.
func deleteGameFiles(game *models.Game) {
	deleteCachedImage(game.ID)
	os.Remove(scanPath(game.ID))
	os.Remove(scanGLBPath(game.ID))
	if game.InstructionsFilename != nil {
		os.Remove(instructionsPath(game.ID, *game.InstructionsFilename))
	}
	os.RemoveAll(galleryGameDir(game.ID))
}
