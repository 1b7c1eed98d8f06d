package handler

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cardboard/backend/internal/database"
	"cardboard/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// region --- DTOs ---

// GalleryImageResponse is the wire representation of one gallery entry.
type GalleryImageResponse struct {
	ID        uint   `json:"id"`
	GameID    uint   `json:"game_id"`
	Filename  string `json:"filename"`
	SortOrder int    `json:"sort_order"`
}

// ReorderInput carries the full desired ordering of a game's gallery.
type ReorderInput struct {
	Order []uint `json:"order" binding:"required"`
}

func newGalleryImageResponse(img models.GameImage) GalleryImageResponse {
	return GalleryImageResponse{
		ID:        img.ID,
		GameID:    img.GameID,
		Filename:  img.Filename,
		SortOrder: img.SortOrder,
	}
}

func galleryImageURL(gameID, imgID uint) string {
	return "/api/games/" + strconv.FormatUint(uint64(gameID), 10) + "/images/" + strconv.FormatUint(uint64(imgID), 10) + "/file"
}

// endregion

// GetGalleryImages godoc
// @Summary      List a game's gallery
// @Tags         gallery
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200  {array}   GalleryImageResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /games/{id}/images [get]
func GetGalleryImages(c *gin.Context) {
	gameID, _ := strconv.Atoi(c.Param("id"))

	var game models.Game
	if err := database.DB.First(&game, gameID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	var images []models.GameImage
	database.DB.Where("game_id = ?", gameID).Order("sort_order").Find(&images)

	response := make([]GalleryImageResponse, 0, len(images))
	for _, img := range images {
		response = append(response, newGalleryImageResponse(img))
	}
	c.JSON(http.StatusOK, response)
}

// UploadGalleryImage godoc
// @Summary      Add a gallery image
// @Description  Appends an image to the game's gallery. The first image becomes the game's cover.
// @Tags         gallery
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int   true  "Game ID"
// @Param        file  formData  file  true  "Image file (.jpg, .png, .gif, .webp)"
// @Success      201  {object}  GalleryImageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Failure      413  {object}  ErrorResponse "File too large"
// @Router       /games/{id}/images [post]
func UploadGalleryImage(c *gin.Context) {
	gameID, _ := strconv.Atoi(c.Param("id"))

	var game models.Game
	if err := database.DB.First(&game, gameID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image files (.jpg, .png, .gif, .webp) are allowed"})
		return
	}
	if file.Size > maxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File exceeds 10 MB limit"})
		return
	}

	var last models.GameImage
	nextOrder := 0
	if err := database.DB.Where("game_id = ?", gameID).Order("sort_order DESC").First(&last).Error; err == nil {
		nextOrder = last.SortOrder + 1
	}

	filename := uuid.NewString() + ext
	if err := os.MkdirAll(galleryGameDir(game.ID), 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}
	if err := c.SaveUploadedFile(file, galleryFilePath(game.ID, filename)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	img := models.GameImage{GameID: game.ID, Filename: filename, SortOrder: nextOrder}
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&img).Error; err != nil {
			return err
		}
		if nextOrder == 0 {
			return tx.Model(&game).Updates(map[string]interface{}{
				"image_url":     galleryImageURL(game.ID, img.ID),
				"image_cached":  false,
				"date_modified": time.Now(),
			}).Error
		}
		return nil
	})
	if err != nil {
		os.Remove(galleryFilePath(game.ID, filename))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	log.Printf("Gallery image uploaded for game %d: %s (order=%d)", game.ID, filename, nextOrder)
	c.JSON(http.StatusCreated, newGalleryImageResponse(img))
}

// GetGalleryImageFile godoc
// @Summary      Serve a gallery image file
// @Tags         gallery
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id     path  int  true  "Game ID"
// @Param        imgID  path  int  true  "Image ID"
// @Success      200  "Image bytes"
// @Failure      404  {object}  ErrorResponse "Image not found"
// @Router       /games/{id}/images/{imgID}/file [get]
func GetGalleryImageFile(c *gin.Context) {
	gameID, _ := strconv.Atoi(c.Param("id"))
	imgID, _ := strconv.Atoi(c.Param("imgID"))

	var img models.GameImage
	if err := database.DB.Where("id = ? AND game_id = ?", imgID, gameID).First(&img).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	path := galleryFilePath(img.GameID, img.Filename)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image file not found"})
		return
	}
	c.File(path)
}

// DeleteGalleryImage godoc
// @Summary      Delete a gallery image
// @Description  Removes one image, renumbers the rest contiguously and promotes the next image to cover when needed.
// @Tags         gallery
// @Produce      json
// @Security     BearerAuth
// @Param        id     path  int  true  "Game ID"
// @Param        imgID  path  int  true  "Image ID"
// @Success      204  "No Content"
// @Failure      404  {object}  ErrorResponse "Image not found"
// @Router       /games/{id}/images/{imgID} [delete]
func DeleteGalleryImage(c *gin.Context) {
	gameID, _ := strconv.Atoi(c.Param("id"))
	imgID, _ := strconv.Atoi(c.Param("imgID"))

	var game models.Game
	if err := database.DB.First(&game, gameID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	var img models.GameImage
	if err := database.DB.Where("id = ? AND game_id = ?", imgID, gameID).First(&img).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	wasPrimary := img.SortOrder == 0
	filePath := galleryFilePath(game.ID, img.Filename)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&img).Error; err != nil {
			return err
		}

		var remaining []models.GameImage
		if err := tx.Where("game_id = ?", gameID).Order("sort_order").Find(&remaining).Error; err != nil {
			return err
		}
		for i := range remaining {
			if remaining[i].SortOrder != i {
				if err := tx.Model(&remaining[i]).Update("sort_order", i).Error; err != nil {
					return err
				}
			}
		}

		referenced := game.ImageURL != nil && strings.Contains(*game.ImageURL, "/images/"+strconv.Itoa(imgID)+"/file")
		if wasPrimary || referenced {
			updates := map[string]interface{}{"image_cached": false, "date_modified": time.Now()}
			if len(remaining) > 0 {
				updates["image_url"] = galleryImageURL(game.ID, remaining[0].ID)
			} else {
				updates["image_url"] = nil
			}
			return tx.Model(&game).Updates(updates).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		return
	}

	// File removal after the commit; a failed commit must not orphan rows.
	if err := os.Remove(filePath); err != nil {
		log.Printf("Could not delete gallery file %s (game %d)", filePath, game.ID)
	}

	log.Printf("Gallery image %d deleted for game %d", imgID, game.ID)
	c.Status(http.StatusNoContent)
}

// ReorderGalleryImages godoc
// @Summary      Reorder a game's gallery
// @Description  Takes the complete ordered list of image ids. Rejected unless the set matches the stored images exactly; existing order is untouched on rejection.
// @Tags         gallery
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int           true  "Game ID"
// @Param        input body  ReorderInput  true  "Full image id ordering"
// @Success      204  "No Content"
// @Failure      400  {object}  ErrorResponse "Order set mismatch"
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /games/{id}/images/reorder [patch]
func ReorderGalleryImages(c *gin.Context) {
	gameID, _ := strconv.Atoi(c.Param("id"))

	var game models.Game
	if err := database.DB.First(&game, gameID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	var input ReorderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var images []models.GameImage
	database.DB.Where("game_id = ?", gameID).Find(&images)

	existing := make(map[uint]*models.GameImage, len(images))
	for i := range images {
		existing[images[i].ID] = &images[i]
	}

	submitted := make(map[uint]bool, len(input.Order))
	for _, id := range input.Order {
		submitted[id] = true
	}
	valid := len(submitted) == len(input.Order) && len(submitted) == len(existing)
	if valid {
		for id := range existing {
			if !submitted[id] {
				valid = false
				break
			}
		}
	}
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must contain exactly the IDs of all images for this game"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for i, id := range input.Order {
			if err := tx.Model(existing[id]).Update("sort_order", i).Error; err != nil {
				return err
			}
		}
		if len(input.Order) > 0 {
			return tx.Model(&game).Updates(map[string]interface{}{
				"image_url":     galleryImageURL(game.ID, input.Order[0]),
				"image_cached":  false,
				"date_modified": time.Now(),
			}).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder images"})
		return
	}

	log.Printf("Gallery images reordered for game %d", game.ID)
	c.Status(http.StatusNoContent)
}
