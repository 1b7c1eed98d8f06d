package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cardboard/backend/internal/database"
	"cardboard/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

const dateLayout = "2006-01-02"

// GameInput defines the creatable fields of a game. Imports from the catalog
// proxy produce exactly this shape.
type GameInput struct {
	Name             string   `json:"name" binding:"required"`
	BGGID            *int64   `json:"bgg_id"`
	YearPublished    *int     `json:"year_published"`
	MinPlayers       *int     `json:"min_players"`
	MaxPlayers       *int     `json:"max_players"`
	MinPlaytime      *int     `json:"min_playtime"`
	MaxPlaytime      *int     `json:"max_playtime"`
	Difficulty       *float64 `json:"difficulty"`
	Description      *string  `json:"description"`
	ImageURL         *string  `json:"image_url"`
	ThumbnailURL     *string  `json:"thumbnail_url"`
	Categories       *string  `json:"categories"`
	Mechanics        *string  `json:"mechanics"`
	Designers        *string  `json:"designers"`
	Publishers       *string  `json:"publishers"`
	Labels           *string  `json:"labels"`
	UserRating       *int     `json:"user_rating"`
	UserNotes        *string  `json:"user_notes"`
	LastPlayed       *string  `json:"last_played"`
	Status           *string  `json:"status"`
	PurchaseDate     *string  `json:"purchase_date"`
	PurchasePrice    *float64 `json:"purchase_price"`
	PurchaseLocation *string  `json:"purchase_location"`
}

// GameResponse is the full wire representation of a game.
type GameResponse struct {
	ID                   uint      `json:"id"`
	BGGID                *int64    `json:"bgg_id"`
	Name                 string    `json:"name"`
	YearPublished        *int      `json:"year_published"`
	MinPlayers           *int      `json:"min_players"`
	MaxPlayers           *int      `json:"max_players"`
	MinPlaytime          *int      `json:"min_playtime"`
	MaxPlaytime          *int      `json:"max_playtime"`
	Difficulty           *float64  `json:"difficulty"`
	Description          *string   `json:"description"`
	ImageURL             *string   `json:"image_url"`
	ThumbnailURL         *string   `json:"thumbnail_url"`
	Categories           *string   `json:"categories"`
	Mechanics            *string   `json:"mechanics"`
	Designers            *string   `json:"designers"`
	Publishers           *string   `json:"publishers"`
	Labels               *string   `json:"labels"`
	UserRating           *int      `json:"user_rating"`
	UserNotes            *string   `json:"user_notes"`
	LastPlayed           *string   `json:"last_played"`
	Status               string    `json:"status"`
	PurchaseDate         *string   `json:"purchase_date"`
	PurchasePrice        *float64  `json:"purchase_price"`
	PurchaseLocation     *string   `json:"purchase_location"`
	ImageCached          bool      `json:"image_cached"`
	InstructionsFilename *string   `json:"instructions_filename"`
	ScanFilename         *string   `json:"scan_filename"`
	ScanGLBFilename      *string   `json:"scan_glb_filename"`
	ScanFeatured         bool      `json:"scan_featured"`
	DateAdded            time.Time `json:"date_added"`
	DateModified         time.Time `json:"date_modified"`
}

// ValidationErrorResponse carries field-level detail for a rejected payload.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func fmtDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func newGameResponse(game models.Game) GameResponse {
	return GameResponse{
		ID:                   game.ID,
		BGGID:                game.BGGID,
		Name:                 game.Name,
		YearPublished:        game.YearPublished,
		MinPlayers:           game.MinPlayers,
		MaxPlayers:           game.MaxPlayers,
		MinPlaytime:          game.MinPlaytime,
		MaxPlaytime:          game.MaxPlaytime,
		Difficulty:           game.Difficulty,
		Description:          game.Description,
		ImageURL:             game.ImageURL,
		ThumbnailURL:         game.ThumbnailURL,
		Categories:           game.Categories,
		Mechanics:            game.Mechanics,
		Designers:            game.Designers,
		Publishers:           game.Publishers,
		Labels:               game.Labels,
		UserRating:           game.UserRating,
		UserNotes:            game.UserNotes,
		LastPlayed:           fmtDate(game.LastPlayed),
		Status:               string(game.Status),
		PurchaseDate:         fmtDate(game.PurchaseDate),
		PurchasePrice:        game.PurchasePrice,
		PurchaseLocation:     game.PurchaseLocation,
		ImageCached:          game.ImageCached,
		InstructionsFilename: game.InstructionsFilename,
		ScanFilename:         game.ScanFilename,
		ScanGLBFilename:      game.ScanGLBFilename,
		ScanFeatured:         game.ScanFeatured,
		DateAdded:            game.DateAdded,
		DateModified:         game.DateModified,
	}
}

// endregion

// region --- Sorting ---

// nameSortExpr ignores a leading "The " so e.g. "The Crew" files under C.
const nameSortExpr = "CASE WHEN LOWER(name) LIKE 'the %' THEN SUBSTR(name, 5) ELSE name END"

// sortColumns whitelists sortable columns. The bool marks nullable ones,
// which sort last regardless of direction.
var sortColumns = map[string]struct {
	expr     string
	nullable bool
}{
	"name":           {nameSortExpr, false},
	"min_players":    {"min_players", true},
	"max_players":    {"max_players", true},
	"min_playtime":   {"min_playtime", true},
	"max_playtime":   {"max_playtime", true},
	"difficulty":     {"difficulty", true},
	"user_rating":    {"user_rating", true},
	"last_played":    {"last_played", true},
	"date_added":     {"date_added", false},
	"status":         {"status", false},
	"purchase_price": {"purchase_price", true},
	"purchase_date":  {"purchase_date", true},
}

// endregion

// GetGames godoc
// @Summary      List the collection
// @Description  Returns all games, optionally filtered by a name substring and sorted.
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        search   query  string  false  "Case-insensitive name substring"
// @Param        sort_by  query  string  false  "One of name, min_players, max_players, min_playtime, max_playtime, difficulty, user_rating, last_played, date_added, status, purchase_price, purchase_date"
// @Param        sort_dir query  string  false  "asc or desc"  default(asc)
// @Success      200  {array}   GameResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /games [get]
func GetGames(c *gin.Context) {
	query := database.DB.Model(&models.Game{})

	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	sortBy := c.DefaultQuery("sort_by", "name")
	col, ok := sortColumns[sortBy]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown sort_by value"})
		return
	}

	sortDir := c.DefaultQuery("sort_dir", "asc")
	if sortDir != "asc" && sortDir != "desc" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sort_dir must be asc or desc"})
		return
	}

	if col.nullable {
		// false sorts before true in both sqlite and postgres, so NULL keys
		// land at the end no matter the direction.
		query = query.Order(col.expr + " IS NULL")
	}
	query = query.Order(col.expr + " " + strings.ToUpper(sortDir))

	var games []models.Game
	if err := query.Find(&games).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve games"})
		return
	}

	response := make([]GameResponse, 0, len(games))
	for _, game := range games {
		response = append(response, newGameResponse(game))
	}
	c.JSON(http.StatusOK, response)
}

// GetGameByID godoc
// @Summary      Get a single game
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200  {object}  GameResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /games/{id} [get]
func GetGameByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var game models.Game
	if err := database.DB.First(&game, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	c.JSON(http.StatusOK, newGameResponse(game))
}

// CreateGame godoc
// @Summary      Add a game to the collection
// @Description  Creates a game from manual entry or a catalog import. A bgg_id already present in the collection is rejected.
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GameInput true "Game fields"
// @Success      201  {object}  GameResponse
// @Failure      400  {object}  ValidationErrorResponse
// @Failure      409  {object}  ErrorResponse "Already in collection"
// @Router       /games [post]
func CreateGame(c *gin.Context) {
	var input GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := map[string]string{}
	validateRating(input.UserRating, fields)
	validateDifficulty(input.Difficulty, fields)
	validatePrice(input.PurchasePrice, fields)
	validateRange("min_players", input.MinPlayers, input.MaxPlayers, fields)
	validateRange("min_playtime", input.MinPlaytime, input.MaxPlaytime, fields)

	status := models.StatusOwned
	if input.Status != nil {
		status = models.GameStatus(*input.Status)
		if !models.ValidStatus(status) {
			fields["status"] = "must be one of owned, wishlist, sold"
		}
	}

	lastPlayed, err := parseDatePtr(input.LastPlayed)
	if err != nil {
		fields["last_played"] = "must be a YYYY-MM-DD date"
	}
	purchaseDate, err := parseDatePtr(input.PurchaseDate)
	if err != nil {
		fields["purchase_date"] = "must be a YYYY-MM-DD date"
	}

	if len(fields) > 0 {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{Error: "Validation failed", Fields: fields})
		return
	}

	if input.BGGID != nil {
		var count int64
		database.DB.Model(&models.Game{}).Where("bgg_id = ?", *input.BGGID).Count(&count)
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Game is already in your collection"})
			return
		}
	}

	now := time.Now()
	game := models.Game{
		BGGID:            input.BGGID,
		Name:             input.Name,
		YearPublished:    input.YearPublished,
		MinPlayers:       input.MinPlayers,
		MaxPlayers:       input.MaxPlayers,
		MinPlaytime:      input.MinPlaytime,
		MaxPlaytime:      input.MaxPlaytime,
		Difficulty:       input.Difficulty,
		Description:      input.Description,
		ImageURL:         input.ImageURL,
		ThumbnailURL:     input.ThumbnailURL,
		Categories:       input.Categories,
		Mechanics:        input.Mechanics,
		Designers:        input.Designers,
		Publishers:       input.Publishers,
		Labels:           input.Labels,
		UserRating:       input.UserRating,
		UserNotes:        input.UserNotes,
		LastPlayed:       lastPlayed,
		Status:           status,
		PurchaseDate:     purchaseDate,
		PurchasePrice:    input.PurchasePrice,
		PurchaseLocation: input.PurchaseLocation,
		DateAdded:        now,
		DateModified:     now,
	}

	if err := database.DB.Create(&game).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create game"})
		return
	}

	if game.ImageURL != nil && !strings.HasPrefix(*game.ImageURL, "/api/") {
		go cacheGameImage(game.ID, *game.ImageURL)
	}

	c.JSON(http.StatusCreated, newGameResponse(game))
}

// UpdateGame godoc
// @Summary      Partially update a game
// @Description  Applies only the submitted fields. An explicit null clears a nullable field; omitted fields stay unchanged. date_modified always advances.
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int  true  "Game ID"
// @Param        input body  GameInput  true  "Any subset of updatable fields"
// @Success      200  {object}  GameResponse
// @Failure      400  {object}  ValidationErrorResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /games/{id} [patch]
func UpdateGame(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var game models.Game
	if err := database.DB.First(&game, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates, fields := buildGameUpdates(&game, patch)
	if len(fields) > 0 {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{Error: "Validation failed", Fields: fields})
		return
	}

	// An image URL change invalidates any locally cached cover.
	var newImageURL *string
	if raw, ok := patch["image_url"]; ok {
		json.Unmarshal(raw, &newImageURL)
		if newImageURL == nil || !strings.HasPrefix(*newImageURL, "/api/") {
			deleteCachedImage(game.ID)
			updates["image_cached"] = false
		}
	}

	updates["date_modified"] = time.Now()

	if err := database.DB.Model(&game).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update game"})
		return
	}

	database.DB.First(&game, id)

	if newImageURL != nil && !strings.HasPrefix(*newImageURL, "/api/") {
		go cacheGameImage(game.ID, *newImageURL)
	}

	c.JSON(http.StatusOK, newGameResponse(game))
}

// DeleteGame godoc
// @Summary      Remove a game
// @Description  Deletes the game along with its play sessions, gallery images and attached files.
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      204  "No Content"
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /games/{id} [delete]
func DeleteGame(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var game models.Game
	if err := database.DB.First(&game, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_id = ?", game.ID).Delete(&models.PlaySession{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", game.ID).Delete(&models.GameImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&game).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete game"})
		return
	}

	// Files go after the commit so a rollback doesn't leave dangling rows.
	deleteGameFiles(&game)

	log.Printf("Game deleted: id=%d name=%q", game.ID, game.Name)
	c.Status(http.StatusNoContent)
}

// region --- Patch plumbing ---

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func validateRating(r *int, fields map[string]string) {
	if r != nil && (*r < 1 || *r > 10) {
		fields["user_rating"] = "must be between 1 and 10"
	}
}

func validateDifficulty(d *float64, fields map[string]string) {
	if d != nil && (*d < 1 || *d > 5) {
		fields["difficulty"] = "must be between 1 and 5"
	}
}

func validatePrice(p *float64, fields map[string]string) {
	if p != nil && *p < 0 {
		fields["purchase_price"] = "must not be negative"
	}
}

func validateRange(minField string, min, max *int, fields map[string]string) {
	if min != nil && max != nil && *min > *max {
		fields[minField] = "must not exceed the maximum"
	}
}

// buildGameUpdates turns a raw patch into a validated column map. Keys are
// the wire names, which match the column names; unknown keys are rejected.
func buildGameUpdates(game *models.Game, patch map[string]json.RawMessage) (map[string]interface{}, map[string]string) {
	updates := map[string]interface{}{}
	fields := map[string]string{}

	setString := func(key string, raw json.RawMessage) {
		var v *string
		if err := json.Unmarshal(raw, &v); err != nil {
			fields[key] = "must be a string"
			return
		}
		if v == nil {
			updates[key] = nil
		} else {
			updates[key] = *v
		}
	}
	setInt := func(key string, raw json.RawMessage) *int {
		var v *int
		if err := json.Unmarshal(raw, &v); err != nil {
			fields[key] = "must be an integer"
			return nil
		}
		if v == nil {
			updates[key] = nil
		} else {
			updates[key] = *v
		}
		return v
	}
	setFloat := func(key string, raw json.RawMessage) *float64 {
		var v *float64
		if err := json.Unmarshal(raw, &v); err != nil {
			fields[key] = "must be a number"
			return nil
		}
		if v == nil {
			updates[key] = nil
		} else {
			updates[key] = *v
		}
		return v
	}
	setDate := func(key string, raw json.RawMessage) {
		var v *string
		if err := json.Unmarshal(raw, &v); err != nil {
			fields[key] = "must be a YYYY-MM-DD date"
			return
		}
		t, err := parseDatePtr(v)
		if err != nil {
			fields[key] = "must be a YYYY-MM-DD date"
			return
		}
		if t == nil {
			updates[key] = nil
		} else {
			updates[key] = *t
		}
	}

	// Range checks use the stored counterpart when only one bound is patched.
	effInt := func(key string, current *int) *int {
		if raw, ok := patch[key]; ok {
			var v *int
			if json.Unmarshal(raw, &v) == nil {
				return v
			}
		}
		return current
	}

	for key, raw := range patch {
		switch key {
		case "name":
			var v *string
			if err := json.Unmarshal(raw, &v); err != nil || v == nil || *v == "" {
				fields[key] = "must be a non-empty string"
				continue
			}
			updates[key] = *v
		case "description", "image_url", "thumbnail_url", "categories", "mechanics",
			"designers", "publishers", "labels", "user_notes", "purchase_location":
			setString(key, raw)
		case "year_published", "min_players", "max_players", "min_playtime", "max_playtime":
			setInt(key, raw)
		case "user_rating":
			validateRating(setInt(key, raw), fields)
		case "difficulty":
			validateDifficulty(setFloat(key, raw), fields)
		case "purchase_price":
			validatePrice(setFloat(key, raw), fields)
		case "last_played", "purchase_date":
			setDate(key, raw)
		case "status":
			var v *string
			if err := json.Unmarshal(raw, &v); err != nil || v == nil || !models.ValidStatus(models.GameStatus(*v)) {
				fields[key] = "must be one of owned, wishlist, sold"
				continue
			}
			updates[key] = *v
		case "scan_featured":
			var v bool
			if err := json.Unmarshal(raw, &v); err != nil {
				fields[key] = "must be a boolean"
				continue
			}
			updates[key] = v
		default:
			fields[key] = "unknown field"
		}
	}

	validateRange("min_players", effInt("min_players", game.MinPlayers), effInt("max_players", game.MaxPlayers), fields)
	validateRange("min_playtime", effInt("min_playtime", game.MinPlaytime), effInt("max_playtime", game.MaxPlaytime), fields)

	return updates, fields
}

// endregion
