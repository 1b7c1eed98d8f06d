package handler

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"cardboard/backend/internal/database"
	"cardboard/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// SessionInput defines the loggable fields of a play session.
type SessionInput struct {
	PlayedAt        string  `json:"played_at" binding:"required"`
	PlayerCount     *int    `json:"player_count"`
	DurationMinutes *int    `json:"duration_minutes"`
	Notes           *string `json:"notes"`
}

// SessionResponse is the wire representation of a play session.
type SessionResponse struct {
	ID              uint      `json:"id"`
	GameID          uint      `json:"game_id"`
	PlayedAt        string    `json:"played_at"`
	PlayerCount     *int      `json:"player_count"`
	DurationMinutes *int      `json:"duration_minutes"`
	Notes           *string   `json:"notes"`
	DateAdded       time.Time `json:"date_added"`
}

func newSessionResponse(s models.PlaySession) SessionResponse {
	return SessionResponse{
		ID:              s.ID,
		GameID:          s.GameID,
		PlayedAt:        s.PlayedAt.Format(dateLayout),
		PlayerCount:     s.PlayerCount,
		DurationMinutes: s.DurationMinutes,
		Notes:           s.Notes,
		DateAdded:       s.DateAdded,
	}
}

// endregion

// GetSessions godoc
// @Summary      List play sessions for a game
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200  {array}   SessionResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /games/{id}/sessions [get]
func GetSessions(c *gin.Context) {
	gameID, _ := strconv.Atoi(c.Param("id"))

	var game models.Game
	if err := database.DB.First(&game, gameID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	var sessions []models.PlaySession
	database.DB.Where("game_id = ?", gameID).Order("played_at DESC").Find(&sessions)

	response := make([]SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		response = append(response, newSessionResponse(s))
	}
	c.JSON(http.StatusOK, response)
}

// AddSession godoc
// @Summary      Log a play session
// @Description  Records a play. When the played date is newer than the game's last-played date, last-played advances to it.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int           true  "Game ID"
// @Param        input body  SessionInput  true  "Session fields"
// @Success      201  {object}  SessionResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /games/{id}/sessions [post]
func AddSession(c *gin.Context) {
	gameID, _ := strconv.Atoi(c.Param("id"))

	var game models.Game
	if err := database.DB.First(&game, gameID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	var input SessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	playedAt, err := parseDate(input.PlayedAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "played_at must be a YYYY-MM-DD date"})
		return
	}

	session := models.PlaySession{
		GameID:          game.ID,
		PlayedAt:        playedAt,
		PlayerCount:     input.PlayerCount,
		DurationMinutes: input.DurationMinutes,
		Notes:           input.Notes,
		DateAdded:       time.Now(),
	}

	if err := database.DB.Create(&session).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log session"})
		return
	}

	// last_played only ever moves forward; deleting sessions never rolls it back.
	if game.LastPlayed == nil || playedAt.After(*game.LastPlayed) {
		database.DB.Model(&game).Updates(map[string]interface{}{
			"last_played":   playedAt,
			"date_modified": time.Now(),
		})
	}

	log.Printf("Session logged: game_id=%d played_at=%s", game.ID, input.PlayedAt)
	c.JSON(http.StatusCreated, newSessionResponse(session))
}

// DeleteSession godoc
// @Summary      Delete a play session
// @Description  Removes one logged play. The owning game's last-played date is left untouched.
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      204  "No Content"
// @Failure      404  {object}  ErrorResponse "Session not found"
// @Router       /sessions/{id} [delete]
func DeleteSession(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var session models.PlaySession
	if err := database.DB.First(&session, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	if err := database.DB.Delete(&session).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete session"})
		return
	}

	log.Printf("Session deleted: id=%d game_id=%d", session.ID, session.GameID)
	c.Status(http.StatusNoContent)
}
