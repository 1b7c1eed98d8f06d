package handler

import (
	"errors"
	"net/http"
	"strconv"

	"cardboard/backend/internal/bgg"

	"github.com/gin-gonic/gin"
)

// SearchBGG godoc
// @Summary      Search the BGG catalog
// @Description  Free-text title search against BoardGameGeek. An empty result list is a normal answer, not an error.
// @Tags         bgg
// @Produce      json
// @Security     BearerAuth
// @Param        q query string true "Search query (min 2 characters)"
// @Success      200  {array}   bgg.SearchResult
// @Failure      400  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse "BGG unreachable"
// @Router       /bgg/search [get]
func SearchBGG(c *gin.Context) {
	query := c.Query("q")
	if len(query) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q must be at least 2 characters"})
		return
	}

	results, err := bgg.DefaultClient.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "BGG API error, try again shortly"})
		return
	}

	c.JSON(http.StatusOK, results)
}

// GetBGGGame godoc
// @Summary      Fetch a BGG game record
// @Description  Returns the catalog record mapped to creatable game fields, ready to POST to /games.
// @Tags         bgg
// @Produce      json
// @Security     BearerAuth
// @Param        bggID path int true "BGG ID"
// @Success      200  {object}  bgg.GameDetails
// @Failure      404  {object}  ErrorResponse "Not on BGG"
// @Failure      502  {object}  ErrorResponse "BGG unreachable"
// @Failure      503  {object}  ErrorResponse "BGG still processing, retry"
// @Router       /bgg/game/{bggID} [get]
func GetBGGGame(c *gin.Context) {
	bggID, err := strconv.ParseInt(c.Param("bggID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid BGG ID"})
		return
	}

	details, err := bgg.DefaultClient.FetchGame(c.Request.Context(), bggID)
	switch {
	case errors.Is(err, bgg.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found on BGG"})
		return
	case errors.Is(err, bgg.ErrStillProcessing):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "BGG is still processing this game. Please try again in a few seconds."})
		return
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "BGG API error, try again shortly"})
		return
	}

	c.JSON(http.StatusOK, details)
}
