package handler

import (
	"net/http"

	"cardboard/backend/internal/config"
	"cardboard/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// region --- DTOs ---

// LoginInput defines the structure for the single-user login.
type LoginInput struct {
	Password string `json:"password" binding:"required"`
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// endregion

// Login godoc
// @Summary      Log in
// @Description  Exchanges the collection password for a bearer token. Only available when auth is configured.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Credentials"
// @Success      200  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse "Wrong password"
// @Failure      404  {object}  ErrorResponse "Auth not enabled"
// @Router       /auth/login [post]
func Login(c *gin.Context) {
	if !config.AppConfig.AuthEnabled() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Authentication is not enabled"})
		return
	}

	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(config.AppConfig.AuthPasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong password"})
		return
	}

	token, err := jwt.GenerateToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
