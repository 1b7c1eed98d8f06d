package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"cardboard/backend/internal/auth"
	"cardboard/backend/internal/config"
	"cardboard/backend/internal/database"
	"cardboard/backend/internal/handler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "cardboard/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Cardboard API
// @version         1.0
// @description     Personal board game collection tracker.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Attachments and the sqlite file live under the data directory
	if err := os.MkdirAll(config.AppConfig.DataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	log.Printf("Data directory: %s", config.AppConfig.DataDir)

	database.Connect(config.AppConfig.DatabaseDriver, config.AppConfig.DatabaseURL)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	if origins := config.AppConfig.CORSOrigins; origins != "" {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")
	{
		api.POST("/auth/login", handler.Login)

		protected := api.Group("")
		protected.Use(auth.RequireAuth())
		{
			games := protected.Group("/games")
			{
				games.GET("", handler.GetGames)
				games.POST("", handler.CreateGame)
				games.GET("/:id", handler.GetGameByID)
				games.PATCH("/:id", handler.UpdateGame)
				games.DELETE("/:id", handler.DeleteGame)

				// Play sessions
				games.GET("/:id/sessions", handler.GetSessions)
				games.POST("/:id/sessions", handler.AddSession)

				// Single-slot attachments
				games.GET("/:id/image", handler.GetGameImage)
				games.POST("/:id/image", handler.UploadGameImage)
				games.DELETE("/:id/image", handler.DeleteGameImage)
				games.GET("/:id/instructions", handler.GetInstructions)
				games.POST("/:id/instructions", handler.UploadInstructions)
				games.DELETE("/:id/instructions", handler.DeleteInstructions)
				games.GET("/:id/scan", handler.GetScan)
				games.POST("/:id/scan", handler.UploadScan)
				games.DELETE("/:id/scan", handler.DeleteScan)
				games.GET("/:id/scan/glb", handler.GetScanGLB)
				games.POST("/:id/scan/glb", handler.UploadScanGLB)
				games.DELETE("/:id/scan/glb", handler.DeleteScanGLB)

				// Ordered gallery; reorder must be registered before the imgID routes
				games.GET("/:id/images", handler.GetGalleryImages)
				games.POST("/:id/images", handler.UploadGalleryImage)
				games.PATCH("/:id/images/reorder", handler.ReorderGalleryImages)
				games.GET("/:id/images/:imgID/file", handler.GetGalleryImageFile)
				games.DELETE("/:id/images/:imgID", handler.DeleteGalleryImage)
			}

			protected.DELETE("/sessions/:id", handler.DeleteSession)
			protected.GET("/stats", handler.GetStats)

			bggRoutes := protected.Group("/bgg")
			{
				bggRoutes.GET("/search", handler.SearchBGG)
				bggRoutes.GET("/game/:bggID", handler.GetBGGGame)
			}
		}
	}

	addr := ":" + config.AppConfig.Port
	fmt.Println("Server is running on " + addr)
	fmt.Println("Swagger UI is available at http://localhost" + addr + "/swagger/index.html")
	log.Fatal(router.Run(addr))
}
