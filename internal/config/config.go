package config

import (
	"log"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Port             string `mapstructure:"PORT"`
	DatabaseDriver   string `mapstructure:"DATABASE_DRIVER"` // sqlite or postgres
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	DataDir          string `mapstructure:"DATA_DIR"`
	JWTSecret        string `mapstructure:"JWT_SECRET"`
	AuthPasswordHash string `mapstructure:"AUTH_PASSWORD_HASH"` // bcrypt; empty disables auth
	CORSOrigins      string `mapstructure:"CORS_ORIGINS"`       // comma-separated; empty allows all
}

var AppConfig *Config

// AuthEnabled reports whether the API requires a login token.
func (c *Config) AuthEnabled() bool {
	return c.AuthPasswordHash != ""
}

// ImagesDir is where cached and uploaded cover images live.
func (c *Config) ImagesDir() string { return filepath.Join(c.DataDir, "images") }

// InstructionsDir is where uploaded rulebooks live.
func (c *Config) InstructionsDir() string { return filepath.Join(c.DataDir, "instructions") }

// ScansDir is where uploaded 3D scans (usdz/glb) live.
func (c *Config) ScansDir() string { return filepath.Join(c.DataDir, "scans") }

// GalleryDir is the root of per-game gallery directories.
func (c *Config) GalleryDir() string { return filepath.Join(c.DataDir, "gallery") }

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("AUTH_PASSWORD_HASH", "")
	viper.SetDefault("CORS_ORIGINS", "")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	if AppConfig.DatabaseURL == "" {
		AppConfig.DatabaseURL = filepath.Join(AppConfig.DataDir, "cardboard.db")
	}
	if AppConfig.AuthEnabled() && AppConfig.JWTSecret == "" {
		log.Fatal("AUTH_PASSWORD_HASH is set but JWT_SECRET is empty")
	}
}
