package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// TMDB catalog API
	TMDBAPIKey  string
	TMDBBaseURL string

	// External file-index server
	DownloadServerURL string
	DownloadEndpoint  string

	// Server
	ServerPort string

	// Rate limiting (per client IP)
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache TTLs
	CatalogCacheTTL   time.Duration
	FileIndexCacheTTL time.Duration

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	viper.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	viper.SetDefault("DOWNLOAD_ENDPOINT", "/allvideos")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 40)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 10)
	viper.SetDefault("CATALOG_CACHE_TTL_MINUTES", 60)
	viper.SetDefault("FILE_INDEX_CACHE_TTL_MINUTES", 5)
	viper.SetDefault("LOG_LEVEL", "info")

	config := &Config{
		TMDBAPIKey:  viper.GetString("TMDB_API_KEY"),
		TMDBBaseURL: viper.GetString("TMDB_BASE_URL"),

		DownloadServerURL: viper.GetString("DOWNLOAD_SERVER_URL"),
		DownloadEndpoint:  viper.GetString("DOWNLOAD_ENDPOINT"),

		ServerPort: viper.GetString("SERVER_PORT"),

		RateLimitRequests: viper.GetInt("RATE_LIMIT_REQUESTS"),
		RateLimitWindow:   time.Duration(viper.GetInt("RATE_LIMIT_WINDOW_SECONDS")) * time.Second,

		CatalogCacheTTL:   time.Duration(viper.GetInt("CATALOG_CACHE_TTL_MINUTES")) * time.Minute,
		FileIndexCacheTTL: time.Duration(viper.GetInt("FILE_INDEX_CACHE_TTL_MINUTES")) * time.Minute,

		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	// Validate required fields
	if config.TMDBAPIKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY is required")
	}
	if config.DownloadServerURL == "" {
		return nil, fmt.Errorf("DOWNLOAD_SERVER_URL is required")
	}

	return config, nil
}
