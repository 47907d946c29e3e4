package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
// Everything has a sensible default so the server runs out of the box
// against a local "cifras" directory.
type Config struct {
	Port      string
	CifrasDir string // Catalog root: nested category directories holding .txt cifra files
	DataDir   string // Directory holding the metadata JSON documents
	WebAppDir string // Path to the web client's static files

	CategoriesFile string
	PlaylistsFile  string
	SettingsFile   string

	MaxUploadFiles int   // Cap on files per multi-upload request
	MaxUploadBytes int64 // Multipart form memory limit

	LogLevel string
	LogPath  string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override variables already set in the environment.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on existing environment variables and defaults.")
	}

	dataDir := getEnv("DATA_DIR", "data")

	return &Config{
		Port:      getEnv("PORT", "3000"),
		CifrasDir: getEnv("CIFRAS_DIR", "cifras"),
		DataDir:   dataDir,
		WebAppDir: getEnv("WEB_DIR", "public"),

		CategoriesFile: filepath.Join(dataDir, "categories.json"),
		PlaylistsFile:  filepath.Join(dataDir, "playlists.json"),
		SettingsFile:   filepath.Join(dataDir, "settings.json"),

		MaxUploadFiles: getEnvInt("MAX_UPLOAD_FILES", 10),
		MaxUploadBytes: 32 << 20, // 32MB, same limit for single and multi upload forms

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogPath:  getEnv("LOG_PATH", ""),
	}
}
