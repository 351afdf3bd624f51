package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Upload   UploadConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Driver string // "sqlite" or "postgres"
	DSN    string
}

type AuthConfig struct {
	JWTSecret string
}

type UploadConfig struct {
	Dir string
}

type AIConfig struct {
	Provider           string // "openrouter" or "ollama"
	OpenRouterAPIKey   string
	OpenRouterModel    string
	OpenRouterReferer  string
	OpenRouterSiteName string
	OllamaBaseURL      string
	OllamaModel        string
	TimeoutSeconds     int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "5001"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:5001"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Driver: getEnv("DB_DRIVER", "sqlite"),
			DSN:    getEnv("DB_DSN", "notes.db"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Upload: UploadConfig{
			Dir: getEnv("UPLOAD_DIR", "./uploads"),
		},
		Ai: AIConfig{
			Provider:           getEnv("LLM_PROVIDER", "openrouter"),
			OpenRouterAPIKey:   getEnv("OPENROUTER_API_KEY", ""),
			OpenRouterModel:    getEnv("OPENROUTER_MODEL", "meta-llama/llama-3.3-70b-instruct:free"),
			OpenRouterReferer:  getEnv("OPENROUTER_REFERER", "http://localhost:3000"),
			OpenRouterSiteName: getEnv("OPENROUTER_SITE_NAME", "NoteNova"),
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:        getEnv("OLLAMA_MODEL", "llama3"),
			TimeoutSeconds:     getEnvAsInt("LLM_TIMEOUT_SECONDS", 60),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
