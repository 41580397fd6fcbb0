package config

import (
	"errors"
	"os"
	"strconv"
)

type Config struct {
	App        AppConfig
	Generation GenerationConfig
	Storage    StorageConfig
	Redis      RedisConfig
	Gemini     GeminiConfig
}

type AppConfig struct {
	Port string
	Env  string
}

// GenerationConfig points the session side at a generation service deployment.
// BaseURL has no default: without it no interview can be started, so its
// absence is a fatal configuration error surfaced before any network call.
type GenerationConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

type StorageConfig struct {
	Backend string
	FileDir string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

var ErrGenerationBaseURLMissing = errors.New("GENERATION_BASE_URL is required")

func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Port: getEnv("APP_PORT", "3000"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Generation: GenerationConfig{
			BaseURL:        getEnv("GENERATION_BASE_URL", ""),
			TimeoutSeconds: getEnvAsInt("GENERATION_TIMEOUT_SECONDS", 120),
		},
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", "file"),
			FileDir: getEnv("STORAGE_FILE_DIR", "data"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", ""),
		},
	}

	if cfg.Generation.BaseURL == "" {
		return nil, ErrGenerationBaseURLMissing
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
