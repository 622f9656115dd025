package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Analysis  AnalysisConfig
	Storage   StorageConfig
	Screening ScreeningConfig
	Worker    WorkerConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// AnalysisConfig points at the externally hosted analysis API.
type AnalysisConfig struct {
	URL        string
	UploadPath string
	HealthPath string
	Timeout    time.Duration
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type ScreeningConfig struct {
	DebounceDelay     time.Duration
	MinJobDescription int
}

type WorkerConfig struct {
	Concurrency int
	QueueSize   int
}

type RateLimitConfig struct {
	Max        int
	Expiration time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Analysis: AnalysisConfig{
			URL:        strings.TrimRight(getEnv("ANALYSIS_API_URL", "http://localhost:8000"), "/"),
			UploadPath: getEnv("ANALYSIS_UPLOAD_PATH", "/api/upload-resume"),
			HealthPath: getEnv("ANALYSIS_HEALTH_PATH", "/api/health"),
			Timeout:    getEnvAsDuration("ANALYSIS_TIMEOUT", "60s"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Screening: ScreeningConfig{
			DebounceDelay:     getEnvAsDuration("SUBMIT_DEBOUNCE", "500ms"),
			MinJobDescription: getEnvAsInt("MIN_JOB_DESCRIPTION", 10),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvAsInt("WORKER_CONCURRENCY", 1),
			QueueSize:   getEnvAsInt("WORKER_QUEUE_SIZE", 100),
		},
		RateLimit: RateLimitConfig{
			Max:        getEnvAsInt("RATE_LIMIT_MAX", 60),
			Expiration: getEnvAsDuration("RATE_LIMIT_WINDOW", "1m"),
		},
	}
}

// Addr is the listen address for the page server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.Server.Port)
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
