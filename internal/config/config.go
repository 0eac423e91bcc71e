package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Bucket      string
	Region      string
	Table       string
	Port        string
	Log         LogConfig
	Storage     StorageConfig
	Database    DatabaseConfig
	AWS         AWSConfig
	RateLimit   RateLimitConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "json" or "text"
}

// StorageConfig selects the object store and table backends
type StorageConfig struct {
	Type         string // "s3", "local" or "mock"
	LocalPath    string
	TableBackend string // "dynamodb", "sqlite" or "memory"
}

// DatabaseConfig holds the local sqlite table configuration
type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// AWSConfig holds SDK client settings shared by the S3 and DynamoDB clients
type AWSConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	ForcePathStyle  bool
	MaxAttempts     int
	MaxBackoff      time.Duration
}

// RateLimitConfig holds the local server rate limit
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// Load loads configuration from environment variables and an optional .env file.
// Missing domain values (ENVIRONMENT, BUCKET, REGION, TABLE) are not rejected here;
// the handlers report them in-band.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8081")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("STORAGE_TYPE", "s3")
	v.SetDefault("STORAGE_LOCAL_PATH", "./data/buckets")
	v.SetDefault("TABLE_BACKEND", "dynamodb")
	v.SetDefault("SQLITE_PATH", "./data/cdkapp.db")
	v.SetDefault("SQLITE_MAX_OPEN_CONNS", 1)
	v.SetDefault("SQLITE_CONN_MAX_LIFETIME", time.Hour)
	v.SetDefault("AWS_FORCE_PATH_STYLE", false)
	v.SetDefault("AWS_MAX_ATTEMPTS", 3)
	v.SetDefault("AWS_MAX_BACKOFF", 5*time.Second)
	v.SetDefault("RATE_LIMIT_RPS", 50)
	v.SetDefault("RATE_LIMIT_BURST", 100)

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Bucket:      v.GetString("BUCKET"),
		Region:      v.GetString("REGION"),
		Table:       v.GetString("TABLE"),
		Port:        v.GetString("PORT"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Storage: StorageConfig{
			Type:         v.GetString("STORAGE_TYPE"),
			LocalPath:    v.GetString("STORAGE_LOCAL_PATH"),
			TableBackend: v.GetString("TABLE_BACKEND"),
		},
		Database: DatabaseConfig{
			Path:            v.GetString("SQLITE_PATH"),
			MaxOpenConns:    v.GetInt("SQLITE_MAX_OPEN_CONNS"),
			ConnMaxLifetime: v.GetDuration("SQLITE_CONN_MAX_LIFETIME"),
		},
		AWS: AWSConfig{
			Endpoint:        v.GetString("AWS_ENDPOINT_URL"),
			AccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
			ForcePathStyle:  v.GetBool("AWS_FORCE_PATH_STYLE"),
			MaxAttempts:     v.GetInt("AWS_MAX_ATTEMPTS"),
			MaxBackoff:      v.GetDuration("AWS_MAX_BACKOFF"),
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	return config, nil
}

// TablePrefix returns the prefix prepended to every table name for this deployment
func (c *Config) TablePrefix() string {
	return c.Environment + "-"
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
