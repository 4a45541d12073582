package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"serverless-functions/internal/adapters/storage"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Log         LogConfig
	Storage     StorageConfig
	Server      ServerConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "text" or "json"
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Type        string // "s3", "minio", "local" or "mock"
	LocalPath   string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3PathStyle bool
	MinioHost   string
	MinioAccess string
	MinioSecret string
	MinioUseSSL bool
	MinioRegion string
}

// ServerConfig holds settings for the local development server
type ServerConfig struct {
	RateLimitRPS    float64
	RateLimitBurst  int
	MaxRequestBytes int64
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8081")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("STORAGE_TYPE", "s3")
	v.SetDefault("STORAGE_LOCAL_PATH", "./data/buckets")
	v.SetDefault("S3_REGION", GetEnv("AWS_REGION", "us-east-1"))
	v.SetDefault("S3_USE_PATH_STYLE", false)
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)
	// Lambda's synchronous invocation payload limit
	v.SetDefault("MAX_REQUEST_BYTES", 6*1024*1024)

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Storage: StorageConfig{
			Type:        v.GetString("STORAGE_TYPE"),
			LocalPath:   v.GetString("STORAGE_LOCAL_PATH"),
			S3Region:    v.GetString("S3_REGION"),
			S3Endpoint:  v.GetString("S3_ENDPOINT_URL"),
			S3AccessKey: v.GetString("S3_ACCESS_KEY"),
			S3SecretKey: v.GetString("S3_SECRET_KEY"),
			S3PathStyle: v.GetBool("S3_USE_PATH_STYLE"),
			MinioHost:   v.GetString("MINIO_ENDPOINT"),
			MinioAccess: v.GetString("MINIO_ACCESS_KEY"),
			MinioSecret: v.GetString("MINIO_SECRET_KEY"),
			MinioUseSSL: v.GetBool("MINIO_USE_SSL"),
			MinioRegion: v.GetString("MINIO_REGION"),
		},
		Server: ServerConfig{
			RateLimitRPS:    v.GetFloat64("RATE_LIMIT_RPS"),
			RateLimitBurst:  v.GetInt("RATE_LIMIT_BURST"),
			MaxRequestBytes: v.GetInt64("MAX_REQUEST_BYTES"),
		},
	}

	return config, nil
}

// ObjectStorageConfig converts the storage section into the adapter configuration
func (c *Config) ObjectStorageConfig() *storage.StorageConfig {
	s := c.Storage
	if storage.StorageType(strings.ToLower(s.Type)) == storage.StorageTypeMinio {
		return &storage.StorageConfig{
			Type:      s.Type,
			Region:    s.MinioRegion,
			Endpoint:  s.MinioHost,
			AccessKey: s.MinioAccess,
			SecretKey: s.MinioSecret,
			UseSSL:    s.MinioUseSSL,
		}
	}

	return &storage.StorageConfig{
		Type:         s.Type,
		BasePath:     s.LocalPath,
		Region:       s.S3Region,
		Endpoint:     s.S3Endpoint,
		AccessKey:    s.S3AccessKey,
		SecretKey:    s.S3SecretKey,
		UsePathStyle: s.S3PathStyle,
	}
}

// IsProduction reports whether the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
