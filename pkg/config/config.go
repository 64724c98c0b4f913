package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full application configuration, loaded from environment
// variables with sane defaults for local development.
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Extract  ExtractConfig
	Render   RenderConfig
	Cache    CacheConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port        string
	CORSOrigins string
	BodyLimit   int
}

// AuthConfig configures the optional JWT bearer middleware. Auth is
// disabled when no secret is set.
type AuthConfig struct {
	Secret string
	Issuer string
}

// Enabled reports whether request authentication is configured.
func (a AuthConfig) Enabled() bool { return a.Secret != "" }

// ExtractConfig configures the extraction pipeline.
type ExtractConfig struct {
	Provider       string // "openai" or "anthropic"
	Model          string
	ChunkSize      int           // max chunk length in characters
	MaxConcurrency int           // 0 = one goroutine per chunk
	DebounceWindow time.Duration // trigger coalescing window
	StrictTypes    bool          // reclassify fields whose anchor fails its type pattern
}

// RenderConfig configures the document rendering step.
type RenderConfig struct {
	Engine      string // "plain", "pdf" or "auto"
	WindowBytes int    // byte-range size for chunked rendering; 0 = render whole input
}

// CacheConfig configures the rendered-document cache.
type CacheConfig struct {
	Backend  string // "memory" or "redis"
	Capacity int    // soft entry ceiling
}

// StorageConfig configures where /analyze/file reads document bytes from.
type StorageConfig struct {
	Mode      string // "local" or "s3"
	UploadDir string
	AWSRegion string
	AWSBucket string
}

// DatabaseConfig configures the optional Postgres analysis history store.
type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN returns the Postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// RedisConfig configures the optional Redis cache backend.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Address returns host:port for the Redis client.
func (r RedisConfig) Address() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Load builds the configuration from the environment.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: getEnv("CORS_ORIGINS", "*"),
			BodyLimit:   getEnvInt("BODY_LIMIT_BYTES", 10*1024*1024),
		},
		Auth: AuthConfig{
			Secret: getEnv("AUTH_SECRET", ""),
			Issuer: getEnv("AUTH_ISSUER", "fieldlift"),
		},
		Extract: ExtractConfig{
			Provider:       getEnv("EXTRACT_PROVIDER", "openai"),
			Model:          getEnv("EXTRACT_MODEL", ""),
			ChunkSize:      getEnvInt("EXTRACT_CHUNK_SIZE", 4000),
			MaxConcurrency: getEnvInt("EXTRACT_MAX_CONCURRENCY", 0),
			DebounceWindow: getEnvDuration("EXTRACT_DEBOUNCE_WINDOW", 500*time.Millisecond),
			StrictTypes:    getEnvBool("EXTRACT_STRICT_TYPES", false),
		},
		Render: RenderConfig{
			Engine:      getEnv("RENDER_ENGINE", "plain"),
			WindowBytes: getEnvInt("RENDER_WINDOW_BYTES", 512*1024),
		},
		Cache: CacheConfig{
			Backend:  getEnv("CACHE_BACKEND", "memory"),
			Capacity: getEnvInt("CACHE_CAPACITY", 100),
		},
		Storage: StorageConfig{
			Mode:      getEnv("STORAGE_MODE", "local"),
			UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
			AWSRegion: getEnv("AWS_REGION", "us-east-1"),
			AWSBucket: getEnv("AWS_BUCKET", "fieldlift-documents"),
		},
		Database: DatabaseConfig{
			Enabled:         getEnvBool("DB_ENABLED", false),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "fieldlift"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
