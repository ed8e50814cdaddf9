package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// Evidence store (S3-compatible object storage)
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string

	// Redis (change-event fanout for the moderation feed)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Geocoding
	GeocoderURL string

	// Moderation
	UndoGraceWindow  time.Duration
	SignedURLExpiry  time.Duration
	LogRetentionDays int

	// Admin
	AdminEmails string
	AdminToken  string

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	// Missing .env is fine; real deployments set env vars directly.
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "pawhelp"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m"), 15*time.Minute),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h"), 168*time.Hour),

		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3Bucket:    getEnv("S3_BUCKET", "evidence"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       parseInt(getEnv("REDIS_DB", "0"), 0),

		GeocoderURL: getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"),

		UndoGraceWindow:  parseDuration(getEnv("UNDO_GRACE_WINDOW", "10s"), 10*time.Second),
		SignedURLExpiry:  parseDuration(getEnv("SIGNED_URL_EXPIRY", "15m"), 15*time.Minute),
		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),

		AdminEmails: getEnv("ADMIN_EMAILS", ""),
		AdminToken:  getEnv("ADMIN_TOKEN", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

// EvidenceConfigured reports whether the object-storage client can be
// initialized at all. When false, evidence operations fail fast with a
// descriptive error instead of a nil dereference.
func (c *Config) EvidenceConfigured() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
