package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Env  string
	Port string

	// Database
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSSLMode         string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	MigrationsSource  string

	// Session
	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool

	// Blob storage for violation photos
	BlobDriver     string
	BlobFSRoot     string
	BlobPublicURL  string
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3PathStyle    bool
	S3AccessKey    string
	S3SecretKey    string
	MaxUploadBytes int64
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "7000"),

		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "rentalog"),
		DBPassword:       getEnv("DB_PASSWORD", "rentalog"),
		DBName:           getEnv("DB_NAME", "rentalog"),
		DBSSLMode:        getEnv("DB_SSLMODE", "disable"),
		DBMaxOpenConns:   getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:   getEnvInt("DB_MAX_IDLE_CONNS", 10),
		MigrationsSource: getEnv("MIGRATIONS_SOURCE", "file://migrations"),

		SessionSecret: getEnv("SESSION_SECRET", "fallback-secret-key-for-dev-only"),
		CookieSecure:  getEnvBool("COOKIE_SECURE", false),

		BlobDriver:     getEnv("BLOB_DRIVER", "fs"),
		BlobFSRoot:     getEnv("BLOB_FS_ROOT", "./uploads"),
		BlobPublicURL:  getEnv("BLOB_PUBLIC_URL", "/uploads"),
		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:     getEnv("S3_ENDPOINT", ""),
		S3PathStyle:    getEnvBool("S3_PATH_STYLE", false),
		S3AccessKey:    getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretKey:    getEnv("S3_SECRET_ACCESS_KEY", ""),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_MB", 5)) << 20,
	}

	config.DBConnMaxLifetime = getEnvDuration("DB_CONN_MAX_LIFETIME", time.Hour)
	config.SessionTTL = getEnvDuration("SESSION_TTL", 12*time.Hour)

	return config, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %t\n", key, raw, defaultValue)
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}
