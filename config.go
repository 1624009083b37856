package qalampress

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs. The historical deployment
// variants differ in exactly four knobs — static root, admin secret,
// media backend, and port — so all of them live here and the bootstrap
// is a single code path.
type Config struct {
	// Server
	Addr    string // listen address (default ":5000")
	BaseURL string // canonical public URL, used by sitemap and feed

	// Site identity
	SiteName        string
	SiteDescription string

	// Content store
	DatabasePath string // SQLite path (default "data/blog.db")

	// Admin gate
	AdminSecret string // required: shared secret for mutating routes

	// Static assets; empty means the embedded frontend is served.
	StaticRoot string

	// Media backend: "disk", "s3", or "http".
	MediaBackend string

	// S3-compatible media host (mediaBackend=s3)
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string // base URL the stored objects are served from

	// Remote HTTP media host (mediaBackend=http)
	MediaUploadURL string
	MediaAPIKey    string

	// Logging
	LogLevel  string
	LogPretty bool
}

// FromEnv loads configuration from the environment, reading a .env
// file first if one exists.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:            ":" + getEnv("PORT", "5000"),
		BaseURL:         getEnv("BASE_URL", "http://localhost:5000"),
		SiteName:        getEnv("SITE_NAME", "Blog"),
		SiteDescription: getEnv("SITE_DESCRIPTION", ""),
		DatabasePath:    getEnv("DATABASE_PATH", "data/blog.db"),
		AdminSecret:     getEnv("ADMIN_SECRET", ""),
		StaticRoot:      getEnv("STATIC_ROOT", ""),
		MediaBackend:    getEnv("MEDIA_BACKEND", "disk"),
		S3Endpoint:      getEnv("S3_ENDPOINT", ""),
		S3Region:        getEnv("S3_REGION", "auto"),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3AccessKey:     getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:     getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3PublicURL:     getEnv("S3_PUBLIC_URL", ""),
		MediaUploadURL:  getEnv("MEDIA_UPLOAD_URL", ""),
		MediaAPIKey:     getEnv("MEDIA_API_KEY", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogPretty:       getEnvBool("LOG_PRETTY", false),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.AdminSecret == "" {
		return fmt.Errorf("config: ADMIN_SECRET is required")
	}
	switch c.MediaBackend {
	case "disk":
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("config: S3_BUCKET is required for the s3 media backend")
		}
	case "http":
		if c.MediaUploadURL == "" {
			return fmt.Errorf("config: MEDIA_UPLOAD_URL is required for the http media backend")
		}
	default:
		return fmt.Errorf("config: unknown media backend %q", c.MediaBackend)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
