package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Email     EmailConfig
	Storage   StorageConfig
	Log       LogConfig
	Jobs      JobsConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	Env             string
	ShutdownTimeout time.Duration
}

// Store selects the catalog and form stores: "memory" or "postgres".
type DatabaseConfig struct {
	Store    string
	URL      string // Full database URL
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type SessionConfig struct {
	Secret string
	MaxAge int
	Secure bool
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	FromEmail    string
	FromName     string
	Workers      int
}

type StorageConfig struct {
	UploadDir      string
	UploadURL      string
	// MaxUploadBytes caps every request body on the site, contest photos included
	MaxUploadBytes int64
	S3             S3Config
}

type S3Config struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Region          string
	Endpoint        string
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type JobsConfig struct {
	InSeasonSchedule string
}

type RateLimitConfig struct {
	PerMinute int
	Burst     int
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "3000"),
			Host:            getEnv("HOST", "localhost"),
			Env:             getEnv("ENV", "development"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Database: parseDatabaseConfig(),
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "meadowlark-cookie-secret-change-me"),
			MaxAge: getEnvAsInt("SESSION_MAX_AGE", 86400*7),
			Secure: getEnvAsBool("SESSION_SECURE", false),
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
			SMTPUser:     getEnv("SMTP_USER", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromEmail:    getEnv("FROM_EMAIL", "info@meadowlarktravel.com"),
			FromName:     getEnv("FROM_NAME", "Meadowlark Travel"),
			Workers:      getEnvAsInt("EMAIL_WORKERS", 4),
		},
		Storage: StorageConfig{
			UploadDir:      getEnv("UPLOAD_DIR", "data"),
			UploadURL:      getEnv("UPLOAD_URL", "/uploads"),
			MaxUploadBytes: int64(getEnvAsInt("UPLOAD_MAX_BYTES", 20<<20)),
			S3: S3Config{
				AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
				SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
				BucketName:      getEnv("S3_BUCKET_NAME", "meadowlark-contest"),
				PublicURL:       getEnv("S3_PUBLIC_URL", ""),
				Region:          getEnv("S3_REGION", "us-west-2"),
				Endpoint:        getEnv("S3_ENDPOINT", ""),
			},
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", ""),
			File:       getEnv("LOG_FILE", "log/requests.log"),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 64),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 7),
			MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 7),
		},
		Jobs: JobsConfig{
			InSeasonSchedule: getEnv("IN_SEASON_SCHEDULE", "@hourly"),
		},
		RateLimit: RateLimitConfig{
			PerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 30),
			Burst:     getEnvAsInt("RATE_LIMIT_BURST", 10),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects configurations the server cannot start with
func (c *Config) Validate() error {
	switch c.Server.Env {
	case "development", "production", "test":
	default:
		return fmt.Errorf("unknown execution environment: %s", c.Server.Env)
	}

	switch c.Database.Store {
	case "memory", "postgres":
	default:
		return fmt.Errorf("unknown store %q (want memory or postgres)", c.Database.Store)
	}

	if c.Server.Env == "production" && c.Session.Secret == "meadowlark-cookie-secret-change-me" {
		return fmt.Errorf("SESSION_SECRET must be set in production")
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// SMTPConfigured reports whether outgoing mail can be delivered
func (c EmailConfig) SMTPConfigured() bool {
	return c.SMTPHost != ""
}

// Configured reports whether S3-compatible storage credentials are present
func (c S3Config) Configured() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

func parseDatabaseConfig() DatabaseConfig {
	store := strings.ToLower(getEnv("STORE", "memory"))

	// Check if DATABASE_URL is provided
	databaseURL := getEnv("DATABASE_URL", "")
	if databaseURL != "" {
		cfg := parseDatabaseURL(databaseURL)
		cfg.Store = store
		return cfg
	}

	// Fall back to individual environment variables
	return DatabaseConfig{
		Store:    store,
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvAsInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		DBName:   getEnv("DB_NAME", "meadowlark"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

func parseDatabaseURL(databaseURL string) DatabaseConfig {
	config := DatabaseConfig{
		URL: databaseURL,
	}

	u, err := url.Parse(databaseURL)
	if err != nil {
		// If parsing fails, return the URL as-is
		return config
	}

	config.Host = u.Hostname()
	config.Port = cast.ToInt(u.Port())
	if config.Port == 0 {
		config.Port = 5432
	}

	if u.User != nil {
		config.User = u.User.Username()
		config.Password, _ = u.User.Password()
	}

	config.DBName = strings.TrimPrefix(u.Path, "/")

	config.SSLMode = u.Query().Get("sslmode")
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	return config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := cast.ToIntE(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := cast.ToBoolE(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := cast.ToDurationE(value); err == nil {
			return d
		}
	}
	return defaultValue
}
