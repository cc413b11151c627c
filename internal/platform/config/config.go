package config

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	// Store
	PersistenceURL string
	PersistenceKey string // store credential, replaces the password in PersistenceURL
	EnableDBCheck  bool
	RunMigrations  bool
	MigrationsPath string

	// HTTP
	Port               string
	IsProduction       bool
	RateLimit          string // ulule/limiter formatted rate, e.g. "100-M"
	CORSAllowedOrigins []string

	// Auth provider tokens
	JWTSecret string
	JWTIssuer string

	// Worker
	Redis             RedisConfig
	WorkerConcurrency int
	RecurringCron     string
	ReminderCron      string

	Email EmailConfig

	// Product analytics, disabled when PosthogAPIKey is empty
	PosthogAPIKey   string
	PosthogEndpoint string
}

// RedisConfig locates the Redis instance backing the task queue.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// EmailConfig configures the optional SMTP reminder channel.
type EmailConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string // display name
	To       []string
}

// requiredVars must be set for the application to start.
var requiredVars = []string{"PERSISTENCE_URL", "PERSISTENCE_KEY", "AUTH_JWT_SECRET"}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("AUTH_JWT_ISSUER", "")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("WORKER_CONCURRENCY", 5)
	v.SetDefault("RECURRING_CRON", "0 1 * * *")
	v.SetDefault("REMINDER_CRON", "0 9 * * *")
	v.SetDefault("EMAIL_ENABLED", false)
	v.SetDefault("EMAIL_HOST", "")
	v.SetDefault("EMAIL_PORT", 587)
	v.SetDefault("EMAIL_USERNAME", "")
	v.SetDefault("EMAIL_PASSWORD", "")
	v.SetDefault("EMAIL_FROM", "Property Ledger")
	v.SetDefault("EMAIL_TO", "")
	v.SetDefault("POSTHOG_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
}

func fromViper(v *viper.Viper) (*Config, error) {
	var missing []string
	for _, key := range requiredVars {
		if strings.TrimSpace(v.GetString(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	cfg := &Config{
		PersistenceURL:     v.GetString("PERSISTENCE_URL"),
		PersistenceKey:     v.GetString("PERSISTENCE_KEY"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:      v.GetBool("RUN_MIGRATIONS"),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		RateLimit:          v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		JWTSecret:          v.GetString("AUTH_JWT_SECRET"),
		JWTIssuer:          v.GetString("AUTH_JWT_ISSUER"),
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
		},
		WorkerConcurrency: v.GetInt("WORKER_CONCURRENCY"),
		RecurringCron:     v.GetString("RECURRING_CRON"),
		ReminderCron:      v.GetString("REMINDER_CRON"),
		Email: EmailConfig{
			Enabled:  v.GetBool("EMAIL_ENABLED"),
			Host:     v.GetString("EMAIL_HOST"),
			Port:     v.GetInt("EMAIL_PORT"),
			Username: v.GetString("EMAIL_USERNAME"),
			Password: v.GetString("EMAIL_PASSWORD"),
			From:     v.GetString("EMAIL_FROM"),
			To:       splitList(v.GetString("EMAIL_TO")),
		},
		PosthogAPIKey:   v.GetString("POSTHOG_KEY"),
		PosthogEndpoint: v.GetString("POSTHOG_ENDPOINT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.WorkerConcurrency <= 0 {
		log.Printf("Warning: Invalid value for WORKER_CONCURRENCY (%d). Defaulting to 5.\n", cfg.WorkerConcurrency)
		cfg.WorkerConcurrency = 5
	}
	if cfg.Email.Enabled && (cfg.Email.Host == "" || len(cfg.Email.To) == 0) {
		return nil, fmt.Errorf("EMAIL_ENABLED requires EMAIL_HOST and EMAIL_TO")
	}
	if _, err := cfg.DatabaseURL(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DatabaseURL returns PersistenceURL with its password replaced by PersistenceKey.
func (c *Config) DatabaseURL() (string, error) {
	u, err := url.Parse(c.PersistenceURL)
	if err != nil {
		return "", fmt.Errorf("invalid PERSISTENCE_URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", fmt.Errorf("invalid PERSISTENCE_URL: unsupported scheme %q", u.Scheme)
	}
	username := ""
	if u.User != nil {
		username = u.User.Username()
	}
	u.User = url.UserPassword(username, c.PersistenceKey)
	return u.String(), nil
}

// Environment names the runtime environment for logger selection.
func (c *Config) Environment() string {
	if c.IsProduction {
		return "production"
	}
	return "development"
}

// StartupCheckTimeout bounds the startup pings of the store and Redis.
const StartupCheckTimeout = 5 * time.Second

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
