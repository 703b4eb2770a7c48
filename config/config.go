package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yeremiapane/jobportal-app/utils"
)

type Config struct {
	Port    string
	GinMode string

	DBDriver    string
	DatabaseDSN string

	JWTSecret string
	TokenTTL  time.Duration

	LogLevel  string
	LogFormat string

	// ExpiryCron is the schedule of the close-expired sweep.
	ExpiryCron string

	// JobAutoApprove puts new jobs straight into APPROVED moderation.
	JobAutoApprove bool
	// ListingRequiresApproval hides OPEN jobs that aren't APPROVED from
	// public listings.
	ListingRequiresApproval bool
	ApplicationStatusPolicy string
	EnforceBan              bool

	DispatchWorkers   int
	DispatchQueueSize int

	CORSOrigins []string
	SeedRoles   bool
}

// Load reads .env when present, then the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Debugf(".env not loaded: %v", err)
	}

	return Config{
		Port:    envString("PORT", "8080"),
		GinMode: envString("GIN_MODE", "debug"),

		DBDriver:    strings.ToLower(envString("DB_DRIVER", "sqlite")),
		DatabaseDSN: envString("DATABASE_DSN", "jobportal.db"),

		JWTSecret: envString("JWT_SECRET", ""),
		TokenTTL:  envDuration("TOKEN_TTL", 24*time.Hour),

		LogLevel:  envString("LOG_LEVEL", "info"),
		LogFormat: envString("LOG_FORMAT", "text"),

		ExpiryCron: envString("EXPIRY_CRON", "0 * * * *"),

		JobAutoApprove:          envBool("JOB_AUTO_APPROVE", true),
		ListingRequiresApproval: envBool("LISTING_REQUIRES_APPROVAL", false),
		ApplicationStatusPolicy: strings.ToLower(envString("APPLICATION_STATUS_POLICY", "permissive")),
		EnforceBan:              envBool("ENFORCE_BAN", true),

		DispatchWorkers:   envInt("DISPATCH_WORKERS", 2),
		DispatchQueueSize: envInt("DISPATCH_QUEUE_SIZE", 256),

		CORSOrigins: envList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		SeedRoles:   envBool("SEED_ROLES", true),
	}
}

// Validate reports settings the server can't start with.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.DBDriver {
	case "mysql", "postgres", "postgresql", "sqlite", "sqlite3":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DispatchWorkers < 0 || c.DispatchQueueSize < 1 {
		return errors.New("DISPATCH_WORKERS must be >= 0 and DISPATCH_QUEUE_SIZE >= 1")
	}
	return nil
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		utils.InfoLogger.Warnf("invalid %s=%q, using %t", key, raw, fallback)
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		utils.InfoLogger.Warnf("invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		utils.InfoLogger.Warnf("invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return v
}

func envList(key string, fallback []string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
