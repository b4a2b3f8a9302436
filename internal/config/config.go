package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port       int
	LogLevel   string
	LogDir     string
	APIKey     string // service API key checked by the auth middleware
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// Game balance knobs. Everything else in the balance sheet
	// (seed costs, buyback prices, animal ratios) lives in the catalog.
	GrowTime        time.Duration // crop and tree growth window
	CollectTime     time.Duration // timed animal product accrual window
	PlotCost        int
	PenCost         int
	TreeCost        int
	ApprovalQuorum  int // approvals needed to settle a task as approved
	RejectionQuorum int // doubts needed to settle a task as rejected
	ReviewerReward  int // stitchcoins paid to a reviewer per review
	AuthorReward    int // stitchcoins recorded on a task at submission

	// Cleanup notifier endpoint; empty disables notification.
	CleanupURL string

	// Profile read cache.
	ProfileCacheSize int
	ProfileCacheTTL  time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:   getEnv("LOG_LEVEL", "INFO"),
		LogDir:     getEnv("LOG_DIR", "logs"),
		APIKey:     getEnv("API_KEY", ""),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "stitchfarm"),
		CleanupURL: getEnv("CLEANUP_URL", ""),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", 8080); err != nil {
		return nil, err
	}
	growMinutes, err := getEnvInt("GROW_TIME_MINUTES", 60)
	if err != nil {
		return nil, err
	}
	collectMinutes, err := getEnvInt("COLLECT_TIME_MINUTES", 120)
	if err != nil {
		return nil, err
	}
	cfg.GrowTime = time.Duration(growMinutes) * time.Minute
	cfg.CollectTime = time.Duration(collectMinutes) * time.Minute

	if cfg.PlotCost, err = getEnvInt("PLOT_COST", 10); err != nil {
		return nil, err
	}
	if cfg.PenCost, err = getEnvInt("PEN_COST", 15); err != nil {
		return nil, err
	}
	if cfg.TreeCost, err = getEnvInt("TREE_COST", 12); err != nil {
		return nil, err
	}
	if cfg.ApprovalQuorum, err = getEnvInt("APPROVAL_QUORUM", 1); err != nil {
		return nil, err
	}
	if cfg.RejectionQuorum, err = getEnvInt("REJECTION_QUORUM", 1); err != nil {
		return nil, err
	}
	if cfg.ReviewerReward, err = getEnvInt("REVIEWER_REWARD", 1); err != nil {
		return nil, err
	}
	if cfg.AuthorReward, err = getEnvInt("AUTHOR_REWARD", 10); err != nil {
		return nil, err
	}
	if cfg.ProfileCacheSize, err = getEnvInt("PROFILE_CACHE_SIZE", 1024); err != nil {
		return nil, err
	}
	cacheTTLSeconds, err := getEnvInt("PROFILE_CACHE_TTL_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	cfg.ProfileCacheTTL = time.Duration(cacheTTLSeconds) * time.Second

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if cfg.ApprovalQuorum < 1 || cfg.RejectionQuorum < 1 {
		return nil, fmt.Errorf("review quorums must be at least 1")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
