package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Archive (paperless) connection
	PaperlessBaseURL string
	PaperlessToken   string
	PaperlessTimeout time.Duration

	// Project scoping
	ProjectName     string
	ProjectTagName  string
	DefaultCurrency string

	// Extraction / sync tuning
	ReviewThreshold  float64
	SyncPageSize     int
	SyncLookbackDays int

	// Scheduler
	SchedulerEnabled      bool
	SchedulerInterval     time.Duration
	SchedulerRunOnStartup bool

	// Auth
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	AdminUsername     string
	AdminPassword     string

	// HTTP surface
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("PAPERLESS_BASE_URL", "")
	viper.SetDefault("PAPERLESS_TOKEN", "")
	viper.SetDefault("PAPERLESS_TIMEOUT", "30s")
	viper.SetDefault("PROJECT_NAME", "Pool")
	viper.SetDefault("PROJECT_TAG_NAME", "")
	viper.SetDefault("POOL_TAG_NAME", "") // legacy name, kept for existing deployments
	viper.SetDefault("DEFAULT_CURRENCY", "EUR")
	viper.SetDefault("REVIEW_THRESHOLD", 0.60)
	viper.SetDefault("SYNC_PAGE_SIZE", 100)
	viper.SetDefault("SYNC_LOOKBACK_DAYS", 365)
	viper.SetDefault("SCHEDULER_ENABLED", false)
	viper.SetDefault("SCHEDULER_INTERVAL_MINUTES", 360)
	viper.SetDefault("SCHEDULER_RUN_ON_STARTUP", true)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "pool-cost-tracker")
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.PaperlessBaseURL = strings.TrimRight(strings.TrimSpace(viper.GetString("PAPERLESS_BASE_URL")), "/")
	cfg.PaperlessToken = strings.TrimSpace(viper.GetString("PAPERLESS_TOKEN"))
	if cfg.PaperlessBaseURL == "" {
		log.Println("Warning: PAPERLESS_BASE_URL not set. Sync will fail until configured.")
	}
	if cfg.PaperlessToken == "" {
		log.Println("Warning: PAPERLESS_TOKEN not set. Sync will fail until configured.")
	}

	paperlessTimeoutStr := viper.GetString("PAPERLESS_TIMEOUT")
	paperlessTimeout, err := time.ParseDuration(paperlessTimeoutStr)
	if err != nil || paperlessTimeout <= 0 {
		paperlessTimeout = 30 * time.Second
		if paperlessTimeoutStr != "" && err != nil {
			log.Printf("Warning: Invalid value for PAPERLESS_TIMEOUT ('%s'). Defaulting to %s.\n", paperlessTimeoutStr, paperlessTimeout)
		}
	}
	cfg.PaperlessTimeout = paperlessTimeout

	cfg.ProjectName = strings.TrimSpace(viper.GetString("PROJECT_NAME"))
	if cfg.ProjectName == "" {
		cfg.ProjectName = "Pool"
	}

	// PROJECT_TAG_NAME wins; POOL_TAG_NAME is the legacy spelling; the
	// project name is the last resort, matching how deployments were
	// configured historically.
	cfg.ProjectTagName = strings.TrimSpace(viper.GetString("PROJECT_TAG_NAME"))
	if cfg.ProjectTagName == "" {
		cfg.ProjectTagName = strings.TrimSpace(viper.GetString("POOL_TAG_NAME"))
	}
	if cfg.ProjectTagName == "" {
		cfg.ProjectTagName = cfg.ProjectName
	}

	cfg.DefaultCurrency = strings.ToUpper(strings.TrimSpace(viper.GetString("DEFAULT_CURRENCY")))
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "EUR"
	}

	cfg.ReviewThreshold = viper.GetFloat64("REVIEW_THRESHOLD")
	if cfg.ReviewThreshold <= 0 || cfg.ReviewThreshold > 1 {
		log.Printf("Warning: REVIEW_THRESHOLD out of range (%v). Defaulting to 0.60.\n", cfg.ReviewThreshold)
		cfg.ReviewThreshold = 0.60
	}

	cfg.SyncPageSize = viper.GetInt("SYNC_PAGE_SIZE")
	if cfg.SyncPageSize <= 0 {
		cfg.SyncPageSize = 100
	}
	cfg.SyncLookbackDays = viper.GetInt("SYNC_LOOKBACK_DAYS")
	if cfg.SyncLookbackDays <= 0 {
		cfg.SyncLookbackDays = 365
	}

	cfg.SchedulerEnabled = viper.GetBool("SCHEDULER_ENABLED")
	intervalMinutes := viper.GetInt("SCHEDULER_INTERVAL_MINUTES")
	if intervalMinutes <= 0 {
		log.Printf("Warning: Invalid SCHEDULER_INTERVAL_MINUTES (%d). Defaulting to 360.\n", intervalMinutes)
		intervalMinutes = 360
	}
	cfg.SchedulerInterval = time.Duration(intervalMinutes) * time.Minute
	cfg.SchedulerRunOnStartup = viper.GetBool("SCHEDULER_RUN_ON_STARTUP")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 12 * time.Hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
		}
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.AdminUsername = viper.GetString("ADMIN_USERNAME")
	cfg.AdminPassword = viper.GetString("ADMIN_PASSWORD")
	if cfg.AdminPassword == "" {
		log.Println("Warning: ADMIN_PASSWORD not set. Login is disabled until configured.")
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}
	if cfg.IsProduction && len(cfg.CORSAllowedOrigins) == 0 {
		log.Println("Warning: CORS_ALLOWED_ORIGINS not set. Cross-origin requests are denied in production.")
	}

	return cfg, nil
}
