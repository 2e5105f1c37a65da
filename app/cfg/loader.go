package cfg

import (
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	if Version != "" {
		return Version
	}
	return "unknown"
}

type rawCfg struct {
	// Database configuration
	DBHost     string `long:"db-host" env:"DB_HOST" default:"localhost" description:"Database host"`
	DBPort     string `long:"db-port" env:"DB_PORT" default:"5432" description:"Database port"`
	DBUser     string `long:"db-user" env:"DB_USER" default:"trip_user" description:"Database user"`
	DBPassword string `long:"db-password" env:"DB_PASSWORD" default:"trip_password" description:"Database password (required)" required:"true"`
	DBName     string `long:"db-name" env:"DB_NAME" default:"trip_comb" description:"Database name"`

	// Application configuration
	ProvidersFile      string `long:"providers-file" env:"PROVIDERS_FILE" default:"./providers.yml" description:"Ordered provider configuration file"`
	Port               string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	WorkerCount        int    `long:"worker-count" env:"WORKER_COUNT" default:"5" description:"Number of background workers for plan processing"`
	MaxConcurrency     int    `long:"max-concurrency" env:"MAX_CONCURRENCY" default:"5" description:"Maximum concurrent provider fetches per category"`
	AdapterTimeout     int    `long:"adapter-timeout" env:"ADAPTER_TIMEOUT" default:"25" description:"Per-provider fetch timeout in seconds"`
	TopActivities      int    `long:"top-activities" env:"TOP_ACTIVITIES" default:"3" description:"Number of activities to recommend"`
	PlanRetentionHours int    `long:"plan-retention" env:"PLAN_RETENTION_HOURS" default:"24" description:"Hours to keep completed plans before cleanup"`
	CleanupInterval    int    `long:"cleanup-interval" env:"CLEANUP_INTERVAL" default:"300" description:"Plan cleanup interval in seconds"`
	APIAccessKey       string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`
	RedisAddr          string `long:"redis-addr" env:"REDIS_ADDR" description:"Redis address for recommendation caching (optional, e.g. localhost:6379)"`
	CacheTTLMinutes    int    `long:"cache-ttl" env:"CACHE_TTL_MINUTES" default:"15" description:"Recommendation cache TTL in minutes"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Trip Comb/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.MaxConcurrency < 1 {
		return nil, fmt.Errorf("max concurrency must be positive, got %d", raw.MaxConcurrency)
	}
	if raw.AdapterTimeout < 1 {
		return nil, fmt.Errorf("adapter timeout must be positive, got %d", raw.AdapterTimeout)
	}
	if raw.TopActivities < 0 {
		return nil, fmt.Errorf("top activities must be non-negative, got %d", raw.TopActivities)
	}

	config := &Cfg{
		DBHost:             raw.DBHost,
		DBPort:             raw.DBPort,
		DBUser:             raw.DBUser,
		DBPassword:         raw.DBPassword,
		DBName:             raw.DBName,
		ProvidersFile:      raw.ProvidersFile,
		Port:               raw.Port,
		WorkerCount:        raw.WorkerCount,
		MaxConcurrency:     raw.MaxConcurrency,
		AdapterTimeout:     raw.AdapterTimeout,
		TopActivities:      raw.TopActivities,
		PlanRetentionHours: raw.PlanRetentionHours,
		CleanupInterval:    raw.CleanupInterval,
		APIAccessKey:       raw.APIAccessKey,
		RedisAddr:          raw.RedisAddr,
		CacheTTLMinutes:    raw.CacheTTLMinutes,
		UserAgent:          raw.UserAgent,
		Timezone:           raw.Timezone,
		Debug:              raw.Debug,
		Version:            GetVersion(),
	}

	if err := applyTimezone(config.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", config.Timezone, err)
	}

	globalCfg = config

	return config, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
