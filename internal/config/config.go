package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage drivers
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Cache drivers
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		GRPCAddr    string `yaml:"grpc_addr"`
		MetricsAddr string `yaml:"metrics_addr"`
		APIToken    string `yaml:"api_token"`
		Reflection  bool   `yaml:"reflection"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Storage struct {
		Driver      string `yaml:"driver"`
		PostgresDSN string `yaml:"postgres_dsn"`
		SQLitePath  string `yaml:"sqlite_path"`
	} `yaml:"storage"`
	Cache struct {
		Driver    string        `yaml:"driver"`
		RedisAddr string        `yaml:"redis_addr"`
		TTL       time.Duration `yaml:"ttl"`
	} `yaml:"cache"`
	Snapshots struct {
		Cron             string `yaml:"cron"`
		RetentionDays    int    `yaml:"retention_days"`
		BaselineScenario string `yaml:"baseline_scenario"`
	} `yaml:"snapshots"`
	Defaults struct {
		MonthlyIncome   float64 `yaml:"monthly_income"`
		YearlyInflation float64 `yaml:"yearly_inflation"`
		HorizonMonths   int     `yaml:"horizon_months"`
	} `yaml:"defaults"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error: defaults and the environment still apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)

	return cfg, nil
}

// Environment variable overrides
func applyEnv(cfg *Config) {
	if v := os.Getenv("GRPC_ADDR"); v != "" {
		cfg.Server.GRPCAddr = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Server.MetricsAddr = v
	}
	if v := os.Getenv("API_TOKEN"); v != "" {
		cfg.Server.APIToken = v
	}
	if v := os.Getenv("GRPC_REFLECTION"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Server.Reflection = enabled
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("DB_CONN_STR"); v != "" {
		cfg.Storage.PostgresDSN = v
	} else if os.Getenv("DB_HOST") != "" {
		cfg.Storage.PostgresDSN = postgresDSNFromEnv()
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv("CACHE_DRIVER"); v != "" {
		cfg.Cache.Driver = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("SNAPSHOT_CRON"); v != "" {
		cfg.Snapshots.Cron = v
	}
	if v := os.Getenv("BASELINE_SCENARIO"); v != "" {
		cfg.Snapshots.BaselineScenario = v
	}
	if v := os.Getenv("MONTHLY_INCOME"); v != "" {
		var income float64
		if _, err := fmt.Sscanf(v, "%f", &income); err == nil {
			cfg.Defaults.MonthlyIncome = income
		}
	}
}

// postgresDSNFromEnv builds a connection string from individual vars (Docker friendly)
func postgresDSNFromEnv() string {
	get := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		get("DB_HOST", "localhost"),
		get("DB_PORT", "5432"),
		get("DB_USER", "postgres"),
		get("DB_PASSWORD", "postgres"),
		get("DB_NAME", "wealthflow"),
	)
}

// Defaults
func applyDefaults(cfg *Config) {
	if cfg.Server.GRPCAddr == "" {
		cfg.Server.GRPCAddr = ":8080"
	}
	if cfg.Server.MetricsAddr == "" {
		cfg.Server.MetricsAddr = ":9090"
	}
	if cfg.Server.APIToken == "" {
		cfg.Server.APIToken = "dev-token"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = StorageMemory
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = "data/wealthflow.db"
	}
	if cfg.Cache.Driver == "" {
		cfg.Cache.Driver = CacheMemory
	}
	if cfg.Cache.RedisAddr == "" {
		cfg.Cache.RedisAddr = "localhost:6379"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 10 * time.Minute
	}
	if cfg.Snapshots.Cron == "" {
		cfg.Snapshots.Cron = "0 0 6 * * *"
	}
	if cfg.Snapshots.RetentionDays == 0 {
		cfg.Snapshots.RetentionDays = 365
	}
	if cfg.Defaults.MonthlyIncome == 0 {
		cfg.Defaults.MonthlyIncome = 30_000
	}
	if cfg.Defaults.YearlyInflation == 0 {
		cfg.Defaults.YearlyInflation = 0.025
	}
	if cfg.Defaults.HorizonMonths == 0 {
		cfg.Defaults.HorizonMonths = 240
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Storage.Driver) {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("storage.postgres_dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("storage.driver must be memory, postgres or sqlite")
	}

	switch strings.ToLower(c.Cache.Driver) {
	case CacheMemory, CacheRedis, CacheNone:
	default:
		return fmt.Errorf("cache.driver must be memory, redis or none")
	}

	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	if c.Snapshots.RetentionDays < 0 {
		return fmt.Errorf("snapshots.retention_days must not be negative")
	}
	if c.Defaults.HorizonMonths < 0 {
		return fmt.Errorf("defaults.horizon_months must not be negative")
	}
	return nil
}

// Retention is how long snapshots are kept
func (c *Config) Retention() time.Duration {
	return time.Duration(c.Snapshots.RetentionDays) * 24 * time.Hour
}
