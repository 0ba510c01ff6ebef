package cliparse

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Port              int           `mapstructure:"port"`
	DatabaseURL       string        `mapstructure:"database_url"`
	DatabaseType      string        `mapstructure:"database_type"`
	AdminKey          string        `mapstructure:"admin_key"`
	IPHashSalt        string        `mapstructure:"ip_hash_salt"`
	ExpectedSolutions int           `mapstructure:"expected_solutions"`
	UniversitiesFile  string        `mapstructure:"universities_file"`
	ProvidersFile     string        `mapstructure:"providers_file"`
	ShowResults       bool          `mapstructure:"show_results"`
	SessionTTL        time.Duration `mapstructure:"session_ttl"`
	SweepSchedule     string        `mapstructure:"sweep_schedule"`
	ResultsSchedule   string        `mapstructure:"results_schedule"`
	LogLevel          string        `mapstructure:"log_level"`
	LogFile           string        `mapstructure:"log_file"`
}

// config key -> flag name
var flagKeys = map[string]string{
	"port":               "port",
	"database_url":       "database-url",
	"database_type":      "database-type",
	"admin_key":          "admin-key",
	"ip_hash_salt":       "ip-salt",
	"expected_solutions": "expected-solutions",
	"universities_file":  "universities",
	"providers_file":     "providers",
	"show_results":       "show-results",
	"session_ttl":        "session-ttl",
	"sweep_schedule":     "sweep-schedule",
	"results_schedule":   "results-schedule",
	"log_level":          "log-level",
	"log_file":           "log-file",
}

// ParseFlags builds the configuration from, in increasing precedence:
// flag defaults, config file, .env file, environment, CLI flags.
func ParseFlags(args []string) (Config, error) {
	flags := pflag.NewFlagSet("univote", pflag.ContinueOnError)

	// Network and storage
	flags.IntP("port", "p", 3318, "Server port")
	flags.StringP("database-url", "d", "", "Database URL")
	flags.StringP("database-type", "t", "sqlite", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	flags.String("admin-key", "", "Admin key for solution management (prefer env)")
	flags.String("ip-salt", "", "Salt for client IP hashing (prefer env)")

	// Form
	flags.IntP("expected-solutions", "n", 3, "Number of solutions a vote must select")
	flags.String("universities", "", "University domain table (JSON); embedded sample if empty")
	flags.String("providers", "", "Email provider table (JSON); embedded sample if empty")
	flags.Bool("show-results", true, "Show prior results on the form")

	// Housekeeping
	flags.Duration("session-ttl", 30*time.Minute, "Idle form session lifetime")
	flags.String("sweep-schedule", "@every 5m", "Cron schedule for expiring form sessions")
	flags.String("results-schedule", "@every 1m", "Cron schedule for refreshing results")

	// Logging
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-file", "", "Rotated log file; stdout if empty")

	flags.StringP("config", "c", "", "Config file (yaml, json or toml)")
	flags.String("env-file", ".env", "Dotenv file loaded into the environment if present")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	// .env never overrides variables that are already set
	envFile, _ := flags.GetString("env-file")
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	for key, flag := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return Config{}, fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	if configPath, _ := flags.GetString("config"); configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.DatabaseType = strings.ToLower(cfg.DatabaseType)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks required settings and fatal misconfiguration
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", c.Port)
	}
	if c.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if c.DatabaseType != "sqlite" && c.DatabaseType != "postgres" {
		return fmt.Errorf("database type must be sqlite or postgres, got %q", c.DatabaseType)
	}

	// Secrets - MUST be provided
	if c.AdminKey == "" {
		return errors.New("ADMIN_KEY required")
	}
	if c.IPHashSalt == "" {
		return errors.New("IP_HASH_SALT required")
	}

	if c.ExpectedSolutions <= 0 {
		return fmt.Errorf("expected_solutions must be positive, got %d", c.ExpectedSolutions)
	}
	if c.SessionTTL <= 0 {
		return errors.New("session_ttl must be positive")
	}
	if _, err := cron.ParseStandard(c.SweepSchedule); err != nil {
		return fmt.Errorf("invalid sweep_schedule: %w", err)
	}
	if _, err := cron.ParseStandard(c.ResultsSchedule); err != nil {
		return fmt.Errorf("invalid results_schedule: %w", err)
	}

	return nil
}
