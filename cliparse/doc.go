// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a validated Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Sources

Settings are resolved by viper, highest precedence first:

 1. CLI flags (pflag)
 2. Environment variables
 3. A dotenv file (--env-file, default .env), loaded into the environment
    without overriding variables that are already set
 4. A config file (--config, yaml/json/toml)
 5. Flag defaults

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKey: Key for solution management (required)
  - IPHashSalt: Salt for client IP hashing (required)
  - ExpectedSolutions: Solutions a vote must select (default: 3)
  - UniversitiesFile, ProvidersFile: Domain tables; embedded samples if empty
  - ShowResults: Whether forms show prior results (default: true)
  - SessionTTL: Idle form session lifetime (default: 30m)
  - SweepSchedule, ResultsSchedule: cron specs (default: @every 5m, @every 1m)
  - LogLevel, LogFile: Logging (default: info, stdout)

# Environment Variables

Every config key is read from the upper-cased environment variable of the
same name:

	PORT               → -p, --port
	DATABASE_URL       → -d, --database-url
	DATABASE_TYPE      → -t, --database-type
	ADMIN_KEY          → --admin-key
	IP_HASH_SALT       → --ip-salt
	EXPECTED_SOLUTIONS → -n, --expected-solutions
	SESSION_TTL        → --session-ttl
	LOG_LEVEL          → --log-level

# Validation

ParseFlags returns an error if:

  - DATABASE_URL, ADMIN_KEY or IP_HASH_SALT is missing
  - the database type is not sqlite or postgres
  - expected_solutions or session_ttl is not positive
  - a cron schedule does not parse
*/
package cliparse
