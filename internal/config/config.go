package config

import (
	"errors"  // For validation errors
	"fmt"     // For DSN formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For duration suffix handling
	"time"    // For token and lockout durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration. It is built once at startup and never mutated.
type Config struct {
	AppPort         string        // Application port
	DatabaseDSN     string        // Full DSN, overrides the DB_* parts when set
	DBUser          string        // Database user
	DBPassword      string        // Database password
	DBHost          string        // Database host
	DBPort          string        // Database port
	DBName          string        // Database name
	JWTSecret       string        // JWT secret key
	JWTExpiresIn    time.Duration // Token lifetime
	RedisAddr       string        // Redis server address, empty disables the login limiter
	RedisPass       string        // Redis password
	RedisDB         int           // Redis database number
	LoginMaxTries   int           // Failed logins allowed per window
	LoginLockWindow time.Duration // Window for counting failed logins
	LogDir          string        // Directory for rotated log files
	LogLevel        string        // Operational log level
	IsProd          bool          // Is production environment
	StaffOnlyStatus bool          // Only staff may change reservation status
	StrictStatus    bool          // Reject status changes outside the transition table
	CORSOrigins     []string      // Allowed CORS origins, "*" allows any
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, defaults applied for unset values
func FromEnv(getenv func(string) string) *Config {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}
	redisDB, _ := strconv.Atoi(get("REDIS_DB", "0"))
	maxTries, err := strconv.Atoi(get("LOGIN_MAX_ATTEMPTS", "5"))
	if err != nil || maxTries <= 0 {
		maxTries = 5
	}
	expiry, err := ParseDuration(get("JWT_EXPIRES_IN", "24h"))
	if err != nil || expiry <= 0 {
		expiry = 24 * time.Hour
	}
	window, err := ParseDuration(get("LOGIN_LOCK_WINDOW", "15m"))
	if err != nil || window <= 0 {
		window = 15 * time.Minute
	}
	return &Config{
		AppPort:         get("APP_PORT", "4000"),
		DatabaseDSN:     get("DATABASE_DSN", ""),
		DBUser:          get("DB_USER", ""),
		DBPassword:      get("DB_PASSWORD", ""),
		DBHost:          get("DB_HOST", "127.0.0.1"),
		DBPort:          get("DB_PORT", "3306"),
		DBName:          get("DB_NAME", "reservations"),
		JWTSecret:       get("JWT_SECRET", ""),
		JWTExpiresIn:    expiry,
		RedisAddr:       get("REDIS_ADDR", ""),
		RedisPass:       get("REDIS_PASS", ""),
		RedisDB:         redisDB,
		LoginMaxTries:   maxTries,
		LoginLockWindow: window,
		LogDir:          get("LOG_DIR", "logs"),
		LogLevel:        get("LOG_LEVEL", "info"),
		IsProd:          get("IS_PROD", "") == "true",
		StaffOnlyStatus: get("STAFF_ONLY_STATUS_CHANGES", "") == "true",
		StrictStatus:    get("STRICT_STATUS_TRANSITIONS", "") == "true",
		CORSOrigins:     splitList(get("CORS_ALLOWED_ORIGINS", "*")),
	}
}

// splitList splits a comma separated list, dropping blanks. An empty result allows all origins.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// DSN returns the MySQL data source name
func (c *Config) DSN() string {
	if c.DatabaseDSN != "" {
		return c.DatabaseDSN
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=UTC", c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// Validate reports settings the server cannot start without
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.DatabaseDSN == "" && (c.DBUser == "" || c.DBName == "") {
		errs = append(errs, errors.New("DATABASE_DSN or DB_USER and DB_NAME are required"))
	}
	return errors.Join(errs...)
}

// ParseDuration accepts Go durations plus a "d" suffix for whole days, e.g. "90d"
func ParseDuration(s string) (time.Duration, error) {
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid day duration %q: %w", s, err)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}
