package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service configuration
type Config struct {
	Service    ServiceConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Telemetry  TelemetryConfig
	Admissions AdmissionsConfig
}

// ServiceConfig holds service-specific settings
type ServiceConfig struct {
	Name        string
	Port        int
	Environment string
	LogLevel    string
	LogFormat   string

	// Mutating requests allowed per client per minute, 0 disables the
	// limiter. Only enforced when Redis is enabled.
	WriteRateLimit int
}

// DatabaseConfig holds Postgres connection settings
type DatabaseConfig struct {
	Host        string
	Port        int
	Database    string
	User        string
	Password    string
	MaxConns    int
	MinConns    int
	MaxIdleTime time.Duration
	MaxLifetime time.Duration
}

// RedisConfig holds Redis settings for the statistics snapshot cache
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	SnapshotTTL time.Duration
}

// TelemetryConfig holds observability settings
type TelemetryConfig struct {
	EnablePprof   bool
	PprofPort     int
	EnableMetrics bool
	MetricsPort   int
}

// AdmissionsConfig holds the degree program table.
// Programs are static configuration: adding one is a config change, not a schema change.
type AdmissionsConfig struct {
	Programs []Program
}

// Program is a capacity-limited admission target
type Program struct {
	Code     string
	Name     string
	Capacity int
}

// Load loads configuration from environment variables
func Load(serviceName string) (*Config, error) {
	programs, err := parsePrograms(getEnv("ADMISSIONS_PROGRAMS", defaultPrograms))
	if err != nil {
		return nil, fmt.Errorf("parse ADMISSIONS_PROGRAMS: %w", err)
	}

	cfg := &Config{
		Service: ServiceConfig{
			Name:        serviceName,
			Port:        getEnvInt("PORT", 8080),
			Environment: getEnv("ENVIRONMENT", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			LogFormat:   getEnv("LOG_FORMAT", "text"),

			WriteRateLimit: getEnvInt("WRITE_RATE_LIMIT", 60),
		},
		Database: DatabaseConfig{
			Host:        getEnv("POSTGRES_HOST", "localhost"),
			Port:        getEnvInt("POSTGRES_PORT", 5432),
			Database:    getEnv("POSTGRES_DB", "admissions"),
			User:        getEnv("POSTGRES_USER", "admissions"),
			Password:    getEnv("POSTGRES_PASSWORD", "admissions"),
			MaxConns:    getEnvInt("POSTGRES_MAX_CONNS", 20),
			MinConns:    getEnvInt("POSTGRES_MIN_CONNS", 2),
			MaxIdleTime: getEnvDuration("POSTGRES_MAX_IDLE_TIME", 30*time.Minute),
			MaxLifetime: getEnvDuration("POSTGRES_MAX_LIFETIME", 1*time.Hour),
		},
		Redis: RedisConfig{
			Enabled:     getEnvBool("REDIS_ENABLED", false),
			Host:        getEnv("REDIS_HOST", "localhost"),
			Port:        getEnvInt("REDIS_PORT", 6379),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          getEnvInt("REDIS_DB", 0),
			SnapshotTTL: getEnvDuration("REDIS_SNAPSHOT_TTL", 24*time.Hour),
		},
		Telemetry: TelemetryConfig{
			EnablePprof:   getEnvBool("ENABLE_PPROF", false),
			PprofPort:     getEnvInt("PPROF_PORT", 6060),
			EnableMetrics: getEnvBool("ENABLE_METRICS", true),
			MetricsPort:   getEnvInt("METRICS_PORT", 9090),
		},
		Admissions: AdmissionsConfig{
			Programs: programs,
		},
	}

	return cfg, cfg.Validate()
}

// defaultPrograms is the observed four-program domain.
// Format: code:display name:capacity, comma separated.
const defaultPrograms = "PM:Applied Mathematics:40," +
	"IVT:Computer Science and Engineering:50," +
	"ITSS:Infocommunication Technologies:30," +
	"IB:Information Security:20"

func parsePrograms(raw string) ([]Program, error) {
	var programs []Program
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid program entry %q, want code:name:capacity", entry)
		}
		capacity, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return nil, fmt.Errorf("invalid capacity in %q: %w", entry, err)
		}
		programs = append(programs, Program{
			Code:     strings.TrimSpace(parts[0]),
			Name:     strings.TrimSpace(parts[1]),
			Capacity: capacity,
		})
	}
	return programs, nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.Service.Port < 1 || c.Service.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Service.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.MaxConns < c.Database.MinConns {
		return fmt.Errorf("max_conns must be >= min_conns")
	}

	if len(c.Admissions.Programs) == 0 {
		return fmt.Errorf("at least one program is required")
	}

	seen := make(map[string]bool, len(c.Admissions.Programs))
	for _, p := range c.Admissions.Programs {
		if p.Code == "" {
			return fmt.Errorf("program code is required")
		}
		if seen[p.Code] {
			return fmt.Errorf("duplicate program code: %s", p.Code)
		}
		seen[p.Code] = true
		if p.Capacity < 1 {
			return fmt.Errorf("program %s: capacity must be positive, got %d", p.Code, p.Capacity)
		}
	}

	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
	)
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
