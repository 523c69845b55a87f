package config

import (
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Loan     LoanConfig
	NIDA     NIDAConfig
	Jobs     JobsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode + "&prepare_threshold=0"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// LoanConfig holds loan policy limits enforced by the loan usecase
type LoanConfig struct {
	MinAmount       decimal.Decimal
	MaxAmount       decimal.Decimal
	MaxTenureMonths int
	MaxActiveLoans  int
}

// NIDAConfig holds NIDA verification settings
type NIDAConfig struct {
	CacheTTL time.Duration
}

// JobsConfig holds background job settings
type JobsConfig struct {
	OverdueSchedule   string
	ApplicationMaxAge time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "tujenge"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Loan: LoanConfig{
			MinAmount:       getEnvAsDecimal("LOAN_MIN_AMOUNT", decimal.NewFromInt(50_000)),
			MaxAmount:       getEnvAsDecimal("LOAN_MAX_AMOUNT", decimal.NewFromInt(10_000_000)),
			MaxTenureMonths: getEnvAsInt("LOAN_MAX_TENURE_MONTHS", 60),
			MaxActiveLoans:  getEnvAsInt("LOAN_MAX_ACTIVE", 2),
		},
		NIDA: NIDAConfig{
			CacheTTL: getEnvAsDuration("NIDA_CACHE_TTL", 24*time.Hour),
		},
		Jobs: JobsConfig{
			OverdueSchedule:   getEnv("JOBS_OVERDUE_SCHEDULE", "0 2 * * *"),
			ApplicationMaxAge: getEnvAsDuration("JOBS_APPLICATION_MAX_AGE", 30*24*time.Hour),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return defaultValue
}
