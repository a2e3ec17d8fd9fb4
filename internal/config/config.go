package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/kintai-labs/kintai-backend-go/internal/domain/attendance"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance attendance.RuleConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

func Load() (*Config, error) {
	// A missing .env file is fine in deployed environments; everything can
	// come from real environment variables.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "kintai"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	// Attendance rules: plant defaults with per-boundary env overrides.
	rules := attendance.DefaultRuleConfig()
	rules.RegularStartMinutes, err = getEnvMinutes("ATTENDANCE_REGULAR_START", rules.RegularStartMinutes)
	if err != nil {
		return nil, err
	}
	rules.RegularEndMinutes, err = getEnvMinutes("ATTENDANCE_REGULAR_END", rules.RegularEndMinutes)
	if err != nil {
		return nil, err
	}
	rules.OvertimeStartMinutes, err = getEnvMinutes("ATTENDANCE_OVERTIME_START", rules.OvertimeStartMinutes)
	if err != nil {
		return nil, err
	}
	rules.RequiredWorkMinutes, err = getEnvInt("ATTENDANCE_REQUIRED_MINUTES", rules.RequiredWorkMinutes)
	if err != nil {
		return nil, err
	}
	rules.OvertimeLimitMinutes, err = getEnvInt("ATTENDANCE_OVERTIME_LIMIT_MINUTES", rules.OvertimeLimitMinutes)
	if err != nil {
		return nil, err
	}
	rules.ClosingDay, err = getEnvInt("ATTENDANCE_CLOSING_DAY", rules.ClosingDay)
	if err != nil {
		return nil, err
	}
	config.Attendance = rules

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.ClosingDay < 1 || c.Attendance.ClosingDay > 28 {
		return fmt.Errorf("ATTENDANCE_CLOSING_DAY must be between 1 and 28")
	}
	if c.Attendance.RegularStartMinutes >= c.Attendance.RegularEndMinutes {
		return fmt.Errorf("ATTENDANCE_REGULAR_START must be before ATTENDANCE_REGULAR_END")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

// getEnvMinutes reads an "HH:MM" clock value as minutes since midnight.
func getEnvMinutes(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	var h, m int
	if _, err := fmt.Sscanf(value, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid %s: %q is not a clock value", key, value)
	}
	return h*60 + m, nil
}
