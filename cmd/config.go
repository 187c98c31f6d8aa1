package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Timezone is the business time zone: scheduled dates, "today" and the document
	// numbers are evaluated in it.
	Timezone            string
	RequestTimeout      time.Duration
	OrderRequestTimeout time.Duration
	ItemBatchSize       int

	// RedisURL enables the service directory cache when set.
	RedisURL        string
	ServiceCacheTTL time.Duration

	// WorkOrderIntakeSchedule enables the intake job when set. Six-field cron syntax.
	WorkOrderIntakeSchedule string
}

// LoadConfig reads the configuration from the environment. A .env file in the working
// directory is loaded first when present; variables already set win.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort:                getEnv("HTTP_PORT", "8080"),
		DBHost:                  getEnv("DB_HOST", "localhost"),
		DBPort:                  getEnv("DB_PORT", "5432"),
		DBUser:                  getEnv("DB_USER", "postgres"),
		DBPassword:              getEnv("DB_PASSWORD", ""),
		DBName:                  getEnv("DB_NAME", "laundry"),
		DBSslMode:               getEnv("DB_SSLMODE", "disable"),
		Timezone:                getEnv("TIMEZONE", "UTC"),
		RedisURL:                getEnv("REDIS_URL", ""),
		WorkOrderIntakeSchedule: getEnv("WORK_ORDER_INTAKE_SCHEDULE", ""),
	}

	var errs []error
	cfg.RequestTimeout, errs = durationEnv("REQUEST_TIMEOUT", 15*time.Second, errs)
	cfg.OrderRequestTimeout, errs = durationEnv("ORDER_REQUEST_TIMEOUT", 60*time.Second, errs)
	cfg.ServiceCacheTTL, errs = durationEnv("SERVICE_CACHE_TTL", 5*time.Minute, errs)
	cfg.ItemBatchSize, errs = intEnv("ITEM_BATCH_SIZE", 100, errs)
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Location returns the business time zone. LoadConfig has already checked it.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DSN is the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration, errs []error) (time.Duration, []error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, errs
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback, append(errs, fmt.Errorf("%s: %q is not a positive duration", key, raw))
	}
	return d, errs
}

func intEnv(key string, fallback int, errs []error) (int, []error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, errs
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback, append(errs, fmt.Errorf("%s: %q is not a positive integer", key, raw))
	}
	return n, errs
}
