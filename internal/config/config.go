package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"fitness-tracker/internal/utils"
)

// Config - конфигурация приложения, читается из переменных окружения
type Config struct {
	Port          string
	DBHost        string
	DBPort        string
	DBName        string
	DBUser        string
	DBPassword    string
	JWTSecret     string
	JWTExpiration time.Duration
	RedisAddr     string
	CORSOrigin    string
	MigrationsDir string
}

// Load читает конфигурацию из окружения. JWT_SECRET обязателен,
// остальные значения имеют значения по умолчанию.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "5000"),
		DBHost:        getEnv("DB_HOST", "db"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBName:        getEnv("DB_NAME", "fitness_tracker"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		CORSOrigin:    getEnv("CORS_ORIGIN", "*"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("переменная окружения JWT_SECRET обязательна")
	}

	expiration := getEnv("JWT_EXPIRATION", "168h")
	parsed, err := time.ParseDuration(expiration)
	if err != nil {
		return nil, fmt.Errorf("неверный формат JWT_EXPIRATION %q: %w", expiration, err)
	}
	cfg.JWTExpiration = parsed

	utils.LogSuccess("Config", "Конфигурация загружена (порт: %s, БД: %s@%s:%s/%s)",
		cfg.Port, cfg.DBUser, cfg.DBHost, cfg.DBPort, cfg.DBName)

	return cfg, nil
}

// DatabaseURL собирает строку подключения к PostgreSQL
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
