package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName          string
	AppEnv           string
	AppPort          string
	DatabaseURL      string
	RedisURL         string
	NATSURL          string
	JWTSecret        string
	TokenTTL         time.Duration
	ClassPIN         string
	AdminUsername    string
	JudgeURL         string
	JudgeTimeout     time.Duration
	SettingsCacheTTL time.Duration
	RunRateLimit     int
	RunRateWindow    time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CONTEST")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Contest API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("jwt.ttl", "8h")
	v.SetDefault("admin.username", "admin")
	v.SetDefault("judge.timeout", "30s")
	v.SetDefault("settings.cache_ttl", "5s")
	v.SetDefault("run.rate_limit", 10)
	v.SetDefault("run.rate_window", "10s")

	tokenTTL, err := time.ParseDuration(v.GetString("jwt.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid jwt ttl: %w", err)
	}

	judgeTimeout, err := time.ParseDuration(v.GetString("judge.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid judge timeout: %w", err)
	}

	cacheTTL, err := time.ParseDuration(v.GetString("settings.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid settings cache ttl: %w", err)
	}

	rateWindow, err := time.ParseDuration(v.GetString("run.rate_window"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid run rate window: %w", err)
	}

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           v.GetString("app.env"),
		AppPort:          v.GetString("app.port"),
		DatabaseURL:      v.GetString("database.url"),
		RedisURL:         v.GetString("redis.url"),
		NATSURL:          v.GetString("nats.url"),
		JWTSecret:        v.GetString("jwt.secret"),
		TokenTTL:         tokenTTL,
		ClassPIN:         v.GetString("class.pin"),
		AdminUsername:    v.GetString("admin.username"),
		JudgeURL:         v.GetString("judge.url"),
		JudgeTimeout:     judgeTimeout,
		SettingsCacheTTL: cacheTTL,
		RunRateLimit:     v.GetInt("run.rate_limit"),
		RunRateWindow:    rateWindow,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}
	if cfg.ClassPIN == "" {
		return Config{}, fmt.Errorf("class pin must be provided")
	}
	if cfg.JudgeURL == "" {
		return Config{}, fmt.Errorf("judge url must be provided")
	}

	return cfg, nil
}
