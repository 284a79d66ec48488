package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const DefaultPath = "configs/config.toml"

type Config struct {
	Server struct {
		Host                 string `env:"DREAMTEAM_HTTP_ADDR"`
		SessionSecret        string `toml:"session_secret" env:"DREAMTEAM_SESSION_SECRET"`
		SecureCookies        bool   `toml:"secure_cookies" env:"DREAMTEAM_SECURE_COOKIES"`
		LogFile              string `toml:"log_file" env:"DREAMTEAM_LOG_FILE"`
		ReadTimeout          time.Duration
		WriteTimeout         time.Duration
		ReadHeaderTimeout    time.Duration
		StrReadTimeout       string `toml:"read_timeout"`
		StrWriteTimeout      string `toml:"write_timeout"`
		StrReadHeaderTimeout string `toml:"read_header_timeout"`
	}
	GRPC struct {
		Addr string `toml:"addr" env:"DREAMTEAM_GRPC_ADDR"`
	} `toml:"grpc"`
	Database struct {
		Host     string `env:"DREAMTEAM_DB_HOST"`
		User     string `env:"DREAMTEAM_DB_USER"`
		Password string `env:"DREAMTEAM_DB_PASSWORD"`
		Database string `env:"DREAMTEAM_DB_NAME"`
		MaxConns int32  `toml:"max_conns"`
	}
	Redis struct {
		RedisAddr     string `toml:"redis_addr" env:"DREAMTEAM_REDIS_ADDR"`
		RedisPassword string `toml:"redis_password" env:"DREAMTEAM_REDIS_PASSWORD"`
		RedisDB       int    `toml:"redis_db"`
		SessionTTL    time.Duration
		StrSessionTTL string `toml:"session_ttl"`
	}
}

// GetConfig reads the TOML file at path, loads an optional .env file and
// applies environment overrides on top.
func GetConfig(path string, logger *slog.Logger) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Error read config file", slog.String("path", path), slog.String("error", err.Error()))
		return nil, err
	}

	cfg, err := Parse(data)
	if err != nil {
		logger.Error("Error parse config file", slog.String("path", path), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Config is loaded", slog.String("path", path))
	return cfg, nil
}

func Parse(data []byte) (*Config, error) {
	var cfg Config

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.parseDurations(); err != nil {
		return nil, err
	}

	cfg.setDefaults()

	if cfg.Server.SessionSecret == "" {
		return nil, errors.New("session_secret is required")
	}

	return &cfg, nil
}

func (cfg *Config) parseDurations() error {
	durations := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"read_timeout", cfg.Server.StrReadTimeout, &cfg.Server.ReadTimeout},
		{"write_timeout", cfg.Server.StrWriteTimeout, &cfg.Server.WriteTimeout},
		{"read_header_timeout", cfg.Server.StrReadHeaderTimeout, &cfg.Server.ReadHeaderTimeout},
		{"session_ttl", cfg.Redis.StrSessionTTL, &cfg.Redis.SessionTTL},
	}

	for _, d := range durations {
		if d.raw == "" {
			continue
		}

		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", d.name, err)
		}
		*d.dst = v
	}

	return nil
}

func (cfg *Config) setDefaults() {
	if cfg.Server.Host == "" {
		cfg.Server.Host = ":8080"
	}
	if cfg.Server.LogFile == "" {
		cfg.Server.LogFile = "server.log"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10 * time.Second
	}
	if cfg.Server.ReadHeaderTimeout == 0 {
		cfg.Server.ReadHeaderTimeout = 5 * time.Second
	}
	if cfg.Redis.SessionTTL == 0 {
		cfg.Redis.SessionTTL = 12 * time.Hour
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 10
	}
}

// DatabaseURL builds the pgx connection string.
func (cfg *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		cfg.Database.User, cfg.Database.Password, cfg.Database.Host, cfg.Database.Database)
}
