package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	DB            DatabaseConfig   `json:"db"`
	Port          int              `json:"port"`
	JWTSecret     string           `json:"jwt_secret"`
	JWTTTLHours   int              `json:"jwt_ttl_hours"`
	PublicURL     string           `json:"public_url"`
	CORSAllowlist []string         `json:"cors_allowlist"`
	LogConfig     logger.LogConfig `json:"log_config"`
	Share         ShareConfig      `json:"share"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

type ShareConfig struct {
	CleanupSpec       string `json:"cleanup_spec"`
	CleanupGraceHours int    `json:"cleanup_grace_hours"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.DB.DSN == "" && cfg.DB.Host == "" {
		return nil, fmt.Errorf("db.dsn or db.host is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.PublicURL == "" {
		return nil, fmt.Errorf("public_url is required")
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Share.CleanupSpec == "" {
		cfg.Share.CleanupSpec = "17 * * * *"
	}
	if cfg.Share.CleanupGraceHours == 0 {
		cfg.Share.CleanupGraceHours = 24
	}
	return &cfg, nil
}
