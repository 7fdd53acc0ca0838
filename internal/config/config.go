package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Database  DatabaseConfig   `json:"database"`
	Port      int              `json:"port"`
	JWTSecret string           `json:"jwt_secret"`
	CORS      []string         `json:"cors"`
	LogConfig logger.LogConfig `json:"log_config"`
	FileStore FileStoreConfig  `json:"file_store"`
	Provider  ProviderConfig   `json:"provider"`
	Jobs      JobsConfig       `json:"jobs"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
}

type FileStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ProviderConfig points at the catalog resolution service used during
// media imports.
type ProviderConfig struct {
	BaseURL               string `json:"base_url"`
	PerItemTimeoutSeconds int    `json:"per_item_timeout_seconds"`
	CacheSize             int    `json:"cache_size"`
	CacheTTLMinutes       int    `json:"cache_ttl_minutes"`
}

type JobsConfig struct {
	ImportInvalidateSpec string `json:"import_invalidate_spec"`
	DeployWindowSeconds  int    `json:"deploy_window_seconds"`
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
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.dsn or database.host is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.FileStore.Type == "" {
		cfg.FileStore.Type = "local"
		cfg.FileStore.Data = map[string]interface{}{"dir": "./data/exports"}
	}
	if cfg.Provider.BaseURL == "" {
		return nil, fmt.Errorf("provider.base_url is required")
	}
	if cfg.Provider.PerItemTimeoutSeconds <= 0 {
		cfg.Provider.PerItemTimeoutSeconds = 15
	}
	if cfg.Provider.CacheSize <= 0 {
		cfg.Provider.CacheSize = 1024
	}
	if cfg.Provider.CacheTTLMinutes <= 0 {
		cfg.Provider.CacheTTLMinutes = 60
	}
	if cfg.Jobs.ImportInvalidateSpec == "" {
		// Hourly sweep of jobs unfinished past the stale window.
		cfg.Jobs.ImportInvalidateSpec = "0 * * * *"
	}
	if cfg.Jobs.DeployWindowSeconds < 0 {
		cfg.Jobs.DeployWindowSeconds = 0
	}
	return &cfg, nil
}
