package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Environment variables that may supply default credentials.
const (
	EnvHeliusAPIKey = "HELIUS_API_KEY"
	EnvCMCAPIKey    = "CMC_API_KEY"
	EnvConfigPath   = "CONFIG_PATH"
)

// DefaultPath is used when neither a flag nor CONFIG_PATH names a file.
const DefaultPath = "config/config.yml"

const defaultMaterialityPercent = 0.5

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
}

// SolanaConfig selects the cluster to query.
type SolanaConfig struct {
	Cluster string `yaml:"cluster"` // "mainnet-beta" or "devnet"
}

// HeliusConfig holds Helius RPC / DAS specific configurations.
type HeliusConfig struct {
	APIKey               string `yaml:"apiKey"`
	RPCURL               string `yaml:"rpcURL"` // overrides the cluster endpoint when set
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	PageLimit            int    `yaml:"pageLimit"`
}

// CoinMarketCapConfig holds CoinMarketCap API specific configurations.
type CoinMarketCapConfig struct {
	APIKey               string `yaml:"apiKey"`
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	Symbol               string `yaml:"symbol"`
	Convert              string `yaml:"convert"`
}

// RpcClientConfig holds pacing and caching for RPC clients.
type RpcClientConfig struct {
	RateLimit         float64 `yaml:"rateLimit"` // requests per second, 0 = unlimited
	BurstLimit        int     `yaml:"burstLimit"`
	ClientIdleMinutes int     `yaml:"clientIdleMinutes"`
}

// PriceServiceConfig holds configuration for the spot price service.
type PriceServiceConfig struct {
	CacheTTLSeconds int `yaml:"cacheTTLSeconds"` // 0 disables caching
}

// PerformanceConfig holds performance-related configurations.
type PerformanceConfig struct {
	MaxConcurrentRoutines int `yaml:"max_concurrent_routines"`
}

// DisplayConfig holds presentation thresholds.
type DisplayConfig struct {
	MaterialityPercent float64 `yaml:"materialityPercent"` // 0 shows every holding
}

// Config is the top-level configuration structure.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Logging       LoggingConfig       `yaml:"logging"`
	Solana        SolanaConfig        `yaml:"solana"`
	Helius        HeliusConfig        `yaml:"helius"`
	CoinMarketCap CoinMarketCapConfig `yaml:"coinMarketCap"`
	RpcClient     RpcClientConfig     `yaml:"rpcClient"`
	PriceSvc      PriceServiceConfig  `yaml:"priceService"`
	Performance   PerformanceConfig   `yaml:"performance"`
	Display       DisplayConfig       `yaml:"display"`
}

// Load reads the YAML configuration file from the given path and unmarshals it.
// A missing file is not an error: defaults are used. API keys not set in the file
// are taken from the environment, after loading an optional .env file.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = DefaultPath
	}

	// Seeded before unmarshalling so that an explicit 0 survives.
	cfg := Config{Display: DisplayConfig{MaterialityPercent: defaultMaterialityPercent}}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logrus.Infof("Config file %s not found, using defaults", path)
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
		}
		logrus.Infof("Loaded configuration from %s", path)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logrus.Warnf("Failed to load .env file: %v", err)
	}
	if cfg.Helius.APIKey == "" {
		cfg.Helius.APIKey = os.Getenv(EnvHeliusAPIKey)
	}
	if cfg.CoinMarketCap.APIKey == "" {
		cfg.CoinMarketCap.APIKey = os.Getenv(EnvCMCAPIKey)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 60
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 120
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Solana.Cluster == "" {
		cfg.Solana.Cluster = "mainnet-beta"
	}

	if cfg.Helius.RequestTimeoutMillis <= 0 {
		cfg.Helius.RequestTimeoutMillis = 10000
		logrus.Debugf("Helius.RequestTimeoutMillis not set, defaulting to %d ms", cfg.Helius.RequestTimeoutMillis)
	}
	if cfg.Helius.PageLimit <= 0 || cfg.Helius.PageLimit > 1000 {
		cfg.Helius.PageLimit = 1000 // DAS maximum
	}

	if cfg.CoinMarketCap.BaseURL == "" {
		cfg.CoinMarketCap.BaseURL = "https://pro-api.coinmarketcap.com"
	}
	if cfg.CoinMarketCap.RequestTimeoutMillis <= 0 {
		cfg.CoinMarketCap.RequestTimeoutMillis = cfg.Helius.RequestTimeoutMillis
	}
	if cfg.CoinMarketCap.Symbol == "" {
		cfg.CoinMarketCap.Symbol = "SOL"
	}
	if cfg.CoinMarketCap.Convert == "" {
		cfg.CoinMarketCap.Convert = "USD"
	}

	if cfg.RpcClient.RateLimit < 0 {
		cfg.RpcClient.RateLimit = 0
	}
	if cfg.RpcClient.RateLimit > 0 && cfg.RpcClient.BurstLimit <= 0 {
		cfg.RpcClient.BurstLimit = 1
	}
	if cfg.RpcClient.ClientIdleMinutes <= 0 {
		cfg.RpcClient.ClientIdleMinutes = 30
	}
	if cfg.PriceSvc.CacheTTLSeconds < 0 {
		cfg.PriceSvc.CacheTTLSeconds = 0
	}
	if cfg.Performance.MaxConcurrentRoutines <= 0 {
		cfg.Performance.MaxConcurrentRoutines = 10
	}
	if cfg.Display.MaterialityPercent < 0 {
		cfg.Display.MaterialityPercent = defaultMaterialityPercent
	}
}
