package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ExplorerAPIKeyEnv is the environment variable holding the explorer API token.
const ExplorerAPIKeyEnv = "ETHERSCAN_KEY"

// DefaultConfigPath is used when no --config flag is given.
const DefaultConfigPath = "config/config.yml"

// ServerConfig holds settings for the REST API served by `inspector serve`.
type ServerConfig struct {
	Port                string   `yaml:"port"`
	ShutdownTimeoutSecs int      `yaml:"shutdownTimeoutSeconds"`
	AllowedOrigins      []string `yaml:"allowedOrigins"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"` // "console" or "json"
}

// NodeConfig holds the JSON-RPC node used for balance lookups.
type NodeConfig struct {
	RPCURL string `yaml:"rpcURL"`
}

// ExplorerConfig holds the Etherscan-compatible transaction-list API.
type ExplorerConfig struct {
	BaseURL   string `yaml:"baseURL"`
	ChainID   int64  `yaml:"chainID"`
	MaxOffset int    `yaml:"maxOffset"`
	APIKey    string `yaml:"-"` // only ever read from the environment
}

// ExchangeRateConfig holds the ETH->fiat exchange-rate API.
type ExchangeRateConfig struct {
	BaseURL  string `yaml:"baseURL"`
	Currency string `yaml:"currency"`
}

// AddressStatsConfig holds the address-statistics API reporting n_tx.
// URLTemplate must contain the {address} placeholder.
type AddressStatsConfig struct {
	URLTemplate string `yaml:"urlTemplate"`
}

// HTTPConfig holds transport settings shared by every outbound call.
type HTTPConfig struct {
	RequestTimeoutMillis int64 `yaml:"requestTimeoutMillis"`
}

// AggregationConfig controls the statistics pipeline.
type AggregationConfig struct {
	// StrictCount turns a disagreement between n_tx and the fetched list length into an error.
	StrictCount bool `yaml:"strictCount"`
}

// ExportConfig controls the CSV sink.
type ExportConfig struct {
	Directory string `yaml:"directory"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Logging      LoggingConfig      `yaml:"logging"`
	Node         NodeConfig         `yaml:"node"`
	Explorer     ExplorerConfig     `yaml:"explorer"`
	ExchangeRate ExchangeRateConfig `yaml:"exchangeRate"`
	AddressStats AddressStatsConfig `yaml:"addressStats"`
	HTTP         HTTPConfig         `yaml:"http"`
	Aggregation  AggregationConfig  `yaml:"aggregation"`
	Export       ExportConfig       `yaml:"export"`
}

// RequestTimeout returns the per-request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.HTTP.RequestTimeoutMillis) * time.Millisecond
}

// Load reads the YAML configuration file from the given path and unmarshals it.
// A missing file is not an error: defaults and the environment are used instead.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	applyDefaults(&cfg)

	// .env is optional; real environment variables take precedence over it.
	_ = godotenv.Load()
	cfg.Explorer.APIKey = os.Getenv(ExplorerAPIKeyEnv)

	return &cfg, nil
}

// Validate checks the values the pipeline cannot run without.
func (c *Config) Validate() error {
	if c.Explorer.APIKey == "" {
		return fmt.Errorf("%s must be set in the environment", ExplorerAPIKeyEnv)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ShutdownTimeoutSecs <= 0 {
		cfg.Server.ShutdownTimeoutSecs = 5
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Encoding == "" {
		cfg.Logging.Encoding = "console"
	}

	if cfg.Node.RPCURL == "" {
		cfg.Node.RPCURL = "https://ethereum-rpc.publicnode.com"
	}

	if cfg.Explorer.BaseURL == "" {
		cfg.Explorer.BaseURL = "https://api.etherscan.io/v2/api"
	}
	if cfg.Explorer.ChainID == 0 {
		cfg.Explorer.ChainID = 1 // Ethereum mainnet
	}
	if cfg.Explorer.MaxOffset <= 0 {
		cfg.Explorer.MaxOffset = 10000 // Etherscan caps page*offset at 10k
	}

	if cfg.ExchangeRate.BaseURL == "" {
		cfg.ExchangeRate.BaseURL = "https://api.coinbase.com/v2/exchange-rates"
	}
	if cfg.ExchangeRate.Currency == "" {
		cfg.ExchangeRate.Currency = "ETH"
	}

	if cfg.AddressStats.URLTemplate == "" {
		cfg.AddressStats.URLTemplate = "https://api.blockcypher.com/v1/eth/main/addrs/{address}/balance"
	}

	if cfg.HTTP.RequestTimeoutMillis <= 0 {
		cfg.HTTP.RequestTimeoutMillis = 5000
	}

	if cfg.Export.Directory == "" {
		cfg.Export.Directory = "."
	}
}
