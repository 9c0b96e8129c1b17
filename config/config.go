// Package config provides configuration management for the collateral oracle service
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix of every environment variable read by NewConfig
const Prefix = "oracle"

// Config holds the application configuration
type Config struct {
	RPCURL       string        `envconfig:"RPC_URL" validate:"omitempty,url"`                         // EVM JSON-RPC endpoint
	Owner        string        `envconfig:"OWNER" required:"true" validate:"required,eth_addr"`       // Registry owner address
	Feeds        string        `envconfig:"FEEDS"`                                                    // Comma-separated asset=feed pairs
	Listen       string        `envconfig:"LISTEN" default:":8080" validate:"required,hostname_port"` // HTTP listen address
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	CallTimeout  time.Duration `envconfig:"CALL_TIMEOUT" default:"10s" validate:"gt=0"`               // Timeout of a single feed call
	MockPrice    string        `envconfig:"MOCK_PRICE" validate:"omitempty,number"`                   // Enables mock feeds answering this price
	MockDecimals uint8         `envconfig:"MOCK_DECIMALS" default:"8"`                                // Precision of mock feeds
	Domain       string        `envconfig:"DOMAIN" default:"collateral-oracle" validate:"required,printascii,excludes=:"`
}

// FeedBinding is an asset to feed pair seeded at start-up
type FeedBinding struct {
	Asset common.Address
	Feed  common.Address
}

// Option is a function that modifies Config
type Option func(*Config) error

// LoadEnvFile loads variables from a .env file. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("failed to load env file: %w", err)
	}

	return nil
}

// WithListen sets the HTTP listen address
func WithListen(addr string) Option {
	return func(c *Config) error {
		c.Listen = addr
		return nil
	}
}

// WithLogLevel sets the log level
func WithLogLevel(level string) Option {
	return func(c *Config) error {
		c.LogLevel = strings.ToLower(level)
		return nil
	}
}

// WithMockPrice turns on mock feeds answering price
func WithMockPrice(price string) Option {
	return func(c *Config) error {
		if _, ok := new(big.Int).SetString(price, 10); !ok {
			return fmt.Errorf("invalid mock price: %s", price)
		}

		c.MockPrice = price
		return nil
	}
}

var validation = validator.New()

// validate performs validation on the config values
func (c *Config) validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}

	if c.RPCURL == "" && !c.MockMode() {
		return fmt.Errorf("RPC URL is required unless mock feeds are enabled")
	}

	if c.MockMode() {
		if _, err := c.MockAnswer(); err != nil {
			return err
		}
	}

	if _, err := c.FeedBindings(); err != nil {
		return err
	}

	return nil
}

// NewConfig creates a new validated Config instance from the environment
func NewConfig(opts ...Option) (*Config, error) {
	var cfg Config

	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	// Apply user options last so they take precedence
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// OwnerAddress returns the owner as an address
func (c *Config) OwnerAddress() common.Address {
	return common.HexToAddress(c.Owner)
}

// MockMode reports whether feeds are served from memory instead of the chain
func (c *Config) MockMode() bool {
	return c.MockPrice != ""
}

// MockAnswer returns the answer reported by mock feeds
func (c *Config) MockAnswer() (*big.Int, error) {
	answer, ok := new(big.Int).SetString(c.MockPrice, 10)
	if !ok {
		return nil, fmt.Errorf("invalid mock price: %q", c.MockPrice)
	}

	return answer, nil
}

// FeedBindings parses Feeds into asset to feed pairs
func (c *Config) FeedBindings() ([]FeedBinding, error) {
	if strings.TrimSpace(c.Feeds) == "" {
		return nil, nil
	}

	pairs := strings.Split(c.Feeds, ",")
	bindings := make([]FeedBinding, 0, len(pairs))

	for _, pair := range pairs {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			return nil, fmt.Errorf("empty feed in list")
		}

		asset, feed, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid feed %q: expected asset=feed", pair)
		}

		asset, feed = strings.TrimSpace(asset), strings.TrimSpace(feed)
		if !common.IsHexAddress(asset) {
			return nil, fmt.Errorf("invalid asset address: %s", asset)
		}
		if !common.IsHexAddress(feed) {
			return nil, fmt.Errorf("invalid feed address: %s", feed)
		}

		bindings = append(bindings, FeedBinding{
			Asset: common.HexToAddress(asset),
			Feed:  common.HexToAddress(feed),
		})
	}

	return bindings, nil
}
