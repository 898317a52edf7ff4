package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
)

// ReceiptConfig controls signing of scored board receipts.
type ReceiptConfig struct {
	Secret     string `json:"secret" env:"BRIDGE_RECEIPT_SECRET"`
	Issuer     string `json:"issuer" env:"BRIDGE_RECEIPT_ISSUER"`
	TTLSeconds int    `json:"ttl_seconds" env:"BRIDGE_RECEIPT_TTL_SECONDS"`
}

type BridgeConfig struct {
	Receipt ReceiptConfig `json:"receipt"`
	// DealSeed is mixed with the board number so a session's deals can be replayed.
	// Nil means each session draws its own seed.
	DealSeed *int64 `json:"deal_seed" env:"BRIDGE_DEAL_SEED"`
	RedisURL string `json:"redis_url" env:"BRIDGE_REDIS_URL"`
	LogLevel string `json:"log_level" env:"BRIDGE_LOG_LEVEL"`
}

const (
	DefaultReceiptIssuer     = "bridge"
	DefaultReceiptTTLSeconds = 24 * 60 * 60
)

var (
	cfg      *BridgeConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadConfig loads the configuration file at path, if any, then applies BRIDGE_*
// environment overrides. Only the first call has an effect.
func LoadConfig(path string) error {
	return LoadConfigFrom(path, nil)
}

// LoadConfigFrom is LoadConfig with overrides taken from environ instead of the process
// environment. The Nakama runtime passes its configured env map this way.
func LoadConfigFrom(path string, environ map[string]string) error {
	loadOnce.Do(func() {
		c, err := ParseFrom(path, environ)
		if err != nil {
			loadErr = err
			return
		}
		cfg = c
	})
	return loadErr
}

// Parse reads a config without touching the process-wide copy. An empty path skips the
// file and uses environment variables only.
func Parse(path string) (*BridgeConfig, error) {
	return ParseFrom(path, nil)
}

// ParseFrom is Parse with an explicit environment; nil means the process environment.
func ParseFrom(path string, environ map[string]string) (*BridgeConfig, error) {
	var c BridgeConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read bridge config: %w", err)
		}
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal bridge config: %w", err)
		}
	}
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&c, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &c, nil
}

// GetConfig returns the loaded configuration, or nil before LoadConfig succeeds.
func GetConfig() *BridgeConfig {
	return cfg
}

// Receipt returns receipt settings with defaults filled in.
func Receipt() ReceiptConfig {
	var rc ReceiptConfig
	if cfg != nil {
		rc = cfg.Receipt
	}
	if rc.Issuer == "" {
		rc.Issuer = DefaultReceiptIssuer
	}
	if rc.TTLSeconds <= 0 {
		rc.TTLSeconds = DefaultReceiptTTLSeconds
	}
	return rc
}

// DealSeed returns the configured deal seed and whether one was set.
func DealSeed() (int64, bool) {
	if cfg == nil || cfg.DealSeed == nil {
		return 0, false
	}
	return *cfg.DealSeed, true
}
