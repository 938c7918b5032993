package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/ethereum/go-ethereum/common"
)

// Config is the daemon configuration, read from the environment at startup
type Config struct {
	APIURL     string `env:"ZETAFROG_API_URL"     envDefault:"http://localhost:3001"`
	ListenAddr string `env:"ZETAFROG_LISTEN_ADDR" envDefault:"127.0.0.1:9000"`
	// RedisURL enables the Redis stores and event stream when set
	RedisURL string `env:"REDIS_URL"`

	RPCURL         string        `env:"ZETAFROG_RPC_URL"         envDefault:"https://zetachain-athens-evm.blockpi.network/v1/rpc/public"`
	ChainID        int64         `env:"ZETAFROG_CHAIN_ID"        envDefault:"7001"`
	FrogContract   string        `env:"ZETAFROG_FROG_CONTRACT"   envDefault:"0x76e7baA23fce77DA7Edbea58D8B888128D47A1Ff"`
	MintGas        uint64        `env:"ZETAFROG_MINT_GAS"        envDefault:"300000"`
	ReceiptTimeout time.Duration `env:"ZETAFROG_RECEIPT_TIMEOUT" envDefault:"120s"`

	TokenTTL    time.Duration `env:"ZETAFROG_TOKEN_TTL"    envDefault:"24h"`
	SnapshotTTL time.Duration `env:"ZETAFROG_SNAPSHOT_TTL" envDefault:"0s"`
	HTTPTimeout time.Duration `env:"ZETAFROG_HTTP_TIMEOUT" envDefault:"10s"`
	Debug       bool          `env:"ZETAFROG_DEBUG"`
}

// Load parses the environment and validates the result
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate rejects values the daemon cannot run with
func (c Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("ZETAFROG_API_URL is required")
	}
	if !common.IsHexAddress(c.FrogContract) {
		return fmt.Errorf("ZETAFROG_FROG_CONTRACT is not an address: %q", c.FrogContract)
	}
	if c.ChainID <= 0 {
		return fmt.Errorf("ZETAFROG_CHAIN_ID must be positive")
	}
	if c.MintGas == 0 {
		return fmt.Errorf("ZETAFROG_MINT_GAS must be positive")
	}
	if c.ReceiptTimeout <= 0 || c.TokenTTL <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	return nil
}
