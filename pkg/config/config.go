package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type DiscordConfig struct {
	Token   string `env:"COINBOT_DISCORD_TOKEN"`
	AppID   string `env:"COINBOT_DISCORD_APP_ID"`
	GuildID string `env:"COINBOT_DISCORD_GUILD_ID"`
}

type MarketConfig struct {
	BaseURL       string `env:"COINBOT_MARKET_BASE_URL" envDefault:"https://api.coingecko.com/api/v3"`
	DefaultCoinID string `env:"COINBOT_MARKET_DEFAULT_COIN" envDefault:"bomber-coin"`
}

type ChainConfig struct {
	RPCURL         string `env:"COINBOT_CHAIN_RPC_URL" envDefault:"wss://bsc-rpc.publicnode.com"`
	BalanceAPIBase string `env:"COINBOT_CHAIN_BALANCE_API_BASE" envDefault:"https://deep-index.moralis.io/api/v2"`
	BalanceAPIKey  string `env:"COINBOT_CHAIN_BALANCE_API_KEY"`
	Name           string `env:"COINBOT_CHAIN_NAME" envDefault:"bsc"`
	TokenContract  string `env:"COINBOT_CHAIN_TOKEN_CONTRACT" envDefault:"0x00e1656e45f18ec6747f5a8496fd39b50b38396d"`
	NativeSymbol   string `env:"COINBOT_CHAIN_NATIVE_SYMBOL" envDefault:"BNB"`
	TokenSymbol    string `env:"COINBOT_CHAIN_TOKEN_SYMBOL" envDefault:"BCOIN"`
}

type DatabaseConfig struct {
	Path string `env:"COINBOT_DB_PATH" envDefault:"coinbot.db"`
}

type Config struct {
	Discord  DiscordConfig
	Market   MarketConfig
	Chain    ChainConfig
	Database DatabaseConfig
	LogLevel string `env:"COINBOT_LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"COINBOT_LOG_FILE"`
}

// Load parses configuration from the environment and validates the fields
// the process cannot start without.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("COINBOT_DISCORD_TOKEN is required")
	}
	if c.Discord.AppID == "" {
		return fmt.Errorf("COINBOT_DISCORD_APP_ID is required")
	}
	return nil
}
