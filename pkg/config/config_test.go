package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("COINBOT_DISCORD_TOKEN", "test-token")
	t.Setenv("COINBOT_DISCORD_APP_ID", "123456789")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.Discord.Token)
	assert.Equal(t, "https://api.coingecko.com/api/v3", cfg.Market.BaseURL)
	assert.Equal(t, "bomber-coin", cfg.Market.DefaultCoinID)
	assert.Equal(t, "bsc", cfg.Chain.Name)
	assert.Equal(t, "BNB", cfg.Chain.NativeSymbol)
	assert.Equal(t, "BCOIN", cfg.Chain.TokenSymbol)
	assert.Equal(t, "coinbot.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COINBOT_MARKET_DEFAULT_COIN", "ethereum")
	t.Setenv("COINBOT_DB_PATH", "/tmp/bot.db")
	t.Setenv("COINBOT_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ethereum", cfg.Market.DefaultCoinID)
	assert.Equal(t, "/tmp/bot.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMissingTokenFails(t *testing.T) {
	t.Setenv("COINBOT_DISCORD_TOKEN", "")
	t.Setenv("COINBOT_DISCORD_APP_ID", "123456789")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COINBOT_DISCORD_TOKEN")
}

func TestLoadMissingAppIDFails(t *testing.T) {
	t.Setenv("COINBOT_DISCORD_TOKEN", "test-token")
	t.Setenv("COINBOT_DISCORD_APP_ID", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COINBOT_DISCORD_APP_ID")
}
