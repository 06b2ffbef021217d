package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Scan.MaxSymbols)
	assert.Equal(t, time.Second, cfg.Scan.Pacing)
	assert.Equal(t, ProviderTwelveData, cfg.Quote.Provider)
	assert.Equal(t, 5*time.Second, cfg.Quote.Timeout)
	assert.Equal(t, ".NS", cfg.Quote.SymbolSuffix)
	assert.True(t, cfg.News.Enabled)
	assert.Equal(t, "in", cfg.News.Country)
	assert.Nil(t, cfg.Engine.Seed)
	assert.Equal(t, []string{"RELIANCE", "TCS", "HDFCBANK", "INFY", "ICICIBANK"}, cfg.Scan.DefaultSymbols)
}

func TestLoadConfigFromYAML(t *testing.T) {
	p := writeConfig(t, `
server:
  port: 8081
  tag: test-tag
scan:
  pacing: 250ms
  max_symbols: 3
quote:
  provider: YAHOO
  timeout: 2s
news:
  enabled: false
engine:
  seed: 42
`)
	cfg, err := LoadConfig(p)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "test-tag", cfg.Server.Tag)
	assert.Equal(t, 250*time.Millisecond, cfg.Scan.Pacing)
	assert.Equal(t, 3, cfg.Scan.MaxSymbols)
	assert.Equal(t, ProviderYahoo, cfg.Quote.Provider)
	assert.Equal(t, 2*time.Second, cfg.Quote.Timeout)
	assert.False(t, cfg.News.Enabled)
	require.NotNil(t, cfg.Engine.Seed)
	assert.Equal(t, uint64(42), *cfg.Engine.Seed)
}

func TestLoadConfigNewsEnabledByDefault(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "server:\n  port: 9000\n"))
	require.NoError(t, err)
	assert.True(t, cfg.News.Enabled)
}

func TestLoadConfigPortEnvOverride(t *testing.T) {
	t.Setenv("PORT", "4567")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 4567, cfg.Server.Port)

	t.Setenv("PORT", "abc")
	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())

	cfg.Quote.Provider = "BLOOMBERG"
	assert.ErrorContains(t, cfg.Validate(), "quote.provider")

	cfg = Defaults()
	cfg.Scan.Pacing = -time.Second
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.Scan.DefaultSymbols = []string{"TCS", ""}
	assert.Error(t, cfg.Validate())
}

func TestLoadConfigRejectsInvalidYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "server: [unterminated"))
	assert.Error(t, err)
}

func TestSecretsFromEnv(t *testing.T) {
	cfg := Defaults()
	t.Setenv("TWELVEDATA_API_KEY", "td-key")
	t.Setenv("NEWSDATA_API_KEY", "nd-key")
	assert.Equal(t, "td-key", cfg.APIKey())
	assert.Equal(t, "nd-key", cfg.NewsAPIKey())
}

func TestLoadConfigExplicitZeroPacingSurvives(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "scan:\n  pacing: 0s\n"))
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.Scan.Pacing)

	cfg, err = LoadConfig(writeConfig(t, "scan:\n  max_symbols: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Scan.Pacing)
}

func TestValidateMaxSymbolsCap(t *testing.T) {
	cfg := Defaults()
	cfg.Scan.MaxSymbols = MaxScanSymbols
	assert.NoError(t, cfg.Validate())

	cfg.Scan.MaxSymbols = 6
	assert.ErrorContains(t, cfg.Validate(), "scan.max_symbols")

	_, err := LoadConfig(writeConfig(t, "scan:\n  max_symbols: 10\n"))
	assert.Error(t, err)
}
