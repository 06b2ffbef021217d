package store

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ProviderTwelveData = "TWELVEDATA"
	ProviderKite       = "KITE"
	ProviderYahoo      = "YAHOO"
	ProviderSynthetic  = "SYNTHETIC"
)

// MaxScanSymbols is the hard cap on symbols per scan.
const MaxScanSymbols = 5

type Config struct {
	Server struct {
		Host         string        `yaml:"host"`
		Port         int           `yaml:"port"`
		Tag          string        `yaml:"tag"`
		Version      string        `yaml:"version"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"server"`
	Scan struct {
		DefaultSymbols []string      `yaml:"default_symbols"`
		MaxSymbols     int           `yaml:"max_symbols"`
		Pacing         time.Duration `yaml:"pacing"`
	} `yaml:"scan"`
	Quote struct {
		Provider       string        `yaml:"provider"`
		BaseURL        string        `yaml:"base_url"`
		APIKeyEnv      string        `yaml:"api_key_env"`
		AccessTokenEnv string        `yaml:"access_token_env"`
		Exchange       string        `yaml:"exchange"`
		SymbolSuffix   string        `yaml:"symbol_suffix"`
		Timeout        time.Duration `yaml:"timeout"`
		Breaker        struct {
			MaxFailures uint32        `yaml:"max_failures"`
			OpenTimeout time.Duration `yaml:"open_timeout"`
		} `yaml:"breaker"`
	} `yaml:"quote"`
	News struct {
		Enabled        bool          `yaml:"enabled"`
		BaseURL        string        `yaml:"base_url"`
		APIKeyEnv      string        `yaml:"api_key_env"`
		Country        string        `yaml:"country"`
		Language       string        `yaml:"language"`
		Timeout        time.Duration `yaml:"timeout"`
		ScrapeFallback bool          `yaml:"scrape_fallback"`
		ScrapeURL      string        `yaml:"scrape_url"`
	} `yaml:"news"`
	Engine struct {
		// Seed pins the randomness source. Leave unset in production.
		Seed *uint64 `yaml:"seed"`
	} `yaml:"engine"`
}

// Defaults returns the configuration used when no config file is present.
func Defaults() *Config {
	var c Config
	c.presetFileDefaults()
	c.applyDefaults()
	return &c
}

// presetFileDefaults sets values whose zero is meaningful, so a file that
// omits them gets the default while an explicit zero or false survives.
func (c *Config) presetFileDefaults() {
	c.News.Enabled = true
	c.Scan.Pacing = time.Second
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Server.Tag == "" {
		c.Server.Tag = "AI Stock Scanner Backend"
	}
	if c.Server.Version == "" {
		c.Server.Version = "1.0.0"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	// a full scan is up to five paced symbols with two upstream calls each
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 90 * time.Second
	}

	if len(c.Scan.DefaultSymbols) == 0 {
		c.Scan.DefaultSymbols = []string{"RELIANCE", "TCS", "HDFCBANK", "INFY", "ICICIBANK"}
	}
	if c.Scan.MaxSymbols == 0 {
		c.Scan.MaxSymbols = MaxScanSymbols
	}

	if c.Quote.Provider == "" {
		c.Quote.Provider = ProviderTwelveData
	}
	if c.Quote.BaseURL == "" && c.Quote.Provider == ProviderTwelveData {
		c.Quote.BaseURL = "https://api.twelvedata.com"
	}
	if c.Quote.APIKeyEnv == "" {
		switch c.Quote.Provider {
		case ProviderKite:
			c.Quote.APIKeyEnv = "KITE_API_KEY"
		default:
			c.Quote.APIKeyEnv = "TWELVEDATA_API_KEY"
		}
	}
	if c.Quote.AccessTokenEnv == "" {
		c.Quote.AccessTokenEnv = "KITE_ACCESS_TOKEN"
	}
	if c.Quote.Exchange == "" {
		c.Quote.Exchange = "NSE"
	}
	if c.Quote.SymbolSuffix == "" {
		c.Quote.SymbolSuffix = ".NS"
	}
	if c.Quote.Timeout == 0 {
		c.Quote.Timeout = 5 * time.Second
	}
	if c.Quote.Breaker.MaxFailures == 0 {
		c.Quote.Breaker.MaxFailures = 3
	}
	if c.Quote.Breaker.OpenTimeout == 0 {
		c.Quote.Breaker.OpenTimeout = 30 * time.Second
	}

	if c.News.BaseURL == "" {
		c.News.BaseURL = "https://newsdata.io/api/1"
	}
	if c.News.APIKeyEnv == "" {
		c.News.APIKeyEnv = "NEWSDATA_API_KEY"
	}
	if c.News.Country == "" {
		c.News.Country = "in"
	}
	if c.News.Language == "" {
		c.News.Language = "en"
	}
	if c.News.Timeout == 0 {
		c.News.Timeout = 5 * time.Second
	}
	if c.News.ScrapeURL == "" {
		c.News.ScrapeURL = "https://news.google.com/rss/search"
	}
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1-65535, got %d", c.Server.Port)
	}
	switch c.Quote.Provider {
	case ProviderTwelveData, ProviderKite, ProviderYahoo, ProviderSynthetic:
	default:
		return fmt.Errorf("quote.provider must be 'TWELVEDATA', 'KITE', 'YAHOO' or 'SYNTHETIC', got '%s'", c.Quote.Provider)
	}
	if c.Scan.MaxSymbols < 0 || c.Scan.MaxSymbols > MaxScanSymbols {
		return fmt.Errorf("scan.max_symbols must be between 1-%d, got %d", MaxScanSymbols, c.Scan.MaxSymbols)
	}
	if c.Scan.Pacing < 0 {
		return fmt.Errorf("scan.pacing cannot be negative, got %s", c.Scan.Pacing)
	}
	if c.Quote.Timeout < 0 || c.News.Timeout < 0 {
		return errors.New("upstream timeouts cannot be negative")
	}
	for _, s := range c.Scan.DefaultSymbols {
		if s == "" {
			return errors.New("scan.default_symbols cannot contain empty symbols")
		}
	}
	return nil
}

// APIKey resolves the quote provider key from the environment.
func (c *Config) APIKey() string {
	return os.Getenv(c.Quote.APIKeyEnv)
}

func (c *Config) AccessToken() string {
	return os.Getenv(c.Quote.AccessTokenEnv)
}

func (c *Config) NewsAPIKey() string {
	return os.Getenv(c.News.APIKeyEnv)
}

// LoadConfig reads path, falling back to Defaults when the file does not exist.
func LoadConfig(path string) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		c = *Defaults()
	case err != nil:
		return nil, err
	default:
		c.presetFileDefaults()
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	}

	c.applyDefaults()

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
