// Package config loads process-wide settings: defaults, an optional YAML file,
// a .env file and finally environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"stock_proxy/internal/platform/externalapi/alphavantage"
	"stock_proxy/internal/platform/externalapi/finnhub"
	"stock_proxy/internal/shared/apperror"
)

// 環境変数名
const (
	EnvConfigFile          = "CONFIG_FILE"
	EnvAddr                = "ADDR"
	EnvPort                = "PORT"
	EnvBasePath            = "BASE_PATH"
	EnvShutdownTimeout     = "SHUTDOWN_TIMEOUT"
	EnvLogLevel            = "LOG_LEVEL"
	EnvLogFormat           = "LOG_FORMAT"
	EnvFinnhubAPIKey       = "FINNHUB_API_KEY"
	EnvFinnhubBaseURL      = "FINNHUB_BASE_URL"
	EnvFinnhubTickBaseURL  = "FINNHUB_TICK_BASE_URL"
	EnvAlphaVantageAPIKey  = "ALPHA_VANTAGE_API_KEY"
	EnvAlphaVantageBaseURL = "ALPHA_VANTAGE_BASE_URL"
	EnvUpstreamTimeout     = "UPSTREAM_TIMEOUT"
)

// DefaultEnvFile は Load が読み込む .env ファイルです。
const DefaultEnvFile = ".env"

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Log          LogConfig          `yaml:"log"`
	Finnhub      FinnhubConfig      `yaml:"finnhub"`
	AlphaVantage AlphaVantageConfig `yaml:"alpha_vantage"`
	Upstream     UpstreamConfig     `yaml:"upstream"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	BasePath        string        `yaml:"base_path"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

type FinnhubConfig struct {
	APIKey      string `yaml:"api_key"`
	BaseURL     string `yaml:"base_url"`
	TickBaseURL string `yaml:"tick_base_url"`
}

type AlphaVantageConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type UpstreamConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// ConfigurationError は必須設定が欠けている、または値が不正であることを示します。
type ConfigurationError struct {
	Missing []string // 未設定の環境変数名
	Invalid []string // 不正な値の説明
}

func (e *ConfigurationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required settings: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid settings: "+strings.Join(e.Invalid, "; "))
	}
	return strings.Join(parts, "; ")
}

// Default は組み込みのデフォルト値を返します。APIキーは空です。
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "text"},
		Finnhub: FinnhubConfig{
			BaseURL:     finnhub.DefaultBaseURL,
			TickBaseURL: finnhub.DefaultTickBaseURL,
		},
		AlphaVantage: AlphaVantageConfig{
			BaseURL: alphavantage.DefaultBaseURL,
		},
		Upstream: UpstreamConfig{Timeout: 10 * time.Second},
	}
}

// Load はデフォルト値、YAMLファイル（path が空でなければ）、.env ファイル、環境変数の順に
// 設定を読み込みます。envFiles を省略した場合は DefaultEnvFile を読み込みます。
// .env は既存の環境変数を上書きしません。存在しない .env は無視します。
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	cfg.Server.BasePath = strings.TrimRight(cfg.Server.BasePath, "/")

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(EnvPort); v != "" {
		cfg.Server.Addr = ":" + v
	}
	setString(&cfg.Server.Addr, EnvAddr)
	setString(&cfg.Server.BasePath, EnvBasePath)
	setString(&cfg.Log.Level, EnvLogLevel)
	setString(&cfg.Log.Format, EnvLogFormat)
	setString(&cfg.Finnhub.APIKey, EnvFinnhubAPIKey)
	setString(&cfg.Finnhub.BaseURL, EnvFinnhubBaseURL)
	setString(&cfg.Finnhub.TickBaseURL, EnvFinnhubTickBaseURL)
	setString(&cfg.AlphaVantage.APIKey, EnvAlphaVantageAPIKey)
	setString(&cfg.AlphaVantage.BaseURL, EnvAlphaVantageBaseURL)

	if err := setDuration(&cfg.Server.ShutdownTimeout, EnvShutdownTimeout); err != nil {
		return err
	}
	return setDuration(&cfg.Upstream.Timeout, EnvUpstreamTimeout)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, v)
	}
	*dst = d
	return nil
}

// Validate は起動前に必須のAPIキーと値の範囲を検証します。
// 失敗した場合は Configuration コードの apperror で *ConfigurationError を包んで返します。
func (c *Config) Validate() error {
	ce := &ConfigurationError{}

	if strings.TrimSpace(c.Finnhub.APIKey) == "" {
		ce.Missing = append(ce.Missing, EnvFinnhubAPIKey)
	}
	if strings.TrimSpace(c.AlphaVantage.APIKey) == "" {
		ce.Missing = append(ce.Missing, EnvAlphaVantageAPIKey)
	}
	if c.Server.Addr == "" {
		ce.Invalid = append(ce.Invalid, "server address is empty")
	}
	if c.Server.BasePath != "" && !strings.HasPrefix(c.Server.BasePath, "/") {
		ce.Invalid = append(ce.Invalid, fmt.Sprintf("base path %q must start with /", c.Server.BasePath))
	}
	if c.Upstream.Timeout <= 0 {
		ce.Invalid = append(ce.Invalid, "upstream timeout must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		ce.Invalid = append(ce.Invalid, "shutdown timeout must be positive")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		ce.Invalid = append(ce.Invalid, fmt.Sprintf("log level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		ce.Invalid = append(ce.Invalid, fmt.Sprintf("log format %q is not text or json", c.Log.Format))
	}

	if len(ce.Missing) == 0 && len(ce.Invalid) == 0 {
		return nil
	}
	return apperror.Wrap(apperror.Configuration, "configuration error", ce)
}

// FinnhubClientConfig はFinnhubクライアント用の設定を返します。
func (c *Config) FinnhubClientConfig() finnhub.Config {
	return finnhub.Config{
		APIKey:      c.Finnhub.APIKey,
		BaseURL:     strings.TrimRight(c.Finnhub.BaseURL, "/"),
		TickBaseURL: strings.TrimRight(c.Finnhub.TickBaseURL, "/"),
		Timeout:     c.Upstream.Timeout,
	}
}

// AlphaVantageClientConfig はAlpha Vantageクライアント用の設定を返します。
func (c *Config) AlphaVantageClientConfig() alphavantage.Config {
	return alphavantage.Config{
		APIKey:  c.AlphaVantage.APIKey,
		BaseURL: strings.TrimRight(c.AlphaVantage.BaseURL, "/"),
		Timeout: c.Upstream.Timeout,
	}
}
