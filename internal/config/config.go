package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DefaultConfigPath     = "config.toml"
	DefaultDotenvPath     = ".env"
	DefaultHTTPAddr       = ":3000"
	DefaultWebhookPath    = "/linebot"
	DefaultMaxBodyBytes   = 1 << 20 // 1 MiB
	DefaultStaticDir      = "static"
	DefaultStaticPrefix   = "/static"
	DefaultDownloadDir    = "downloaded"
	DefaultDownloadPrefix = "/downloaded"
	DefaultVideoPreview   = "preview.png"
	DefaultLineAPIURL     = "https://api.line.me"
	DefaultLineDataURL    = "https://api-data.line.me"
	EnvConfigPath         = "CONFIG_PATH"
	EnvChannelToken       = "CHANNEL_ACCESS_TOKEN"
	EnvChannelSecret      = "CHANNEL_SECRET"
	EnvBaseURL            = "BASE_URL"
	EnvPort               = "PORT"
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
)

type Config struct {
	Log      LogConfig      `toml:"log"`
	Server   ServerConfig   `toml:"server"`
	Line     LineConfig     `toml:"line"`
	Webhook  WebhookConfig  `toml:"webhook"`
	Static   StaticConfig   `toml:"static"`
	Download DownloadConfig `toml:"download"`
}

type LogConfig struct {
	Level  string `toml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `toml:"format" validate:"omitempty,oneof=text json"`
}

type ServerConfig struct {
	Addr string `toml:"addr" validate:"required"`
	// BaseURL is the publicly reachable origin used to build links to
	// downloaded media, e.g. https://bot.example.com.
	BaseURL string `toml:"base_url" validate:"required,url"`
}

type LineConfig struct {
	ChannelAccessToken string `toml:"channel_access_token" validate:"required"`
	ChannelSecret      string `toml:"channel_secret" validate:"required_if=VerifySignature true"`
	APIEndpoint        string `toml:"api_endpoint" validate:"omitempty,url"`
	DataEndpoint       string `toml:"data_endpoint" validate:"omitempty,url"`
	VerifySignature    bool   `toml:"verify_signature"`
}

type WebhookConfig struct {
	Path         string `toml:"path" validate:"required,startswith=/"`
	MaxBodyBytes int64  `toml:"max_body_bytes" validate:"gt=0"`
}

type StaticConfig struct {
	Dir    string `toml:"dir"`
	Prefix string `toml:"prefix" validate:"required,startswith=/"`
}

type DownloadConfig struct {
	Dir    string `toml:"dir" validate:"required"`
	Prefix string `toml:"prefix" validate:"required,startswith=/"`
	// VideoPreview is the placeholder image, relative to Dir, sent as the
	// preview of videos downloaded from the platform.
	VideoPreview string `toml:"video_preview" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Server: ServerConfig{
			Addr: DefaultHTTPAddr,
		},
		Line: LineConfig{
			APIEndpoint:     DefaultLineAPIURL,
			DataEndpoint:    DefaultLineDataURL,
			VerifySignature: true,
		},
		Webhook: WebhookConfig{
			Path:         DefaultWebhookPath,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
		Static: StaticConfig{
			Dir:    DefaultStaticDir,
			Prefix: DefaultStaticPrefix,
		},
		Download: DownloadConfig{
			Dir:          DefaultDownloadDir,
			Prefix:       DefaultDownloadPrefix,
			VideoPreview: DefaultVideoPreview,
		},
	}
}

// Load reads the TOML file at path on top of the defaults and then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return cfg, err
		}
	} else if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	ApplyEnv(&cfg, os.LookupEnv)
	return cfg, nil
}

// LoadDotenv populates the process environment from a dotenv file. Variables
// already set win over the file, and a missing file is ignored.
func LoadDotenv(path string) error {
	if path == "" {
		path = DefaultDotenvPath
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with the variables the bot has always been deployed
// with.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookupTrimmed(lookup, EnvChannelToken); ok {
		cfg.Line.ChannelAccessToken = v
	}
	if v, ok := lookupTrimmed(lookup, EnvChannelSecret); ok {
		cfg.Line.ChannelSecret = v
	}
	if v, ok := lookupTrimmed(lookup, EnvBaseURL); ok {
		cfg.Server.BaseURL = v
	}
	if v, ok := lookupTrimmed(lookup, EnvPort); ok {
		cfg.Server.Addr = ":" + strings.TrimPrefix(v, ":")
	}
}

// Validate reports missing credentials and malformed settings.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// PublicBaseURL returns the base URL without a trailing slash.
func (c ServerConfig) PublicBaseURL() string {
	return strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
}

func lookupTrimmed(lookup func(string) (string, bool), key string) (string, bool) {
	if lookup == nil {
		return "", false
	}
	v, ok := lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	return v, true
}
