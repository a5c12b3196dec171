// Package config handles configuration for moechat.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	apierrors "github.com/moecatalyst/moechat/internal/errors"
	"github.com/moecatalyst/moechat/internal/models"
)

// Environment variables read by ApplyEnv
const (
	EnvEndpoint = "MOECHAT_ENDPOINT"
	EnvLocale   = "MOECHAT_LOCALE"
	EnvLogLevel = "MOECHAT_LOG_LEVEL"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`              // "dark", "light", or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`       // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"`  // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap"`         // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links"` // Render links inline in tables
}

// Config represents the user configuration
type Config struct {
	// Endpoint is the chat URL every message is POSTed to.
	Endpoint string `json:"endpoint"`
	// TimeoutSeconds bounds a single round trip at the transport level.
	TimeoutSeconds int `json:"timeout_seconds"`
	// Proxy overrides the proxy taken from HTTP_PROXY/HTTPS_PROXY/NO_PROXY.
	Proxy  string `json:"proxy,omitempty"`
	Locale string `json:"locale"`

	CopyToClipboard bool           `json:"copy_to_clipboard"`
	TUITheme        string         `json:"tui_theme,omitempty"`
	Markdown        MarkdownConfig `json:"markdown,omitempty"`

	// LogLevel enables the diagnostic log file ("debug", "info", ...).
	// Empty or "disabled" turns logging off.
	LogLevel string `json:"log_level,omitempty"`
	LogFile  string `json:"log_file,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Endpoint:        models.DefaultEndpoint,
		TimeoutSeconds:  300,
		Locale:          string(models.DefaultLocale),
		CopyToClipboard: false,
		TUITheme:        "moecatalyst",
		Markdown:        DefaultMarkdownConfig(),
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".moechat"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetLogPath returns the log file path from config, defaulting to the config directory
func GetLogPath(cfg Config) (string, error) {
	if cfg.LogFile != "" {
		return cfg.LogFile, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "moechat.log"), nil
}

// LoadConfig loads the configuration from disk
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if config doesn't exist
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides config values with MOECHAT_* environment variables
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvEndpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv(EnvLocale); v != "" {
		cfg.Locale = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
}

// Validate checks the values that would otherwise fail late at request time
func (c Config) Validate() error {
	if err := ValidateEndpoint(c.Endpoint); err != nil {
		return err
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: timeout_seconds must not be negative", apierrors.ErrInvalidConfig)
	}
	if _, ok := models.ParseLocale(c.Locale); !ok && c.Locale != "" {
		return fmt.Errorf("%w: unsupported locale %q (available: %s)",
			apierrors.ErrInvalidConfig, c.Locale, strings.Join(models.AvailableLocales(), ", "))
	}
	if c.Proxy != "" {
		if _, err := url.Parse(c.Proxy); err != nil {
			return fmt.Errorf("%w: invalid proxy %q: %v", apierrors.ErrInvalidConfig, c.Proxy, err)
		}
	}
	return nil
}

// ValidateEndpoint requires an absolute http(s) URL
func ValidateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("%w: invalid endpoint %q: %v", apierrors.ErrInvalidConfig, endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: endpoint %q must use http or https", apierrors.ErrInvalidConfig, endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: endpoint %q has no host", apierrors.ErrInvalidConfig, endpoint)
	}
	return nil
}

// LocaleOf returns the parsed locale of the config
func (c Config) LocaleOf() models.Locale {
	locale, _ := models.ParseLocale(c.Locale)
	return locale
}

// setters maps settable keys to their parsers
var setters = map[string]func(*Config, string) error{
	"endpoint": func(c *Config, v string) error {
		if err := ValidateEndpoint(v); err != nil {
			return err
		}
		c.Endpoint = v
		return nil
	},
	"timeout_seconds": func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: timeout_seconds must be a non-negative integer", apierrors.ErrInvalidConfig)
		}
		c.TimeoutSeconds = n
		return nil
	},
	"proxy": func(c *Config, v string) error {
		c.Proxy = v
		return nil
	},
	"locale": func(c *Config, v string) error {
		locale, ok := models.ParseLocale(v)
		if !ok {
			return fmt.Errorf("%w: unsupported locale %q", apierrors.ErrInvalidConfig, v)
		}
		c.Locale = string(locale)
		return nil
	},
	"copy_to_clipboard": boolSetter(func(c *Config, b bool) { c.CopyToClipboard = b }),
	"tui_theme": func(c *Config, v string) error {
		c.TUITheme = v
		return nil
	},
	"log_level": func(c *Config, v string) error {
		c.LogLevel = v
		return nil
	},
	"log_file": func(c *Config, v string) error {
		c.LogFile = v
		return nil
	},
	"markdown.style": func(c *Config, v string) error {
		c.Markdown.Style = v
		return nil
	},
	"markdown.enable_emoji":       boolSetter(func(c *Config, b bool) { c.Markdown.EnableEmoji = b }),
	"markdown.preserve_newlines":  boolSetter(func(c *Config, b bool) { c.Markdown.PreserveNewLines = b }),
	"markdown.table_wrap":         boolSetter(func(c *Config, b bool) { c.Markdown.TableWrap = b }),
	"markdown.inline_table_links": boolSetter(func(c *Config, b bool) { c.Markdown.InlineTableLinks = b }),
}

func boolSetter(apply func(*Config, bool)) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %q is not a boolean", apierrors.ErrInvalidConfig, v)
		}
		apply(c, b)
		return nil
	}
}

// Set updates a single key, e.g. Set(&cfg, "locale", "en")
func Set(cfg *Config, key, value string) error {
	setter, ok := setters[key]
	if !ok {
		return fmt.Errorf("%w: unknown key %q (available: %s)",
			apierrors.ErrInvalidConfig, key, strings.Join(Keys(), ", "))
	}
	return setter(cfg, strings.TrimSpace(value))
}

// Keys returns the settable config keys in sorted order
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
