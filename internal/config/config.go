package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Plugin   PluginConfig
	Database DatabaseConfig
	Log      LogConfig
	UI       UIConfig
}

// PluginConfig holds what the command tree needs from its host.
type PluginConfig struct {
	ActionKeyword string `mapstructure:"action_keyword"`
	IconPath      string `mapstructure:"icon_path"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// LogConfig holds logger settings. An empty Path means stderr.
type LogConfig struct {
	Level string
	Path  string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	PageSize   int    `mapstructure:"page_size"`
	TimeFormat string `mapstructure:"time_format"`
	Timezone   string
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "palette")
}

// Path is the default config file: $PALETTE_CONFIG, else
// ~/.config/palette/config.toml.
func Path() string {
	if p := os.Getenv("PALETTE_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "palette", "config.toml")
}

func newViper() *viper.Viper {
	v := viper.New()

	// default values
	v.SetDefault("plugin.action_keyword", "clock")
	v.SetDefault("plugin.icon_path", "icons/clock.png")
	v.SetDefault("database.path", filepath.Join(dataDir(), "palette.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", filepath.Join(dataDir(), "palette.log"))
	v.SetDefault("ui.page_size", 8)
	v.SetDefault("ui.time_format", "15:04")
	v.SetDefault("ui.timezone", "Local")

	v.SetConfigType("toml")
	v.SetEnvPrefix("PALETTE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads configuration from the default path and env.
func Load() (Config, error) {
	return LoadFrom("")
}

// LoadFrom reads configuration from cfgPath, or the default path when it
// is empty. Env var overrides use prefix PALETTE_.
func LoadFrom(cfgPath string) (Config, error) {
	if cfgPath == "" {
		cfgPath = Path()
	}
	v := newViper()
	v.SetConfigFile(cfgPath)

	// a missing file means defaults plus env
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Plugin.ActionKeyword = strings.TrimSpace(c.Plugin.ActionKeyword)
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the palette cannot run with.
func (c Config) Validate() error {
	kw := c.Plugin.ActionKeyword
	if kw == "" {
		return fmt.Errorf("config: plugin.action_keyword is required")
	}
	if strings.ContainsAny(kw, " \t") {
		return fmt.Errorf("config: plugin.action_keyword %q must be a single word", kw)
	}
	if c.UI.PageSize <= 0 {
		return fmt.Errorf("config: ui.page_size must be positive, got %d", c.UI.PageSize)
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("config: database.path is required")
	}
	return nil
}

// Save writes cfg to path (the default path when empty), creating the
// config directory if needed.
func Save(path string, cfg Config) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("plugin.action_keyword", cfg.Plugin.ActionKeyword)
	v.Set("plugin.icon_path", cfg.Plugin.IconPath)
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.path", cfg.Log.Path)
	v.Set("ui.page_size", cfg.UI.PageSize)
	v.Set("ui.time_format", cfg.UI.TimeFormat)
	v.Set("ui.timezone", cfg.UI.Timezone)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
