package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API   APIConfig
	Store StoreConfig
	UI    UIConfig
	Log   LogConfig
}

// APIConfig points the client at the profile backend.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StoreConfig selects where the session token lives.
type StoreConfig struct {
	Backend    string
	Path       string
	Passphrase string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CellAspect float64 `mapstructure:"cell_aspect"`
	TallRows   int     `mapstructure:"tall_rows"`
}

// LogConfig holds logger settings. The TUI owns the terminal, so logs go to a file.
type LogConfig struct {
	File  string
	Level string
}

// Dir returns the per-user directory idcard keeps its files in.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, "idcard")
}

// Load reads configuration from file and env. Env var overrides use prefix IDCARD_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("IDCARD_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(Dir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("IDCARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// a missing file is fine, a broken one is not
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c.normalize(), nil
}

func setDefaults(v *viper.Viper) {
	dir := Dir()
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("store.backend", "file")
	v.SetDefault("store.path", dir)
	v.SetDefault("store.passphrase", "")
	v.SetDefault("ui.cell_aspect", 2.0)
	v.SetDefault("ui.tall_rows", 40)
	v.SetDefault("log.file", filepath.Join(dir, "idcard.log"))
	v.SetDefault("log.level", "info")
}

func (c Config) normalize() Config {
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	if c.UI.CellAspect <= 0 {
		c.UI.CellAspect = 2.0
	}
	return c
}

// Save writes the provided config to disk, creating the config directory if needed.
// The store passphrase is written as-is; prefer IDCARD_STORE_PASSPHRASE for real secrets.
func Save(cfg Config) error {
	path := os.Getenv("IDCARD_CONFIG")
	if path == "" {
		path = filepath.Join(Dir(), "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("store.backend", cfg.Store.Backend)
	v.Set("store.path", cfg.Store.Path)
	v.Set("store.passphrase", cfg.Store.Passphrase)
	v.Set("ui.cell_aspect", cfg.UI.CellAspect)
	v.Set("ui.tall_rows", cfg.UI.TallRows)
	v.Set("log.file", cfg.Log.File)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
