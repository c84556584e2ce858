// Package config handles the XDG configuration directory and the optional
// config.yaml inside it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "tasklist"

	// ConfigName is the config file base name (config.yaml).
	ConfigName = "config"

	// ConfigType is the config file format.
	ConfigType = "yaml"

	// EnvPrefix prefixes environment overrides, e.g. TASKLIST_STORAGE_DRIVER.
	EnvPrefix = "TASKLIST"

	keyStorageDriver = "storage.driver"
	keyStorageDSN    = "storage.dsn"
	keyLogLevel      = "log.level"
	keyLogFormat     = "log.format"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// StorageDriver selects the kv backend (file, sqlite, mysql, memory).
	StorageDriver string

	// StorageDSN is the sqlite path or mysql DSN.
	StorageDSN string

	// LogLevel is debug, info, warn or error.
	LogLevel string

	// LogFormat is console or structured.
	LogFormat string
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/tasklist or $HOME/.config/tasklist.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:           dir,
		StorageDriver: "file",
		LogLevel:      "warn",
		LogFormat:     "console",
	}, nil
}

// Load is New plus config.yaml in the directory and TASKLIST_* environment
// overrides. A missing config file is not an error.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName(ConfigName)
	v.SetConfigType(ConfigType)
	v.AddConfigPath(cfg.Dir)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyStorageDriver, cfg.StorageDriver)
	v.SetDefault(keyStorageDSN, "")
	v.SetDefault(keyLogLevel, cfg.LogLevel)
	v.SetDefault(keyLogFormat, cfg.LogFormat)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("invalid %s: %w", cfg.ConfigPath(), err)
		}
	}

	cfg.StorageDriver = v.GetString(keyStorageDriver)
	cfg.StorageDSN = v.GetString(keyStorageDSN)
	cfg.LogLevel = v.GetString(keyLogLevel)
	cfg.LogFormat = v.GetString(keyLogFormat)
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to config.yaml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigName+"."+ConfigType)
}

// EffectiveLogLevel returns the configured level, or debug when Debug is set.
func (c *Config) EffectiveLogLevel() string {
	if c.Debug {
		return "debug"
	}
	return c.LogLevel
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
