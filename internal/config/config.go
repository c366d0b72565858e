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
	// EnvPrefix is prepended to environment overrides, e.g. CATSORT_DB
	EnvPrefix = "CATSORT"

	defaultSiteTitle = "My Site"
	defaultLogLevel  = "warn"
)

// Config is the catsort configuration
type Config struct {
	DB   string     `mapstructure:"db"`
	Site SiteConfig `mapstructure:"site"`
	Log  LogConfig  `mapstructure:"log"`
}

// SiteConfig holds values exposed to templates as .Site
type SiteConfig struct {
	Title string `mapstructure:"title"`
}

// LogConfig controls the CLI logger
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{Title: defaultSiteTitle},
		Log:  LogConfig{Level: defaultLogLevel},
	}
}

// DefaultDir returns $XDG_CONFIG_HOME/catsort, falling back to ~/.config/catsort
func DefaultDir() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "catsort"), nil
}

// Load reads configuration from path, or from config.yaml in DefaultDir when
// path is empty. A missing default file is not an error; a missing explicit
// file is. Environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("db", defaults.DB)
	v.SetDefault("site.title", defaults.Site.Title)
	v.SetDefault("log.level", defaults.Log.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}
