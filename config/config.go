// Package config loads circulate configuration from TOML files and
// CIRC_-prefixed environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/oakview/circulate/errors"
)

// Config is the full circulate configuration.
type Config struct {
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	Overdue   OverdueConfig   `mapstructure:"overdue"`
	Recommend RecommendConfig `mapstructure:"recommend"`
	Watch     WatchConfig     `mapstructure:"watch"`
}

// CatalogConfig locates the catalog file.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// LedgerConfig locates the loan ledger file.
type LedgerConfig struct {
	Path string `mapstructure:"path"`
}

// OverdueConfig tunes the overdue report.
type OverdueConfig struct {
	ThresholdDays int `mapstructure:"threshold_days"`
}

// RecommendConfig holds the recommendation engine defaults. Weights
// multiply a book's popularity score, so 1.0 is neutral.
type RecommendConfig struct {
	Count         int     `mapstructure:"count"`
	NewnessDays   int     `mapstructure:"newness_days"`
	NewnessWeight float64 `mapstructure:"newness_weight"`
	GenreWeight   float64 `mapstructure:"genre_weight"`
	IncludeRead   bool    `mapstructure:"include_read"`
}

// WatchConfig tunes the file watcher used by report --watch.
type WatchConfig struct {
	DebounceMillis int `mapstructure:"debounce_ms"`
}

var globalConfig *Config
var viperInstance *viper.Viper

// Load reads the circulate configuration using Viper.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v := initViper()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	globalConfig = &config
	return globalConfig, nil
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %s", configPath)
	}

	return &config, nil
}

// GetViper returns the Viper instance for advanced configuration access.
func GetViper() *viper.Viper {
	return initViper()
}

// Reset clears the cached configuration (useful for testing).
func Reset() {
	globalConfig = nil
	viperInstance = nil
}

// initViper initializes Viper with configuration sources and defaults.
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	v.SetEnvPrefix("CIRC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	// Merge configs in precedence order: user -> project -> env vars
	mergeConfigFiles(v)

	viperInstance = v
	return v
}

// findProjectConfig searches for circulate.toml by walking up the
// directory tree. Returns the first config file found, or "".
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, "circulate.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// mergeConfigFiles merges configuration files in precedence order
// (lowest to highest): user < project < env vars.
func mergeConfigFiles(v *viper.Viper) {
	homeDir, _ := os.UserHomeDir()

	configPaths := []string{
		filepath.Join(homeDir, ".circulate", "config.toml"),
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		configPaths = append(configPaths, projectConfig)
	}

	for _, configPath := range configPaths {
		if _, err := os.Stat(configPath); err != nil {
			continue
		}

		tempViper := viper.New()
		tempViper.SetConfigFile(configPath)
		tempViper.SetConfigType("toml")

		if err := tempViper.ReadInConfig(); err == nil {
			for key, value := range tempViper.AllSettings() {
				v.Set(key, value)
			}
		}
	}
}
