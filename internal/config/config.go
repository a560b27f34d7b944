// Package config loads the optional application configuration. Everything
// has a sensible default: a missing config file is not an error, and the
// core contract of the application requires no configuration at all.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything the application can be configured with.
type Config struct {
	// Database is the path of the SQLite file, by default adjacent to the
	// application.
	Database string `yaml:"database" mapstructure:"database"`
	// Language selects the user-facing message catalog ("en" or "ru").
	Language string `yaml:"language" mapstructure:"language"`
	Log      Log    `yaml:"log" mapstructure:"log"`
}

// Log configures the file the application logs to. The interactive editor
// owns the terminal, so logs never go to stdout or stderr.
type Log struct {
	File  string `yaml:"file" mapstructure:"file"`
	Level string `yaml:"level" mapstructure:"level"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		Database: "contacts.db",
		Language: "en",
		Log: Log{
			File:  "contacts-desk.log",
			Level: "info",
		},
	}
}

// Load reads config.yaml from the working directory, $XDG_CONFIG_HOME or
// ~/.config, with CONTACTS_DESK_* environment variables taking precedence.
func Load() (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		v.AddConfigPath(filepath.Join(xdg, "contacts-desk"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "contacts-desk"))
	}

	v.SetEnvPrefix("CONTACTS_DESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("database", cfg.Database)
	v.SetDefault("language", cfg.Language)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.level", cfg.Log.Level)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
