// Package config loads runtime configuration from a crosspost.yml file,
// environment variables, and built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	APIBaseURL      string `mapstructure:"API_BASE_URL"`
	DBPath          string `mapstructure:"DB_PATH"`
	CallbackAddr    string `mapstructure:"CALLBACK_ADDR"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
	TokenPassphrase string `mapstructure:"TOKEN_PASSPHRASE"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.AddConfigPath(".")
	v.AddConfigPath(defaultDir())
	v.SetConfigName("crosspost")
	v.SetConfigType("yml")
	v.SetEnvPrefix("CROSSPOST")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetDefault("API_BASE_URL", "http://localhost:8000")
	v.SetDefault("DB_PATH", filepath.Join(defaultDir(), "state.db"))
	v.SetDefault("CALLBACK_ADDR", "127.0.0.1:5173")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TOKEN_PASSPHRASE", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// defaultDir is where the state database and config file live when no
// explicit paths are configured.
func defaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".crosspost")
}
