package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

/* Config reads the service settings from a .env file (toml) with
 * environment variable overrides. A missing file is fine; environment
 * variables alone can configure everything.
 */

type Config struct {
	Port string `mapstructure:"PORT"`

	// StoreBackend selects the config/audit store: postgres, turso or
	// definitions
	StoreBackend string `mapstructure:"STORE_BACKEND"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`

	TursoDBName      string `mapstructure:"TURSO_DBNAME"`
	TursoDatabaseURL string `mapstructure:"TURSO_DATABASE_URL"`
	TursoAuthToken   string `mapstructure:"TURSO_AUTH_TOKEN"`

	DefinitionsFile string `mapstructure:"DEFINITIONS_FILE"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	TelegramBaseURL        string `mapstructure:"TELEGRAM_BASE_URL"`
	TelegramTimeoutSeconds int    `mapstructure:"TELEGRAM_TIMEOUT_SECONDS"`

	// DisabledStatus is the response code for disabled webhooks; zero
	// keeps the default 410
	DisabledStatus int `mapstructure:"DISABLED_STATUS"`
}

func GetConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.StoreBackend == "" {
		c.StoreBackend = "definitions"
	}
	if c.DefinitionsFile == "" {
		c.DefinitionsFile = "webhooks.yaml"
	}
	if c.RedisAddr == "" {
		c.RedisAddr = "localhost:6379"
	}
	if c.TelegramTimeoutSeconds == 0 {
		c.TelegramTimeoutSeconds = 15
	}
}

// TelegramTimeout returns the per-call Bot API timeout
func (c *Config) TelegramTimeout() time.Duration {
	return time.Duration(c.TelegramTimeoutSeconds) * time.Second
}
