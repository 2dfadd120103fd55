// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	JWTSecret  string        `mapstructure:"JWT_SECRET"`
	TokenTTL   time.Duration `mapstructure:"TOKEN_TTL"`
	Port       string        `mapstructure:"PORT"`
	DBHost     string        `mapstructure:"DB_HOST"`
	DBPort     string        `mapstructure:"DB_PORT"`
	DBUser     string        `mapstructure:"DB_USER"`
	DBPassword string        `mapstructure:"DB_PASSWORD"`
	DBName     string        `mapstructure:"DB_NAME"`
	DBSSLMode  string        `mapstructure:"DB_SSLMODE"`
	RedisURL   string        `mapstructure:"REDIS_URL"`
	Env        string        `mapstructure:"APP_ENV"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// JWT_SECRET deliberately has no default, so it must be bound
	// explicitly for AutomaticEnv to pick it up during Unmarshal.
	_ = viper.BindEnv("JWT_SECRET")

	// The config file is optional; environment variables win either way.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Development defaults. No default for JWT_SECRET: a process
	// without a signing secret must not come up.
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("TOKEN_TTL", (7 * 24 * time.Hour).String())
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "user")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "inkwell")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("APP_ENV", "development")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks that the configuration is complete enough to start the
// process. A missing signing secret is a startup failure, never a
// per-request one.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	return nil
}
