package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/praneswara/polygreen/pkg/postgres"
	"github.com/praneswara/polygreen/pkg/smsprovider"
	"github.com/praneswara/polygreen/pkg/token"
)

type Config struct {
	API      API                `mapstructure:"api"`
	Admin    Admin              `mapstructure:"admin"`
	Database postgres.Config    `mapstructure:"database"`
	JWT      token.Config       `mapstructure:"jwt"`
	Redis    Redis              `mapstructure:"redis"`
	SMS      smsprovider.Config `mapstructure:"sms"`
	Points   Points             `mapstructure:"points"`
	OTP      OTP                `mapstructure:"otp"`
}

type API struct {
	Port string `mapstructure:"port"`
}

type Admin struct {
	Port          string `mapstructure:"port"`
	Username      string `mapstructure:"username"`
	PasswordHash  string `mapstructure:"password_hash"`
	SessionSecret string `mapstructure:"session_secret"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type Points struct {
	PerBottle int64 `mapstructure:"per_bottle"`
}

type OTP struct {
	TTL time.Duration `mapstructure:"ttl"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		// Env-only deployments ship no config file at all.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	applyOverrides(cfg)

	if cfg.Database.URL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 24 * time.Hour
	}
	if cfg.Points.PerBottle == 0 {
		cfg.Points.PerBottle = 10
	}
	if cfg.OTP.TTL == 0 {
		cfg.OTP.TTL = 5 * time.Minute
	}

	return cfg, nil
}

func applyOverrides(cfg *Config) {
	override := func(env string, apply func(string)) {
		if v := os.Getenv(env); v != "" {
			apply(v)
		}
	}

	override("DATABASE_URL", func(v string) { cfg.Database.URL = v })
	override("JWT_SECRET", func(v string) { cfg.JWT.Secret = v })
	override("SESSION_SECRET", func(v string) { cfg.Admin.SessionSecret = v })
	override("ADMIN_USERNAME", func(v string) { cfg.Admin.Username = v })
	override("ADMIN_PASSWORD_HASH", func(v string) { cfg.Admin.PasswordHash = v })
	override("REDIS_ADDR", func(v string) { cfg.Redis.Addr = v })
	override("REDIS_PASSWORD", func(v string) { cfg.Redis.Password = v })
	override("SMS_PROVIDER_URL", func(v string) { cfg.SMS.URL = v })
	override("SMS_PROVIDER_API_KEY", func(v string) { cfg.SMS.APIKey = v })
}
