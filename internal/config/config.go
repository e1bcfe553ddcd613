package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "SCANNER"

// Config holds scan settings loaded from flags, env, or config file.
type Config struct {
	APIURL       string
	Page         int
	Threshold    decimal.Decimal
	SearchDelay  time.Duration
	HTTPTimeout  time.Duration
	Postgres     Postgres
	Out          string
	RedisAddr    string
	RedisChannel string
	LogLevel     string
}

// Postgres holds either a DSN or discrete connection settings.
type Postgres struct {
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// Load merges .env, config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v, err := newViper(cfgFile, flags, func(v *viper.Viper) {
		v.SetDefault("api-url", "https://api.geckoterminal.com/api/v2")
		v.SetDefault("page", 1)
		v.SetDefault("threshold", "0.5")
		v.SetDefault("search-delay", time.Second)
		v.SetDefault("http-timeout", 30*time.Second)
		v.SetDefault("redis-channel", "arbitrage:opportunities")
	})
	if err != nil {
		return Config{}, err
	}

	threshold, err := decimal.NewFromString(strings.TrimSpace(v.GetString("threshold")))
	if err != nil {
		return Config{}, fmt.Errorf("invalid threshold %q: %w", v.GetString("threshold"), err)
	}

	cfg := Config{
		APIURL:       strings.TrimSpace(v.GetString("api-url")),
		Page:         v.GetInt("page"),
		Threshold:    threshold,
		SearchDelay:  v.GetDuration("search-delay"),
		HTTPTimeout:  v.GetDuration("http-timeout"),
		Postgres:     loadPostgres(v),
		Out:          v.GetString("out"),
		RedisAddr:    v.GetString("redis-addr"),
		RedisChannel: v.GetString("redis-channel"),
		LogLevel:     v.GetString("log-level"),
	}

	return cfg, nil
}

// Validate checks values that would make a scan meaningless.
func (c Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api url is required")
	}
	if c.Page < 1 {
		return fmt.Errorf("page must be >= 1")
	}
	if c.Threshold.IsNegative() {
		return fmt.Errorf("threshold must not be negative")
	}
	if c.SearchDelay < 0 {
		return fmt.Errorf("search delay must not be negative")
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("http timeout must not be negative")
	}
	return nil
}

func newViper(cfgFile string, flags *pflag.FlagSet, defaults func(*viper.Viper)) (*viper.Viper, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log-level", "info")
	v.SetDefault("pg-port", 5432)
	v.SetDefault("pg-sslmode", "disable")
	if defaults != nil {
		defaults(v)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}

func loadPostgres(v *viper.Viper) Postgres {
	return Postgres{
		DSN:      v.GetString("pg-dsn"),
		Host:     v.GetString("pg-host"),
		Port:     v.GetInt("pg-port"),
		User:     v.GetString("pg-user"),
		Password: v.GetString("pg-password"),
		Database: v.GetString("pg-database"),
		SSLMode:  v.GetString("pg-sslmode"),
	}
}
