package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ListConfig holds settings for reading back stored opportunities.
type ListConfig struct {
	Network  string
	Limit    int
	Postgres Postgres
	LogLevel string
}

// LoadList merges .env, config file, environment variables, and flags into ListConfig.
func LoadList(cfgFile string, flags *pflag.FlagSet) (ListConfig, error) {
	v, err := newViper(cfgFile, flags, func(v *viper.Viper) {
		v.SetDefault("limit", 20)
	})
	if err != nil {
		return ListConfig{}, err
	}

	return ListConfig{
		Network:  strings.ToLower(strings.TrimSpace(v.GetString("network"))),
		Limit:    v.GetInt("limit"),
		Postgres: loadPostgres(v),
		LogLevel: v.GetString("log-level"),
	}, nil
}
