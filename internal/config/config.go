// Package config loads application settings from a YAML file, the environment and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. IDENTITY_DB_PATH.
const EnvPrefix = "IDENTITY"

const (
	defaultPort       = "8080"
	defaultDBPath     = "app.db"
	defaultLogLevel   = "info"
	defaultBcryptCost = 10
)

type Config struct {
	Port       string
	DBPath     string
	LogLevel   string
	BcryptCost int
}

// Load reads configuration. An empty path searches ./configs/config.yml;
// a missing file there is not an error, a missing explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("port", defaultPort)
	v.SetDefault("db.path", defaultDBPath)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("security.bcrypt_cost", defaultBcryptCost)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return &Config{
		Port:       v.GetString("port"),
		DBPath:     v.GetString("db.path"),
		LogLevel:   v.GetString("log.level"),
		BcryptCost: v.GetInt("security.bcrypt_cost"),
	}, nil
}
