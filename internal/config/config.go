package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const envPrefix = "LEDGER"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Log      LogConfig      `mapstructure:"log"`
	Operator OperatorConfig `mapstructure:"operator"`
	Users    UsersConfig    `mapstructure:"users"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type LedgerConfig struct {
	Path string `mapstructure:"path"`
	// Strict refuses to start when the ledger document is unreadable
	// instead of continuing on an empty ledger.
	Strict   bool   `mapstructure:"strict"`
	Timezone string `mapstructure:"timezone"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type OperatorConfig struct {
	Workers   int `mapstructure:"workers"`
	QueueSize int `mapstructure:"queue_size"`
}

type UsersConfig struct {
	DefaultUsername string `mapstructure:"default_username"`
	DefaultPassword string `mapstructure:"default_password"`
}

func setDefaults(v *viper.Viper) {
	// In all cases the defaults should run the server locally with no setup.
	v.SetDefault("server.port", "9446")
	v.SetDefault("ledger.path", "./data/transactions.json")
	v.SetDefault("ledger.strict", false)
	v.SetDefault("ledger.timezone", "Local")
	v.SetDefault("log.level", "info")
	v.SetDefault("operator.workers", 1)
	v.SetDefault("operator.queue_size", 1000)
	v.SetDefault("users.default_username", "demo")
	v.SetDefault("users.default_password", "password")
}

// ProcessEnvironmentVariables builds the configuration from defaults, an
// optional config.yaml and LEDGER_* environment variables (a .env file in the
// working directory is loaded first when present). configPath, when set,
// names the yaml file explicitly.
func ProcessEnvironmentVariables(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		logrus.WithField("file", v.ConfigFileUsed()).Info("config.ProcessEnvironmentVariables.file loaded")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var env Config
	if err := v.Unmarshal(&env); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := env.Validate(); err != nil {
		return nil, err
	}
	return &env, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Server.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Server.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if strings.TrimSpace(c.Ledger.Path) == "" {
		problems = append(problems, "ledger path cannot be empty")
	}

	if _, err := c.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("invalid timezone '%s': %v", c.Ledger.Timezone, err))
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level '%s'", c.Log.Level))
	}

	if c.Operator.Workers < 1 {
		problems = append(problems, fmt.Sprintf("invalid operator workers %d: must be at least 1", c.Operator.Workers))
	}
	if c.Operator.QueueSize < 1 {
		problems = append(problems, fmt.Sprintf("invalid operator queue size %d: must be at least 1", c.Operator.QueueSize))
	}

	if strings.TrimSpace(c.Users.DefaultUsername) == "" {
		problems = append(problems, "default username cannot be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// Location resolves the timezone used to bucket transactions into months.
func (c *Config) Location() (*time.Location, error) {
	switch c.Ledger.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	return time.LoadLocation(c.Ledger.Timezone)
}
