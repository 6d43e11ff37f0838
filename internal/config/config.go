package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "INVENTARIO_CONFIG_FILE"

const defaultJWTSecret = "change-me"

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds every setting of the service.
type Config struct {
	AppPort        string         `mapstructure:"APP_PORT"`
	DatabaseDriver string         `mapstructure:"DATABASE_DRIVER"`
	DatabaseDSN    string         `mapstructure:"DATABASE_DSN"`
	StorageKey     string         `mapstructure:"STORAGE_KEY"`
	SeedCount      int            `mapstructure:"SEED_COUNT"`
	JWTSecret      string         `mapstructure:"JWT_SECRET"`
	RabbitMQURL    string         `mapstructure:"RABBITMQ_URL"`
	ExportQueue    string         `mapstructure:"EXPORT_QUEUE"`
	Timezone       string         `mapstructure:"TIMEZONE"`
	Location       *time.Location `mapstructure:"-"`
}

// Load reads the configuration from defaults, an optional config file and
// the environment, in increasing order of precedence. The config file is
// taken from --config in args or from INVENTARIO_CONFIG_FILE.
func Load(args []string) (Config, error) {
	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "inventario.db")
	v.SetDefault("STORAGE_KEY", "@inventory_app:products")
	v.SetDefault("SEED_COUNT", 100)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("EXPORT_QUEUE", "inventory_exports")
	v.SetDefault("TIMEZONE", "Local")
	v.AutomaticEnv()

	path, err := configFilePath(args)
	if err != nil {
		return Config{}, err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	if cfg.JWTSecret == defaultJWTSecret {
		log.Println("[WARN] JWT_SECRET uses the default value, set your own secret in production.")
	}
	return cfg, nil
}

func configFilePath(args []string) (string, error) {
	cmdLine := pflag.NewFlagSet("inventario", pflag.ContinueOnError)
	arg := cmdLine.String("config", "", "config file")
	if err := cmdLine.Parse(args); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if *arg != "" {
		return *arg, nil
	}
	return os.Getenv(configFileEnvName), nil
}

func (c *Config) validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("%w: unsupported DATABASE_DRIVER %q", ErrInvalidConfig, c.DatabaseDriver)
	}
	if c.SeedCount < 0 {
		return fmt.Errorf("%w: SEED_COUNT must not be negative", ErrInvalidConfig)
	}
	if c.StorageKey == "" {
		return fmt.Errorf("%w: STORAGE_KEY is required", ErrInvalidConfig)
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("%w: TIMEZONE %q: %v", ErrInvalidConfig, c.Timezone, err)
	}
	c.Location = loc
	return nil
}
