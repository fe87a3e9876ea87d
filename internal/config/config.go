// Package config loads runtime configuration from the environment, an
// optional .env file and an optional config.yaml.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Storage   StorageConfig
	Redis     RedisConfig
	Database  DatabaseConfig
	Orders    OrdersConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level string
}

type StorageConfig struct {
	Driver   string
	Dir      string
	Products string
	Orders   string
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

type DatabaseConfig struct {
	URL string
}

type OrdersConfig struct {
	StockPolicy string
}

type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 15*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.dir", ".")
	v.SetDefault("storage.products", "produtos")
	v.SetDefault("storage.orders", "pedidos")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "inventory:")
	v.SetDefault("database.url", "")
	v.SetDefault("orders.stock_policy", "two_phase")
	v.SetDefault("ratelimit.enabled", false)
	v.SetDefault("ratelimit.rps", 1.0)
	v.SetDefault("ratelimit.burst", 3)
}

// Load reads configuration. Environment variables use the INVENTORY_ prefix
// (INVENTORY_STORAGE_DRIVER); DATABASE_URL and REDIS_ADDR are also read as is.
func Load(paths ...string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "/etc/inventory"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("INVENTORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("database.url", "INVENTORY_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("redis.addr", "INVENTORY_REDIS_ADDR", "REDIS_ADDR")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := Config{
		Server: ServerConfig{
			Addr:            v.GetString("server.addr"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Log: LogConfig{Level: v.GetString("log.level")},
		Storage: StorageConfig{
			Driver:   strings.ToLower(strings.TrimSpace(v.GetString("storage.driver"))),
			Dir:      v.GetString("storage.dir"),
			Products: v.GetString("storage.products"),
			Orders:   v.GetString("storage.orders"),
		},
		Redis: RedisConfig{
			Addr:      v.GetString("redis.addr"),
			Password:  v.GetString("redis.password"),
			DB:        v.GetInt("redis.db"),
			KeyPrefix: v.GetString("redis.key_prefix"),
		},
		Database: DatabaseConfig{URL: strings.TrimSpace(v.GetString("database.url"))},
		Orders:   OrdersConfig{StockPolicy: strings.ToLower(strings.TrimSpace(v.GetString("orders.stock_policy")))},
		RateLimit: RateLimitConfig{
			Enabled: v.GetBool("ratelimit.enabled"),
			RPS:     v.GetFloat64("ratelimit.rps"),
			Burst:   v.GetInt("ratelimit.burst"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverFile, DriverRedis:
	case DriverPostgres:
		if c.Database.URL == "" {
			return errors.New("storage driver postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Storage.Products == "" || c.Storage.Orders == "" {
		return errors.New("storage collection names must not be empty")
	}
	if c.Storage.Products == c.Storage.Orders {
		return errors.New("products and orders must use different collections")
	}

	switch c.Orders.StockPolicy {
	case "two_phase", "interleaved":
	default:
		return fmt.Errorf("unknown stock policy %q", c.Orders.StockPolicy)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return errors.New("rate limit rps and burst must be greater than zero")
	}
	return nil
}
