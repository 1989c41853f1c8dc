// Package config loads drake CLI settings from a file, the environment and
// command flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. DRAKE_LOG_LEVEL.
const EnvPrefix = "DRAKE"

// Store backends.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config holds application configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Board  BoardConfig  `mapstructure:"board"`
	Server ServerConfig `mapstructure:"server"`
	Store  StoreConfig  `mapstructure:"store"`
	Redis  RedisConfig  `mapstructure:"redis"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type BoardConfig struct {
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	Addr    string `mapstructure:"addr"`
	Metrics bool   `mapstructure:"metrics"`
}

type StoreConfig struct {
	Backend string `mapstructure:"backend"`
	// Path is the layout directory of the file backend.
	Path string `mapstructure:"path"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// New returns a viper instance with defaults and environment overrides set.
// Callers bind their flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("board.path", "board.yaml")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.metrics", true)
	v.SetDefault("store.backend", BackendMemory)
	v.SetDefault("store.path", filepath.Join(".drake", "layouts"))
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "drake:layout:")
	v.SetDefault("redis.ttl", time.Duration(0))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// DotEnvFile is read from the working directory before the environment is
// consulted. Variables already set win over the file.
const DotEnvFile = ".env"

// Load reads the config file at path, when given, and decodes v. Without a
// path, drake.yaml in the working directory is used if present.
func Load(v *viper.Viper, path string) (Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return Config{}, err
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("drake")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	switch c.Store.Backend {
	case BackendNone, BackendMemory, BackendFile, BackendRedis:
	default:
		return Config{}, fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	return c, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
