// Package config loads the database settings of a service.
//
// Values come from an optional YAML file, then from environment variables
// prefixed with SQLCOMMON_. A double underscore separates nested keys:
// SQLCOMMON_DATABASE__DSN sets database.dsn.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"

	"github.com/aeramu/sql-common/converter"
	"github.com/aeramu/sql-common/orm"
)

const EnvPrefix = "SQLCOMMON_"

var stderr io.Writer = os.Stderr

type Config struct {
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Log      LogConfig      `koanf:"log"`
}

type DatabaseConfig struct {
	Driver                string `koanf:"driver" validate:"required,oneof=sqlserver postgres sqlite"`
	DSN                   string `koanf:"dsn"`
	Schema                string `koanf:"schema"`
	TraceEnabled          bool   `koanf:"trace_enabled"`
	CommandTimeoutSeconds int    `koanf:"command_timeout_seconds" validate:"gte=0"`
	MigrationsDir         string `koanf:"migrations_dir"`
	CompactMode           string `koanf:"compact_mode" validate:"omitempty,oneof=strict legacy"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	Pretty bool   `koanf:"pretty"`
}

// Load reads path when given, overlays the environment and validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(yamlFile(path), nil); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env variables: %w", err)
	}

	cfg := &Config{
		Database: DatabaseConfig{
			CommandTimeoutSeconds: int(orm.DefaultCommandTimeout / time.Second),
		},
		Log: LogConfig{Level: "info"},
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c DatabaseConfig) CommandTimeout() time.Duration {
	return time.Duration(c.CommandTimeoutSeconds) * time.Second
}

// Codec returns the money codec for the configured compact mode. It takes
// effect on the named serializers through RegisterSerializers, or on a
// converter.RegisterTable serializer built with it.
func (c DatabaseConfig) Codec() converter.Codec {
	if c.CompactMode == "legacy" {
		return converter.Money18.WithMode(converter.Legacy)
	}
	return converter.Money18
}

// Logger builds the root logger.
func (c LogConfig) Logger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil || c.Level == "" {
		level = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if c.Pretty {
		log = zerolog.New(zerolog.ConsoleWriter{Out: stderr})
	} else {
		log = zerolog.New(stderr)
	}
	return log.Level(level).With().Timestamp().Logger()
}

// RegisterSerializers registers the money18 and money18padded serializers
// with the configured codec. Call it once at startup, before any database
// is opened.
func (c DatabaseConfig) RegisterSerializers() {
	converter.RegisterCodec(c.Codec())
}
