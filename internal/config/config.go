// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads bootstat settings from defaults, an optional
// YAML file and BOOTSTAT_* environment variables, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sfeek/bootstat/compare"
	"github.com/sfeek/bootstat/report"
)

// Config is the top-level configuration.
type Config struct {
	Defaults Defaults `mapstructure:"defaults"`
	Logging  Logging  `mapstructure:"logging"`
	Server   Server   `mapstructure:"server"`
}

// Defaults are the comparison settings used when a request or command
// line does not override them.
type Defaults struct {
	Paired     bool    `mapstructure:"paired"`
	Tail       string  `mapstructure:"tail"`
	Confidence float64 `mapstructure:"confidence"`
	// Iterations is in thousands of resamples.
	Iterations int    `mapstructure:"iterations"`
	Workers    int    `mapstructure:"workers"`
	Format     string `mapstructure:"format"`
	Seed       *int64 `mapstructure:"seed"`
}

// Logging selects the log level and encoding.
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Server configures the HTTP endpoint.
type Server struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

// Addr returns the host:port the server listens on.
func (s Server) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Default values.
const (
	DefaultConfidence   = 95.0
	DefaultIterations   = 10
	DefaultTail         = "two"
	DefaultFormat       = "text"
	DefaultLogLevel     = "warn"
	DefaultLogFormat    = "console"
	DefaultHost         = "127.0.0.1"
	DefaultPort         = 8080
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 2 * time.Minute
	DefaultMaxBodyBytes = 8 << 20
)

var (
	// ErrInvalidTail indicates defaults.tail is not one or two.
	ErrInvalidTail = errors.New("defaults.tail must be one or two")
	// ErrInvalidConfidence indicates defaults.confidence is out of range.
	ErrInvalidConfidence = errors.New("defaults.confidence must be between 0 and 100")
	// ErrInvalidIterations indicates defaults.iterations is out of range.
	ErrInvalidIterations = errors.New("defaults.iterations must be between 1 and 9999 (thousands)")
	// ErrInvalidWorkers indicates defaults.workers is negative.
	ErrInvalidWorkers = errors.New("defaults.workers must be non-negative")
	// ErrInvalidFormat indicates defaults.format names no output format.
	ErrInvalidFormat = errors.New("defaults.format must be text, csv, json, yaml or html")
	// ErrInvalidLogLevel indicates logging.level is unknown.
	ErrInvalidLogLevel = errors.New("logging.level must be debug, info, warn or error")
	// ErrInvalidLogFormat indicates logging.format is unknown.
	ErrInvalidLogFormat = errors.New("logging.format must be json or console")
	// ErrInvalidPort indicates server.port is out of range.
	ErrInvalidPort = errors.New("server.port must be between 0 and 65535")
	// ErrInvalidTimeout indicates a server timeout is negative.
	ErrInvalidTimeout = errors.New("server timeouts must be non-negative")
	// ErrInvalidMaxBody indicates server.max_body_bytes is not positive.
	ErrInvalidMaxBody = errors.New("server.max_body_bytes must be positive")
)

const (
	configName = "bootstat"
	configType = "yaml"
	envPrefix  = "BOOTSTAT"
)

// Load reads the configuration. If path is empty, bootstat.yaml is
// looked up in the current directory and a missing file is not an
// error.
func Load(path string) (*Config, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Seed has no default, so it has to be bound explicitly.
	if err := v.BindEnv("defaults.seed"); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("defaults.paired", false)
	v.SetDefault("defaults.tail", DefaultTail)
	v.SetDefault("defaults.confidence", DefaultConfidence)
	v.SetDefault("defaults.iterations", DefaultIterations)
	v.SetDefault("defaults.workers", 0)
	v.SetDefault("defaults.format", DefaultFormat)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)

	v.SetDefault("server.host", DefaultHost)
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.read_timeout", DefaultReadTimeout)
	v.SetDefault("server.write_timeout", DefaultWriteTimeout)
	v.SetDefault("server.max_body_bytes", DefaultMaxBodyBytes)
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	if err := c.Defaults.validate(); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return ErrInvalidLogFormat
	}
	s := c.Server
	if s.Port < 0 || s.Port > 65535 {
		return ErrInvalidPort
	}
	if s.ReadTimeout < 0 || s.WriteTimeout < 0 {
		return ErrInvalidTimeout
	}
	if s.MaxBodyBytes <= 0 {
		return ErrInvalidMaxBody
	}
	return nil
}

func (d Defaults) validate() error {
	if _, err := compare.ParseTail(d.Tail); err != nil {
		return ErrInvalidTail
	}
	if d.Confidence < 0 || d.Confidence > 100 {
		return ErrInvalidConfidence
	}
	if d.Iterations < 1 || d.Iterations*1000 > compare.MaxIterations {
		return ErrInvalidIterations
	}
	if d.Workers < 0 {
		return ErrInvalidWorkers
	}
	if _, err := report.ParseFormat(d.Format); err != nil {
		return ErrInvalidFormat
	}
	return nil
}

// Compare returns the comparison configuration the defaults describe.
func (d Defaults) Compare() (compare.Config, error) {
	tail, err := compare.ParseTail(d.Tail)
	if err != nil {
		return compare.Config{}, err
	}
	return compare.Config{
		Paired:     d.Paired,
		Tail:       tail,
		Confidence: d.Confidence,
		Iterations: d.Iterations * 1000,
		Seed:       d.Seed,
		Workers:    d.Workers,
	}, nil
}

// OutputFormat returns the report format the defaults name.
func (d Defaults) OutputFormat() (report.Format, error) {
	return report.ParseFormat(d.Format)
}
