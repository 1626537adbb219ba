package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/xtding233/atbat-sim/internal/atbat"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "ATBAT_"

// Config is the service configuration: defaults <- YAML file <- env.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Roster     RosterConfig     `yaml:"roster"`
	Simulation SimulationConfig `yaml:"simulation"`
	Ballparks  []Ballpark       `yaml:"ballparks" envPrefix:"BALLPARKS_"`
	Redis      RedisConfig      `yaml:"redis"`
}

type ServerConfig struct {
	HTTPAddr       string   `yaml:"http_addr" env:"HTTP_ADDR"`
	GRPCAddr       string   `yaml:"grpc_addr" env:"GRPC_ADDR"` // empty disables gRPC
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`
}

type RosterConfig struct {
	Dir            string        `yaml:"dir" env:"ROSTER_DIR"`
	ReloadInterval time.Duration `yaml:"reload_interval" env:"ROSTER_RELOAD_INTERVAL"` // 0 disables hot reload
}

type SimulationConfig struct {
	DefaultSampleSize int    `yaml:"default_sample_size" env:"DEFAULT_SAMPLE_SIZE"`
	MaxSampleSize     int    `yaml:"max_sample_size" env:"MAX_SAMPLE_SIZE"`
	DefaultBallpark   string `yaml:"default_ballpark" env:"DEFAULT_BALLPARK"`
	DefaultSeriesRuns int    `yaml:"default_series_runs" env:"DEFAULT_SERIES_RUNS"`
	MaxSeriesRuns     int    `yaml:"max_series_runs" env:"MAX_SERIES_RUNS"`
}

// Ballpark is a named park factor. Factors below 1 suppress hits.
type Ballpark struct {
	Key        string  `yaml:"key" json:"key" env:"KEY"`
	Label      string  `yaml:"label" json:"label" env:"LABEL"`
	ParkFactor float64 `yaml:"park_factor" json:"park_factor" env:"PARK_FACTOR"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr" env:"REDIS_ADDR"` // empty disables the result cache
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"REDIS_DB"`
	TTL      time.Duration `yaml:"ttl" env:"REDIS_TTL"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:       ":8050",
			GRPCAddr:       ":9050",
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:8050"},
		},
		Roster: RosterConfig{
			Dir:            "data",
			ReloadInterval: 5 * time.Second,
		},
		Simulation: SimulationConfig{
			DefaultSampleSize: atbat.DefaultSampleSize,
			MaxSampleSize:     10000,
			DefaultBallpark:   "neutral",
			DefaultSeriesRuns: 100,
			MaxSeriesRuns:     1000,
		},
		Ballparks: []Ballpark{
			{Key: "neutral", Label: "Neutral Park", ParkFactor: 1.0},
			{Key: "left", Label: "Left Cage (Pitcher Friendly)", ParkFactor: 0.95},
			{Key: "right", Label: "Right Cage (Hitter Friendly)", ParkFactor: 1.05},
		},
		Redis: RedisConfig{
			TTL: 24 * time.Hour,
		},
	}
}

// Load builds the configuration. A missing file at path is not an error;
// an empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Ballpark looks up a park by key.
func (c *Config) Ballpark(key string) (Ballpark, bool) {
	for _, b := range c.Ballparks {
		if b.Key == key {
			return b, true
		}
	}
	return Ballpark{}, false
}
