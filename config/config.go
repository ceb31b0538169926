// Package config loads the application configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rhartert/transit-router/transit"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAddr        = ":8080"
	DefaultBusWaitTime = 6
	DefaultBusVelocity = 40
)

// ServerConfig contains the HTTP server configuration.
type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

// RoutingConfig contains the default routing settings, used when the input
// document does not provide its own.
type RoutingConfig struct {
	BusWaitTime float64 `yaml:"bus_wait_time" validate:"gte=1,lte=1000"`
	BusVelocity float64 `yaml:"bus_velocity" validate:"gte=1,lte=1000"`
}

// Settings converts the configuration into router settings.
func (rc RoutingConfig) Settings() transit.Settings {
	return transit.Settings{
		BusWaitTime: rc.BusWaitTime,
		BusVelocity: rc.BusVelocity,
	}
}

// Config is the root configuration structure.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Routing RoutingConfig `yaml:"routing"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: DefaultAddr},
		Routing: RoutingConfig{
			BusWaitTime: DefaultBusWaitTime,
			BusVelocity: DefaultBusVelocity,
		},
	}
}

// Load reads the configuration file at path. Missing values are set to their
// default and the result is validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that all the values of the configuration are in range.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
