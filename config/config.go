// Package config loads pool capacities and logging settings.
//
// Files may be TOML or YAML; the format is picked by extension. Values
// absent from the file keep their defaults:
//
//	[pools]
//	buffers = 256
//	shaders = 64
//
//	[logging]
//	level = "debug"
//	format = "console"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/slotpool"
	"github.com/wippyai/slotpool/errors"
	"github.com/wippyai/slotpool/resource"
)

type Config struct {
	Pools   PoolsConfig   `toml:"pools" yaml:"pools"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// PoolsConfig holds one capacity per resource kind. Each must be in
// (0, 65536]; slot 0 of every pool is reserved, so a capacity of N allows
// N-1 live resources.
type PoolsConfig struct {
	Buffers   int `toml:"buffers" yaml:"buffers"`
	Images    int `toml:"images" yaml:"images"`
	Shaders   int `toml:"shaders" yaml:"shaders"`
	Pipelines int `toml:"pipelines" yaml:"pipelines"`
	Passes    int `toml:"passes" yaml:"passes"`
	Contexts  int `toml:"contexts" yaml:"contexts"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Pools: PoolsConfig{
			Buffers:   slotpool.DefaultBufferPoolSize,
			Images:    slotpool.DefaultImagePoolSize,
			Shaders:   slotpool.DefaultShaderPoolSize,
			Pipelines: slotpool.DefaultPipelinePoolSize,
			Passes:    slotpool.DefaultPassPoolSize,
			Contexts:  slotpool.DefaultContextPoolSize,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load(path, err)
	}

	cfg := Defaults()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Load(path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Load(path, err)
		}
	default:
		return nil, errors.InvalidInput(errors.PhaseLoad, []string{path},
			fmt.Sprintf("unsupported config extension %q (want .toml, .yaml or .yml)", ext))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every pool capacity and the logging settings.
func (c *Config) Validate() error {
	for _, p := range c.Pools.fields() {
		if p.value <= 0 {
			return errors.ConfigError("pools."+p.name, p.value, "capacity must be positive")
		}
		if p.value > slotpool.MaxPoolSize {
			return errors.ConfigError("pools."+p.name, p.value,
				fmt.Sprintf("capacity %d exceeds %d", p.value, slotpool.MaxPoolSize))
		}
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return errors.ConfigError("logging.level", c.Logging.Level,
			"level must be one of debug, info, warn, error, dpanic, panic, fatal")
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return errors.ConfigError("logging.format", c.Logging.Format, `format must be "json" or "console"`)
	}
	return nil
}

// ResourceConfig converts the pool section for resource.NewRegistry.
func (p PoolsConfig) ResourceConfig() resource.Config {
	return resource.Config{
		Buffers:   p.Buffers,
		Images:    p.Images,
		Shaders:   p.Shaders,
		Pipelines: p.Pipelines,
		Passes:    p.Passes,
		Contexts:  p.Contexts,
	}
}

type poolField struct {
	name  string
	value int
}

func (p PoolsConfig) fields() []poolField {
	return []poolField{
		{"buffers", p.Buffers},
		{"images", p.Images},
		{"shaders", p.Shaders},
		{"pipelines", p.Pipelines},
		{"passes", p.Passes},
		{"contexts", p.Contexts},
	}
}
