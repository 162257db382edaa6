package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Sim     SimConfig     `toml:"sim"`
	Logging LoggingConfig `toml:"logging"`
}

type ServerConfig struct {
	Name string `toml:"name"`
	ID   int    `toml:"id"`
}

type SimConfig struct {
	TickRate      time.Duration `toml:"tick_rate"` // nanoseconds in TOML
	Width         int32         `toml:"width"`
	Height        int32         `toml:"height"`
	ArchetypeFile string        `toml:"archetype_file"`
	ScriptsDir    string        `toml:"scripts_dir"`
	Seed          int64         `toml:"seed"` // 0 = derive from wall clock
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "emberline",
			ID:   1,
		},
		Sim: SimConfig{
			TickRate:      200 * time.Millisecond,
			Width:         128,
			Height:        128,
			ArchetypeFile: "data/archetypes.yaml",
			ScriptsDir:    "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
