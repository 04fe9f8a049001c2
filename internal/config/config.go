package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPAddr  string    `yaml:"http-addr" env:"HTTP_ADDR" env-default:":8080"`
	StaticDir string    `yaml:"static-dir" env:"STATIC_DIR" env-default:"./web"`
	Game      Game      `yaml:"game"`
	Export    Export    `yaml:"export"`
	Telemetry Telemetry `yaml:"telemetry"`
}

type Game struct {
	Mode          string        `yaml:"mode" env:"GAME_MODE" env-default:"pvp"`
	Difficulty    string        `yaml:"difficulty" env:"GAME_DIFFICULTY" env-default:"optimal"`
	ComputerDelay time.Duration `yaml:"computer-delay" env:"GAME_COMPUTER_DELAY" env-default:"150ms"`
}

// Export configures where exported snapshots are archived besides the download.
// Empty values disable the corresponding sink.
type Export struct {
	Dir        string        `yaml:"dir" env:"EXPORT_DIR"`
	RedisAddr  string        `yaml:"redis-addr" env:"EXPORT_REDIS_ADDR"`
	RedisTTL   time.Duration `yaml:"redis-ttl" env:"EXPORT_REDIS_TTL" env-default:"0s"`
	SQLitePath string        `yaml:"sqlite-path" env:"EXPORT_SQLITE_PATH"`
}

type Telemetry struct {
	OTLPEndpoint   string `yaml:"otlp-endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName    string `yaml:"service-name" env:"OTEL_SERVICE_NAME" env-default:"tic-tac-toe"`
	ServiceVersion string `yaml:"service-version" env-default:"v0.1.0"`
}

// Load reads the yaml file at path and applies environment overrides.
// A missing file is not an error; defaults and the environment are used.
func Load(path string) (*Config, error) {
	config := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, config); err != nil {
				return nil, fmt.Errorf("unable to load config file: %w", err)
			}
			return config, config.validate()
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("unable to stat config file: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to read config from environment: %w", err)
	}
	return config, config.validate()
}

// MustLoad is Load that panics on error.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}
	return config
}

func (c *Config) validate() error {
	switch c.Game.Mode {
	case "pvp", "pve":
	default:
		return fmt.Errorf("invalid game mode %q", c.Game.Mode)
	}
	switch c.Game.Difficulty {
	case "random", "optimal":
	default:
		return fmt.Errorf("invalid game difficulty %q", c.Game.Difficulty)
	}
	if c.Game.ComputerDelay < 0 {
		return fmt.Errorf("computer delay must not be negative")
	}
	return nil
}
