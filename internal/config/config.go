package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel     string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPAddr     string        `yaml:"http-addr" env:"HTTP_ADDR" env-default:":8000"`
	StaticDir    string        `yaml:"static-dir" env:"STATIC_DIR" env-default:"./client"`
	RoomTTL      time.Duration `yaml:"room-ttl" env:"ROOM_TTL" env-default:"30m"`
	ReapInterval time.Duration `yaml:"reap-interval" env:"REAP_INTERVAL" env-default:"1m"`
}

// MustLoad reads the YAML config file when present, otherwise falls back to
// environment variables and defaults. Panics on a malformed file.
func MustLoad(path string) *Config {
	config := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, config); err != nil {
			panic(fmt.Errorf("unable to load config file: %w", err))
		}
		return config
	}

	if err := cleanenv.ReadEnv(config); err != nil {
		panic(fmt.Errorf("unable to read environment: %w", err))
	}

	return config
}
