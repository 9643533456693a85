package main

import (
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "stitch.toml"

type Config struct {
	// ProcessPrefix is the default process-name filter applied when the
	// merge command is run without --filter-by-process-prefix.
	ProcessPrefix string `toml:"process_prefix" env:"STITCH_PROCESS_PREFIX"`
	ListenAddr    string `toml:"listen_addr" env:"STITCH_LISTEN_ADDR" env-default:"127.0.0.1:3000"`
	LogLevel      string `toml:"log_level" env:"STITCH_LOG_LEVEL" env-default:"info"`
}

// loadConfig reads the config file at path when given, falls back to
// stitch.toml in the working directory when present, and otherwise reads
// from the environment only. Environment variables override file values.
func loadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		}
	}
	if path == "" {
		return cfg, cleanenv.ReadEnv(&cfg)
	}
	return cfg, cleanenv.ReadConfig(path, &cfg)
}
