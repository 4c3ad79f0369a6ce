package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the CLI. OnlineCheckInterval is how
// often the server's health endpoint is probed.
type Config struct {
	ServerBaseURL       string
	DatabaseDSN         string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	LogLevel            string
}

func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.DatabaseDSN = "tasks.db"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 5 * time.Second
	c.LogLevel = "error"
}

// LoadConfig applies defaults, then the config file, then flags. It panics
// on malformed input.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
