package main

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	AutoMigrate bool   `env:"AUTO_MIGRATE"`
	// StartingBalance is the faucet: what accounts read as before their
	// first bet.
	StartingBalance uint64 `env:"STARTING_BALANCE" envDefault:"1000"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
}

func loadConfig() (Config, error) {
	_ = godotenv.Load() // .env is optional, dev convenience
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
