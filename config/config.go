package config

import (
	"github.com/joeshaw/envdecode"
)

// ServerConfig is everything the web binary needs, decoded from the
// environment.
type ServerConfig struct {
	Addr      string `env:"CASHFLOW_ADDR,default=:8000"`
	CardsFile string `env:"CASHFLOW_CARDS_FILE"`
	BoardFile string `env:"CASHFLOW_BOARD_FILE"`
	DebugDice bool   `env:"CASHFLOW_DEBUG_DICE,default=false"`
}

// LoadServer reads the server configuration from the environment.
func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := envdecode.Decode(&cfg)
	return cfg, err
}
