package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Identity struct {
	// Address is the HTTP listen address of the node
	Address string
}

type Game struct {
	SystemID string
	Capacity int
}

type Chain struct {
	StartHeight   uint64
	BlockInterval time.Duration
}

type Auth struct {
	Secret   string
	TokenTTL time.Duration
}

type Log struct {
	Level    string
	FilePath string
}

type Events struct {
	BufferSize int
}

type Config struct {
	Identity Identity
	Game     Game
	Chain    Chain
	Auth     Auth
	Log      Log
	Events   Events
}

func defaultConfig() *Config {
	return &Config{
		Identity: Identity{
			Address: "127.0.0.1:5000",
		},
		Game: Game{
			SystemID: "coinflip",
			Capacity: 10,
		},
		Chain: Chain{
			StartHeight:   1,
			BlockInterval: 6 * time.Second,
		},
		Auth: Auth{
			Secret:   "",
			TokenTTL: 24 * time.Hour,
		},
		Log: Log{
			Level:    "info",
			FilePath: "",
		},
		Events: Events{
			BufferSize: 100,
		},
	}
}

var configPath = os.Getenv("HOME") + "/.coinflip/config.yml"

func Path() string {
	return configPath
}

// Load reads the config file at path over the defaults and validates it.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("cannot read config %s: %s", path, err)
	}

	conf := defaultConfig()
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("error in read config, err: %s", err)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *Config) Validate() error {
	if len(c.Game.SystemID) == 0 || len(c.Game.SystemID) > 8 {
		return errors.New("game.systemid must be 1 to 8 bytes")
	}
	if c.Game.Capacity < 1 {
		return fmt.Errorf("game.capacity must be positive, got %d", c.Game.Capacity)
	}
	if c.Chain.BlockInterval <= 0 {
		return fmt.Errorf("chain.blockinterval must be positive, got %s", c.Chain.BlockInterval)
	}
	if c.Auth.Secret == "" {
		return errors.New("auth.secret is empty")
	}
	if c.Events.BufferSize < 0 {
		return fmt.Errorf("events.buffersize must not be negative, got %d", c.Events.BufferSize)
	}
	return nil
}
