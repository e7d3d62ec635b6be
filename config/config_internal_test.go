package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	c, err := Load(filepath.Join("testdata", "config.golden.yml"))
	if err != nil {
		t.Fatalf("unexpected err: %s", err)
	}
	if c.Identity.Address != "127.0.0.1:6000" {
		t.Fatalf("expected address is %s, but got %s", "127.0.0.1:6000", c.Identity.Address)
	}
	if c.Game.SystemID != "cointest" {
		t.Fatalf("expected system id is %s, but got %s", "cointest", c.Game.SystemID)
	}
	if c.Game.Capacity != 4 {
		t.Fatalf("expected capacity is %d, but got %d", 4, c.Game.Capacity)
	}
	if c.Chain.StartHeight != 100 {
		t.Fatalf("expected start height is %d, but got %d", 100, c.Chain.StartHeight)
	}
	if c.Chain.BlockInterval != 2*time.Second {
		t.Fatalf("expected block interval is %s, but got %s", 2*time.Second, c.Chain.BlockInterval)
	}
	if c.Auth.Secret != "golden-secret" {
		t.Fatalf("expected secret is %s, but got %s", "golden-secret", c.Auth.Secret)
	}
	if c.Auth.TokenTTL != time.Hour {
		t.Fatalf("expected token ttl is %s, but got %s", time.Hour, c.Auth.TokenTTL)
	}
	if c.Log.Level != "debug" {
		t.Fatalf("expected log level is %s, but got %s", "debug", c.Log.Level)
	}
	if c.Events.BufferSize != 16 {
		t.Fatalf("expected buffer size is %d, but got %d", 16, c.Events.BufferSize)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLoad_KeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("auth:\n  secret: s\n"), 0600); err != nil {
		t.Fatalf("unexpected err: %s", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected err: %s", err)
	}
	if c.Game.Capacity != 10 || c.Game.SystemID != "coinflip" {
		t.Fatalf("defaults not kept: %+v", c.Game)
	}
	if c.Chain.BlockInterval != 6*time.Second {
		t.Fatalf("expected default block interval is %s, but got %s", 6*time.Second, c.Chain.BlockInterval)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "empty system id", mutate: func(c *Config) { c.Game.SystemID = "" }},
		{name: "long system id", mutate: func(c *Config) { c.Game.SystemID = "123456789" }},
		{name: "zero capacity", mutate: func(c *Config) { c.Game.Capacity = 0 }},
		{name: "zero interval", mutate: func(c *Config) { c.Chain.BlockInterval = 0 }},
		{name: "empty secret", mutate: func(c *Config) { c.Auth.Secret = "" }},
		{name: "negative buffer", mutate: func(c *Config) { c.Events.BufferSize = -1 }},
	}

	for _, test := range tests {
		c := defaultConfig()
		c.Auth.Secret = "secret"
		if err := c.Validate(); err != nil {
			t.Fatalf("%s: default config must be valid, got %s", test.name, err)
		}
		test.mutate(c)
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", test.name)
		}
	}
}
