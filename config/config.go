/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package config loads settings shared by swisstd and the discord bot.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mikeb26/croquet-swiss/internal"
	"github.com/mikeb26/croquet-swiss/swiss"
)

// DefaultFile is read when no config path is given.
const DefaultFile = "swiss.yaml"

// Config holds the configuration settings
type Config struct {
	StorePath     string        `yaml:"store_path"`
	ArchiveBucket string        `yaml:"archive_bucket"`
	CacheBucket   string        `yaml:"cache_bucket"`
	ByePoints     float64       `yaml:"bye_points"`
	Discord       DiscordConfig `yaml:"discord"`
}

// DiscordConfig holds the discord bot's credentials and listener settings.
type DiscordConfig struct {
	PublicKey string `yaml:"public_key"`
	AppID     string `yaml:"app_id"`
	Token     string `yaml:"token"`
	CommandID string `yaml:"command_id"`
	Port      int    `yaml:"port"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		StorePath:     internal.DefaultDBPath,
		ArchiveBucket: internal.ArchiveBucket,
		CacheBucket:   internal.WebCacheBucket,
		ByePoints:     swiss.DefaultByePoints,
		Discord:       DiscordConfig{Port: 8080},
	}
}

// LoadConfig loads the configuration from a YAML file, if it exists, and then
// applies any SWISS_* environment variables on top. A .env file in the
// working directory is loaded into the environment first.
func LoadConfig(filename string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	data, err := os.ReadFile(filename)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %v: %w",
				filename, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %v: %w", filename, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if cfg.ByePoints < 0 {
		return nil, fmt.Errorf("bye_points must be non-negative, got %v",
			cfg.ByePoints)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"SWISS_STORE_PATH":         &cfg.StorePath,
		"SWISS_ARCHIVE_BUCKET":     &cfg.ArchiveBucket,
		"SWISS_CACHE_BUCKET":       &cfg.CacheBucket,
		"SWISS_DISCORD_PUBLIC_KEY": &cfg.Discord.PublicKey,
		"SWISS_DISCORD_APP_ID":     &cfg.Discord.AppID,
		"SWISS_DISCORD_TOKEN":      &cfg.Discord.Token,
		"SWISS_DISCORD_COMMAND_ID": &cfg.Discord.CommandID,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("SWISS_BYE_POINTS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid SWISS_BYE_POINTS value: %w", err)
		}
		cfg.ByePoints = f
	}
	if v := os.Getenv("SWISS_DISCORD_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SWISS_DISCORD_PORT value: %w", err)
		}
		cfg.Discord.Port = port
	}

	return nil
}
