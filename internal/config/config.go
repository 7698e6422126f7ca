package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Discord Bot
	DiscordToken string

	// Destination channels
	WeaponsChannelID string
	DrugsChannelID   string
	FundsChannelID   string
	SummaryChannelID string

	// Persistence
	DataDir string

	// Web Server
	WebBind string
}

func Load() (*Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := &Config{
		DiscordToken:     os.Getenv("DISCORD_TOKEN"),
		WeaponsChannelID: os.Getenv("WEAPONS_CHANNEL_ID"),
		DrugsChannelID:   os.Getenv("DRUGS_CHANNEL_ID"),
		FundsChannelID:   os.Getenv("FUNDS_CHANNEL_ID"),
		SummaryChannelID: os.Getenv("SUMMARY_CHANNEL_ID"),
		DataDir:          getEnvDefault("DATA_DIR", "./data"),
		WebBind:          getEnvDefault("WEB_BIND", "0.0.0.0:3000"),
	}

	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is required")
	}
	if cfg.WeaponsChannelID == "" {
		return nil, fmt.Errorf("WEAPONS_CHANNEL_ID is required")
	}
	if cfg.DrugsChannelID == "" {
		return nil, fmt.Errorf("DRUGS_CHANNEL_ID is required")
	}
	if cfg.FundsChannelID == "" {
		return nil, fmt.Errorf("FUNDS_CHANNEL_ID is required")
	}
	if cfg.SummaryChannelID == "" {
		return nil, fmt.Errorf("SUMMARY_CHANNEL_ID is required")
	}

	return cfg, nil
}

func getEnvDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
