package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

func ReadBotConfig() (BotConfig, error) {
	var cfg BotConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return BotConfig{}, err
	}
	if len(cfg.Discord.BotToken) == 0 {
		return BotConfig{}, fmt.Errorf("DISCORD_BOT_TOKEN is empty")
	}
	if cfg.RecountMessageLimit < 1 {
		return BotConfig{}, fmt.Errorf("RECOUNT_MESSAGE_LIMIT must be positive, got %d", cfg.RecountMessageLimit)
	}
	if cfg.LeaderboardSize < 1 {
		return BotConfig{}, fmt.Errorf("LEADERBOARD_SIZE must be positive, got %d", cfg.LeaderboardSize)
	}
	return cfg, nil
}

func MustReadBotConfig() BotConfig {
	cfg, err := ReadBotConfig()
	if err != nil {
		panic(err)
	}
	return cfg
}
