package config

import (
	"time"
)

type BotConfig struct {
	Discord             DiscordConfig `split_words:"true"`
	DataDir             string        `split_words:"true" default:"data"`
	Blackjack           BlackjackConfig
	Roulette            WagerConfig
	Slots               WagerConfig
	RecountMessageLimit int `split_words:"true" default:"5000"`
	LeaderboardSize     int `split_words:"true" default:"10"`
	PprofAddress        string `split_words:"true"`
}

type DiscordConfig struct {
	BotToken        string   `split_words:"true" required:"true"`
	GuildID         string   `split_words:"true"`
	VouchChannelIDs []string `envconfig:"VOUCH_CHANNEL_IDS"`
	GameChannelIDs  []string `envconfig:"GAME_CHANNEL_IDS"`
	ProviderRole    string   `split_words:"true" default:"Provider"`
}

type BlackjackConfig struct {
	Timeout  time.Duration `default:"30s"`
	Cooldown time.Duration `default:"10s"`
}

type WagerConfig struct {
	Cooldown time.Duration `default:"10s"`
}

func (c DiscordConfig) IsVouchChannel(id string) bool {
	return contains(c.VouchChannelIDs, id)
}

// IsGameChannel reports whether wagers are allowed in id. An empty list allows
// every channel.
func (c DiscordConfig) IsGameChannel(id string) bool {
	if len(c.GameChannelIDs) == 0 {
		return true
	}
	return contains(c.GameChannelIDs, id)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
