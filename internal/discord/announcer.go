package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Announcer sends broadcast messages that are allowed to ping @everyone.
type Announcer struct {
	s *discordgo.Session
}

func NewAnnouncer(s *discordgo.Session) *Announcer {
	return &Announcer{s: s}
}

func (a *Announcer) Announce(ctx context.Context, channelID string, msg string) error {
	_, err := a.s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: msg,
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeEveryone},
		},
	}, discordgo.WithContext(ctx))
	return err
}
