package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/psucodervn/vouchbot/internal/stringer"
	"github.com/psucodervn/vouchbot/internal/vouch"
	"github.com/psucodervn/vouchbot/pkg/logger"
)

func (h *Handler) onMessageCreate(s *discordgo.Session, mc *discordgo.MessageCreate) {
	m := mc.Message
	if m.Author == nil || m.Author.Bot || len(m.GuildID) == 0 || !h.cfg.Discord.IsVouchChannel(m.ChannelID) {
		return
	}
	ctx := logger.NewContext(
		"user_id", m.Author.ID,
		"user", m.Author.Username,
		"guild_id", m.GuildID,
		"channel_id", m.ChannelID,
	)

	for _, p := range h.qualifyingProviders(ctx, m.GuildID, m) {
		award, err := h.vouch.Award(ctx, p.ID, DisplayName(nil, p), vouch.Source{ChannelID: m.ChannelID, MessageID: m.ID})
		if err != nil {
			log.Ctx(ctx).Err(err).Str("provider_id", p.ID).Msg("award vouch failed")
			continue
		}
		h.replyAward(ctx, m, p, award)
	}
}

func (h *Handler) replyAward(ctx context.Context, m *discordgo.Message, p *discordgo.User, award vouch.Award) {
	msg := fmt.Sprintf("✅ %s received **%s** point(s) for this vouch and now has **%s**.",
		mention(p.ID), stringer.FormatPoints(award.Amount), stringer.FormatPoints(award.Total))
	if award.Multiplier > 1 {
		msg += " (" + stringer.FormatMultiplier(award.Multiplier) + " multiplier active)"
	}
	_, err := h.s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Content:         msg,
		Reference:       m.Reference(),
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}, discordgo.WithContext(ctx))
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("reply vouch award failed")
	}
}

// qualifyingProviders applies the vouch rule to m: an image attachment and a
// mention of at least one Provider role holder.
func (h *Handler) qualifyingProviders(ctx context.Context, guildID string, m *discordgo.Message) []*discordgo.User {
	if !HasImage(m) {
		return nil
	}
	return MentionedProviders(m, func(u *discordgo.User) bool {
		return h.isProvider(ctx, guildID, u.ID)
	})
}

func (h *Handler) isProvider(ctx context.Context, guildID string, userID string) bool {
	roleID, err := h.providerRoleID(ctx, guildID)
	if err != nil {
		log.Ctx(ctx).Err(err).Msg("resolve provider role failed")
		return false
	}
	if len(roleID) == 0 {
		return false
	}

	member, err := h.s.State.Member(guildID, userID)
	if err != nil {
		member, err = h.s.GuildMember(guildID, userID, discordgo.WithContext(ctx))
		if err != nil {
			log.Ctx(ctx).Debug().Err(err).Str("member_id", userID).Msg("get member failed")
			return false
		}
	}
	for _, r := range member.Roles {
		if r == roleID {
			return true
		}
	}
	return false
}

// providerRoleID finds the guild role named like the configured provider
// role. Hits are cached until the guild's roles change.
func (h *Handler) providerRoleID(ctx context.Context, guildID string) (string, error) {
	if v, ok := h.providerRoles.Load(guildID); ok {
		return v.(string), nil
	}
	roles, err := h.s.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return "", err
	}
	for _, r := range roles {
		if strings.EqualFold(r.Name, h.cfg.Discord.ProviderRole) {
			h.providerRoles.Store(guildID, r.ID)
			return r.ID, nil
		}
	}
	log.Ctx(ctx).Warn().Str("role", h.cfg.Discord.ProviderRole).Msg("provider role not found")
	return "", nil
}
