package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/psucodervn/vouchbot/internal/model"
	"github.com/psucodervn/vouchbot/internal/stringer"
	"github.com/psucodervn/vouchbot/pkg/logger"
)

func (h *Handler) ctx(i *discordgo.Interaction) context.Context {
	u := interactionUser(i)
	return logger.NewContext(
		"user_id", u.ID,
		"user", u.Username,
		"guild_id", i.GuildID,
		"channel_id", i.ChannelID,
	)
}

func (h *Handler) respond(ctx context.Context, i *discordgo.Interaction, typ discordgo.InteractionResponseType, data *discordgo.InteractionResponseData) {
	if data != nil && data.AllowedMentions == nil {
		data.AllowedMentions = &discordgo.MessageAllowedMentions{}
	}
	err := h.s.InteractionRespond(i, &discordgo.InteractionResponse{Type: typ, Data: data}, discordgo.WithContext(ctx))
	if err != nil {
		log.Ctx(ctx).Err(err).Msg("respond interaction failed")
	}
}

func (h *Handler) sendText(ctx context.Context, i *discordgo.Interaction, msg string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: msg}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	h.respond(ctx, i, discordgo.InteractionResponseChannelMessageWithSource, data)
}

func (h *Handler) sendEmbed(ctx context.Context, i *discordgo.Interaction, e *discordgo.MessageEmbed, components ...discordgo.MessageComponent) {
	h.respond(ctx, i, discordgo.InteractionResponseChannelMessageWithSource, &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{e},
		Components: components,
	})
}

// updateEmbed replaces the message a button belongs to. Passing no components
// removes the buttons.
func (h *Handler) updateEmbed(ctx context.Context, i *discordgo.Interaction, e *discordgo.MessageEmbed, components ...discordgo.MessageComponent) {
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	h.respond(ctx, i, discordgo.InteractionResponseUpdateMessage, &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{e},
		Components: components,
	})
}

func (h *Handler) deferReply(ctx context.Context, i *discordgo.Interaction, ephemeral bool) {
	data := &discordgo.InteractionResponseData{}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	h.respond(ctx, i, discordgo.InteractionResponseDeferredChannelMessageWithSource, data)
}

func (h *Handler) editText(ctx context.Context, i *discordgo.Interaction, msg string) {
	if _, err := h.s.InteractionResponseEdit(i, &discordgo.WebhookEdit{Content: &msg}, discordgo.WithContext(ctx)); err != nil {
		log.Ctx(ctx).Err(err).Msg("edit interaction response failed")
	}
}

// sendError shows validation errors to the invoking user and hides everything
// else behind a generic notice.
func (h *Handler) sendError(ctx context.Context, i *discordgo.Interaction, err error) {
	h.sendText(ctx, i, errorText(ctx, err), true)
}

func errorText(ctx context.Context, err error) string {
	if model.IsValidation(err) {
		return stringer.Capitalize(err.Error())
	}
	log.Ctx(ctx).Err(err).Msg("command failed")
	return genericFailure
}

// lookupName resolves a display name through the API. Used to backfill
// leaderboards.
func (h *Handler) lookupName(ctx context.Context, id string) (string, error) {
	u, err := h.s.User(id, discordgo.WithContext(ctx))
	if err != nil {
		return "", err
	}
	return DisplayName(nil, u), nil
}
