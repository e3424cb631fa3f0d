package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/psucodervn/vouchbot/internal/game"
	"github.com/psucodervn/vouchbot/pkg/logger"
)

func (h *Handler) requireGameChannel(i *discordgo.Interaction) error {
	if len(i.GuildID) == 0 {
		return ErrNotInGuild
	}
	if !h.cfg.Discord.IsGameChannel(i.ChannelID) {
		return ErrWrongChannel
	}
	return nil
}

func (h *Handler) cmdBlackjack(ctx context.Context, i *discordgo.Interaction) {
	if err := h.requireGameChannel(i); err != nil {
		h.sendError(ctx, i, err)
		return
	}
	bet, ok := toOptions(i.ApplicationCommandData().Options).Int("bet")
	if !ok {
		h.sendError(ctx, i, ErrMissingOption)
		return
	}

	u := interactionUser(i)
	name := interactionName(i)
	st, err := h.game.StartBlackjack(ctx, u.ID, name, bet)
	if err != nil {
		h.sendError(ctx, i, err)
		return
	}
	h.trackBlackjack(st.GameID, i, name)
	h.sendEmbed(ctx, i, BlackjackEmbed(st, name), MakeBlackjackButtons(u.ID)...)
}

func (h *Handler) onButton(ctx context.Context, i *discordgo.Interaction) {
	action, ownerID, err := ParseBlackjackButtonID(i.MessageComponentData().CustomID)
	if err != nil {
		h.sendError(ctx, i, err)
		return
	}

	st, err := h.game.Act(ctx, ownerID, interactionUser(i).ID, action)
	if err != nil {
		h.sendError(ctx, i, err)
		return
	}
	name := interactionName(i)
	if st.Result == nil {
		h.updateEmbed(ctx, i, BlackjackEmbed(st, name), MakeBlackjackButtons(ownerID)...)
		return
	}
	h.takeBlackjack(st.GameID)
	h.updateEmbed(ctx, i, BlackjackEmbed(st, name))
}

func (h *Handler) trackBlackjack(gameID string, i *discordgo.Interaction, name string) {
	h.blackjackReplies.Store(gameID, &blackjackReply{interaction: i, name: name})
}

// takeBlackjack removes and returns the reply showing gameID.
func (h *Handler) takeBlackjack(gameID string) (*blackjackReply, bool) {
	v, ok := h.blackjackReplies.LoadAndDelete(gameID)
	if !ok {
		return nil, false
	}
	return v.(*blackjackReply), true
}

// onBlackjackTimeout edits the original game reply with the forced result.
func (h *Handler) onBlackjackTimeout(st *game.BlackjackState) {
	ctx := logger.NewContext("user_id", st.OwnerID, "game_id", st.GameID)
	r, ok := h.takeBlackjack(st.GameID)
	if !ok {
		return
	}
	embeds := []*discordgo.MessageEmbed{BlackjackEmbed(st, r.name)}
	components := []discordgo.MessageComponent{}
	_, err := h.s.InteractionResponseEdit(r.interaction, &discordgo.WebhookEdit{
		Embeds:     &embeds,
		Components: &components,
	})
	if err != nil {
		log.Ctx(ctx).Err(err).Msg("edit timed out blackjack reply failed")
	}
}

func (h *Handler) cmdRoulette(ctx context.Context, i *discordgo.Interaction) {
	if err := h.requireGameChannel(i); err != nil {
		h.sendError(ctx, i, err)
		return
	}
	opts := toOptions(i.ApplicationCommandData().Options)
	bet, ok := opts.Int("bet")
	kind, ok2 := opts.String("type")
	if !ok || !ok2 {
		h.sendError(ctx, i, ErrMissingOption)
		return
	}
	number, hasNumber := opts.Int("number")
	if kind == string(game.BetNumber) && !hasNumber {
		h.sendError(ctx, i, game.ErrInvalidNumber)
		return
	}
	rb, err := game.ParseRouletteBet(kind, int(number))
	if err != nil {
		h.sendError(ctx, i, err)
		return
	}

	res, err := h.game.Roulette(ctx, interactionUser(i).ID, interactionName(i), bet, rb)
	if err != nil {
		h.sendError(ctx, i, err)
		return
	}
	h.sendEmbed(ctx, i, WagerEmbed(res))
}

func (h *Handler) cmdSlots(ctx context.Context, i *discordgo.Interaction) {
	if err := h.requireGameChannel(i); err != nil {
		h.sendError(ctx, i, err)
		return
	}
	bet, ok := toOptions(i.ApplicationCommandData().Options).Int("bet")
	if !ok {
		h.sendError(ctx, i, ErrMissingOption)
		return
	}

	res, err := h.game.Slots(ctx, interactionUser(i).ID, interactionName(i), bet)
	if err != nil {
		h.sendError(ctx, i, err)
		return
	}
	h.sendEmbed(ctx, i, WagerEmbed(res))
}
