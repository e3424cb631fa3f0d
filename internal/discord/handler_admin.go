package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/psucodervn/vouchbot/internal/stringer"
)

func (h *Handler) requireAdmin(i *discordgo.Interaction) error {
	if len(i.GuildID) == 0 {
		return ErrNotInGuild
	}
	if !isAdmin(i) {
		return ErrNotAdmin
	}
	return nil
}

func (h *Handler) cmdAddPoints(ctx context.Context, i *discordgo.Interaction) {
	h.doAdjust(ctx, i, false)
}

func (h *Handler) cmdRemovePoints(ctx context.Context, i *discordgo.Interaction) {
	h.doAdjust(ctx, i, true)
}

func (h *Handler) doAdjust(ctx context.Context, i *discordgo.Interaction, remove bool) {
	if err := h.requireAdmin(i); err != nil {
		h.sendError(ctx, i, err)
		return
	}
	data := i.ApplicationCommandData()
	opts := toOptions(data.Options)
	u, m, ok := opts.User("user", data.Resolved)
	amount, ok2 := opts.Int("amount")
	if !ok || !ok2 {
		h.sendError(ctx, i, ErrMissingOption)
		return
	}

	adminID := interactionUser(i).ID
	name := DisplayName(m, u)
	var (
		bal int64
		err error
	)
	if remove {
		bal, err = h.ledger.RemovePoints(ctx, adminID, u.ID, name, amount)
	} else {
		bal, err = h.ledger.AddPoints(ctx, adminID, u.ID, name, amount)
	}
	if err != nil {
		h.sendError(ctx, i, err)
		return
	}

	verb := "Added"
	prep := "to"
	if remove {
		verb, prep = "Removed", "from"
	}
	h.sendText(ctx, i, fmt.Sprintf("%s **%s** points %s %s. New balance: **%s**.",
		verb, stringer.FormatPoints(amount), prep, mention(u.ID), stringer.FormatPoints(bal)), false)
}

func (h *Handler) cmdWipePoints(ctx context.Context, i *discordgo.Interaction) {
	if err := h.requireAdmin(i); err != nil {
		h.sendError(ctx, i, err)
		return
	}
	n, err := h.ledger.Wipe(ctx)
	if err != nil {
		h.sendError(ctx, i, err)
		return
	}
	h.sendText(ctx, i, fmt.Sprintf("Wiped the points of %d members.", n), false)
}

func (h *Handler) doMultiplierSet(ctx context.Context, i *discordgo.Interaction, opts options) {
	if err := h.requireAdmin(i); err != nil {
		h.sendError(ctx, i, err)
		return
	}
	value, ok := opts.Int("value")
	if !ok {
		h.sendError(ctx, i, ErrMissingOption)
		return
	}
	minutes, ok := opts.Int("minutes")
	if !ok {
		h.sendError(ctx, i, ErrMissingOption)
		return
	}

	st, err := h.multiplier.Set(ctx, value, minutes)
	if err != nil {
		h.sendError(ctx, i, err)
		return
	}
	if ch, err := h.multiplier.State(ctx); err == nil {
		st.AnnounceChannel = ch.AnnounceChannel
	}
	h.sendEmbed(ctx, i, MultiplierEmbed(st))
}

func (h *Handler) doMultiplierChannel(ctx context.Context, i *discordgo.Interaction, opts options) {
	if err := h.requireAdmin(i); err != nil {
		h.sendError(ctx, i, err)
		return
	}
	channelID, _ := opts.String("channel")
	if err := h.multiplier.SetAnnounceChannel(ctx, channelID); err != nil {
		h.sendError(ctx, i, err)
		return
	}
	if len(channelID) == 0 {
		h.sendText(ctx, i, "Multiplier expiry announcements are off.", true)
		return
	}
	h.sendText(ctx, i, "Multiplier expiry will be announced in "+channelMention(channelID)+".", true)
}

// cmdRecount rebuilds every balance from the vouch channels. The scan can take
// a while, so the reply is deferred and edited when done.
func (h *Handler) cmdRecount(ctx context.Context, i *discordgo.Interaction) {
	if err := h.requireAdmin(i); err != nil {
		h.sendError(ctx, i, err)
		return
	}
	if len(h.cfg.Discord.VouchChannelIDs) == 0 {
		h.sendError(ctx, i, ErrNoVouchChannel)
		return
	}
	if !h.recounting.CompareAndSwap(false, true) {
		h.sendError(ctx, i, ErrRecountRunning)
		return
	}
	h.deferReply(ctx, i, false)

	go func() {
		defer h.recounting.Store(false)

		tallies, scanned, err := h.scanVouchChannels(ctx, i.GuildID)
		if err != nil {
			h.editText(ctx, i, errorText(ctx, err))
			return
		}
		res, err := h.vouch.Recount(ctx, tallies)
		if err != nil {
			h.editText(ctx, i, errorText(ctx, err))
			return
		}
		log.Ctx(ctx).Info().Int("messages", scanned).Int("accounts", res.Accounts).Msg("recount done")
		h.editText(ctx, i, fmt.Sprintf("Recount done: scanned %s messages, wiped %d members and credited %s points to %d providers.",
			stringer.FormatPoints(int64(scanned)), res.Wiped, stringer.FormatPoints(res.Points), res.Accounts))
	}()
}
