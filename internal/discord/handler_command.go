package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/psucodervn/vouchbot/internal/game"
	"github.com/psucodervn/vouchbot/internal/stringer"
)

const historySize = 10

var (
	minOne        = 1.0
	minZero       = 0.0
	noDM          = false
	adminOnly     = int64(discordgo.PermissionAdministrator)
	betOption     = &discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionInteger, Name: "bet", Description: "Points to wager", Required: true, MinValue: &minOne}
	amountOption  = &discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionInteger, Name: "amount", Description: "Number of points", Required: true, MinValue: &minOne}
	targetOption  = &discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Member", Required: true}
	rouletteKinds = []*discordgo.ApplicationCommandOptionChoice{
		{Name: "Red", Value: string(game.BetRed)},
		{Name: "Black", Value: string(game.BetBlack)},
		{Name: "Even", Value: string(game.BetEven)},
		{Name: "Odd", Value: string(game.BetOdd)},
		{Name: "Low (1-18)", Value: string(game.BetLow)},
		{Name: "High (19-36)", Value: string(game.BetHigh)},
		{Name: "Number", Value: string(game.BetNumber)},
	}

	commands = []*discordgo.ApplicationCommand{
		{
			Name:         "points",
			Description:  "Show your vouch points or those of another member",
			DMPermission: &noDM,
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Member to look up"},
			},
		},
		{
			Name:         "history",
			Description:  "Recent point changes of you or another member",
			DMPermission: &noDM,
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Member to look up"},
			},
		},
		{
			Name:         "leaderboard",
			Description:  "Members with the most points",
			DMPermission: &noDM,
		},
		{
			Name:         "gamblers",
			Description:  "Members with the best net result at the games",
			DMPermission: &noDM,
		},
		{
			Name:         "multiplier",
			Description:  "Points multiplier",
			DMPermission: &noDM,
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "status", Description: "Show the current multiplier"},
				{
					Type: discordgo.ApplicationCommandOptionSubCommand, Name: "set", Description: "Set the multiplier (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "value", Description: "Multiplier", Required: true, MinValue: &minOne},
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "minutes", Description: "Revert to x1 after this many minutes", Required: true, MinValue: &minOne},
					},
				},
				{
					Type: discordgo.ApplicationCommandOptionSubCommand, Name: "channel", Description: "Set or clear the expiry announcement channel (admin)",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionChannel, Name: "channel", Description: "Leave empty to clear", ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText}},
					},
				},
			},
		},
		{
			Name:         "blackjack",
			Description:  "Play a hand of blackjack against the dealer",
			DMPermission: &noDM,
			Options:      []*discordgo.ApplicationCommandOption{betOption},
		},
		{
			Name:         "roulette",
			Description:  "Spin the roulette wheel",
			DMPermission: &noDM,
			Options: []*discordgo.ApplicationCommandOption{
				betOption,
				{Type: discordgo.ApplicationCommandOptionString, Name: "type", Description: "What to bet on", Required: true, Choices: rouletteKinds},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "number", Description: "Number for a number bet", MinValue: &minZero, MaxValue: game.RouletteMaxNumber},
			},
		},
		{
			Name:         "slots",
			Description:  "Spin the slot machine",
			DMPermission: &noDM,
			Options:      []*discordgo.ApplicationCommandOption{betOption},
		},
		{
			Name:                     "addpoints",
			Description:              "Give points to a member",
			DMPermission:             &noDM,
			DefaultMemberPermissions: &adminOnly,
			Options:                  []*discordgo.ApplicationCommandOption{targetOption, amountOption},
		},
		{
			Name:                     "removepoints",
			Description:              "Take points from a member",
			DMPermission:             &noDM,
			DefaultMemberPermissions: &adminOnly,
			Options:                  []*discordgo.ApplicationCommandOption{targetOption, amountOption},
		},
		{
			Name:                     "wipepoints",
			Description:              "Reset every balance to zero",
			DMPermission:             &noDM,
			DefaultMemberPermissions: &adminOnly,
		},
		{
			Name:                     "recount",
			Description:              "Rebuild balances from the vouch channel history",
			DMPermission:             &noDM,
			DefaultMemberPermissions: &adminOnly,
		},
	}
)

func (h *Handler) cmdPoints(ctx context.Context, i *discordgo.Interaction) {
	data := i.ApplicationCommandData()
	opts := toOptions(data.Options)

	u := interactionUser(i)
	if ou, _, ok := opts.User("user", data.Resolved); ok {
		u = ou
	}
	bal, err := h.ledger.Balance(ctx, u.ID)
	if err != nil {
		h.sendError(ctx, i, err)
		return
	}
	msg := fmt.Sprintf("%s has **%s** points.", mention(u.ID), stringer.FormatPoints(bal))
	if u.ID == interactionUser(i).ID {
		msg = fmt.Sprintf("You have **%s** points.", stringer.FormatPoints(bal))
	}
	h.sendText(ctx, i, msg, false)
}

func (h *Handler) cmdHistory(ctx context.Context, i *discordgo.Interaction) {
	data := i.ApplicationCommandData()
	opts := toOptions(data.Options)

	u, name := interactionUser(i), interactionName(i)
	if ou, om, ok := opts.User("user", data.Resolved); ok {
		u, name = ou, DisplayName(om, ou)
	}
	entries, err := h.ledger.History(ctx, u.ID, historySize)
	if err != nil {
		h.sendError(ctx, i, err)
		return
	}
	h.sendEmbed(ctx, i, HistoryEmbed(name, entries))
}

func (h *Handler) cmdLeaderboard(ctx context.Context, i *discordgo.Interaction) {
	standings, err := h.ledger.TopBalances(ctx, h.cfg.LeaderboardSize, h.lookupName)
	if err != nil {
		h.sendError(ctx, i, err)
		return
	}
	h.sendEmbed(ctx, i, StandingsEmbed("🏆 Leaderboard", standings, "points", false))
}

func (h *Handler) cmdGamblers(ctx context.Context, i *discordgo.Interaction) {
	standings, err := h.ledger.TopGamblers(ctx, h.cfg.LeaderboardSize, h.lookupName)
	if err != nil {
		h.sendError(ctx, i, err)
		return
	}
	h.sendEmbed(ctx, i, StandingsEmbed("🎲 Top gamblers", standings, "net", true))
}

func (h *Handler) cmdMultiplier(ctx context.Context, i *discordgo.Interaction) {
	sub, opts := subcommand(i.ApplicationCommandData())
	switch sub {
	case "set":
		h.doMultiplierSet(ctx, i, opts)
	case "channel":
		h.doMultiplierChannel(ctx, i, opts)
	default:
		st, err := h.multiplier.State(ctx)
		if err != nil {
			h.sendError(ctx, i, err)
			return
		}
		h.sendEmbed(ctx, i, MultiplierEmbed(st))
	}
}
