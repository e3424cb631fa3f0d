package discord

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"go.uber.org/atomic"

	"github.com/psucodervn/vouchbot/internal/config"
	"github.com/psucodervn/vouchbot/internal/game"
	"github.com/psucodervn/vouchbot/internal/ledger"
	"github.com/psucodervn/vouchbot/internal/multiplier"
	"github.com/psucodervn/vouchbot/internal/vouch"
)

type commandFunc func(ctx context.Context, i *discordgo.Interaction)

type Handler struct {
	s          *discordgo.Session
	cfg        config.BotConfig
	ledger     *ledger.Service
	vouch      *vouch.Service
	multiplier *multiplier.Manager
	game       *game.Manager

	commands map[string]commandFunc

	providerRoles    sync.Map
	blackjackReplies sync.Map
	recounting       atomic.Bool
}

// blackjackReply is the interaction whose response shows a live game. Replies
// are keyed by game id.
type blackjackReply struct {
	interaction *discordgo.Interaction
	name        string
}

func NewHandler(s *discordgo.Session, cfg config.BotConfig, ledgerSvc *ledger.Service, vouchSvc *vouch.Service,
	mult *multiplier.Manager, manager *game.Manager) *Handler {
	h := &Handler{
		s:          s,
		cfg:        cfg,
		ledger:     ledgerSvc,
		vouch:      vouchSvc,
		multiplier: mult,
		game:       manager,
	}
	h.commands = map[string]commandFunc{
		"points":       h.cmdPoints,
		"history":      h.cmdHistory,
		"leaderboard":  h.cmdLeaderboard,
		"gamblers":     h.cmdGamblers,
		"multiplier":   h.cmdMultiplier,
		"blackjack":    h.cmdBlackjack,
		"roulette":     h.cmdRoulette,
		"slots":        h.cmdSlots,
		"addpoints":    h.cmdAddPoints,
		"removepoints": h.cmdRemovePoints,
		"wipepoints":   h.cmdWipePoints,
		"recount":      h.cmdRecount,
	}
	return h
}

// Start opens the gateway connection and registers the slash commands.
func (h *Handler) Start() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recover: %v", r)
		}
	}()

	h.game.OnBlackjackTimeout(h.onBlackjackTimeout)

	h.s.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentGuildMembers |
		discordgo.IntentMessageContent
	h.s.AddHandler(h.onReady)
	h.s.AddHandler(h.onMessageCreate)
	h.s.AddHandler(h.onInteractionCreate)
	h.s.AddHandler(func(s *discordgo.Session, e *discordgo.GuildRoleCreate) { h.providerRoles.Delete(e.GuildID) })
	h.s.AddHandler(func(s *discordgo.Session, e *discordgo.GuildRoleUpdate) { h.providerRoles.Delete(e.GuildID) })
	h.s.AddHandler(func(s *discordgo.Session, e *discordgo.GuildRoleDelete) { h.providerRoles.Delete(e.GuildID) })

	if err = h.s.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	if _, err = h.s.ApplicationCommandBulkOverwrite(h.s.State.User.ID, h.cfg.Discord.GuildID, commands); err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	log.Info().Int("commands", len(commands)).Str("guild_id", h.cfg.Discord.GuildID).Msg("commands registered")
	return nil
}

func (h *Handler) Close() error {
	return h.s.Close()
}

func (h *Handler) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Info().Str("user", r.User.Username).Int("guilds", len(r.Guilds)).Msg("discord session ready")
}

func (h *Handler) onInteractionCreate(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	i := ic.Interaction
	ctx := h.ctx(i)
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		f, ok := h.commands[name]
		if !ok {
			log.Ctx(ctx).Warn().Str("cmd", name).Msg("unknown command")
			return
		}
		f(ctx, i)
	case discordgo.InteractionMessageComponent:
		h.onButton(ctx, i)
	}
}
