package bot

import (
	"context"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/psucodervn/vouchbot/internal/config"
	"github.com/psucodervn/vouchbot/internal/discord"
	"github.com/psucodervn/vouchbot/internal/game"
	"github.com/psucodervn/vouchbot/internal/ledger"
	"github.com/psucodervn/vouchbot/internal/multiplier"
	"github.com/psucodervn/vouchbot/internal/storage"
	"github.com/psucodervn/vouchbot/internal/vouch"
)

func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bot",
		Short: "run the discord bot",
		Run:   run,
	}
	return cmd
}

func run(cmd *cobra.Command, args []string) {
	cfg := config.MustReadBotConfig()

	if len(cfg.PprofAddress) > 0 {
		go func() {
			log.Err(http.ListenAndServe(cfg.PprofAddress, nil)).Send()
		}()
	}

	session, err := discordgo.New("Bot " + cfg.Discord.BotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create discord session")
	}

	store, err := storage.NewBadgerHoldStorage(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}

	ledgerSvc := ledger.NewService(store)
	mult := multiplier.NewManager(store, discord.NewAnnouncer(session))
	vouchSvc := vouch.NewService(ledgerSvc, mult)
	manager := game.NewManager(ledgerSvc, game.NewRand(time.Now().UnixNano()), game.Options{
		BlackjackTimeout:  cfg.Blackjack.Timeout,
		BlackjackCooldown: cfg.Blackjack.Cooldown,
		RouletteCooldown:  cfg.Roulette.Cooldown,
		SlotsCooldown:     cfg.Slots.Cooldown,
	})

	bh := discord.NewHandler(session, cfg, ledgerSvc, vouchSvc, mult, manager)
	if err := bh.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start bot handler")
	}

	// the reversion timer lives in memory, so it is rebuilt from storage on boot
	if err := mult.ScheduleReversionIfNeeded(context.Background()); err != nil {
		log.Err(err).Msg("failed to schedule multiplier reversion")
	}
	log.Info().Msg("bot started")

	// listen to interrupt signal i.e Ctrl+C
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	<-ch

	log.Info().Msg("shutting down bot")
	mult.Stop()
	if err := bh.Close(); err != nil {
		log.Err(err).Msg("failed to close discord session")
	}
	if err := store.Close(); err != nil {
		log.Err(err).Msg("failed to close storage")
	}
}
