package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/psucodervn/vouchbot/internal/game"
	"github.com/psucodervn/vouchbot/internal/ledger"
	"github.com/psucodervn/vouchbot/internal/model"
	"github.com/psucodervn/vouchbot/internal/multiplier"
	"github.com/psucodervn/vouchbot/internal/stringer"
)

const (
	colorInfo = 0x5865F2
	colorWin  = 0x57F287
	colorPush = 0xFEE75C
	colorLose = 0xED4245
)

var outcomeTexts = map[game.Outcome]string{
	game.OutcomeWin:       "You win!",
	game.OutcomeBlackjack: "Blackjack!",
	game.OutcomePush:      "Push, your bet is returned.",
	game.OutcomeSurrender: "You surrendered half of your bet.",
	game.OutcomeBust:      "Bust!",
	game.OutcomeLose:      "Dealer wins.",
}

func netColor(net int64) int {
	switch {
	case net > 0:
		return colorWin
	case net == 0:
		return colorPush
	}
	return colorLose
}

func BlackjackEmbed(st *game.BlackjackState, name string) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title: "🃏 Blackjack",
		Color: colorInfo,
	}
	if len(name) > 0 {
		e.Title += " · " + name
	}

	dealer := st.Dealer.Censored()
	if st.Result != nil {
		dealer = fmt.Sprintf("%s (%d)", st.Dealer.String(), st.Result.DealerValue)
	}
	e.Fields = []*discordgo.MessageEmbedField{
		{Name: "Your hand", Value: fmt.Sprintf("%s (%d)", st.Player.String(), st.PlayerValue), Inline: true},
		{Name: "Dealer", Value: dealer, Inline: true},
		{Name: "Bet", Value: stringer.FormatPoints(st.Bet), Inline: false},
	}
	if st.Result == nil {
		e.Description = "Hit, stand, double or surrender."
		return e
	}

	e.Description = outcomeTexts[st.Result.Outcome]
	e.Color = netColor(st.Result.Net)
	e.Fields = append(e.Fields,
		&discordgo.MessageEmbedField{Name: "Payout", Value: stringer.FormatPoints(st.Result.Payout), Inline: true},
		&discordgo.MessageEmbedField{Name: "Net", Value: stringer.FormatSigned(st.Result.Net), Inline: true},
		&discordgo.MessageEmbedField{Name: "Balance", Value: stringer.FormatPoints(st.Balance), Inline: true},
	)
	if st.Result.TimedOut {
		e.Footer = &discordgo.MessageEmbedFooter{Text: "Timed out, the hand was stood automatically."}
	}
	return e
}

func WagerEmbed(res *game.WagerResult) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{Color: netColor(res.Net)}
	switch res.Game {
	case model.GameRoulette:
		e.Title = "🎡 Roulette"
		e.Description = fmt.Sprintf("The ball lands on **%d %s**. You bet on %s.",
			res.RouletteDrawn, game.RouletteColor(res.RouletteDrawn), res.RouletteBet.String())
	case model.GameSlots:
		e.Title = "🎰 Slots"
		e.Description = "**" + strings.Join(res.Reels, " | ") + "**"
	}
	e.Fields = []*discordgo.MessageEmbedField{
		{Name: "Bet", Value: stringer.FormatPoints(res.Bet), Inline: true},
		{Name: "Payout", Value: stringer.FormatPoints(res.Payout), Inline: true},
		{Name: "Net", Value: stringer.FormatSigned(res.Net), Inline: true},
		{Name: "Balance", Value: stringer.FormatPoints(res.Balance), Inline: false},
	}
	return e
}

// StandingsEmbed renders a leaderboard. unit follows each value.
func StandingsEmbed(title string, standings []ledger.Standing, unit string, signed bool) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{Title: title, Color: colorInfo}
	if len(standings) == 0 {
		e.Description = "Nobody here yet."
		return e
	}
	lines := make([]string, len(standings))
	for i, st := range standings {
		name := st.Name
		if len(name) == 0 {
			name = mention(st.AccountID)
		}
		v := stringer.FormatPoints(st.Points)
		if signed {
			v = stringer.FormatSigned(st.Points)
		}
		lines[i] = fmt.Sprintf("%d. **%s**: %s %s", i+1, name, v, unit)
	}
	e.Description = strings.Join(lines, "\n")
	return e
}

func MultiplierEmbed(st multiplier.State) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       "Points multiplier",
		Description: "Vouches currently award **" + stringer.FormatMultiplier(st.Value) + "** points.",
		Color:       colorInfo,
	}
	expiry := "never"
	if st.ExpiresAt != nil {
		expiry = fmt.Sprintf("<t:%d:R>", st.ExpiresAt.Unix())
	}
	e.Fields = append(e.Fields, &discordgo.MessageEmbedField{Name: "Expires", Value: expiry, Inline: true})
	if len(st.AnnounceChannel) > 0 {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{Name: "Announcements", Value: channelMention(st.AnnounceChannel), Inline: true})
	}
	return e
}

var reasonTexts = map[model.Reason]string{
	model.ReasonAward:       "vouch",
	model.ReasonAdminAdjust: "admin",
	model.ReasonRecount:     "recount",
	model.ReasonGameBet:     "bet",
	model.ReasonGamePayout:  "payout",
}

// HistoryEntryLine renders one ledger entry as a single line.
func HistoryEntryLine(e model.LedgerEntry) string {
	what := reasonTexts[e.Reason]
	if len(what) == 0 {
		what = string(e.Reason)
	}
	if e.IsWager() {
		what = e.Game.String() + " " + what
	}
	if e.Metadata != nil && e.Metadata.Award != nil && e.Metadata.Award.Multiplier > 1 {
		what += " " + stringer.FormatMultiplier(e.Metadata.Award.Multiplier)
	}
	return fmt.Sprintf("<t:%d:R> **%s** %s", e.CreatedAt.Unix(), stringer.FormatSigned(e.Delta), what)
}

func HistoryEmbed(name string, entries []model.LedgerEntry) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{Title: "📜 Point history", Color: colorInfo}
	if len(name) > 0 {
		e.Title += " · " + name
	}
	if len(entries) == 0 {
		e.Description = "No point changes yet."
		return e
	}
	lines := make([]string, len(entries))
	for i, en := range entries {
		lines[i] = HistoryEntryLine(en)
	}
	e.Description = strings.Join(lines, "\n")
	return e
}
