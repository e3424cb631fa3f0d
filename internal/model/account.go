package model

import (
	"time"
)

type (
	// Reason tags why a ledger entry was written.
	Reason string
	// GameKind names the wagering game a ledger entry or cooldown belongs to.
	GameKind string
)

const (
	ReasonAward       Reason = "award"
	ReasonAdminAdjust Reason = "admin-adjust"
	ReasonRecount     Reason = "recount"
	ReasonGameBet     Reason = "game-bet"
	ReasonGamePayout  Reason = "game-payout"
)

const (
	GameNone      GameKind = ""
	GameBlackjack GameKind = "blackjack"
	GameRoulette  GameKind = "roulette"
	GameSlots     GameKind = "slots"
)

type (
	Account struct {
		ID        string `badgerhold:"key"`
		Name      string
		Balance   int64
		UpdatedAt time.Time
	}

	LedgerEntry struct {
		ID        uint64 `badgerhold:"key"`
		AccountID string `badgerhold:"index"`
		Delta     int64
		Reason    Reason
		Game      GameKind
		Metadata  *Metadata
		CreatedAt time.Time
	}

	Setting struct {
		Key   string `badgerhold:"key"`
		Value string
	}
)

// Metadata holds the structured payload of a ledger entry. At most one variant
// is set and it matches the entry's Reason/Game pair.
type Metadata struct {
	Award     *AwardDetail
	Admin     *AdminDetail
	Blackjack *BlackjackDetail
	Roulette  *RouletteDetail
	Slots     *SlotsDetail
}

type AwardDetail struct {
	Multiplier int64
	ChannelID  string
	MessageID  string
}

type AdminDetail struct {
	AdminID string
}

type BlackjackDetail struct {
	GameID      string
	Double      bool
	Outcome     string
	PlayerValue int
	DealerValue int
	TimedOut    bool
}

type RouletteDetail struct {
	BetType string
	Number  int
	Drawn   int
}

type SlotsDetail struct {
	Symbols []string
}

func (g GameKind) String() string {
	if g == GameNone {
		return "none"
	}
	return string(g)
}

// IsWager reports whether the entry moved points in or out of a game.
func (e LedgerEntry) IsWager() bool {
	return e.Game != GameNone
}
