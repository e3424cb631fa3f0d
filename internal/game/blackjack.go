package game

import (
	"sync"
	"time"

	"github.com/rs/xid"
)

type Action string

const (
	ActionHit       Action = "hit"
	ActionStand     Action = "stand"
	ActionDouble    Action = "double"
	ActionSurrender Action = "surrender"
)

func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionHit, ActionStand, ActionDouble, ActionSurrender:
		return a, nil
	}
	return "", ErrUnknownAction
}

// Game is one live blackjack hand. The bet is already debited while the game
// is live.
type Game struct {
	id        string
	ownerID   string
	ownerName string
	deck      Cards
	player    Cards
	dealer    Cards
	bet       int64
	natural   bool
	startedAt time.Time
	ended     bool
	timer     *time.Timer

	mu sync.Mutex
}

// BlackjackState is a snapshot of a game for rendering. Result is set once
// the game is resolved.
type BlackjackState struct {
	GameID      string
	OwnerID     string
	Player      Cards
	Dealer      Cards
	PlayerValue int
	Bet         int64
	Balance     int64
	Result      *BlackjackResult
}

type BlackjackResult struct {
	Outcome     Outcome
	DealerValue int
	Payout      int64
	Net         int64
	TimedOut    bool
}

func newGame(ownerID string, ownerName string, bet int64, now time.Time) *Game {
	return &Game{
		id:        xid.New().String(),
		ownerID:   ownerID,
		ownerName: ownerName,
		bet:       bet,
		startedAt: now,
	}
}

func (g *Game) ID() string {
	return g.id
}

// deal gives two cards to the player, then two to the dealer.
func (g *Game) deal(deck Cards) {
	g.deck = deck
	g.player = append(g.player, g.draw(), g.draw())
	g.dealer = append(g.dealer, g.draw(), g.draw())
	g.natural = g.player.IsBlackJack()
}

// draw takes the top card. One player and a dealer stopping at 17 can never
// exhaust a 52-card deck.
func (g *Game) draw() Card {
	c := g.deck[0]
	g.deck = g.deck[1:]
	return c
}

func (g *Game) playDealer() {
	for g.dealer.Value() < DealerStandsOn {
		g.dealer = append(g.dealer, g.draw())
	}
}

func (g *Game) state() *BlackjackState {
	return &BlackjackState{
		GameID:      g.id,
		OwnerID:     g.ownerID,
		Player:      append(Cards(nil), g.player...),
		Dealer:      append(Cards(nil), g.dealer...),
		PlayerValue: g.player.Value(),
		Bet:         g.bet,
	}
}
