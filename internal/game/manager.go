package game

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/atomic"

	"github.com/psucodervn/vouchbot/internal/ledger"
	"github.com/psucodervn/vouchbot/internal/model"
	"github.com/psucodervn/vouchbot/pkg/logger"
)

type Options struct {
	BlackjackTimeout  time.Duration
	BlackjackCooldown time.Duration
	RouletteCooldown  time.Duration
	SlotsCooldown     time.Duration
}

// Manager owns every piece of in-memory game state: live blackjack games and
// cooldowns. It is created once per process.
type Manager struct {
	balance  Balance
	rng      Rand
	cooldown *Cooldown
	now      func() time.Time
	newDeck  func() Cards

	blackjackTimeout atomic.Duration
	windows          map[model.GameKind]*atomic.Duration

	games   sync.Map
	wagerMu sync.Map

	mu                     sync.RWMutex
	onBlackjackTimeoutFunc OnBlackjackTimeoutFunc
}

type OnBlackjackTimeoutFunc func(st *BlackjackState)

func NewManager(balance Balance, rng Rand, opts Options) *Manager {
	m := &Manager{
		balance:          balance,
		rng:              rng,
		cooldown:         NewCooldown(),
		now:              time.Now,
		blackjackTimeout: *atomic.NewDuration(opts.BlackjackTimeout),
		windows: map[model.GameKind]*atomic.Duration{
			model.GameBlackjack: atomic.NewDuration(opts.BlackjackCooldown),
			model.GameRoulette:  atomic.NewDuration(opts.RouletteCooldown),
			model.GameSlots:     atomic.NewDuration(opts.SlotsCooldown),
		},
	}
	m.newDeck = func() Cards { return NewDeck(m.rng) }
	return m
}

func (m *Manager) OnBlackjackTimeout(f OnBlackjackTimeoutFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onBlackjackTimeoutFunc = f
}

func (m *Manager) SetCooldown(kind model.GameKind, window time.Duration) {
	if w, ok := m.windows[kind]; ok {
		w.Store(window)
	}
}

func (m *Manager) Cooldown(kind model.GameKind) time.Duration {
	if w, ok := m.windows[kind]; ok {
		return w.Load()
	}
	return 0
}

func (m *Manager) checkCooldown(id string, kind model.GameKind) error {
	if rem := m.cooldown.Remaining(CooldownKey{AccountID: id, Game: kind}, m.Cooldown(kind)); rem > 0 {
		return &model.CooldownError{Game: kind, Remaining: rem}
	}
	return nil
}

func (m *Manager) checkBet(ctx context.Context, id string, bet int64) error {
	if bet < 1 {
		return ErrInvalidBet
	}
	bal, err := m.balance.Balance(ctx, id)
	if err != nil {
		return err
	}
	if bal < bet {
		return ErrInsufficientBalance
	}
	return nil
}

// HasGame reports whether id owns a live blackjack game.
func (m *Manager) HasGame(id string) bool {
	_, ok := m.games.Load(id)
	return ok
}

// StartBlackjack debits bet, deals a new hand and arms the timeout. Any
// failed precondition leaves no trace.
func (m *Manager) StartBlackjack(ctx context.Context, id string, name string, bet int64) (*BlackjackState, error) {
	g := newGame(id, name, bet, m.now())
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, loaded := m.games.LoadOrStore(id, g); loaded {
		return nil, ErrGameInProgress
	}
	started := false
	defer func() {
		if !started {
			g.ended = true
			m.games.CompareAndDelete(id, g)
		}
	}()

	unlock := m.lockWager(id)
	defer unlock()
	if err := m.checkCooldown(id, model.GameBlackjack); err != nil {
		return nil, err
	}
	if err := m.checkBet(ctx, id, bet); err != nil {
		return nil, err
	}
	bal, err := m.balance.ChangeBalance(ctx, id, name, -bet, ledger.Change{
		Reason:   model.ReasonGameBet,
		Game:     model.GameBlackjack,
		Metadata: &model.Metadata{Blackjack: &model.BlackjackDetail{GameID: g.id}},
	})
	if err != nil {
		return nil, err
	}
	m.cooldown.Record(CooldownKey{AccountID: id, Game: model.GameBlackjack})

	g.deal(m.newDeck())
	g.timer = time.AfterFunc(m.blackjackTimeout.Load(), func() {
		m.expireBlackjack(id, g)
	})
	started = true

	log.Ctx(ctx).Info().Str("game_id", g.id).Int64("bet", bet).Str("player", g.player.String()).Msg("blackjack started")
	st := g.state()
	st.Balance = bal
	return st, nil
}

// Act applies a player action to the game owned by ownerID.
func (m *Manager) Act(ctx context.Context, ownerID string, actorID string, action Action) (*BlackjackState, error) {
	if ownerID != actorID {
		return nil, ErrNotGameOwner
	}
	v, ok := m.games.Load(ownerID)
	if !ok {
		return nil, ErrNoActiveGame
	}
	g := v.(*Game)
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.ended {
		return nil, ErrNoActiveGame
	}

	switch action {
	case ActionHit:
		g.player = append(g.player, g.draw())
		if g.player.Value() >= 21 {
			return m.resolve(ctx, g, false, false)
		}
		return g.state(), nil
	case ActionStand:
		return m.resolve(ctx, g, false, false)
	case ActionDouble:
		if err := m.debitDouble(ctx, g); err != nil {
			return nil, err
		}
		g.bet *= 2
		g.player = append(g.player, g.draw())
		return m.resolve(ctx, g, false, false)
	case ActionSurrender:
		return m.resolve(ctx, g, true, false)
	}
	return nil, ErrUnknownAction
}

// debitDouble charges the doubled stake. Balance check and debit run under the
// account's wager lock, like every other bet.
func (m *Manager) debitDouble(ctx context.Context, g *Game) error {
	unlock := m.lockWager(g.ownerID)
	defer unlock()
	if err := m.checkBet(ctx, g.ownerID, g.bet); err != nil {
		return err
	}
	_, err := m.balance.ChangeBalance(ctx, g.ownerID, g.ownerName, -g.bet, ledger.Change{
		Reason:   model.ReasonGameBet,
		Game:     model.GameBlackjack,
		Metadata: &model.Metadata{Blackjack: &model.BlackjackDetail{GameID: g.id, Double: true}},
	})
	return err
}

// resolve settles g exactly once. The caller holds g.mu. Removing the game
// from the live map is the claim: whoever removes it settles it.
func (m *Manager) resolve(ctx context.Context, g *Game, surrender bool, timedOut bool) (*BlackjackState, error) {
	if !m.games.CompareAndDelete(g.ownerID, g) {
		g.ended = true
		return nil, ErrNoActiveGame
	}
	g.ended = true
	if g.timer != nil {
		g.timer.Stop()
	}

	g.playDealer()
	outcome := Settle(g.player, g.dealer, g.natural, surrender)
	payout := BlackjackPayout(outcome, g.bet)

	st := g.state()
	st.Result = &BlackjackResult{
		Outcome:     outcome,
		DealerValue: g.dealer.Value(),
		Payout:      payout,
		Net:         payout - g.bet,
		TimedOut:    timedOut,
	}

	var err error
	if payout > 0 {
		st.Balance, err = m.balance.ChangeBalance(ctx, g.ownerID, g.ownerName, payout, ledger.Change{
			Reason: model.ReasonGamePayout,
			Game:   model.GameBlackjack,
			Metadata: &model.Metadata{Blackjack: &model.BlackjackDetail{
				GameID:      g.id,
				Outcome:     string(outcome),
				PlayerValue: st.PlayerValue,
				DealerValue: st.Result.DealerValue,
				TimedOut:    timedOut,
			}},
		})
	} else {
		st.Balance, err = m.balance.Balance(ctx, g.ownerID)
	}
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Str("game_id", g.id).Str("outcome", string(outcome)).Int64("bet", g.bet).
		Int64("payout", payout).Bool("timed_out", timedOut).Msg("blackjack resolved")
	return st, nil
}

// expireBlackjack forces a stand when the timeout fires on a game that is
// still live.
func (m *Manager) expireBlackjack(id string, g *Game) {
	ctx := logger.NewContext("user_id", id, "game_id", g.id)

	g.mu.Lock()
	if g.ended {
		g.mu.Unlock()
		return
	}
	st, err := m.resolve(ctx, g, false, true)
	g.mu.Unlock()
	if err != nil {
		log.Ctx(ctx).Err(err).Msg("resolve timed out blackjack failed")
		return
	}

	m.mu.RLock()
	f := m.onBlackjackTimeoutFunc
	m.mu.RUnlock()
	if f != nil {
		f(st)
	}
}
