package game

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/psucodervn/vouchbot/internal/ledger"
	"github.com/psucodervn/vouchbot/internal/model"
)

// WagerResult reports a single-shot game. Net is payout minus bet.
type WagerResult struct {
	Game    model.GameKind
	Bet     int64
	Payout  int64
	Net     int64
	Balance int64

	RouletteBet   RouletteBet
	RouletteDrawn int
	Reels         []string
}

func (m *Manager) lockWager(id string) func() {
	v, _ := m.wagerMu.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// wager runs the shared shape of a single-shot game: validate, debit, draw,
// credit. spin fills the outcome fields of the result and returns the payout.
func (m *Manager) wager(ctx context.Context, kind model.GameKind, id string, name string, bet int64,
	spin func(res *WagerResult) (int64, *model.Metadata)) (*WagerResult, error) {
	unlock := m.lockWager(id)
	defer unlock()

	if err := m.checkCooldown(id, kind); err != nil {
		return nil, err
	}
	if err := m.checkBet(ctx, id, bet); err != nil {
		return nil, err
	}
	bal, err := m.balance.ChangeBalance(ctx, id, name, -bet, ledger.Change{Reason: model.ReasonGameBet, Game: kind})
	if err != nil {
		return nil, err
	}
	m.cooldown.Record(CooldownKey{AccountID: id, Game: kind})

	res := &WagerResult{Game: kind, Bet: bet, Balance: bal}
	payout, meta := spin(res)
	res.Payout = payout
	res.Net = payout - bet
	if payout > 0 {
		res.Balance, err = m.balance.ChangeBalance(ctx, id, name, payout, ledger.Change{
			Reason:   model.ReasonGamePayout,
			Game:     kind,
			Metadata: meta,
		})
		if err != nil {
			return nil, err
		}
	}
	log.Ctx(ctx).Info().Str("game", string(kind)).Int64("bet", bet).Int64("payout", payout).Msg("wager resolved")
	return res, nil
}

func (m *Manager) Roulette(ctx context.Context, id string, name string, bet int64, rb RouletteBet) (*WagerResult, error) {
	return m.wager(ctx, model.GameRoulette, id, name, bet, func(res *WagerResult) (int64, *model.Metadata) {
		n := m.rng.Intn(RouletteMaxNumber + 1)
		res.RouletteBet = rb
		res.RouletteDrawn = n
		return rb.Payout(n, bet), &model.Metadata{Roulette: &model.RouletteDetail{
			BetType: string(rb.Kind),
			Number:  rb.Number,
			Drawn:   n,
		}}
	})
}

func (m *Manager) Slots(ctx context.Context, id string, name string, bet int64) (*WagerResult, error) {
	return m.wager(ctx, model.GameSlots, id, name, bet, func(res *WagerResult) (int64, *model.Metadata) {
		res.Reels = spinReels(m.rng)
		return SlotsMultiplier(res.Reels) * bet, &model.Metadata{Slots: &model.SlotsDetail{Symbols: res.Reels}}
	})
}
