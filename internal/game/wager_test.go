package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psucodervn/vouchbot/internal/model"
)

func newWagerManager(balance int64, rolls ...int) (*Manager, *memBalance) {
	bal := newMemBalance(map[string]int64{player: balance})
	return NewManager(bal, &fakeRand{ints: rolls}, Options{}), bal
}

func TestParseRouletteBet(t *testing.T) {
	tests := []struct {
		kind    string
		number  int
		want    RouletteBet
		wantErr error
	}{
		{kind: "Red", want: RouletteBet{Kind: BetRed}},
		{kind: " odd ", number: 7, want: RouletteBet{Kind: BetOdd}},
		{kind: "number", number: 0, want: RouletteBet{Kind: BetNumber, Number: 0}},
		{kind: "number", number: 36, want: RouletteBet{Kind: BetNumber, Number: 36}},
		{kind: "number", number: 37, wantErr: ErrInvalidNumber},
		{kind: "number", number: -1, wantErr: ErrInvalidNumber},
		{kind: "green", wantErr: ErrInvalidRouletteBet},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			got, err := ParseRouletteBet(tt.kind, tt.number)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseRouletteBet() error = %v, want %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseRouletteBet() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRouletteBet_Wins(t *testing.T) {
	tests := []struct {
		name string
		bet  RouletteBet
		n    int
		want bool
	}{
		{name: "red on red", bet: RouletteBet{Kind: BetRed}, n: 1, want: true},
		{name: "red on black", bet: RouletteBet{Kind: BetRed}, n: 2, want: false},
		{name: "black on black", bet: RouletteBet{Kind: BetBlack}, n: 2, want: true},
		{name: "black on zero", bet: RouletteBet{Kind: BetBlack}, n: 0, want: false},
		{name: "even on zero", bet: RouletteBet{Kind: BetEven}, n: 0, want: false},
		{name: "even on 36", bet: RouletteBet{Kind: BetEven}, n: 36, want: true},
		{name: "odd on 35", bet: RouletteBet{Kind: BetOdd}, n: 35, want: true},
		{name: "low on 18", bet: RouletteBet{Kind: BetLow}, n: 18, want: true},
		{name: "low on zero", bet: RouletteBet{Kind: BetLow}, n: 0, want: false},
		{name: "high on 19", bet: RouletteBet{Kind: BetHigh}, n: 19, want: true},
		{name: "number zero", bet: RouletteBet{Kind: BetNumber, Number: 0}, n: 0, want: true},
		{name: "number miss", bet: RouletteBet{Kind: BetNumber, Number: 17}, n: 18, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bet.Wins(tt.n); got != tt.want {
				t.Errorf("Wins(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestRouletteColor(t *testing.T) {
	assert.Equal(t, "green", RouletteColor(0))
	assert.Equal(t, "red", RouletteColor(32))
	assert.Equal(t, "black", RouletteColor(33))
}

func TestManager_Roulette(t *testing.T) {
	ctx := context.Background()

	t.Run("number pays 35x", func(t *testing.T) {
		m, bal := newWagerManager(100, 17)
		res, err := m.Roulette(ctx, player, "alice", 10, RouletteBet{Kind: BetNumber, Number: 17})
		require.NoError(t, err)
		assert.Equal(t, 17, res.RouletteDrawn)
		assert.Equal(t, int64(350), res.Payout)
		assert.Equal(t, int64(340), res.Net)
		assert.Equal(t, int64(440), res.Balance)
		assert.Equal(t, int64(440), bal.get(player))

		payouts := bal.byReason(model.ReasonGamePayout)
		require.Len(t, payouts, 1)
		assert.Equal(t, model.GameRoulette, payouts[0].c.Game)
		assert.Equal(t, 17, payouts[0].c.Metadata.Roulette.Drawn)
	})

	t.Run("red on black loses", func(t *testing.T) {
		m, bal := newWagerManager(100, 2)
		res, err := m.Roulette(ctx, player, "alice", 10, RouletteBet{Kind: BetRed})
		require.NoError(t, err)
		assert.Equal(t, int64(0), res.Payout)
		assert.Equal(t, int64(-10), res.Net)
		assert.Equal(t, int64(90), bal.get(player))
		assert.Empty(t, bal.byReason(model.ReasonGamePayout))
	})

	t.Run("insufficient balance", func(t *testing.T) {
		m, bal := newWagerManager(5, 2)
		_, err := m.Roulette(ctx, player, "alice", 10, RouletteBet{Kind: BetRed})
		assert.ErrorIs(t, err, ErrInsufficientBalance)
		assert.Empty(t, bal.changes)
	})
}

func TestSlotsMultiplier(t *testing.T) {
	tests := []struct {
		name  string
		reels []string
		want  int64
	}{
		{name: "three of a kind", reels: []string{"💎", "💎", "💎"}, want: 10},
		{name: "pair first two", reels: []string{"🍒", "🍒", "🍋"}, want: 2},
		{name: "pair outer", reels: []string{"🍒", "🍋", "🍒"}, want: 2},
		{name: "no match", reels: []string{"🍒", "🍋", "🍇"}, want: 0},
		{name: "wrong length", reels: []string{"🍒", "🍒"}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SlotsMultiplier(tt.reels); got != tt.want {
				t.Errorf("SlotsMultiplier() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPickSymbol(t *testing.T) {
	tests := []struct {
		roll int
		want string
	}{
		{roll: 0, want: "🍒"},
		{roll: 29, want: "🍒"},
		{roll: 30, want: "🍋"},
		{roll: 55, want: "🍇"},
		{roll: 75, want: "🔔"},
		{roll: 87, want: "⭐"},
		{roll: 95, want: "💎"},
		{roll: 99, want: "💎"},
	}
	for _, tt := range tests {
		if got := pickSymbol(tt.roll); got != tt.want {
			t.Errorf("pickSymbol(%d) = %v, want %v", tt.roll, got, tt.want)
		}
	}
}

func TestManager_Slots(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		rolls  []int
		payout int64
	}{
		{name: "jackpot", rolls: []int{95, 96, 97}, payout: 100},
		{name: "pair", rolls: []int{95, 99, 0}, payout: 20},
		{name: "nothing", rolls: []int{95, 30, 0}, payout: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, bal := newWagerManager(100, tt.rolls...)
			res, err := m.Slots(ctx, player, "alice", 10)
			require.NoError(t, err)
			assert.Len(t, res.Reels, SlotReels)
			assert.Equal(t, tt.payout, res.Payout)
			assert.Equal(t, 90+tt.payout, bal.get(player))
			assert.Equal(t, 90+tt.payout, res.Balance)
		})
	}
}

func TestManager_WagerCooldown(t *testing.T) {
	ctx := context.Background()
	m, bal := newWagerManager(100, 2)
	m.SetCooldown(model.GameRoulette, time.Minute)

	_, err := m.Roulette(ctx, player, "alice", 10, RouletteBet{Kind: BetRed})
	require.NoError(t, err)
	assert.Equal(t, int64(90), bal.get(player))

	_, err = m.Roulette(ctx, player, "alice", 10, RouletteBet{Kind: BetRed})
	var ce *model.CooldownError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, model.GameRoulette, ce.Game)
	assert.Equal(t, int64(90), bal.get(player))
	assert.Len(t, bal.changes, 1)

	// other games keep their own window
	_, err = m.Slots(ctx, player, "alice", 10)
	assert.NoError(t, err)
}

func TestCooldown(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCooldown()
	c.now = func() time.Time { return now }
	key := CooldownKey{AccountID: player, Game: model.GameSlots}

	assert.Equal(t, time.Duration(0), c.Remaining(key, 10*time.Second))
	// checking does not record
	assert.Equal(t, time.Duration(0), c.Remaining(key, 10*time.Second))

	c.Record(key)
	now = now.Add(4 * time.Second)
	assert.Equal(t, 6*time.Second, c.Remaining(key, 10*time.Second))
	assert.Equal(t, time.Duration(0), c.Remaining(key, 0))

	other := CooldownKey{AccountID: player, Game: model.GameRoulette}
	assert.Equal(t, time.Duration(0), c.Remaining(other, 10*time.Second))

	now = now.Add(6 * time.Second)
	assert.Equal(t, time.Duration(0), c.Remaining(key, 10*time.Second))
}
