package game

import (
	"context"
	"sync"

	"github.com/psucodervn/vouchbot/internal/ledger"
	"github.com/psucodervn/vouchbot/internal/model"
)

type change struct {
	id    string
	delta int64
	c     ledger.Change
}

type memBalance struct {
	balances map[string]int64
	changes  []change
	// clamped counts debits that exceeded the balance.
	clamped int
	// onBalance runs on every Balance call, outside the lock.
	onBalance func(id string)

	mu sync.Mutex
}

func newMemBalance(balances map[string]int64) *memBalance {
	if balances == nil {
		balances = make(map[string]int64)
	}
	return &memBalance{balances: balances}
}

func (b *memBalance) Balance(ctx context.Context, id string) (int64, error) {
	if b.onBalance != nil {
		b.onBalance(id)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[id], nil
}

func (b *memBalance) ChangeBalance(ctx context.Context, id string, name string, delta int64, c ledger.Change) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	next := b.balances[id] + delta
	if next < 0 {
		next = 0
		b.clamped++
	}
	b.balances[id] = next
	b.changes = append(b.changes, change{id: id, delta: delta, c: c})
	return next, nil
}

func (b *memBalance) clampedDebits() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.clamped
}

func (b *memBalance) get(id string) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[id]
}

func (b *memBalance) byReason(r model.Reason) []change {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []change
	for _, c := range b.changes {
		if c.c.Reason == r {
			out = append(out, c)
		}
	}
	return out
}

// fakeRand replays ints and never shuffles.
type fakeRand struct {
	ints []int
	i    int

	mu sync.Mutex
}

func (f *fakeRand) Intn(n int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.ints) == 0 {
		return 0
	}
	v := f.ints[f.i%len(f.ints)]
	f.i++
	return v % n
}

func (f *fakeRand) Shuffle(n int, swap func(i, j int)) {}

// stackedDeck puts ids on top of an otherwise ordered deck.
func stackedDeck(ids ...int) Cards {
	used := make(map[int]bool)
	deck := NewCards(ids...)
	for _, id := range ids {
		used[id] = true
	}
	for i := 0; i < DeckSize; i++ {
		if !used[i] {
			deck = append(deck, Card{id: i})
		}
	}
	return deck
}
