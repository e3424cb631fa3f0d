package game

import (
	"sync"
	"time"

	"github.com/psucodervn/vouchbot/internal/model"
)

type CooldownKey struct {
	AccountID string
	Game      model.GameKind
}

// Cooldown remembers when each account last entered each game. It lives only
// in memory.
type Cooldown struct {
	last map[CooldownKey]time.Time
	now  func() time.Time

	mu sync.Mutex
}

func NewCooldown() *Cooldown {
	return &Cooldown{
		last: make(map[CooldownKey]time.Time),
		now:  time.Now,
	}
}

// Remaining returns how long key is still blocked for window. It does not
// record an attempt.
func (c *Cooldown) Remaining(key CooldownKey, window time.Duration) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	last, ok := c.last[key]
	if !ok {
		return 0
	}
	rem := last.Add(window).Sub(c.now())
	if rem < 0 {
		return 0
	}
	return rem
}

// Record stamps a successful entry into a wager.
func (c *Cooldown) Record(key CooldownKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last[key] = c.now()
}
