package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/psucodervn/vouchbot/internal/model"
)

// Service is the only writer of balances. Mutations of one account are
// serialized and each one runs as a single storage transaction.
type Service struct {
	store Storage
	now   func() time.Time

	locks sync.Map
}

type Change struct {
	Reason   model.Reason
	Game     model.GameKind
	Metadata *model.Metadata
}

type Standing struct {
	AccountID string
	Name      string
	Points    int64
}

func NewService(store Storage) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

func (s *Service) lock(id string) func() {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Balance returns the balance of id, 0 for unknown accounts.
func (s *Service) Balance(ctx context.Context, id string) (int64, error) {
	a, err := s.store.GetAccount(ctx, id)
	if err != nil {
		if model.IsNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("get account %s: %w", id, err)
	}
	return a.Balance, nil
}

// ChangeBalance applies delta to id clamping the result at zero. The ledger
// entry records the requested delta, not the clamped one.
func (s *Service) ChangeBalance(ctx context.Context, id string, name string, delta int64, c Change) (int64, error) {
	unlock := s.lock(id)
	defer unlock()

	now := s.now()
	entry := &model.LedgerEntry{
		Delta:     delta,
		Reason:    c.Reason,
		Game:      c.Game,
		Metadata:  c.Metadata,
		CreatedAt: now,
	}
	a, err := s.store.UpdateAccount(ctx, id, entry, func(a *model.Account) error {
		if len(name) > 0 {
			a.Name = name
		}
		a.Balance += delta
		if a.Balance < 0 {
			a.Balance = 0
		}
		a.UpdatedAt = now
		return nil
	})
	if err != nil {
		log.Ctx(ctx).Err(err).Str("account_id", id).Int64("delta", delta).Str("reason", string(c.Reason)).Msg("change balance failed")
		return 0, fmt.Errorf("change balance of %s: %w", id, err)
	}
	log.Ctx(ctx).Debug().Str("account_id", id).Int64("delta", delta).Int64("balance", a.Balance).
		Str("reason", string(c.Reason)).Str("game", c.Game.String()).Msg("balance changed")
	return a.Balance, nil
}

// AddPoints credits amount to id on behalf of an administrator.
func (s *Service) AddPoints(ctx context.Context, adminID string, id string, name string, amount int64) (int64, error) {
	if len(id) == 0 {
		return 0, ErrMissingUser
	}
	if amount < 1 {
		return 0, ErrInvalidAmount
	}
	return s.ChangeBalance(ctx, id, name, amount, Change{
		Reason:   model.ReasonAdminAdjust,
		Metadata: &model.Metadata{Admin: &model.AdminDetail{AdminID: adminID}},
	})
}

// RemovePoints debits amount from id, clamping at zero.
func (s *Service) RemovePoints(ctx context.Context, adminID string, id string, name string, amount int64) (int64, error) {
	if len(id) == 0 {
		return 0, ErrMissingUser
	}
	if amount < 1 {
		return 0, ErrInvalidAmount
	}
	return s.ChangeBalance(ctx, id, name, -amount, Change{
		Reason:   model.ReasonAdminAdjust,
		Metadata: &model.Metadata{Admin: &model.AdminDetail{AdminID: adminID}},
	})
}

// Wipe deletes every account. Ledger history is kept.
func (s *Service) Wipe(ctx context.Context) (int, error) {
	n, err := s.store.DeleteAllAccounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("wipe accounts: %w", err)
	}
	log.Ctx(ctx).Info().Int("accounts", n).Msg("accounts wiped")
	return n, nil
}

func (s *Service) History(ctx context.Context, id string, limit int) ([]model.LedgerEntry, error) {
	entries, err := s.store.ListEntries(ctx, id, limit)
	if err != nil {
		return nil, fmt.Errorf("list entries of %s: %w", id, err)
	}
	return entries, nil
}

// TopBalances lists the accounts holding the most points.
func (s *Service) TopBalances(ctx context.Context, limit int, lookup NameLookup) ([]Standing, error) {
	accounts, err := s.store.TopAccounts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("top accounts: %w", err)
	}
	out := make([]Standing, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, Standing{AccountID: a.ID, Name: a.Name, Points: a.Balance})
	}
	s.backfillNames(ctx, out, lookup)
	return out, nil
}

// TopGamblers lists accounts by net result over all wagers.
func (s *Service) TopGamblers(ctx context.Context, limit int, lookup NameLookup) ([]Standing, error) {
	sums, err := s.store.SumWagers(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum wagers: %w", err)
	}
	out := make([]Standing, 0, len(sums))
	for id, net := range sums {
		st := Standing{AccountID: id, Points: net}
		if a, err := s.store.GetAccount(ctx, id); err == nil {
			st.Name = a.Name
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].AccountID < out[j].AccountID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	s.backfillNames(ctx, out, lookup)
	return out, nil
}

func (s *Service) backfillNames(ctx context.Context, standings []Standing, lookup NameLookup) {
	if lookup == nil {
		return
	}
	for i := range standings {
		if len(standings[i].Name) > 0 {
			continue
		}
		name, err := lookup(ctx, standings[i].AccountID)
		if err != nil {
			log.Ctx(ctx).Debug().Err(err).Str("account_id", standings[i].AccountID).Msg("lookup name failed")
			continue
		}
		standings[i].Name = name
	}
}
