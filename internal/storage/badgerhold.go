package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/timshannon/badgerhold/v4"

	"github.com/psucodervn/vouchbot/internal/model"
)

type BadgerHoldStorage struct {
	store *badgerhold.Store
}

func NewBadgerHoldStorage(dir string) (*BadgerHoldStorage, error) {
	opts := badgerhold.DefaultOptions
	opts.Dir = dir
	opts.ValueDir = dir
	opts.NumVersionsToKeep = 1
	opts.Logger = nil
	store, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badgerhold at %s: %w", dir, err)
	}

	return &BadgerHoldStorage{
		store: store,
	}, nil
}

func (b *BadgerHoldStorage) Close() error {
	return b.store.Close()
}

func (b *BadgerHoldStorage) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	var a model.Account
	if err := b.store.Get(id, &a); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// UpdateAccount runs fn against the current account row (a zero row keyed by id
// when absent), upserts the result and appends entry, all in one transaction.
func (b *BadgerHoldStorage) UpdateAccount(ctx context.Context, id string, entry *model.LedgerEntry, fn func(a *model.Account) error) (*model.Account, error) {
	var acc model.Account
	err := b.store.Badger().Update(func(tx *badger.Txn) error {
		acc = model.Account{}
		err := b.store.TxGet(tx, id, &acc)
		if errors.Is(err, badgerhold.ErrNotFound) {
			acc = model.Account{ID: id}
		} else if err != nil {
			return err
		}

		if err := fn(&acc); err != nil {
			return err
		}
		if err := b.store.TxUpsert(tx, id, &acc); err != nil {
			return err
		}
		if entry == nil {
			return nil
		}
		entry.AccountID = id
		return b.store.TxInsert(tx, badgerhold.NextSequence(), entry)
	})
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (b *BadgerHoldStorage) ListAccounts(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	q := &badgerhold.Query{}
	err := b.store.Find(&accounts, q)
	return accounts, err
}

func (b *BadgerHoldStorage) TopAccounts(ctx context.Context, limit int) ([]model.Account, error) {
	var accounts []model.Account
	q := &badgerhold.Query{}
	err := b.store.Find(&accounts, q.SortBy("Balance").Reverse().Limit(limit))
	return accounts, err
}

func (b *BadgerHoldStorage) DeleteAllAccounts(ctx context.Context) (int, error) {
	accounts, err := b.ListAccounts(ctx)
	if err != nil {
		return 0, err
	}
	if len(accounts) == 0 {
		return 0, nil
	}
	if err := b.store.DeleteMatching(&model.Account{}, &badgerhold.Query{}); err != nil {
		return 0, err
	}
	return len(accounts), nil
}

// ListEntries returns the newest ledger entries of an account first.
func (b *BadgerHoldStorage) ListEntries(ctx context.Context, accountID string, limit int) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	err := b.store.Find(&entries, badgerhold.Where("AccountID").Eq(accountID).Index("AccountID"))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// SumWagers groups every game ledger entry by account and sums the deltas.
func (b *BadgerHoldStorage) SumWagers(ctx context.Context) (map[string]int64, error) {
	results, err := b.store.FindAggregate(&model.LedgerEntry{}, badgerhold.Where("Game").Ne(model.GameNone), "AccountID")
	if err != nil {
		return nil, err
	}
	sums := make(map[string]int64, len(results))
	for _, r := range results {
		var accountID string
		r.Group(&accountID)
		sums[accountID] = int64(r.Sum("Delta"))
	}
	return sums, nil
}

func (b *BadgerHoldStorage) GetSetting(ctx context.Context, key string) (string, error) {
	var s model.Setting
	if err := b.store.Get(key, &s); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return "", model.ErrNotFound
		}
		return "", err
	}
	return s.Value, nil
}

func (b *BadgerHoldStorage) SetSetting(ctx context.Context, key string, value string) error {
	return b.store.Upsert(key, &model.Setting{Key: key, Value: value})
}

func (b *BadgerHoldStorage) DeleteSetting(ctx context.Context, key string) error {
	err := b.store.Delete(key, &model.Setting{})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil
	}
	return err
}
