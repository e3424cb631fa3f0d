package ledger

import (
	"context"

	"github.com/psucodervn/vouchbot/internal/model"
)

type Storage interface {
	GetAccount(ctx context.Context, id string) (*model.Account, error)
	UpdateAccount(ctx context.Context, id string, entry *model.LedgerEntry, fn func(a *model.Account) error) (*model.Account, error)
	ListAccounts(ctx context.Context) ([]model.Account, error)
	TopAccounts(ctx context.Context, limit int) ([]model.Account, error)
	DeleteAllAccounts(ctx context.Context) (int, error)
	ListEntries(ctx context.Context, accountID string, limit int) ([]model.LedgerEntry, error)
	SumWagers(ctx context.Context) (map[string]int64, error)
}

// NameLookup resolves a display name for an account id.
type NameLookup func(ctx context.Context, id string) (string, error)
