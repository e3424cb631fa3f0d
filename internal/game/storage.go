package game

import (
	"context"

	"github.com/psucodervn/vouchbot/internal/ledger"
)

// Balance is the subset of the balance service the games need.
type Balance interface {
	Balance(ctx context.Context, id string) (int64, error)
	ChangeBalance(ctx context.Context, id string, name string, delta int64, c ledger.Change) (int64, error)
}
