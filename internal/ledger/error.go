package ledger

import (
	"github.com/psucodervn/vouchbot/internal/model"
)

var (
	ErrInvalidAmount = model.NewValidationError("amount must be a positive number")
	ErrMissingUser   = model.NewValidationError("no user given")
)
