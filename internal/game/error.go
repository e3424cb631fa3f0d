package game

import (
	"github.com/psucodervn/vouchbot/internal/model"
)

var (
	ErrGameInProgress      = model.NewValidationError("you already have a blackjack game in progress")
	ErrNoActiveGame        = model.NewValidationError("you have no active blackjack game")
	ErrNotGameOwner        = model.NewValidationError("this is not your game")
	ErrInvalidBet          = model.NewValidationError("bet must be at least 1 point")
	ErrInsufficientBalance = model.NewValidationError("you don't have enough points")
	ErrInvalidRouletteBet  = model.NewValidationError("unknown roulette bet")
	ErrInvalidNumber       = model.NewValidationError("number must be between 0 and 36")
	ErrUnknownAction       = model.NewValidationError("unknown action")
)
