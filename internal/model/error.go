package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/psucodervn/vouchbot/internal/stringer"
)

var ErrNotFound = errors.New("not found")

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, badgerhold.ErrNotFound)
}

// ValidationError is a rejection shown to the invoking user as is.
type ValidationError struct {
	Msg string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// CooldownError rejects a wager attempted inside the cooldown window.
type CooldownError struct {
	Game      GameKind
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("you are on cooldown for %s, try again in %s", e.Game, stringer.FormatDuration(e.Remaining))
}

func IsValidation(err error) bool {
	var ve *ValidationError
	var ce *CooldownError
	return errors.As(err, &ve) || errors.As(err, &ce)
}
