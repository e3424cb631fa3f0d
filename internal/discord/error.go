package discord

import (
	"github.com/psucodervn/vouchbot/internal/model"
)

var (
	ErrNotAdmin       = model.NewValidationError("you need administrator permission for this command")
	ErrNotInGuild     = model.NewValidationError("this command only works inside a server")
	ErrWrongChannel   = model.NewValidationError("games can't be played in this channel")
	ErrUnknownButton  = model.NewValidationError("this button is no longer valid")
	ErrMissingOption  = model.NewValidationError("a required option is missing")
	ErrRecountRunning = model.NewValidationError("a recount is already running")
	ErrNoVouchChannel = model.NewValidationError("no vouch channels are configured")
)

const genericFailure = "Something went wrong, please try again later."
