// internal/controller/errors.go
package controller

import (
	"errors"

	"github.com/jason-s-yu/monopoly/internal/game"
	"github.com/jason-s-yu/monopoly/internal/model"
)

// ErrInvalidCommand wraps malformed or unknown commands.
var ErrInvalidCommand = errors.New("invalid command")

// Error codes sent to clients in error frames.
const (
	CodeNotCurrentPlayer = "not_current_player"
	CodeInvalidState     = "invalid_state"
	CodeInsufficientCash = "insufficient_cash"
	CodeInvalidCommand   = "invalid_command"
	CodeNotSeated        = "not_seated"
	CodeRuleViolation    = "rule_violation"
)

// ErrorCode classifies a Dispatch error for the wire.
func ErrorCode(err error) string {
	var notCurrent *model.NotCurrentPlayerError
	var badState *model.CommandNotMatchingStateError
	var noCash *game.InsufficientCashError
	switch {
	case errors.As(err, &notCurrent):
		return CodeNotCurrentPlayer
	case errors.As(err, &badState), errors.Is(err, model.ErrNotEnoughPlayers):
		return CodeInvalidState
	case errors.As(err, &noCash):
		return CodeInsufficientCash
	case errors.Is(err, ErrNotSeated):
		return CodeNotSeated
	case errors.Is(err, ErrInvalidCommand):
		return CodeInvalidCommand
	default:
		return CodeRuleViolation
	}
}
