// internal/model/state.go
package model

import (
	"errors"
	"fmt"
)

// State is the turn state machine's position.
type State int

const (
	StateNotStarted State = iota
	StateWaitForRoll
	StateWaitForEndTurn
	StateAskToBuy
	StateAuction
	StateWaitForPayRent
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateWaitForRoll:
		return "wait_for_roll"
	case StateWaitForEndTurn:
		return "wait_for_end_turn"
	case StateAskToBuy:
		return "ask_to_buy"
	case StateAuction:
		return "auction"
	case StateWaitForPayRent:
		return "wait_for_pay_rent"
	default:
		return "unknown"
	}
}

// managementStates are the states in which the current player may mortgage, build or sell.
var managementStates = []State{StateWaitForRoll, StateWaitForEndTurn, StateAskToBuy, StateWaitForPayRent}

var ErrNotEnoughPlayers = errors.New("at least two players are required")

// NotCurrentPlayerError rejects a command from someone other than the player to act.
type NotCurrentPlayerError struct {
	PlayerID        int
	CurrentPlayerID int
}

func (e *NotCurrentPlayerError) Error() string {
	return fmt.Sprintf("player %d is not the current player (%d)", e.PlayerID, e.CurrentPlayerID)
}

// CommandNotMatchingStateError rejects a command issued in the wrong state.
type CommandNotMatchingStateError struct {
	Command string
	State   State
}

func (e *CommandNotMatchingStateError) Error() string {
	return fmt.Sprintf("command %s not allowed in state %s", e.Command, e.State)
}

// requireCurrentPlayer runs first in every player command. Before the game starts there
// is no current player, so the command is rejected on state instead.
func (m *GameModel) requireCurrentPlayer(command string, uid int) error {
	if m.State == StateNotStarted {
		return &CommandNotMatchingStateError{Command: command, State: m.State}
	}
	if uid != m.Game.CurrentPlayer {
		return &NotCurrentPlayerError{PlayerID: uid, CurrentPlayerID: m.Game.CurrentPlayer}
	}
	return nil
}

func (m *GameModel) requireState(command string, allowed ...State) error {
	for _, s := range allowed {
		if m.State == s {
			return nil
		}
	}
	return &CommandNotMatchingStateError{Command: command, State: m.State}
}
