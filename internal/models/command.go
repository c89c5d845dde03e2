// internal/models/command.go
package models

import (
	"fmt"
)

// CommandType names a player intent sent over the wire.
type CommandType string

const (
	CommandAddPlayers     CommandType = "add_players"
	CommandAssignToken    CommandType = "assign_token"
	CommandStartGame      CommandType = "start_game"
	CommandRoll           CommandType = "roll"
	CommandBuy            CommandType = "buy"
	CommandAuction        CommandType = "auction"
	CommandBid            CommandType = "bid"
	CommandPay            CommandType = "pay"
	CommandEndTurn        CommandType = "end_turn"
	CommandMortgage       CommandType = "mortgage"
	CommandUnmortgage     CommandType = "unmortgage"
	CommandAddHouse       CommandType = "add_house"
	CommandSellHouse      CommandType = "sell_house"
	CommandPropertyStatus CommandType = "property_status"
	CommandUseJailCard    CommandType = "use_jail_card"
	CommandPayJailFine    CommandType = "pay_jail_fine"
)

// Command captures a player's in-game move.
type Command struct {
	Type     CommandType `json:"type"`
	Property *int        `json:"property,omitempty"` // board position of the property
	Amount   *int        `json:"amount,omitempty"`   // bid increment; 0 passes
	Token    *int        `json:"token,omitempty"`
}

// Validate checks that the arguments a command type needs are present.
func (c Command) Validate() error {
	switch c.Type {
	case CommandMortgage, CommandUnmortgage, CommandAddHouse, CommandSellHouse:
		if c.Property == nil {
			return fmt.Errorf("%s requires property", c.Type)
		}
	case CommandBid:
		if c.Amount == nil {
			return fmt.Errorf("bid requires amount")
		}
		if *c.Amount < 0 {
			return fmt.Errorf("bid amount must not be negative")
		}
	case CommandAssignToken:
		if c.Token == nil {
			return fmt.Errorf("assign_token requires token")
		}
	case CommandRoll, CommandBuy, CommandAuction, CommandPay, CommandEndTurn,
		CommandPropertyStatus, CommandUseJailCard, CommandPayJailFine, CommandStartGame:
	case CommandAddPlayers:
		return fmt.Errorf("players are seated when the game is created")
	default:
		return fmt.Errorf("unknown command type %q", c.Type)
	}
	return nil
}
