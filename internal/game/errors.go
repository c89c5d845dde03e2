// internal/game/errors.go
package game

import (
	"errors"
	"fmt"
)

var (
	ErrNotProperty      = errors.New("space is not a property")
	ErrAlreadyOwned     = errors.New("property already owned")
	ErrNotOwned         = errors.New("property has no owner")
	ErrSelfOwned        = errors.New("property owned by the paying player")
	ErrNotOwner         = errors.New("player does not own property")
	ErrAlreadyMortgaged = errors.New("property already mortgaged")
	ErrNotMortgaged     = errors.New("property not mortgaged")
	ErrMortgaged        = errors.New("property is mortgaged")
	ErrBuildingsInSet   = errors.New("property set has houses or hotels")
	ErrNotMonopoly      = errors.New("property set is not a monopoly")
	ErrNotBuildable     = errors.New("property does not take houses")
	ErrUneven           = errors.New("houses must be built and sold evenly")
	ErrHouseLimit       = errors.New("house limit reached")
	ErrHotelLimit       = errors.New("hotel limit reached")
	ErrNoHouses         = errors.New("property has no houses")
	ErrNoHotel          = errors.New("property has no hotel")
	ErrBankSupply       = errors.New("bank has no buildings left")
	ErrAuctionActive    = errors.New("an auction is already running")
	ErrNoAuction        = errors.New("no auction is running")
	ErrNoBidders        = errors.New("auction has no bidders")
	ErrNegativeBid      = errors.New("bid must not be negative")
	ErrDoubleRollOwner  = errors.New("double roll counter belongs to another player")
	ErrNoMovement       = errors.New("either steps or position must be given")
	ErrInvalidPosition  = errors.New("position is off the board")
	ErrUnknownPlayer    = errors.New("unknown player")
	ErrNoJailCard       = errors.New("player holds no jail card")
	ErrNotInJail        = errors.New("player is not in jail")
	ErrEmptyDeck        = errors.New("deck is empty")
	ErrNoDiceRolled     = errors.New("no dice rolled yet")
	ErrNoPlayers        = errors.New("game has no players")
)

// InsufficientCashError is returned when a player cannot cover a payment.
type InsufficientCashError struct {
	PlayerID int
	Current  int
	Required int
}

func (e *InsufficientCashError) Error() string {
	return fmt.Sprintf("player %d has %d but %d is required", e.PlayerID, e.Current, e.Required)
}
