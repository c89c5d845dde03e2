// internal/event/event.go
package event

import (
	"github.com/google/uuid"
)

// Type is an enum-like type naming what happened in a match.
type Type string

const (
	TypePlayerAdd       Type = "player_add"
	TypeTokenAssigned   Type = "token_assigned"
	TypeFirstPlayerRoll Type = "first_player_roll"
	TypeCurrentPlayer   Type = "current_player"
	TypeDiceRoll        Type = "dice_roll"
	TypeMove            Type = "move"
	TypeCashChange      Type = "cash_change"
	TypeWaitForRoll     Type = "wait_for_roll"
	TypeWaitForEndTurn  Type = "wait_for_end_turn"
	TypeAskToBuy        Type = "ask_to_buy"
	TypeBuyProperty     Type = "buy_property"
	TypeStartAuction    Type = "start_auction"
	TypeCurrentAuction  Type = "current_auction"
	TypeEndAuction      Type = "end_auction"
	TypeAskForRent      Type = "ask_for_rent"
	TypeDrawCard        Type = "draw_card"
	TypeChargeTax       Type = "charge_tax"
	TypeSendToJail      Type = "send_to_jail"
	TypeJailRelease     Type = "jail_release"
	TypePropertyChange  Type = "property_change"
	TypePropertyStatus  Type = "property_status"
)

// Event is one ordered fact published by a match. Seq increases by one per event within a
// match, starting at 1.
type Event struct {
	ID        uuid.UUID `json:"id"`
	GameID    uuid.UUID `json:"game_id"`
	Seq       int       `json:"seq"`
	Type      Type      `json:"type"`
	Timestamp int64     `json:"timestamp"` // epoch millis
	Payload   any       `json:"payload,omitempty"`
}

// --- Payloads ---

type PlayerAdd struct {
	Players map[string]int `json:"players"` // external id -> uid
}

type TokenAssigned struct {
	PlayerID int `json:"player_id"`
	Token    int `json:"token"`
}

type FirstPlayerRoll struct {
	Rolls [][2]int `json:"rolls"` // indexed by uid
	First int      `json:"first"`
}

type Player struct {
	PlayerID int `json:"player_id"`
}

type DiceRoll struct {
	Dice1 int `json:"dice_1"`
	Dice2 int `json:"dice_2"`
}

type Move struct {
	PlayerID    int `json:"player_id"`
	OldPosition int `json:"old_position"`
	NewPosition int `json:"new_position"`
}

type CashChange struct {
	PlayerID int `json:"player_id"`
	OldCash  int `json:"old_cash"`
	NewCash  int `json:"new_cash"`
}

type AskToBuy struct {
	PlayerID   int `json:"player_id"`
	PropertyID int `json:"property_id"`
	Price      int `json:"price"`
}

type BuyProperty struct {
	PlayerID   int `json:"player_id"`
	PropertyID int `json:"property_id"`
	Price      int `json:"price"`
}

type Auction struct {
	Bidders       []int `json:"bidders"`
	CurrentBidder int   `json:"current_bidder"`
	Price         int   `json:"price"`
	PropertyID    int   `json:"property_id"`
}

type EndAuction struct {
	Winner     int `json:"winner"`
	Price      int `json:"price"`
	PropertyID int `json:"property_id"`
}

type AskForRent struct {
	Payer      int `json:"payer"`
	Payee      int `json:"payee"`
	Rent       int `json:"rent"`
	PropertyID int `json:"property_id"`
}

type DrawCard struct {
	PlayerID    int    `json:"player_id"`
	Deck        string `json:"deck"`
	CardID      int    `json:"card_id"`
	Description string `json:"description"`
	Ownable     bool   `json:"ownable"`
}

type ChargeTax struct {
	PlayerID int    `json:"player_id"`
	Tax      string `json:"tax"`
	Amount   int    `json:"amount"`
}

type JailRelease struct {
	PlayerID int    `json:"player_id"`
	Method   string `json:"method"` // "card", "fine", "doubles"
}

// PropertyState is a snapshot of one property.
type PropertyState struct {
	PropertyID int    `json:"property_id"`
	Name       string `json:"name"`
	Owner      *int   `json:"owner"`
	Mortgaged  bool   `json:"mortgaged"`
	Houses     int    `json:"houses"`
	Hotels     int    `json:"hotels"`
	Rent       int    `json:"rent"`
}

type PropertyStatus struct {
	PlayerID   int             `json:"player_id"`
	Properties []PropertyState `json:"properties"`
}
