// internal/model/snapshot.go
package model

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/monopoly/internal/event"
)

// PlayerSnapshot is one player's public state.
type PlayerSnapshot struct {
	UID       int    `json:"uid"`
	Name      string `json:"name"`
	Cash      int    `json:"cash"`
	Position  int    `json:"position"`
	Token     int    `json:"token"`
	InJail    bool   `json:"in_jail"`
	JailCards int    `json:"jail_cards"`
	IsCurrent bool   `json:"is_current"`
}

// Snapshot is sent to a client on (re)connect so it can rebuild the table without replaying
// the whole event stream.
type Snapshot struct {
	GameID        uuid.UUID             `json:"game_id"`
	State         string                `json:"state"`
	Seq           int                   `json:"seq"`
	CurrentPlayer int                   `json:"current_player"`
	LastDice      *[2]int               `json:"last_dice,omitempty"`
	HousesLeft    int                   `json:"houses_left"`
	HotelsLeft    int                   `json:"hotels_left"`
	Players       []PlayerSnapshot      `json:"players"`
	Properties    []event.PropertyState `json:"properties"`
	Auction       *event.Auction        `json:"auction,omitempty"`
	RentDue       *event.AskForRent     `json:"rent_due,omitempty"`
}

// Snapshot captures the match as of the last emitted event.
func (m *GameModel) Snapshot() Snapshot {
	g := m.Game
	snap := Snapshot{
		GameID:        m.ID,
		State:         m.State.String(),
		Seq:           m.seq,
		CurrentPlayer: g.CurrentPlayer,
		HousesLeft:    g.Map.HousesLeft,
		HotelsLeft:    g.Map.HotelsLeft,
	}
	if g.LastDiceRolls != nil {
		d := *g.LastDiceRolls
		snap.LastDice = &d
	}

	for _, p := range g.Players {
		snap.Players = append(snap.Players, PlayerSnapshot{
			UID:       p.UID,
			Name:      p.Name,
			Cash:      p.Cash,
			Position:  p.Position,
			Token:     p.Token,
			InJail:    p.InJail(),
			JailCards: len(p.JailCards),
			IsCurrent: m.State != StateNotStarted && p.UID == g.CurrentPlayer,
		})
	}

	for pos := 0; pos < g.Map.Size(); pos++ {
		if _, err := g.Map.Ownable(pos); err != nil {
			continue
		}
		snap.Properties = append(snap.Properties, m.propertyState(pos))
	}

	if a, ok := g.Auction(); ok {
		p := auctionPayload(a)
		snap.Auction = &p
	}
	if r := m.rent; r != nil {
		snap.RentDue = &event.AskForRent{Payer: r.payer, Payee: r.payee, Rent: r.amount, PropertyID: r.property}
	}
	return snap
}
