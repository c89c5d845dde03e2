// internal/game/player.go
package game

// Player is one seat at the table. UID is the index into Game.Players.
type Player struct {
	UID        int    `json:"uid"`
	Name       string `json:"name"`
	Cash       int    `json:"cash"`
	Position   int    `json:"position"`
	Token      int    `json:"token"`
	Properties []int  `json:"properties"` // board positions
	JailCards  []Card `json:"jail_cards"`
	JailTurns  *int   `json:"jail_turns,omitempty"` // nil when not in jail
}

// InJail reports whether the player is serving a jail term.
func (p *Player) InJail() bool {
	return p.JailTurns != nil
}

func (p *Player) addProperty(pos int) {
	for _, owned := range p.Properties {
		if owned == pos {
			return
		}
	}
	p.Properties = append(p.Properties, pos)
}

// Owns reports whether pos is in the player's property list.
func (p *Player) Owns(pos int) bool {
	for _, owned := range p.Properties {
		if owned == pos {
			return true
		}
	}
	return false
}
