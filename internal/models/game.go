// internal/models/game.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// CreateGameRequest is the body of POST /game/create.
type CreateGameRequest struct {
	Players []uuid.UUID            `json:"players"`
	Rules   map[string]interface{} `json:"rules,omitempty"`
}

// Seat is one player's place in a created game.
type Seat struct {
	UserID uuid.UUID `json:"user_id"`
	UID    int       `json:"uid"`
	Token  string    `json:"token"` // signed seat token for the websocket
}

// CreateGameResponse is returned by POST /game/create.
type CreateGameResponse struct {
	GameID uuid.UUID `json:"game_id"`
	Seats  []Seat    `json:"seats"`
}

// ErrorFrame is sent to a client whose command was rejected.
type ErrorFrame struct {
	Type    string `json:"type"` // always "error"
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GameSummary is one row of GET /game/list.
type GameSummary struct {
	GameID    uuid.UUID `json:"game_id"`
	State     string    `json:"state"`
	Players   int       `json:"players"`
	LastSeq   int       `json:"last_seq"`
	CreatedAt time.Time `json:"created_at"`
}
