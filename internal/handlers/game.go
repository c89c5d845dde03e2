// internal/handlers/game.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jason-s-yu/monopoly/internal/auth"
	"github.com/jason-s-yu/monopoly/internal/models"
)

// CreateGameHandler seats the listed players on a new game and returns one seat token per
// player. Clients present their token on /game/ws/{game_id}.
func CreateGameHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req models.CreateGameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad create game payload", http.StatusBadRequest)
			return
		}

		c, seats, err := gs.CreateGame(req.Players, req.Rules)
		if err != nil {
			if !errors.Is(err, ErrPlayerCount) && !errors.Is(err, ErrDuplicatePlayer) {
				gs.Logger.Warnf("create game: %v", err)
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resp := models.CreateGameResponse{GameID: c.ID()}
		for _, userID := range req.Players {
			token, err := auth.CreateSeatToken(userID, c.ID())
			if err != nil {
				gs.Logger.Errorf("sign seat token for game %s: %v", c.ID(), err)
				gs.EndGame(c.ID())
				http.Error(w, "could not issue seat tokens", http.StatusInternalServerError)
				return
			}
			resp.Seats = append(resp.Seats, models.Seat{UserID: userID, UID: seats[userID], Token: token})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

// ListGamesHandler returns the live games, oldest first.
func ListGamesHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		games := []models.GameSummary{}
		for _, c := range gs.Store.List() {
			snap := c.Snapshot()
			games = append(games, models.GameSummary{
				GameID:    c.ID(),
				State:     snap.State,
				Players:   len(snap.Players),
				LastSeq:   snap.Seq,
				CreatedAt: c.CreatedAt,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(games)
	}
}
