// internal/handlers/game_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/jason-s-yu/monopoly/internal/auth"
	"github.com/jason-s-yu/monopoly/internal/controller"
	"github.com/jason-s-yu/monopoly/internal/middleware"
	"github.com/jason-s-yu/monopoly/internal/model"
	"github.com/jason-s-yu/monopoly/internal/models"
	log "github.com/sirupsen/logrus"
)

// SnapshotFrame is the first frame sent on a connection. Events with Seq at or below
// Snapshot.Seq that arrive afterwards are already reflected in it.
type SnapshotFrame struct {
	Type     string         `json:"type"` // always "snapshot"
	UID      int            `json:"uid"`
	Snapshot model.Snapshot `json:"snapshot"`
}

// GameWSHandler upgrades the HTTP connection to WebSocket for a specific game. The seat
// token comes from the token query parameter or the auth_token cookie.
func GameWSHandler(logger *log.Logger, gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Extract Game ID from URL path: /game/ws/{game_id}
		gameIDStr := strings.Trim(strings.TrimPrefix(r.URL.Path, "/game/ws/"), "/")
		if gameIDStr == "" {
			http.Error(w, "Missing game_id in path (/game/ws/{game_id})", http.StatusBadRequest)
			return
		}
		gameID, err := uuid.Parse(gameIDStr)
		if err != nil {
			http.Error(w, "Invalid game_id format", http.StatusBadRequest)
			return
		}

		c, hub, ok := gs.Game(gameID)
		if !ok {
			http.Error(w, "Game not found", http.StatusNotFound)
			return
		}

		token := r.URL.Query().Get("token")
		if token == "" {
			token = extractCookieToken(r.Header.Get("Cookie"), "auth_token")
		}
		if token == "" {
			http.Error(w, "missing seat token", http.StatusUnauthorized)
			return
		}
		userID, tokenGame, err := auth.AuthenticateSeatToken(token)
		if err != nil || tokenGame != gameID {
			http.Error(w, "invalid seat token", http.StatusForbidden)
			return
		}
		uid, seated := c.UID(userID)
		if !seated {
			http.Error(w, "You are not a player in this game.", http.StatusForbidden)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"game"},
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			logger.Warnf("WebSocket accept error for game %s: %v", gameID, err)
			return
		}
		defer conn.Close(websocket.StatusInternalError, "Internal server error during handler exit.")

		if conn.Subprotocol() != "game" {
			logger.Warnf("Client for game %s connected with invalid subprotocol: %s", gameID, conn.Subprotocol())
			conn.Close(BadSubprotocolError, "Client must use the 'game' subprotocol.")
			return
		}
		middleware.LogWebSocketConnect(logger, r.RemoteAddr, gameID, uid)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		hub.Add(conn, uid)
		defer hub.Remove(conn)
		sendWsMessage(ctx, conn, SnapshotFrame{Type: "snapshot", UID: uid, Snapshot: c.Snapshot()})

		err = readGameMessages(ctx, conn, c, userID, logger)
		middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, gameID, uid, err)
	}
}

// readGameMessages reads commands until the connection closes or ctx ends. Rejections
// go back to the sender as error frames; everything else reaches clients as events.
func readGameMessages(ctx context.Context, c *websocket.Conn, ctrl *controller.Controller, userID uuid.UUID, logger *log.Logger) error {
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		if msgType != websocket.MessageText {
			logger.Warnf("Received non-text message type %d from user %s in game %s. Ignoring.", msgType, userID, ctrl.ID())
			continue
		}

		var cmd models.Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			sendWsError(ctx, c, controller.CodeInvalidCommand, "Invalid JSON format.")
			continue
		}
		if cmd.Type == "ping" {
			sendWsMessage(ctx, c, map[string]string{"type": "pong"})
			continue
		}

		logger.Debugf("Received command '%s' from user %s in game %s.", cmd.Type, userID, ctrl.ID())
		if err := ctrl.Dispatch(ctx, userID, cmd); err != nil {
			sendWsError(ctx, c, controller.ErrorCode(err), err.Error())
		}
	}
}

// sendWsMessage marshals a message and sends it to the WebSocket client with a write timeout.
func sendWsMessage(ctx context.Context, c *websocket.Conn, message interface{}) {
	msgBytes, err := json.Marshal(message)
	if err != nil {
		log.Errorf("Error marshaling WebSocket message: %v", err)
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := c.Write(writeCtx, websocket.MessageText, msgBytes); err != nil {
		status := websocket.CloseStatus(err)
		if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
			log.Warnf("Error writing WebSocket message: %v (Status: %d)", err, status)
		}
	}
}

// sendWsError sends a structured error frame to the client.
func sendWsError(ctx context.Context, c *websocket.Conn, code, message string) {
	sendWsMessage(ctx, c, models.ErrorFrame{
		Type:    "error",
		Code:    code,
		Message: message,
	})
}
