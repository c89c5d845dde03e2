// internal/handlers/ws_codes.go
package handlers

// Custom WebSocket close codes used by the game handler.
// These provide more specific reasons for closure than standard codes.
const (
	BadSubprotocolError   = 3000 // Client connected with an unsupported subprotocol.
	InvalidAuthTokenError = 3001 // Seat token was invalid, expired, or for another game.
	InvalidUserIDError    = 3002 // User in the token holds no seat in this game.
	InvalidGameIDError    = 3003 // Target game in the WS URL does not exist or is invalid.
	GameClosedError       = 3004 // The game was removed while the client was connected.
)
