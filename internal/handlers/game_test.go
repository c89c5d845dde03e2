// internal/handlers/game_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/jason-s-yu/monopoly/internal/auth"
	"github.com/jason-s-yu/monopoly/internal/game"
	"github.com/jason-s-yu/monopoly/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) (*GameServer, *httptest.Server) {
	t.Helper()
	require.NoError(t, auth.Init(0)) // ephemeral keys, no DB needed
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	gs := NewGameServer(game.DefaultHouseRules(), logger)
	gs.NewDice = func() game.DiceRoller { return game.NewScriptedDice(6, 6, 1, 1, 1, 2) }

	mux := http.NewServeMux()
	mux.Handle("/game/create", CreateGameHandler(gs))
	mux.Handle("/game/list", ListGamesHandler(gs))
	mux.Handle("/game/ws/", GameWSHandler(logger, gs))
	srv := httptest.NewServer(mux)
	t.Cleanup(func() {
		gs.Shutdown()
		srv.Close()
	})
	return gs, srv
}

func createGame(t *testing.T, srv *httptest.Server, players ...uuid.UUID) models.CreateGameResponse {
	t.Helper()
	body, err := json.Marshal(models.CreateGameRequest{Players: players})
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+"/game/create", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out models.CreateGameResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func wsURL(srv *httptest.Server, gameID uuid.UUID, token string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/game/ws/" + gameID.String() + "?token=" + token
}

func dial(t *testing.T, ctx context.Context, url string) *websocket.Conn {
	t.Helper()
	c, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{Subprotocols: []string{"game"}})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close(websocket.StatusNormalClosure, "") })
	return c
}

func send(t *testing.T, ctx context.Context, c *websocket.Conn, msg string) {
	t.Helper()
	require.NoError(t, c.Write(ctx, websocket.MessageText, []byte(msg)))
}

// readUntil reads frames until one of the given type arrives.
func readUntil(t *testing.T, ctx context.Context, c *websocket.Conn, typ string) map[string]interface{} {
	t.Helper()
	for {
		_, data, err := c.Read(ctx)
		require.NoError(t, err)
		var frame map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &frame))
		if frame["type"] == typ {
			return frame
		}
	}
}

func TestCreateGameHandler(t *testing.T) {
	_, srv := setupServer(t)
	alice, bob := uuid.New(), uuid.New()

	created := createGame(t, srv, alice, bob)
	require.NotEqual(t, uuid.Nil, created.GameID)
	require.Len(t, created.Seats, 2)
	assert.Equal(t, alice, created.Seats[0].UserID)
	assert.Equal(t, 0, created.Seats[0].UID)
	assert.Equal(t, 1, created.Seats[1].UID)

	userID, gameID, err := auth.AuthenticateSeatToken(created.Seats[1].Token)
	require.NoError(t, err)
	assert.Equal(t, bob, userID)
	assert.Equal(t, created.GameID, gameID)

	resp, err := http.Get(srv.URL + "/game/list")
	require.NoError(t, err)
	defer resp.Body.Close()
	var games []models.GameSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&games))
	require.Len(t, games, 1)
	assert.Equal(t, created.GameID, games[0].GameID)
	assert.Equal(t, "not_started", games[0].State)
	assert.Equal(t, 2, games[0].Players)
}

func TestCreateGameValidation(t *testing.T) {
	_, srv := setupServer(t)
	dup := uuid.New()

	cases := []struct {
		name string
		body string
	}{
		{"one player", `{"players":["` + uuid.NewString() + `"]}`},
		{"duplicate player", `{"players":["` + dup.String() + `","` + dup.String() + `"]}`},
		{"bad json", `{"players":`},
		{"bad rule type", `{"players":["` + uuid.NewString() + `","` + uuid.NewString() + `"],"rules":{"startingCash":"lots"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/game/create", "application/json", strings.NewReader(tc.body))
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}

	resp, err := http.Get(srv.URL + "/game/create")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestGameWebSocketFlow(t *testing.T) {
	_, srv := setupServer(t)
	created := createGame(t, srv, uuid.New(), uuid.New())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	p0 := dial(t, ctx, wsURL(srv, created.GameID, created.Seats[0].Token))
	snap := readUntil(t, ctx, p0, "snapshot")
	assert.Equal(t, float64(0), snap["uid"])

	p1 := dial(t, ctx, wsURL(srv, created.GameID, created.Seats[1].Token))
	readUntil(t, ctx, p1, "snapshot")

	send(t, ctx, p1, `{"type":"start_game"}`)
	readUntil(t, ctx, p0, "wait_for_roll")
	readUntil(t, ctx, p1, "wait_for_roll")

	send(t, ctx, p1, `{"type":"roll"}`)
	errFrame := readUntil(t, ctx, p1, "error")
	assert.Equal(t, "not_current_player", errFrame["code"])

	send(t, ctx, p0, `{"type":"roll"}`)
	ask := readUntil(t, ctx, p1, "ask_to_buy")
	payload := ask["payload"].(map[string]interface{})
	assert.Equal(t, float64(3), payload["property_id"])

	send(t, ctx, p0, `{"type":"end_turn"}`)
	errFrame = readUntil(t, ctx, p0, "error")
	assert.Equal(t, "invalid_state", errFrame["code"])

	send(t, ctx, p0, `{"type":"mortgage"}`)
	errFrame = readUntil(t, ctx, p0, "error")
	assert.Equal(t, "invalid_command", errFrame["code"])

	send(t, ctx, p0, `{"type":"ping"}`)
	readUntil(t, ctx, p0, "pong")
}

func TestGameWebSocketRejects(t *testing.T) {
	_, srv := setupServer(t)
	first := createGame(t, srv, uuid.New(), uuid.New())
	second := createGame(t, srv, uuid.New(), uuid.New())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cases := []struct {
		name   string
		url    string
		status int
	}{
		{"missing token", wsURL(srv, first.GameID, ""), http.StatusUnauthorized},
		{"token for another game", wsURL(srv, first.GameID, second.Seats[0].Token), http.StatusForbidden},
		{"garbage token", wsURL(srv, first.GameID, "abc"), http.StatusForbidden},
		{"unknown game", wsURL(srv, uuid.New(), first.Seats[0].Token), http.StatusNotFound},
		{"bad game id", "ws" + strings.TrimPrefix(srv.URL, "http") + "/game/ws/not-a-uuid", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, resp, err := websocket.Dial(ctx, tc.url, &websocket.DialOptions{Subprotocols: []string{"game"}})
			require.Error(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
