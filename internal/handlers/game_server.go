// internal/handlers/game_server.go
package handlers

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jason-s-yu/monopoly/internal/controller"
	"github.com/jason-s-yu/monopoly/internal/event"
	"github.com/jason-s-yu/monopoly/internal/game"
	"github.com/sirupsen/logrus"
)

const (
	MinPlayers = 2
	MaxPlayers = 8
)

var (
	ErrPlayerCount     = fmt.Errorf("a game needs %d to %d players", MinPlayers, MaxPlayers)
	ErrDuplicatePlayer = errors.New("player listed twice")
)

// GameServer holds the live games of this process and the hubs that stream their events.
type GameServer struct {
	Store  *controller.Store
	Rules  game.HouseRules
	Logger *logrus.Logger

	// History, when set, receives every event of every game (the Redis sink).
	History event.Subscriber
	// NewDice, when set, supplies each new game's dice. Nil rolls seeded random dice.
	NewDice func() game.DiceRoller

	mu   sync.Mutex
	hubs map[uuid.UUID]*Hub
}

func NewGameServer(rules game.HouseRules, logger *logrus.Logger) *GameServer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &GameServer{
		Store:  controller.NewStore(),
		Rules:  rules,
		Logger: logger,
		hubs:   make(map[uuid.UUID]*Hub),
	}
}

// CreateGame seats players in the given order on a new game. overrides are applied over
// the server's rules.
func (gs *GameServer) CreateGame(players []uuid.UUID, overrides map[string]interface{}) (*controller.Controller, map[uuid.UUID]int, error) {
	if len(players) < MinPlayers || len(players) > MaxPlayers {
		return nil, nil, ErrPlayerCount
	}
	seen := make(map[uuid.UUID]bool, len(players))
	for _, p := range players {
		if seen[p] {
			return nil, nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, p)
		}
		seen[p] = true
	}
	rules, err := game.ParseRules(overrides, gs.Rules)
	if err != nil {
		return nil, nil, err
	}

	var dice game.DiceRoller
	if gs.NewDice != nil {
		dice = gs.NewDice()
	}
	c := controller.New(uuid.New(), rules, dice, gs.Logger)
	hub := NewHub(c.ID(), gs.Logger)
	c.Subscribe(hub)
	if gs.History != nil {
		c.Subscribe(gs.History)
	}

	seats, err := c.Seat(players)
	if err != nil {
		c.Close()
		return nil, nil, err
	}

	gs.Store.Add(c)
	gs.mu.Lock()
	gs.hubs[c.ID()] = hub
	gs.mu.Unlock()

	gs.Logger.WithFields(logrus.Fields{"game_id": c.ID(), "players": len(players)}).Info("game created")
	return c, seats, nil
}

// Game returns a live game and its hub.
func (gs *GameServer) Game(id uuid.UUID) (*controller.Controller, *Hub, bool) {
	c, ok := gs.Store.Get(id)
	if !ok {
		return nil, nil, false
	}
	gs.mu.Lock()
	hub, ok := gs.hubs[id]
	gs.mu.Unlock()
	return c, hub, ok
}

// EndGame drops a game, flushing its pending events and disconnecting its clients.
func (gs *GameServer) EndGame(id uuid.UUID) {
	gs.Store.Delete(id)
	gs.mu.Lock()
	hub, ok := gs.hubs[id]
	delete(gs.hubs, id)
	gs.mu.Unlock()
	if ok {
		hub.CloseAll(GameClosedError, "Game closed.")
	}
}

// Shutdown ends every game.
func (gs *GameServer) Shutdown() {
	for _, c := range gs.Store.List() {
		gs.EndGame(c.ID())
	}
}
