// internal/controller/controller.go
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/monopoly/internal/event"
	"github.com/jason-s-yu/monopoly/internal/game"
	"github.com/jason-s-yu/monopoly/internal/model"
	"github.com/jason-s-yu/monopoly/internal/models"
	"github.com/sirupsen/logrus"
)

// DefaultQueueSize is the event queue capacity of a new match.
const DefaultQueueSize = 256

var (
	ErrNotSeated     = errors.New("user is not seated in this game")
	ErrAlreadySeated = errors.New("players are already seated")
)

// Controller owns one match. It serializes commands from every connection onto the
// GameModel and fans the resulting events out through a Topic.
type Controller struct {
	mu    sync.Mutex
	model *model.GameModel
	topic *event.Topic
	seats map[uuid.UUID]int
	log   *logrus.Entry

	CreatedAt time.Time
}

// New creates a match. A nil dice rolls seeded random dice.
func New(id uuid.UUID, rules game.HouseRules, dice game.DiceRoller, logger *logrus.Logger) *Controller {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	topic := event.NewTopic(DefaultQueueSize)
	return &Controller{
		model:     model.New(id, rules, dice, topic, logger),
		topic:     topic,
		seats:     make(map[uuid.UUID]int),
		log:       logger.WithField("game_id", id),
		CreatedAt: time.Now(),
	}
}

// ID is the match id.
func (c *Controller) ID() uuid.UUID {
	return c.model.ID
}

// Subscribe registers s for every event published from now on.
func (c *Controller) Subscribe(s event.Subscriber) {
	c.topic.Subscribe(s)
}

// Seat adds the players in order and returns user id -> uid. It may be called once.
func (c *Controller) Seat(userIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.seats) > 0 {
		return nil, ErrAlreadySeated
	}
	ids := make([]string, len(userIDs))
	for i, id := range userIDs {
		ids[i] = id.String()
	}
	added, err := c.model.AddPlayers(ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int, len(userIDs))
	for _, id := range userIDs {
		uid := added[id.String()]
		c.seats[id] = uid
		out[id] = uid
	}
	return out, nil
}

// UID returns the seat of userID.
func (c *Controller) UID(userID uuid.UUID) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	uid, ok := c.seats[userID]
	return uid, ok
}

// Snapshot returns the current table state.
func (c *Controller) Snapshot() model.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model.Snapshot()
}

// State returns the state machine's current state.
func (c *Controller) State() model.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model.State
}

// Dispatch applies one command from userID. Rejected commands leave the match unchanged.
func (c *Controller) Dispatch(ctx context.Context, userID uuid.UUID, cmd models.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := cmd.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	uid, ok := c.seats[userID]
	if !ok {
		return ErrNotSeated
	}
	err := c.apply(uid, cmd)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"player":  uid,
			"command": cmd.Type,
			"state":   c.model.State.String(),
		}).Warnf("command rejected: %v", err)
	}
	return err
}

func (c *Controller) apply(uid int, cmd models.Command) error {
	m := c.model
	switch cmd.Type {
	case models.CommandAssignToken:
		return m.AssignPlayerToken(uid, *cmd.Token)
	case models.CommandStartGame:
		return m.StartGame()
	case models.CommandRoll:
		return m.RollAndMove(uid)
	case models.CommandBuy:
		return m.BuyProperty(uid)
	case models.CommandAuction:
		return m.AuctionProperty(uid)
	case models.CommandBid:
		return m.BidProperty(uid, *cmd.Amount)
	case models.CommandPay:
		return m.Pay(uid)
	case models.CommandEndTurn:
		return m.EndTurn(uid)
	case models.CommandMortgage:
		return m.Mortgage(uid, *cmd.Property)
	case models.CommandUnmortgage:
		return m.Unmortgage(uid, *cmd.Property)
	case models.CommandAddHouse:
		return m.AddHouse(uid, *cmd.Property)
	case models.CommandSellHouse:
		return m.SellHouse(uid, *cmd.Property)
	case models.CommandPropertyStatus:
		_, err := m.GetPropertyStatus(uid)
		return err
	case models.CommandUseJailCard:
		return m.UseJailCard(uid)
	case models.CommandPayJailFine:
		return m.PayJailFine(uid)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidCommand, cmd.Type)
	}
}

// Close stops the match's event delivery after flushing queued events.
func (c *Controller) Close() {
	c.topic.Close()
	c.log.Info("match closed")
}
