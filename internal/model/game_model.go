// internal/model/game_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/monopoly/internal/event"
	"github.com/jason-s-yu/monopoly/internal/game"
	"github.com/jason-s-yu/monopoly/internal/models"
	"github.com/sirupsen/logrus"
)

// rentDue is the rent computed on landing, held until the player pays it.
type rentDue struct {
	payer    int
	payee    int
	amount   int
	property int
}

// GameModel is the turn state machine for one match. It is not safe for concurrent use;
// callers serialize commands.
type GameModel struct {
	ID    uuid.UUID
	Game  *game.Game
	State State

	publisher event.Publisher
	log       *logrus.Entry
	seq       int
	rent      *rentDue
}

// New creates a match with an initialized board. A nil dice uses seeded random dice.
func New(id uuid.UUID, rules game.HouseRules, dice game.DiceRoller, publisher event.Publisher, logger *logrus.Logger) *GameModel {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	g := game.NewGame(rules, dice)
	g.Initialize()
	return &GameModel{
		ID:        id,
		Game:      g,
		State:     StateNotStarted,
		publisher: publisher,
		log:       logger.WithField("game_id", id),
	}
}

// emit stamps and publishes one event.
func (m *GameModel) emit(t event.Type, payload any) {
	m.seq++
	ev := event.Event{
		ID:        uuid.New(),
		GameID:    m.ID,
		Seq:       m.seq,
		Type:      t,
		Timestamp: time.Now().UnixMilli(),
		Payload:   payload,
	}
	if m.publisher == nil {
		return
	}
	if err := m.publisher.Publish(ev); err != nil {
		m.log.WithFields(logrus.Fields{"seq": ev.Seq, "type": ev.Type}).Warnf("publish event: %v", err)
	}
}

func (m *GameModel) emitCash(uid, oldCash int) {
	p := m.Game.Players[uid]
	m.emit(event.TypeCashChange, event.CashChange{PlayerID: uid, OldCash: oldCash, NewCash: p.Cash})
}

// LastSeq is the sequence number of the most recent event.
func (m *GameModel) LastSeq() int {
	return m.seq
}

// AddPlayers seats players in order and returns external id -> uid.
func (m *GameModel) AddPlayers(userIDs []string) (map[string]int, error) {
	if err := m.requireState(string(models.CommandAddPlayers), StateNotStarted); err != nil {
		return nil, err
	}
	added := make(map[string]int, len(userIDs))
	for _, id := range userIDs {
		added[id] = m.Game.AddPlayer(id)
	}
	m.emit(event.TypePlayerAdd, event.PlayerAdd{Players: added})
	return added, nil
}

// AssignPlayerToken sets a player's token before the game starts.
func (m *GameModel) AssignPlayerToken(uid, token int) error {
	if err := m.requireState(string(models.CommandAssignToken), StateNotStarted); err != nil {
		return err
	}
	if err := m.Game.AssignToken(uid, token); err != nil {
		return err
	}
	m.emit(event.TypeTokenAssigned, event.TokenAssigned{PlayerID: uid, Token: token})
	return nil
}

// StartGame picks the first player by dice and opens their turn.
func (m *GameModel) StartGame() error {
	if err := m.requireState(string(models.CommandStartGame), StateNotStarted); err != nil {
		return err
	}
	if len(m.Game.Players) < 2 {
		return ErrNotEnoughPlayers
	}
	rolls, err := m.Game.InitializeFirstPlayer()
	if err != nil {
		return err
	}
	m.emit(event.TypeFirstPlayerRoll, event.FirstPlayerRoll{Rolls: rolls, First: m.Game.CurrentPlayer})
	m.log.WithField("first_player", m.Game.CurrentPlayer).Info("game started")
	m.startTurn()
	return nil
}

func (m *GameModel) startTurn() {
	uid := m.Game.CurrentPlayer
	m.State = StateWaitForRoll
	m.emit(event.TypeCurrentPlayer, event.Player{PlayerID: uid})
	m.emit(event.TypeWaitForRoll, event.Player{PlayerID: uid})
}

// checkDoubleRollOrEnd ends a turn segment: a pending double earns another roll.
func (m *GameModel) checkDoubleRollOrEnd() {
	uid := m.Game.CurrentPlayer
	if m.Game.DoubleRollPending() {
		m.State = StateWaitForRoll
		m.emit(event.TypeWaitForRoll, event.Player{PlayerID: uid})
		return
	}
	m.State = StateWaitForEndTurn
	m.emit(event.TypeWaitForEndTurn, event.Player{PlayerID: uid})
}

// BuyProperty buys the square the current player was offered.
func (m *GameModel) BuyProperty(uid int) error {
	cmd := string(models.CommandBuy)
	if err := m.requireCurrentPlayer(cmd, uid); err != nil {
		return err
	}
	if err := m.requireState(cmd, StateAskToBuy); err != nil {
		return err
	}
	p := m.Game.Players[uid]
	oldCash := p.Cash
	if err := m.Game.BuyProperty(uid); err != nil {
		return err
	}
	m.emitCash(uid, oldCash)
	m.emit(event.TypeBuyProperty, event.BuyProperty{PlayerID: uid, PropertyID: p.Position, Price: oldCash - p.Cash})
	m.emitPropertyChange(p.Position)
	m.checkDoubleRollOrEnd()
	return nil
}

// AuctionProperty declines the offer and opens bidding.
func (m *GameModel) AuctionProperty(uid int) error {
	cmd := string(models.CommandAuction)
	if err := m.requireCurrentPlayer(cmd, uid); err != nil {
		return err
	}
	if err := m.requireState(cmd, StateAskToBuy); err != nil {
		return err
	}
	pos := m.Game.Players[uid].Position
	if err := m.Game.AuctionProperty(pos); err != nil {
		return err
	}
	m.State = StateAuction
	a, _ := m.Game.Auction()
	m.emit(event.TypeStartAuction, auctionPayload(a))
	if len(a.Bidders) <= 1 {
		return m.endAuction()
	}
	m.emit(event.TypeCurrentAuction, auctionPayload(a))
	return nil
}

// BidProperty raises by amount, or passes when amount is 0. Only the front bidder may bid.
func (m *GameModel) BidProperty(uid, amount int) error {
	if err := m.requireState(string(models.CommandBid), StateAuction); err != nil {
		return err
	}
	a, ok := m.Game.Auction()
	if !ok || len(a.Bidders) == 0 {
		return game.ErrNoAuction
	}
	if a.Bidders[0] != uid {
		return &NotCurrentPlayerError{PlayerID: uid, CurrentPlayerID: a.Bidders[0]}
	}
	if err := m.Game.BidProperty(amount); err != nil {
		return err
	}
	a, _ = m.Game.Auction()
	if len(a.Bidders) > 1 {
		m.emit(event.TypeCurrentAuction, auctionPayload(a))
		return nil
	}
	return m.endAuction()
}

// endAuction sells to the last bidder standing at the final price.
func (m *GameModel) endAuction() error {
	a, ok := m.Game.Auction()
	if !ok || len(a.Bidders) != 1 {
		return game.ErrNoBidders
	}
	winner := a.Bidders[0]
	oldCash := m.Game.Players[winner].Cash
	price := a.Price
	if err := m.Game.BuyPropertyTransaction(winner, a.Property, &price); err != nil {
		return err
	}
	m.Game.EndAuction()
	m.emit(event.TypeEndAuction, event.EndAuction{Winner: winner, Price: price, PropertyID: a.Property})
	m.emitCash(winner, oldCash)
	m.emit(event.TypeBuyProperty, event.BuyProperty{PlayerID: winner, PropertyID: a.Property, Price: price})
	m.emitPropertyChange(a.Property)
	m.log.WithFields(logrus.Fields{"winner": winner, "price": price, "property": a.Property}).Debug("auction ended")
	m.checkDoubleRollOrEnd()
	return nil
}

func auctionPayload(a game.Auction) event.Auction {
	cur := -1
	if len(a.Bidders) > 0 {
		cur = a.Bidders[0]
	}
	return event.Auction{Bidders: a.Bidders, CurrentBidder: cur, Price: a.Price, PropertyID: a.Property}
}

// Pay settles the rent computed when the current player landed. On insufficient cash the
// state is unchanged so the player can raise money and retry.
func (m *GameModel) Pay(uid int) error {
	cmd := string(models.CommandPay)
	if err := m.requireCurrentPlayer(cmd, uid); err != nil {
		return err
	}
	if err := m.requireState(cmd, StateWaitForPayRent); err != nil {
		return err
	}
	r := m.rent
	if r == nil {
		return &CommandNotMatchingStateError{Command: cmd, State: m.State}
	}
	payerCash := m.Game.Players[r.payer].Cash
	payeeCash := m.Game.Players[r.payee].Cash
	if err := m.Game.TransferCash(r.payer, r.payee, r.amount); err != nil {
		return err
	}
	m.rent = nil
	m.emitCash(r.payer, payerCash)
	m.emitCash(r.payee, payeeCash)
	m.checkDoubleRollOrEnd()
	return nil
}

// EndTurn passes play to the next player.
func (m *GameModel) EndTurn(uid int) error {
	cmd := string(models.CommandEndTurn)
	if err := m.requireCurrentPlayer(cmd, uid); err != nil {
		return err
	}
	if err := m.requireState(cmd, StateWaitForEndTurn); err != nil {
		return err
	}
	next := m.Game.NextPlayer()
	m.log.WithFields(logrus.Fields{"from": uid, "to": next}).Info("turn ended")
	m.startTurn()
	return nil
}

// Mortgage pledges one of the current player's properties.
func (m *GameModel) Mortgage(uid, pos int) error {
	return m.manage(string(models.CommandMortgage), uid, pos, func() (int, error) {
		return m.Game.MortgageProperty(uid, pos)
	})
}

// Unmortgage repays a mortgage with interest.
func (m *GameModel) Unmortgage(uid, pos int) error {
	return m.manage(string(models.CommandUnmortgage), uid, pos, func() (int, error) {
		return m.Game.UnmortgageProperty(uid, pos)
	})
}

// AddHouse builds a house, or a hotel on a property with four houses.
func (m *GameModel) AddHouse(uid, pos int) error {
	return m.manage(string(models.CommandAddHouse), uid, pos, func() (int, error) {
		return m.Game.BuildOnProperty(uid, pos)
	})
}

// SellHouse sells the hotel if there is one, else a house, for half price.
func (m *GameModel) SellHouse(uid, pos int) error {
	return m.manage(string(models.CommandSellHouse), uid, pos, func() (int, error) {
		return m.Game.SellFromProperty(uid, pos)
	})
}

func (m *GameModel) manage(cmd string, uid, pos int, op func() (int, error)) error {
	if err := m.requireCurrentPlayer(cmd, uid); err != nil {
		return err
	}
	if err := m.requireState(cmd, managementStates...); err != nil {
		return err
	}
	oldCash := m.Game.Players[uid].Cash
	amount, err := op()
	if err != nil {
		return err
	}
	m.log.WithFields(logrus.Fields{"command": cmd, "player": uid, "property": pos, "amount": amount}).Debug("property managed")
	m.emitCash(uid, oldCash)
	m.emitPropertyChange(pos)
	return nil
}

// GetPropertyStatus returns a snapshot of the current player's properties and publishes it.
func (m *GameModel) GetPropertyStatus(uid int) ([]event.PropertyState, error) {
	if err := m.requireCurrentPlayer(string(models.CommandPropertyStatus), uid); err != nil {
		return nil, err
	}
	out := []event.PropertyState{}
	for _, pos := range m.Game.Map.OwnedBy(uid) {
		out = append(out, m.propertyState(pos))
	}
	m.emit(event.TypePropertyStatus, event.PropertyStatus{PlayerID: uid, Properties: out})
	return out, nil
}

func (m *GameModel) emitPropertyChange(pos int) {
	m.emit(event.TypePropertyChange, m.propertyState(pos))
}

func (m *GameModel) propertyState(pos int) event.PropertyState {
	o, err := m.Game.Map.Ownable(pos)
	if err != nil {
		return event.PropertyState{PropertyID: pos}
	}
	st := event.PropertyState{
		PropertyID: pos,
		Name:       o.Name(),
		Mortgaged:  o.Mortgaged,
	}
	if owner, ok := o.Owner(); ok {
		st.Owner = &owner
	}
	if s, err := m.Game.Map.Street(pos); err == nil {
		st.Houses = s.Houses
		st.Hotels = s.Hotels
	}
	sum := 7
	if d, err := m.Game.DiceSum(); err == nil {
		sum = d
	}
	st.Rent, _ = m.Game.Map.ComputeRent(pos, sum)
	return st
}

// UseJailCard spends a get-out-of-jail card at the start of a jailed player's turn.
func (m *GameModel) UseJailCard(uid int) error {
	cmd := string(models.CommandUseJailCard)
	if err := m.requireCurrentPlayer(cmd, uid); err != nil {
		return err
	}
	if err := m.requireState(cmd, StateWaitForRoll); err != nil {
		return err
	}
	if !m.Game.Players[uid].InJail() {
		return game.ErrNotInJail
	}
	if _, err := m.Game.UsePlayerJailCard(uid, nil); err != nil {
		return err
	}
	_ = m.Game.ReleaseFromJail(uid)
	m.emit(event.TypeJailRelease, event.JailRelease{PlayerID: uid, Method: "card"})
	return nil
}

// PayJailFine buys a jailed player out before they roll.
func (m *GameModel) PayJailFine(uid int) error {
	cmd := string(models.CommandPayJailFine)
	if err := m.requireCurrentPlayer(cmd, uid); err != nil {
		return err
	}
	if err := m.requireState(cmd, StateWaitForRoll); err != nil {
		return err
	}
	if !m.Game.Players[uid].InJail() {
		return game.ErrNotInJail
	}
	m.payFine(uid)
	return nil
}

func (m *GameModel) payFine(uid int) {
	oldCash := m.Game.Players[uid].Cash
	_ = m.Game.AdjustCash(uid, -m.Game.Rules.JailFine)
	_ = m.Game.ReleaseFromJail(uid)
	m.emitCash(uid, oldCash)
	m.emit(event.TypeJailRelease, event.JailRelease{PlayerID: uid, Method: "fine"})
}
