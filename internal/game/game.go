// internal/game/game.go
package game

import (
	"fmt"
	"time"
)

// Movement says where a player goes. Position, when set, wins over Steps.
type Movement struct {
	Steps    *int
	Position *int
}

// ByStepsOf moves relative to the current square.
func ByStepsOf(n int) Movement {
	return Movement{Steps: &n}
}

// ToPosition moves straight to pos.
func ToPosition(pos int) Movement {
	return Movement{Position: &pos}
}

// Auction is the live bidding state. Bidders[0] bids next.
type Auction struct {
	Bidders  []int `json:"bidders"`
	Price    int   `json:"price"`
	Property int   `json:"property"`
}

type doubleRollCounter struct {
	uid   int
	count int
}

// Game is the rules engine: it mutates players, board and decks and never does I/O.
type Game struct {
	Rules         HouseRules
	Players       []*Player
	Map           *GameMap
	ChanceDeck    *Deck
	CCDeck        *Deck
	CurrentPlayer int
	LastDiceRolls *[2]int

	doubleRoll *doubleRollCounter
	auction    *Auction
	dice       DiceRoller
	seed       int64
}

// NewGame returns an uninitialized game. A nil dice uses seeded random dice.
func NewGame(rules HouseRules, dice DiceRoller) *Game {
	seed := rules.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if dice == nil {
		dice = NewRandomDice(seed)
	}
	return &Game{
		Rules:   rules,
		Players: []*Player{},
		dice:    dice,
		seed:    seed,
	}
}

// Seed is the seed used for deck shuffles.
func (g *Game) Seed() int64 {
	return g.seed
}

// AddPlayer seats a new player with starting cash and returns their uid.
func (g *Game) AddPlayer(name string) int {
	uid := len(g.Players)
	g.Players = append(g.Players, &Player{
		UID:        uid,
		Name:       name,
		Cash:       g.Rules.StartingCash,
		Position:   PosGo,
		Properties: []int{},
		JailCards:  []Card{},
	})
	return uid
}

// Player returns the player with the given uid.
func (g *Game) Player(uid int) (*Player, error) {
	if uid < 0 || uid >= len(g.Players) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPlayer, uid)
	}
	return g.Players[uid], nil
}

// Current returns the player whose turn it is.
func (g *Game) Current() *Player {
	return g.Players[g.CurrentPlayer]
}

// Initialize builds the board and shuffles both decks.
func (g *Game) Initialize() {
	g.Map = NewGameMap(g.Rules.BankHouses, g.Rules.BankHotels)
	g.ChanceDeck = NewDeck(DeckChance)
	g.ChanceDeck.ShuffleAddCards(ChanceCards, g.seed)
	g.CCDeck = NewDeck(DeckCommunityChest)
	g.CCDeck.ShuffleAddCards(CommunityChestCards, g.seed+1)
}

// InitializeFirstPlayer rolls once for each player. The highest total goes first and ties
// go to the lowest uid. Rolls are indexed by uid.
func (g *Game) InitializeFirstPlayer() ([][2]int, error) {
	if len(g.Players) == 0 {
		return nil, ErrNoPlayers
	}
	rolls := make([][2]int, len(g.Players))
	best, bestSum := 0, -1
	for uid := range g.Players {
		d1, d2 := g.RollDice()
		rolls[uid] = [2]int{d1, d2}
		if d1+d2 > bestSum {
			best, bestSum = uid, d1+d2
		}
	}
	g.CurrentPlayer = best
	g.LastDiceRolls = nil
	return rolls, nil
}

// RollDice rolls two dice and records them.
func (g *Game) RollDice() (int, int) {
	d1, d2 := g.dice.Roll(), g.dice.Roll()
	g.LastDiceRolls = &[2]int{d1, d2}
	return d1, d2
}

// DiceSum is the total of the last roll.
func (g *Game) DiceSum() (int, error) {
	if g.LastDiceRolls == nil {
		return 0, ErrNoDiceRolled
	}
	return g.LastDiceRolls[0] + g.LastDiceRolls[1], nil
}

// CheckDoubleRoll tracks consecutive doubles for uid. The first two doubles earn another
// roll, the third sends the player to jail.
func (g *Game) CheckDoubleRoll(d1, d2, uid int) (Action, error) {
	if g.doubleRoll != nil && g.doubleRoll.uid != uid {
		return ActionNothing, fmt.Errorf("%w: counter held by %d, got %d", ErrDoubleRollOwner, g.doubleRoll.uid, uid)
	}
	if d1 != d2 {
		g.doubleRoll = nil
		return ActionNothing, nil
	}
	if g.doubleRoll == nil {
		g.doubleRoll = &doubleRollCounter{uid: uid}
	}
	g.doubleRoll.count++
	if g.doubleRoll.count >= MaxDoubleRoll {
		g.doubleRoll = nil
		return ActionSendToJail, nil
	}
	return ActionAskToRoll, nil
}

// DoubleRollPending reports whether the current segment started with a recorded double.
func (g *Game) DoubleRollPending() bool {
	return g.doubleRoll != nil
}

// DoubleRollCount is the number of consecutive doubles recorded for the turn.
func (g *Game) DoubleRollCount() int {
	if g.doubleRoll == nil {
		return 0
	}
	return g.doubleRoll.count
}

// ResetDoubleRoll clears the double-roll counter.
func (g *Game) ResetDoubleRoll() {
	g.doubleRoll = nil
}

// MovePlayer moves uid by steps or to an absolute position. Position takes precedence.
// The position is not wrapped; see CheckGoPass and OffsetGoPos.
func (g *Game) MovePlayer(uid int, m Movement) error {
	p, err := g.Player(uid)
	if err != nil {
		return err
	}
	switch {
	case m.Position != nil:
		if *m.Position < 0 || *m.Position >= g.Map.Size() {
			return fmt.Errorf("%w: %d", ErrInvalidPosition, *m.Position)
		}
		p.Position = *m.Position
	case m.Steps != nil:
		p.Position += *m.Steps
	default:
		return ErrNoMovement
	}
	return nil
}

// CheckGoPass returns ActionPassGo when the player has run off the end of the board.
func (g *Game) CheckGoPass(uid int) Action {
	p, err := g.Player(uid)
	if err != nil {
		return ActionNothing
	}
	if p.Position >= g.Map.Size() {
		return ActionPassGo
	}
	return ActionNothing
}

// OffsetGoPos wraps the player's position back onto the board after one lap.
func (g *Game) OffsetGoPos(uid int) {
	if p, err := g.Player(uid); err == nil {
		p.Position -= g.Map.Size()
	}
}

// TriggerSpace resolves the square uid is standing on.
func (g *Game) TriggerSpace(uid int) (Action, error) {
	p, err := g.Player(uid)
	if err != nil {
		return ActionNothing, err
	}
	sp, err := g.Map.Space(p.Position)
	if err != nil {
		return ActionNothing, err
	}
	return sp.Trigger(uid), nil
}

// BuyProperty buys the square uid stands on at list price.
func (g *Game) BuyProperty(uid int) error {
	p, err := g.Player(uid)
	if err != nil {
		return err
	}
	return g.BuyPropertyAt(uid, p.Position)
}

// BuyPropertyAt buys the property at pos at list price.
func (g *Game) BuyPropertyAt(uid, pos int) error {
	p, err := g.Player(uid)
	if err != nil {
		return err
	}
	o, err := g.Map.Ownable(pos)
	if err != nil {
		return err
	}
	if _, owned := o.Owner(); owned {
		return ErrAlreadyOwned
	}
	if p.Cash < o.Price {
		return &InsufficientCashError{PlayerID: uid, Current: p.Cash, Required: o.Price}
	}
	return g.BuyPropertyTransaction(uid, pos, nil)
}

// BuyPropertyTransaction moves money and ownership for a purchase. A nil price means
// the list price.
func (g *Game) BuyPropertyTransaction(uid, pos int, price *int) error {
	p, err := g.Player(uid)
	if err != nil {
		return err
	}
	o, err := g.Map.Ownable(pos)
	if err != nil {
		return err
	}
	amount := o.Price
	if price != nil {
		amount = *price
	}
	p.Cash -= amount
	p.addProperty(pos)
	return g.Map.AssignOwner(pos, &uid)
}

// AuctionProperty opens bidding on the property at pos. The player after the current
// player bids first and the current player bids last.
func (g *Game) AuctionProperty(pos int) error {
	if g.auction != nil {
		return ErrAuctionActive
	}
	o, err := g.Map.Ownable(pos)
	if err != nil {
		return err
	}
	if _, owned := o.Owner(); owned {
		return ErrAlreadyOwned
	}
	n := len(g.Players)
	bidders := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		bidders = append(bidders, (g.CurrentPlayer+i)%n)
	}
	g.auction = &Auction{Bidders: bidders, Property: pos}
	return nil
}

// BidProperty applies the front bidder's move. Zero passes and drops the bidder; any other
// amount raises the price and sends the bidder to the back of the queue.
func (g *Game) BidProperty(amount int) error {
	if g.auction == nil {
		return ErrNoAuction
	}
	if amount < 0 {
		return ErrNegativeBid
	}
	if len(g.auction.Bidders) == 0 {
		return ErrNoBidders
	}
	front := g.auction.Bidders[0]
	if amount == 0 {
		g.auction.Bidders = g.auction.Bidders[1:]
		return nil
	}
	p := g.Players[front]
	price := g.auction.Price + amount
	if p.Cash < price {
		return &InsufficientCashError{PlayerID: front, Current: p.Cash, Required: price}
	}
	g.auction.Price = price
	g.auction.Bidders = append(g.auction.Bidders[1:], front)
	return nil
}

// Auction returns a copy of the live auction, if any.
func (g *Game) Auction() (Auction, bool) {
	if g.auction == nil {
		return Auction{}, false
	}
	a := *g.auction
	a.Bidders = append([]int(nil), g.auction.Bidders...)
	return a, true
}

// EndAuction clears the bidding state.
func (g *Game) EndAuction() {
	g.auction = nil
}

// TransferCash moves amount from payer to payee, or fails without side effects.
func (g *Game) TransferCash(payer, payee, amount int) error {
	from, err := g.Player(payer)
	if err != nil {
		return err
	}
	to, err := g.Player(payee)
	if err != nil {
		return err
	}
	if from.Cash < amount {
		return &InsufficientCashError{PlayerID: payer, Current: from.Cash, Required: amount}
	}
	from.Cash -= amount
	to.Cash += amount
	return nil
}

// ForceTransferCash moves amount even if the payer goes negative.
func (g *Game) ForceTransferCash(payer, payee, amount int) error {
	from, err := g.Player(payer)
	if err != nil {
		return err
	}
	to, err := g.Player(payee)
	if err != nil {
		return err
	}
	from.Cash -= amount
	to.Cash += amount
	return nil
}

// AdjustCash adds delta to uid's cash. Negative results are allowed.
func (g *Game) AdjustCash(uid, delta int) error {
	p, err := g.Player(uid)
	if err != nil {
		return err
	}
	p.Cash += delta
	return nil
}

// GetPayRentInfo returns who the current player owes and how much for their square.
func (g *Game) GetPayRentInfo() (payee int, rent int, err error) {
	return g.rentInfo(1, 0)
}

// GetCardRentInfo is GetPayRentInfo for a player moved by a nearest-railroad or
// nearest-utility card.
func (g *Game) GetCardRentInfo(a Action) (payee int, rent int, err error) {
	switch a {
	case ActionSendToNearestRailroad:
		if g.Rules.DoubleRentOnRailroadCard {
			return g.rentInfo(railroadRentCardMult, 0)
		}
		return g.rentInfo(1, 0)
	case ActionSendToNearestUtility:
		return g.rentInfo(1, utilityCardMult)
	default:
		return g.GetPayRentInfo()
	}
}

// rentInfo computes rent for the current square, scaled by mult. A non-zero diceMult
// replaces the utility multiplier.
func (g *Game) rentInfo(mult, diceMult int) (int, int, error) {
	p := g.Current()
	o, err := g.Map.Ownable(p.Position)
	if err != nil {
		return 0, 0, err
	}
	owner, ok := o.Owner()
	if !ok {
		return 0, 0, ErrNotOwned
	}
	if owner == p.UID {
		return 0, 0, ErrSelfOwned
	}
	sp, _ := g.Map.Space(p.Position)
	if _, isUtility := sp.(*UtilitySpace); isUtility {
		sum, err := g.DiceSum()
		if err != nil {
			return 0, 0, err
		}
		if diceMult > 0 {
			if o.Mortgaged {
				return owner, 0, nil
			}
			return owner, sum * diceMult, nil
		}
		rent, err := g.Map.ComputeRent(p.Position, sum)
		return owner, rent, err
	}
	rent, err := g.Map.ComputeRent(p.Position, 0)
	if err != nil {
		return 0, 0, err
	}
	return owner, rent * mult, nil
}

// DrawChanceCard takes the top chance card.
func (g *Game) DrawChanceCard() (Card, error) {
	return g.ChanceDeck.DrawCard()
}

// DrawCCCard takes the top community chest card.
func (g *Game) DrawCCCard() (Card, error) {
	return g.CCDeck.DrawCard()
}

func (g *Game) deck(t DeckType) *Deck {
	if t == DeckCommunityChest {
		return g.CCDeck
	}
	return g.ChanceDeck
}

// AddPlayerJailCard gives uid a get-out-of-jail card.
func (g *Game) AddPlayerJailCard(uid int, c Card) error {
	p, err := g.Player(uid)
	if err != nil {
		return err
	}
	p.JailCards = append(p.JailCards, c)
	return nil
}

// UsePlayerJailCard spends one of uid's jail cards, from deck if given, else the first held.
// The card goes back to the deck it came from.
func (g *Game) UsePlayerJailCard(uid int, deck *DeckType) (Card, error) {
	p, err := g.Player(uid)
	if err != nil {
		return Card{}, err
	}
	for i, c := range p.JailCards {
		if deck != nil && c.Deck != *deck {
			continue
		}
		p.JailCards = append(p.JailCards[:i], p.JailCards[i+1:]...)
		g.deck(c.Deck).AppendOwnedCard(c)
		return c, nil
	}
	return Card{}, ErrNoJailCard
}

// SendToJail puts uid in jail without passing Go and ends any double-roll streak.
func (g *Game) SendToJail(uid int) error {
	p, err := g.Player(uid)
	if err != nil {
		return err
	}
	turns := 0
	p.Position = PosJail
	p.JailTurns = &turns
	g.doubleRoll = nil
	return nil
}

// ReleaseFromJail ends uid's jail term.
func (g *Game) ReleaseFromJail(uid int) error {
	p, err := g.Player(uid)
	if err != nil {
		return err
	}
	if !p.InJail() {
		return ErrNotInJail
	}
	p.JailTurns = nil
	return nil
}

// AddJailTurn records a failed attempt to roll out of jail and returns the total.
func (g *Game) AddJailTurn(uid int) (int, error) {
	p, err := g.Player(uid)
	if err != nil {
		return 0, err
	}
	if !p.InJail() {
		return 0, ErrNotInJail
	}
	n := *p.JailTurns + 1
	p.JailTurns = &n
	return n, nil
}

// NextPlayer passes the turn clockwise and resets per-turn state.
func (g *Game) NextPlayer() int {
	g.CurrentPlayer = (g.CurrentPlayer + 1) % len(g.Players)
	g.doubleRoll = nil
	return g.CurrentPlayer
}

// AssignToken sets the player's token.
func (g *Game) AssignToken(uid, token int) error {
	p, err := g.Player(uid)
	if err != nil {
		return err
	}
	p.Token = token
	return nil
}

func (g *Game) requireOwner(uid, pos int) (*Player, *Ownable, error) {
	p, err := g.Player(uid)
	if err != nil {
		return nil, nil, err
	}
	o, err := g.Map.Ownable(pos)
	if err != nil {
		return nil, nil, err
	}
	if owner, ok := o.Owner(); !ok || owner != uid {
		return nil, nil, ErrNotOwner
	}
	return p, o, nil
}

// MortgageProperty mortgages uid's property at pos and credits the mortgage value.
func (g *Game) MortgageProperty(uid, pos int) (int, error) {
	p, _, err := g.requireOwner(uid, pos)
	if err != nil {
		return 0, err
	}
	amount, err := g.Map.Mortgage(pos)
	if err != nil {
		return 0, err
	}
	p.Cash += amount
	return amount, nil
}

// UnmortgageProperty repays the mortgage on pos with interest.
func (g *Game) UnmortgageProperty(uid, pos int) (int, error) {
	p, o, err := g.requireOwner(uid, pos)
	if err != nil {
		return 0, err
	}
	if !o.Mortgaged {
		return 0, ErrNotMortgaged
	}
	cost := o.UnmortgageValue()
	if p.Cash < cost {
		return 0, &InsufficientCashError{PlayerID: uid, Current: p.Cash, Required: cost}
	}
	if _, err := g.Map.Unmortgage(pos); err != nil {
		return 0, err
	}
	p.Cash -= cost
	return cost, nil
}

// BuildOnProperty adds a house at pos, or a hotel once HouseLimit houses stand there.
// It returns the price paid.
func (g *Game) BuildOnProperty(uid, pos int) (int, error) {
	p, _, err := g.requireOwner(uid, pos)
	if err != nil {
		return 0, err
	}
	s, err := g.Map.Street(pos)
	if err != nil {
		return 0, err
	}
	if s.Houses == HouseLimit {
		if err := g.Map.AllowAddHotel(pos); err != nil {
			return 0, err
		}
		if p.Cash < s.HotelPrice {
			return 0, &InsufficientCashError{PlayerID: uid, Current: p.Cash, Required: s.HotelPrice}
		}
		if err := g.Map.AddHotel(pos); err != nil {
			return 0, err
		}
		p.Cash -= s.HotelPrice
		return s.HotelPrice, nil
	}
	if err := g.Map.AllowAddHouse(pos); err != nil {
		return 0, err
	}
	if p.Cash < s.HousePrice {
		return 0, &InsufficientCashError{PlayerID: uid, Current: p.Cash, Required: s.HousePrice}
	}
	if err := g.Map.AddHouse(pos); err != nil {
		return 0, err
	}
	p.Cash -= s.HousePrice
	return s.HousePrice, nil
}

// SellFromProperty sells the hotel at pos if there is one, else one house, for half price.
// It returns the refund.
func (g *Game) SellFromProperty(uid, pos int) (int, error) {
	p, _, err := g.requireOwner(uid, pos)
	if err != nil {
		return 0, err
	}
	s, err := g.Map.Street(pos)
	if err != nil {
		return 0, err
	}
	var refund int
	if s.Hotels > 0 {
		if err := g.Map.RemoveHotel(pos); err != nil {
			return 0, err
		}
		refund = s.HotelPrice / 2
	} else {
		if err := g.Map.RemoveHouse(pos); err != nil {
			return 0, err
		}
		refund = s.HousePrice / 2
	}
	p.Cash += refund
	return refund, nil
}

// CountBuildings totals the houses and hotels standing on uid's properties.
func (g *Game) CountBuildings(uid int) (houses, hotels int) {
	for _, pos := range g.Map.OwnedBy(uid) {
		if s, err := g.Map.Street(pos); err == nil {
			houses += s.Houses
			hotels += s.Hotels
		}
	}
	return houses, hotels
}
