// internal/game/game_test.go
package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestGame seats numPlayers players on an initialized board with scripted dice.
func setupTestGame(t *testing.T, numPlayers int, faces ...int) (*Game, *ScriptedDice) {
	t.Helper()
	rules := DefaultHouseRules()
	rules.Seed = 42
	dice := NewScriptedDice(faces...)
	g := NewGame(rules, dice)
	for i := 0; i < numPlayers; i++ {
		g.AddPlayer(string(rune('A' + i)))
	}
	g.Initialize()
	require.Equal(t, BoardSize, g.Map.Size())
	return g, dice
}

// give hands pos to uid without charging them.
func give(t *testing.T, g *Game, uid int, positions ...int) {
	t.Helper()
	for _, pos := range positions {
		zero := 0
		require.NoError(t, g.BuyPropertyTransaction(uid, pos, &zero))
	}
}

func TestAddPlayer(t *testing.T) {
	g, _ := setupTestGame(t, 0)
	assert.Equal(t, 0, g.AddPlayer("alice"))
	assert.Equal(t, 1, g.AddPlayer("bob"))
	p, err := g.Player(1)
	require.NoError(t, err)
	assert.Equal(t, "bob", p.Name)
	assert.Equal(t, 1500, p.Cash)
	assert.Equal(t, PosGo, p.Position)
	assert.False(t, p.InJail())

	_, err = g.Player(5)
	assert.ErrorIs(t, err, ErrUnknownPlayer)
}

func TestInitializeFirstPlayerTiesGoToLowestUID(t *testing.T) {
	g, _ := setupTestGame(t, 3, 3, 4, 6, 1, 5, 2)
	rolls, err := g.InitializeFirstPlayer()
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{3, 4}, {6, 1}, {5, 2}}, rolls)
	assert.Equal(t, 0, g.CurrentPlayer)

	g2, _ := setupTestGame(t, 3, 1, 2, 6, 6, 5, 4)
	_, err = g2.InitializeFirstPlayer()
	require.NoError(t, err)
	assert.Equal(t, 1, g2.CurrentPlayer)
}

func TestCheckDoubleRoll(t *testing.T) {
	g, _ := setupTestGame(t, 2)

	a, err := g.CheckDoubleRoll(2, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, ActionAskToRoll, a)
	a, err = g.CheckDoubleRoll(3, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, ActionAskToRoll, a)
	assert.Equal(t, 2, g.DoubleRollCount())

	a, err = g.CheckDoubleRoll(4, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, ActionSendToJail, a)
	assert.False(t, g.DoubleRollPending(), "third double resets the counter")

	t.Run("non double resets", func(t *testing.T) {
		_, err := g.CheckDoubleRoll(1, 1, 0)
		require.NoError(t, err)
		a, err := g.CheckDoubleRoll(1, 2, 0)
		require.NoError(t, err)
		assert.Equal(t, ActionNothing, a)
		assert.False(t, g.DoubleRollPending())
	})

	t.Run("other player while counter active", func(t *testing.T) {
		_, err := g.CheckDoubleRoll(5, 5, 0)
		require.NoError(t, err)
		_, err = g.CheckDoubleRoll(5, 5, 1)
		assert.ErrorIs(t, err, ErrDoubleRollOwner)
	})
}

func TestMovePlayer(t *testing.T) {
	g, _ := setupTestGame(t, 1)

	require.NoError(t, g.MovePlayer(0, ByStepsOf(7)))
	assert.Equal(t, 7, g.Players[0].Position)

	require.NoError(t, g.MovePlayer(0, ToPosition(PosBoardwalk)))
	assert.Equal(t, PosBoardwalk, g.Players[0].Position)

	steps, pos := 3, 5
	require.NoError(t, g.MovePlayer(0, Movement{Steps: &steps, Position: &pos}))
	assert.Equal(t, 5, g.Players[0].Position, "position wins over steps")

	assert.ErrorIs(t, g.MovePlayer(0, Movement{}), ErrNoMovement)
	assert.ErrorIs(t, g.MovePlayer(0, ToPosition(40)), ErrInvalidPosition)
}

// Player at 38 rolling past 40 collects Go money and wraps.
func TestPassGoScenario(t *testing.T) {
	g, _ := setupTestGame(t, 1)
	require.NoError(t, g.MovePlayer(0, ToPosition(38)))
	require.NoError(t, g.MovePlayer(0, ByStepsOf(5)))

	assert.Equal(t, ActionPassGo, g.CheckGoPass(0))
	require.NoError(t, g.AdjustCash(0, g.Rules.GoCash))
	g.OffsetGoPos(0)

	assert.Equal(t, 3, g.Players[0].Position)
	assert.Equal(t, 1700, g.Players[0].Cash)
	assert.Equal(t, ActionNothing, g.CheckGoPass(0))
}

func TestTriggerSpace(t *testing.T) {
	g, _ := setupTestGame(t, 2)
	cases := []struct {
		pos  int
		want Action
	}{
		{0, ActionNothing},
		{1, ActionAskToBuy},
		{2, ActionDrawCCCard},
		{4, ActionChargeIncomeTax},
		{7, ActionDrawChanceCard},
		{10, ActionNothing},
		{PosGoToJail, ActionSendToJail},
		{38, ActionChargeLuxuryTax},
	}
	for _, tc := range cases {
		require.NoError(t, g.MovePlayer(0, ToPosition(tc.pos)))
		a, err := g.TriggerSpace(0)
		require.NoError(t, err)
		assert.Equal(t, tc.want, a, "position %d", tc.pos)
	}

	give(t, g, 0, 1)
	a, _ := g.TriggerSpace(0)
	assert.Equal(t, ActionChargeLuxuryTax, a)
	require.NoError(t, g.MovePlayer(0, ToPosition(1)))
	a, _ = g.TriggerSpace(0)
	assert.Equal(t, ActionNothing, a, "own property")
	require.NoError(t, g.MovePlayer(1, ToPosition(1)))
	a, _ = g.TriggerSpace(1)
	assert.Equal(t, ActionPayRent, a)
}

// Player lands on a 60-price property and buys it.
func TestBuyPropertyScenario(t *testing.T) {
	g, _ := setupTestGame(t, 2)
	require.NoError(t, g.MovePlayer(0, ToPosition(1)))
	require.NoError(t, g.BuyProperty(0))

	p := g.Players[0]
	assert.Equal(t, 1440, p.Cash)
	owner, ok := g.Map.Spaces[1].(*PropertySpace).Owner()
	require.True(t, ok)
	assert.Equal(t, 0, owner)
	assert.Contains(t, p.Properties, 1)

	t.Run("already owned", func(t *testing.T) {
		require.NoError(t, g.MovePlayer(1, ToPosition(1)))
		assert.ErrorIs(t, g.BuyProperty(1), ErrAlreadyOwned)
	})
	t.Run("not a property", func(t *testing.T) {
		require.NoError(t, g.MovePlayer(1, ToPosition(2)))
		assert.ErrorIs(t, g.BuyProperty(1), ErrNotProperty)
	})
	t.Run("insufficient cash", func(t *testing.T) {
		g.Players[1].Cash = 100
		require.NoError(t, g.MovePlayer(1, ToPosition(PosBoardwalk)))
		err := g.BuyProperty(1)
		var cashErr *InsufficientCashError
		require.True(t, errors.As(err, &cashErr))
		assert.Equal(t, 1, cashErr.PlayerID)
		assert.Equal(t, 100, cashErr.Current)
		assert.Equal(t, 400, cashErr.Required)
		assert.Equal(t, 100, g.Players[1].Cash)
	})
}

func TestAuctionRotation(t *testing.T) {
	g, _ := setupTestGame(t, 4)
	g.CurrentPlayer = 2
	require.NoError(t, g.AuctionProperty(PosBoardwalk))
	a, ok := g.Auction()
	require.True(t, ok)
	assert.Equal(t, []int{3, 0, 1, 2}, a.Bidders)
	assert.Equal(t, 0, a.Price)

	assert.ErrorIs(t, g.AuctionProperty(PosBoardwalk), ErrAuctionActive)
	g.EndAuction()
	_, ok = g.Auction()
	assert.False(t, ok)
}

// A opens an auction; B 50, C 50, D passes, A passes, B 10, C passes: B wins at 110.
func TestAuctionScenario(t *testing.T) {
	g, _ := setupTestGame(t, 4)
	const a, b, c, d = 0, 1, 2, 3
	require.NoError(t, g.AuctionProperty(1))

	require.NoError(t, g.BidProperty(50))
	require.NoError(t, g.BidProperty(50))
	require.NoError(t, g.BidProperty(0))
	require.NoError(t, g.BidProperty(0))
	state, _ := g.Auction()
	assert.Equal(t, []int{b, c}, state.Bidders)
	require.NoError(t, g.BidProperty(10))
	require.NoError(t, g.BidProperty(0))

	state, _ = g.Auction()
	require.Len(t, state.Bidders, 1)
	assert.Equal(t, b, state.Bidders[0])
	assert.Equal(t, 110, state.Price)

	price := state.Price
	require.NoError(t, g.BuyPropertyTransaction(state.Bidders[0], state.Property, &price))
	g.EndAuction()
	assert.Equal(t, 1390, g.Players[b].Cash)
	assert.Equal(t, 1500, g.Players[a].Cash)
	assert.Equal(t, 1500, g.Players[d].Cash)
	assert.Contains(t, g.Players[b].Properties, 1)
}

func TestAuctionPassesLeaveOneBidder(t *testing.T) {
	for k := 2; k <= 6; k++ {
		g, _ := setupTestGame(t, k)
		require.NoError(t, g.AuctionProperty(3))
		require.NoError(t, g.BidProperty(20))
		for i := 0; i < k-1; i++ {
			require.NoError(t, g.BidProperty(0))
		}
		state, _ := g.Auction()
		require.Len(t, state.Bidders, 1)
		assert.Equal(t, 1, state.Bidders[0])
		assert.Equal(t, 20, state.Price)
	}
}

func TestBidPropertyErrors(t *testing.T) {
	g, _ := setupTestGame(t, 2)
	assert.ErrorIs(t, g.BidProperty(10), ErrNoAuction)

	require.NoError(t, g.AuctionProperty(3))
	assert.ErrorIs(t, g.BidProperty(-1), ErrNegativeBid)

	var cashErr *InsufficientCashError
	assert.ErrorAs(t, g.BidProperty(1501), &cashErr)

	require.NoError(t, g.BidProperty(0))
	require.NoError(t, g.BidProperty(0))
	assert.ErrorIs(t, g.BidProperty(0), ErrNoBidders)
}

func TestTransferCash(t *testing.T) {
	g, _ := setupTestGame(t, 2)
	require.NoError(t, g.TransferCash(0, 1, 500))
	assert.Equal(t, 1000, g.Players[0].Cash)
	assert.Equal(t, 2000, g.Players[1].Cash)

	err := g.TransferCash(0, 1, 1001)
	var cashErr *InsufficientCashError
	require.ErrorAs(t, err, &cashErr)
	assert.Equal(t, 1000, cashErr.Current)
	assert.Equal(t, 1001, cashErr.Required)
	assert.Equal(t, 1000, g.Players[0].Cash, "failed transfer has no effect")

	require.NoError(t, g.ForceTransferCash(0, 1, 1200))
	assert.Equal(t, -200, g.Players[0].Cash)
}

func TestGetPayRentInfo(t *testing.T) {
	g, dice := setupTestGame(t, 2)
	give(t, g, 1, 1)
	g.CurrentPlayer = 0
	require.NoError(t, g.MovePlayer(0, ToPosition(1)))

	payee, rent, err := g.GetPayRentInfo()
	require.NoError(t, err)
	assert.Equal(t, 1, payee)
	assert.Equal(t, 2, rent)

	t.Run("unowned", func(t *testing.T) {
		require.NoError(t, g.MovePlayer(0, ToPosition(3)))
		_, _, err := g.GetPayRentInfo()
		assert.ErrorIs(t, err, ErrNotOwned)
	})
	t.Run("self owned", func(t *testing.T) {
		give(t, g, 0, 6)
		require.NoError(t, g.MovePlayer(0, ToPosition(6)))
		_, _, err := g.GetPayRentInfo()
		assert.ErrorIs(t, err, ErrSelfOwned)
	})
	t.Run("utility uses last roll", func(t *testing.T) {
		give(t, g, 1, 12)
		require.NoError(t, g.MovePlayer(0, ToPosition(12)))
		dice.Push(3, 4)
		g.RollDice()
		_, rent, err := g.GetPayRentInfo()
		require.NoError(t, err)
		assert.Equal(t, 28, rent)

		give(t, g, 1, 28)
		_, rent, err = g.GetPayRentInfo()
		require.NoError(t, err)
		assert.Equal(t, 70, rent)
	})
	t.Run("card rent rules", func(t *testing.T) {
		give(t, g, 1, 5, 15)
		require.NoError(t, g.MovePlayer(0, ToPosition(15)))
		_, rent, err := g.GetCardRentInfo(ActionSendToNearestRailroad)
		require.NoError(t, err)
		assert.Equal(t, 100, rent)

		g.Map.sets[UtilitySetID].Monopoly = false
		require.NoError(t, g.MovePlayer(0, ToPosition(12)))
		_, rent, err = g.GetCardRentInfo(ActionSendToNearestUtility)
		require.NoError(t, err)
		assert.Equal(t, 70, rent)
	})
}

func TestJailCards(t *testing.T) {
	g, _ := setupTestGame(t, 1)
	before := g.ChanceDeck.Len()

	var jailCard Card
	for i := 0; i < len(ChanceCards); i++ {
		c, err := g.DrawChanceCard()
		require.NoError(t, err)
		if c.Ownable {
			jailCard = c
		}
	}
	require.True(t, jailCard.Ownable)
	assert.Equal(t, before-1, g.ChanceDeck.Len())

	require.NoError(t, g.AddPlayerJailCard(0, jailCard))
	cc := DeckCommunityChest
	_, err := g.UsePlayerJailCard(0, &cc)
	assert.ErrorIs(t, err, ErrNoJailCard)

	used, err := g.UsePlayerJailCard(0, nil)
	require.NoError(t, err)
	assert.Equal(t, jailCard.ID, used.ID)
	assert.Empty(t, g.Players[0].JailCards)
	assert.Equal(t, before, g.ChanceDeck.Len())
	cards := g.ChanceDeck.Cards()
	assert.Equal(t, jailCard.ID, cards[len(cards)-1].ID)
}

func TestSendToJail(t *testing.T) {
	g, _ := setupTestGame(t, 1)
	_, err := g.CheckDoubleRoll(2, 2, 0)
	require.NoError(t, err)
	require.NoError(t, g.MovePlayer(0, ToPosition(PosGoToJail)))
	require.NoError(t, g.SendToJail(0))

	p := g.Players[0]
	assert.Equal(t, PosJail, p.Position)
	require.True(t, p.InJail())
	assert.Equal(t, 0, *p.JailTurns)
	assert.False(t, g.DoubleRollPending())

	n, err := g.AddJailTurn(0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NoError(t, g.ReleaseFromJail(0))
	assert.ErrorIs(t, g.ReleaseFromJail(0), ErrNotInJail)
}

func TestNextPlayerWraps(t *testing.T) {
	g, _ := setupTestGame(t, 3)
	g.CurrentPlayer = 2
	_, _ = g.CheckDoubleRoll(1, 1, 2)
	assert.Equal(t, 0, g.NextPlayer())
	assert.False(t, g.DoubleRollPending())
}

func TestMortgageThroughGame(t *testing.T) {
	g, _ := setupTestGame(t, 2)
	give(t, g, 0, 37)

	_, err := g.MortgageProperty(1, 37)
	assert.ErrorIs(t, err, ErrNotOwner)

	got, err := g.MortgageProperty(0, 37)
	require.NoError(t, err)
	assert.Equal(t, 175, got)
	assert.Equal(t, 1675, g.Players[0].Cash)

	cost, err := g.UnmortgageProperty(0, 37)
	require.NoError(t, err)
	assert.Equal(t, 193, cost)
	assert.Equal(t, 1482, g.Players[0].Cash)
}

func TestBuildAndSell(t *testing.T) {
	g, _ := setupTestGame(t, 1)
	give(t, g, 0, 1, 3)

	for round := 0; round < HouseLimit; round++ {
		for _, pos := range []int{1, 3} {
			paid, err := g.BuildOnProperty(0, pos)
			require.NoError(t, err)
			assert.Equal(t, 50, paid)
		}
	}
	paid, err := g.BuildOnProperty(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 50, paid)
	s := g.Map.Spaces[1].(*PropertySpace)
	assert.Equal(t, 0, s.Houses)
	assert.Equal(t, 1, s.Hotels)
	assert.Equal(t, 1500-9*50, g.Players[0].Cash)

	houses, hotels := g.CountBuildings(0)
	assert.Equal(t, 4, houses)
	assert.Equal(t, 1, hotels)

	refund, err := g.SellFromProperty(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 25, refund)
	assert.Equal(t, HouseLimit, s.Houses)
	assert.Equal(t, 0, s.Hotels)
}
