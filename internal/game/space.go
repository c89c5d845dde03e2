// internal/game/space.go
package game

// Space is a square on the board. The set of implementations is closed to this package.
type Space interface {
	Name() string
	// Trigger resolves what happens to player uid landing here.
	Trigger(uid int) Action
	isSpace()
}

// NthSpace is a square where nothing happens (Go, Jail visiting, Free Parking).
type NthSpace struct {
	name string
}

func (s *NthSpace) Name() string { return s.name }
func (s *NthSpace) Trigger(int) Action { return ActionNothing }
func (s *NthSpace) isSpace() {}

// JailSpace is the Go To Jail square.
type JailSpace struct {
	name string
}

func (s *JailSpace) Name() string { return s.name }
func (s *JailSpace) Trigger(int) Action { return ActionSendToJail }
func (s *JailSpace) isSpace() {}

// TaxSpace charges a flat tax.
type TaxSpace struct {
	name string
	Tax  TaxType
}

func (s *TaxSpace) Name() string { return s.name }
func (s *TaxSpace) Trigger(int) Action {
	if s.Tax == TaxLuxury {
		return ActionChargeLuxuryTax
	}
	return ActionChargeIncomeTax
}
func (s *TaxSpace) isSpace() {}

// DrawSpace draws from a deck.
type DrawSpace struct {
	name string
	Deck DeckType
}

func (s *DrawSpace) Name() string { return s.name }
func (s *DrawSpace) Trigger(int) Action {
	if s.Deck == DeckCommunityChest {
		return ActionDrawCCCard
	}
	return ActionDrawChanceCard
}
func (s *DrawSpace) isSpace() {}

// Ownable is the state shared by every property-like space.
type Ownable struct {
	ID        int
	name      string
	Price     int
	SetID     int
	Mortgaged bool
	owner     *int
}

func (o *Ownable) Name() string { return o.name }

// Owner returns the owning uid, if any.
func (o *Ownable) Owner() (int, bool) {
	if o.owner == nil {
		return 0, false
	}
	return *o.owner, true
}

func (o *Ownable) setOwner(uid *int) {
	if uid == nil {
		o.owner = nil
		return
	}
	v := *uid
	o.owner = &v
}

// MortgageValue is half the list price.
func (o *Ownable) MortgageValue() int {
	return o.Price / 2
}

// UnmortgageValue is the mortgage value plus 10% interest, rounded up.
func (o *Ownable) UnmortgageValue() int {
	return (o.MortgageValue()*11 + 9) / 10
}

func (o *Ownable) Trigger(uid int) Action {
	owner, ok := o.Owner()
	switch {
	case !ok:
		return ActionAskToBuy
	case owner == uid:
		return ActionNothing
	default:
		return ActionPayRent
	}
}

func (o *Ownable) base() *Ownable { return o }

// Property is implemented by every purchasable space.
type Property interface {
	Space
	base() *Ownable
}

// PropertySpace is a color-group street.
type PropertySpace struct {
	Ownable
	Rent       []int // indexed by house count, last entry is hotel rent
	HousePrice int
	HotelPrice int
	Houses     int
	Hotels     int
}

func (s *PropertySpace) isSpace() {}

// RailroadSpace rent depends only on how many railroads the owner holds.
type RailroadSpace struct {
	Ownable
	Rent []int
}

func (s *RailroadSpace) isSpace() {}

// UtilitySpace rent is a multiple of the dice roll.
type UtilitySpace struct {
	Ownable
}

func (s *UtilitySpace) isSpace() {}
