// internal/game/gamemap.go
package game

import (
	"fmt"
	"sort"
)

// PropertySet groups the properties of one color or kind. Members are board positions.
type PropertySet struct {
	ID       int
	Members  []int
	Monopoly bool
}

// GameMap owns every space and property set on the board, plus the bank's building supply.
// Properties and sets refer to each other by position and set id only.
type GameMap struct {
	Spaces     []Space
	sets       map[int]*PropertySet
	HousesLeft int
	HotelsLeft int
}

// Size is the number of squares on the board.
func (m *GameMap) Size() int {
	return len(m.Spaces)
}

// Space returns the square at pos.
func (m *GameMap) Space(pos int) (Space, error) {
	if pos < 0 || pos >= len(m.Spaces) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPosition, pos)
	}
	return m.Spaces[pos], nil
}

// Property returns the purchasable square at pos.
func (m *GameMap) Property(pos int) (Property, error) {
	sp, err := m.Space(pos)
	if err != nil {
		return nil, err
	}
	p, ok := sp.(Property)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotProperty, sp.Name())
	}
	return p, nil
}

// Ownable returns the ownership record of the property at pos.
func (m *GameMap) Ownable(pos int) (*Ownable, error) {
	p, err := m.Property(pos)
	if err != nil {
		return nil, err
	}
	return p.base(), nil
}

// Street returns the color-group property at pos.
func (m *GameMap) Street(pos int) (*PropertySpace, error) {
	p, err := m.Property(pos)
	if err != nil {
		return nil, err
	}
	s, ok := p.(*PropertySpace)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotBuildable, p.Name())
	}
	return s, nil
}

// Set returns the property set with the given id.
func (m *GameMap) Set(id int) (*PropertySet, bool) {
	s, ok := m.sets[id]
	return s, ok
}

// SetIDs lists the set ids in ascending order.
func (m *GameMap) SetIDs() []int {
	ids := make([]int, 0, len(m.sets))
	for id := range m.sets {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// AssignOwner changes the owner of the property at pos and recomputes its set's monopoly.
// A nil uid clears the owner.
func (m *GameMap) AssignOwner(pos int, uid *int) error {
	o, err := m.Ownable(pos)
	if err != nil {
		return err
	}
	o.setOwner(uid)
	m.UpdateMonopoly(o.SetID)
	return nil
}

// UpdateMonopoly sets Monopoly to true iff every member has the same owner.
func (m *GameMap) UpdateMonopoly(setID int) {
	set, ok := m.sets[setID]
	if !ok {
		return
	}
	set.Monopoly = false
	if len(set.Members) == 0 {
		return
	}
	first, ok := m.mustOwnable(set.Members[0]).Owner()
	if !ok {
		return
	}
	for _, pos := range set.Members[1:] {
		owner, ok := m.mustOwnable(pos).Owner()
		if !ok || owner != first {
			return
		}
	}
	set.Monopoly = true
}

// CountOwned is the number of set members owned by uid.
func (m *GameMap) CountOwned(setID, uid int) int {
	set, ok := m.sets[setID]
	if !ok {
		return 0
	}
	count := 0
	for _, pos := range set.Members {
		if owner, ok := m.mustOwnable(pos).Owner(); ok && owner == uid {
			count++
		}
	}
	return count
}

// CountHousesAndHotels totals buildings across a set. Sets that are not monopolies have none.
func (m *GameMap) CountHousesAndHotels(setID int) (houses, hotels int) {
	set, ok := m.sets[setID]
	if !ok || !set.Monopoly {
		return 0, 0
	}
	for _, pos := range set.Members {
		if s, ok := m.Spaces[pos].(*PropertySpace); ok {
			houses += s.Houses
			hotels += s.Hotels
		}
	}
	return houses, hotels
}

// CheckEvenlyAdd reports whether a property currently at houseCount house-equivalents may
// take one more building.
func (m *GameMap) CheckEvenlyAdd(setID, houseCount int) bool {
	return m.checkEven(setID, houseCount, -1)
}

// CheckEvenlyRemove reports whether a property currently at houseCount house-equivalents
// may lose one building.
func (m *GameMap) CheckEvenlyRemove(setID, houseCount int) bool {
	return m.checkEven(setID, houseCount, 1)
}

// checkEven compares houseCount against every member. A hotel is worth HouseLimit+1 houses.
func (m *GameMap) checkEven(setID, houseCount, offset int) bool {
	set, ok := m.sets[setID]
	if !ok || !set.Monopoly {
		return false
	}
	for _, pos := range set.Members {
		s, ok := m.Spaces[pos].(*PropertySpace)
		if !ok {
			return false
		}
		diff := houseCount - houseEquivalent(s)
		if diff != 0 && diff != offset {
			return false
		}
	}
	return true
}

func houseEquivalent(s *PropertySpace) int {
	return s.Houses + s.Hotels*(HouseLimit+1)
}

// Mortgage pledges the property at pos and returns the cash the owner receives.
func (m *GameMap) Mortgage(pos int) (int, error) {
	o, err := m.Ownable(pos)
	if err != nil {
		return 0, err
	}
	if o.Mortgaged {
		return 0, ErrAlreadyMortgaged
	}
	if _, ok := o.Owner(); !ok {
		return 0, ErrNotOwned
	}
	if m.setHasBuildings(o.SetID) {
		return 0, ErrBuildingsInSet
	}
	o.Mortgaged = true
	return o.MortgageValue(), nil
}

// Unmortgage lifts the mortgage and returns what the owner must repay.
func (m *GameMap) Unmortgage(pos int) (int, error) {
	o, err := m.Ownable(pos)
	if err != nil {
		return 0, err
	}
	if !o.Mortgaged {
		return 0, ErrNotMortgaged
	}
	o.Mortgaged = false
	return o.UnmortgageValue(), nil
}

func (m *GameMap) setHasBuildings(setID int) bool {
	set, ok := m.sets[setID]
	if !ok {
		return false
	}
	for _, pos := range set.Members {
		if s, ok := m.Spaces[pos].(*PropertySpace); ok && (s.Houses > 0 || s.Hotels > 0) {
			return true
		}
	}
	return false
}

func (m *GameMap) setHasMortgage(setID int) bool {
	set, ok := m.sets[setID]
	if !ok {
		return false
	}
	for _, pos := range set.Members {
		if m.mustOwnable(pos).Mortgaged {
			return true
		}
	}
	return false
}

// checkBuildable holds the rules shared by every building change.
func (m *GameMap) checkBuildable(s *PropertySpace) error {
	if s.Mortgaged || m.setHasMortgage(s.SetID) {
		return ErrMortgaged
	}
	if set, ok := m.sets[s.SetID]; !ok || !set.Monopoly {
		return ErrNotMonopoly
	}
	return nil
}

// AllowAddHouse reports whether AddHouse would succeed.
func (m *GameMap) AllowAddHouse(pos int) error {
	s, err := m.Street(pos)
	if err != nil {
		return err
	}
	if err := m.checkBuildable(s); err != nil {
		return err
	}
	if s.Hotels > 0 || s.Houses >= HouseLimit {
		return ErrHouseLimit
	}
	if !m.CheckEvenlyAdd(s.SetID, houseEquivalent(s)) {
		return ErrUneven
	}
	if m.HousesLeft < 1 {
		return ErrBankSupply
	}
	return nil
}

// AddHouse builds one house at pos.
func (m *GameMap) AddHouse(pos int) error {
	if err := m.AllowAddHouse(pos); err != nil {
		return err
	}
	s, _ := m.Street(pos)
	s.Houses++
	m.HousesLeft--
	return nil
}

// AllowAddHotel reports whether AddHotel would succeed.
func (m *GameMap) AllowAddHotel(pos int) error {
	s, err := m.Street(pos)
	if err != nil {
		return err
	}
	if err := m.checkBuildable(s); err != nil {
		return err
	}
	if s.Hotels >= HotelLimit {
		return ErrHotelLimit
	}
	if s.Houses != HouseLimit {
		return ErrHouseLimit
	}
	if !m.CheckEvenlyAdd(s.SetID, houseEquivalent(s)) {
		return ErrUneven
	}
	if m.HotelsLeft < 1 {
		return ErrBankSupply
	}
	return nil
}

// AddHotel replaces HouseLimit houses at pos with a hotel. The houses go back to the bank.
func (m *GameMap) AddHotel(pos int) error {
	if err := m.AllowAddHotel(pos); err != nil {
		return err
	}
	s, _ := m.Street(pos)
	s.Houses = 0
	s.Hotels = 1
	m.HotelsLeft--
	m.HousesLeft += HouseLimit
	return nil
}

// AllowRemoveHouse reports whether RemoveHouse would succeed.
func (m *GameMap) AllowRemoveHouse(pos int) error {
	s, err := m.Street(pos)
	if err != nil {
		return err
	}
	if s.Houses == 0 {
		return ErrNoHouses
	}
	if !m.CheckEvenlyRemove(s.SetID, houseEquivalent(s)) {
		return ErrUneven
	}
	return nil
}

// RemoveHouse sells one house at pos back to the bank.
func (m *GameMap) RemoveHouse(pos int) error {
	if err := m.AllowRemoveHouse(pos); err != nil {
		return err
	}
	s, _ := m.Street(pos)
	s.Houses--
	m.HousesLeft++
	return nil
}

// AllowRemoveHotel reports whether RemoveHotel would succeed.
func (m *GameMap) AllowRemoveHotel(pos int) error {
	s, err := m.Street(pos)
	if err != nil {
		return err
	}
	if s.Hotels == 0 {
		return ErrNoHotel
	}
	if !m.CheckEvenlyRemove(s.SetID, houseEquivalent(s)) {
		return ErrUneven
	}
	if m.HousesLeft < HouseLimit {
		return ErrBankSupply
	}
	return nil
}

// RemoveHotel sells the hotel at pos and puts HouseLimit houses back on the property.
func (m *GameMap) RemoveHotel(pos int) error {
	if err := m.AllowRemoveHotel(pos); err != nil {
		return err
	}
	s, _ := m.Street(pos)
	s.Hotels = 0
	s.Houses = HouseLimit
	m.HotelsLeft++
	m.HousesLeft -= HouseLimit
	return nil
}

// ComputeRent returns the rent owed for landing on pos. diceSum is only used by utilities.
func (m *GameMap) ComputeRent(pos, diceSum int) (int, error) {
	p, err := m.Property(pos)
	if err != nil {
		return 0, err
	}
	o := p.base()
	if o.Mortgaged {
		return 0, nil
	}
	switch s := p.(type) {
	case *PropertySpace:
		set := m.sets[s.SetID]
		switch {
		case s.Hotels > 0:
			return s.Rent[len(s.Rent)-1], nil
		case s.Houses > 0:
			return s.Rent[s.Houses], nil
		case set != nil && set.Monopoly:
			return s.Rent[0] * 2, nil
		default:
			return s.Rent[0], nil
		}
	case *RailroadSpace:
		owner, ok := s.Owner()
		if !ok {
			return 0, ErrNotOwned
		}
		n := m.CountOwned(s.SetID, owner)
		if n == 0 {
			return 0, nil
		}
		return s.Rent[n-1], nil
	case *UtilitySpace:
		if set, ok := m.sets[s.SetID]; ok && set.Monopoly {
			return diceSum * 10, nil
		}
		return diceSum * 4, nil
	}
	return 0, ErrNotProperty
}

// OwnedBy lists the positions owned by uid in board order.
func (m *GameMap) OwnedBy(uid int) []int {
	var out []int
	for pos, sp := range m.Spaces {
		p, ok := sp.(Property)
		if !ok {
			continue
		}
		if owner, ok := p.base().Owner(); ok && owner == uid {
			out = append(out, pos)
		}
	}
	return out
}

// Nearest returns the first of candidates strictly ahead of pos, wrapping past Go.
func Nearest(pos int, candidates []int) int {
	for _, c := range candidates {
		if c > pos {
			return c
		}
	}
	return candidates[0]
}

func (m *GameMap) mustOwnable(pos int) *Ownable {
	return m.Spaces[pos].(Property).base()
}
