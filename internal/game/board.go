// internal/game/board.go
package game

// Set ids for non-street groups.
const (
	RailroadSetID = 10
	UtilitySetID  = 20
)

type streetDef struct {
	price int
	rent  []int
	house int
	hotel int
	set   int
}

type spaceKind int

const (
	kindNth spaceKind = iota
	kindGoToJail
	kindTax
	kindDraw
	kindStreet
	kindRailroad
	kindUtility
)

type boardDef struct {
	kind   spaceKind
	name   string
	tax    TaxType
	deck   DeckType
	street *streetDef
}

var railroadRent = []int{25, 50, 100, 200}

const (
	railroadPrice = 200
	utilityPrice  = 150
)

func street(name string, price int, rent []int, house, set int) boardDef {
	return boardDef{kind: kindStreet, name: name, street: &streetDef{
		price: price, rent: rent, house: house, hotel: house, set: set,
	}}
}

// standardBoard lists the 40 squares in order, starting at Go.
var standardBoard = []boardDef{
	{kind: kindNth, name: "Go"},
	street("Mediterranean Avenue", 60, []int{2, 10, 30, 90, 160, 250}, 50, 0),
	{kind: kindDraw, name: "Community Chest", deck: DeckCommunityChest},
	street("Baltic Avenue", 60, []int{4, 20, 60, 180, 320, 450}, 50, 0),
	{kind: kindTax, name: "Income Tax", tax: TaxIncome},
	{kind: kindRailroad, name: "Reading Railroad"},
	street("Oriental Avenue", 100, []int{6, 30, 90, 270, 400, 550}, 50, 1),
	{kind: kindDraw, name: "Chance", deck: DeckChance},
	street("Vermont Avenue", 100, []int{6, 30, 90, 270, 400, 550}, 50, 1),
	street("Connecticut Avenue", 120, []int{8, 40, 100, 300, 450, 600}, 50, 1),
	{kind: kindNth, name: "Jail"},
	street("St. Charles Place", 140, []int{10, 50, 150, 450, 625, 750}, 100, 2),
	{kind: kindUtility, name: "Electric Company"},
	street("States Avenue", 140, []int{10, 50, 150, 450, 625, 750}, 100, 2),
	street("Virginia Avenue", 160, []int{12, 60, 180, 500, 700, 900}, 100, 2),
	{kind: kindRailroad, name: "Pennsylvania Railroad"},
	street("St. James Place", 180, []int{14, 70, 200, 550, 750, 950}, 100, 3),
	{kind: kindDraw, name: "Community Chest", deck: DeckCommunityChest},
	street("Tennessee Avenue", 180, []int{14, 70, 200, 550, 750, 950}, 100, 3),
	street("New York Avenue", 200, []int{16, 80, 220, 600, 800, 1000}, 100, 3),
	{kind: kindNth, name: "Free Parking"},
	street("Kentucky Avenue", 220, []int{18, 90, 250, 700, 875, 1050}, 150, 4),
	{kind: kindDraw, name: "Chance", deck: DeckChance},
	street("Indiana Avenue", 220, []int{18, 90, 250, 700, 875, 1050}, 150, 4),
	street("Illinois Avenue", 240, []int{20, 100, 300, 750, 925, 1100}, 150, 4),
	{kind: kindRailroad, name: "B. & O. Railroad"},
	street("Atlantic Avenue", 260, []int{22, 110, 330, 800, 975, 1150}, 150, 5),
	street("Ventnor Avenue", 260, []int{22, 110, 330, 800, 975, 1150}, 150, 5),
	{kind: kindUtility, name: "Water Works"},
	street("Marvin Gardens", 280, []int{24, 120, 360, 850, 1025, 1200}, 150, 5),
	{kind: kindGoToJail, name: "Go To Jail"},
	street("Pacific Avenue", 300, []int{26, 130, 390, 900, 1100, 1275}, 200, 6),
	street("North Carolina Avenue", 300, []int{26, 130, 390, 900, 1100, 1275}, 200, 6),
	{kind: kindDraw, name: "Community Chest", deck: DeckCommunityChest},
	street("Pennsylvania Avenue", 320, []int{28, 150, 450, 1000, 1200, 1400}, 200, 6),
	{kind: kindRailroad, name: "Short Line"},
	{kind: kindDraw, name: "Chance", deck: DeckChance},
	street("Park Place", 350, []int{35, 175, 500, 1100, 1300, 1500}, 200, 7),
	{kind: kindTax, name: "Luxury Tax", tax: TaxLuxury},
	street("Boardwalk", 400, []int{50, 200, 600, 1400, 1700, 2000}, 200, 7),
}

// NewGameMap builds the standard board with the given bank building supply.
func NewGameMap(bankHouses, bankHotels int) *GameMap {
	m := &GameMap{
		Spaces:     make([]Space, 0, len(standardBoard)),
		sets:       make(map[int]*PropertySet),
		HousesLeft: bankHouses,
		HotelsLeft: bankHotels,
	}
	for pos, def := range standardBoard {
		var sp Space
		switch def.kind {
		case kindNth:
			sp = &NthSpace{name: def.name}
		case kindGoToJail:
			sp = &JailSpace{name: def.name}
		case kindTax:
			sp = &TaxSpace{name: def.name, Tax: def.tax}
		case kindDraw:
			sp = &DrawSpace{name: def.name, Deck: def.deck}
		case kindStreet:
			sd := def.street
			rent := make([]int, len(sd.rent))
			copy(rent, sd.rent)
			sp = &PropertySpace{
				Ownable:    Ownable{ID: pos, name: def.name, Price: sd.price, SetID: sd.set},
				Rent:       rent,
				HousePrice: sd.house,
				HotelPrice: sd.hotel,
			}
			m.addToSet(sd.set, pos)
		case kindRailroad:
			rent := make([]int, len(railroadRent))
			copy(rent, railroadRent)
			sp = &RailroadSpace{
				Ownable: Ownable{ID: pos, name: def.name, Price: railroadPrice, SetID: RailroadSetID},
				Rent:    rent,
			}
			m.addToSet(RailroadSetID, pos)
		case kindUtility:
			sp = &UtilitySpace{
				Ownable: Ownable{ID: pos, name: def.name, Price: utilityPrice, SetID: UtilitySetID},
			}
			m.addToSet(UtilitySetID, pos)
		}
		m.Spaces = append(m.Spaces, sp)
	}
	return m
}

func (m *GameMap) addToSet(setID, pos int) {
	set, ok := m.sets[setID]
	if !ok {
		set = &PropertySet{ID: setID}
		m.sets[setID] = set
	}
	set.Members = append(set.Members, pos)
}
