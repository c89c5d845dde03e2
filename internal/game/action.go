// internal/game/action.go
package game

// Action is the outcome of landing on a space or drawing a card. Every dispatch site
// switches over it exhaustively.
type Action int

const (
	ActionNothing Action = iota
	ActionAskToBuy
	ActionStartAuction
	ActionPayRent
	ActionAskToRoll
	ActionSendToJail
	ActionPassGo
	ActionDrawChanceCard
	ActionDrawCCCard
	ActionChargeIncomeTax
	ActionChargeLuxuryTax

	// Card actions
	ActionSendToBoardwalk
	ActionSendToGo
	ActionSendToIllinoisAve
	ActionSendToStCharlesPlace
	ActionSendToNearestRailroad
	ActionSendToNearestUtility
	ActionSendToReadingRailroad
	ActionSendBackThreeSpaces
	ActionCollectJailCard
	ActionCollectDividend
	ActionCollectLoan
	ActionCollectBankError
	ActionCollectStockSale
	ActionCollectHolidayFund
	ActionCollectTaxRefund
	ActionCollectInsurance
	ActionCollectConsultancyFee
	ActionCollectContestPrize
	ActionCollectInheritance
	ActionCollectGrandOperaNight
	ActionCollectBirthday
	ActionPayChairmanFee
	ActionChargePoorTax
	ActionChargeDoctorFee
	ActionChargeHospitalFee
	ActionChargeSchoolFee
	ActionChargeGeneralRepairFee
	ActionChargeStreetRepairFee
)

var actionNames = map[Action]string{
	ActionNothing:                "nothing",
	ActionAskToBuy:               "ask_to_buy",
	ActionStartAuction:           "start_auction",
	ActionPayRent:                "pay_rent",
	ActionAskToRoll:              "ask_to_roll",
	ActionSendToJail:             "send_to_jail",
	ActionPassGo:                 "pass_go",
	ActionDrawChanceCard:         "draw_chance_card",
	ActionDrawCCCard:             "draw_cc_card",
	ActionChargeIncomeTax:        "charge_income_tax",
	ActionChargeLuxuryTax:        "charge_luxury_tax",
	ActionSendToBoardwalk:        "send_to_boardwalk",
	ActionSendToGo:               "send_to_go",
	ActionSendToIllinoisAve:      "send_to_illinois_ave",
	ActionSendToStCharlesPlace:   "send_to_st_charles_place",
	ActionSendToNearestRailroad:  "send_to_nearest_railroad",
	ActionSendToNearestUtility:   "send_to_nearest_utility",
	ActionSendToReadingRailroad:  "send_to_reading_railroad",
	ActionSendBackThreeSpaces:    "send_back_three_spaces",
	ActionCollectJailCard:        "collect_jail_card",
	ActionCollectDividend:        "collect_dividend",
	ActionCollectLoan:            "collect_loan",
	ActionCollectBankError:       "collect_bank_error",
	ActionCollectStockSale:       "collect_stock_sale",
	ActionCollectHolidayFund:     "collect_holiday_fund",
	ActionCollectTaxRefund:       "collect_tax_refund",
	ActionCollectInsurance:       "collect_insurance",
	ActionCollectConsultancyFee:  "collect_consultancy_fee",
	ActionCollectContestPrize:    "collect_contest_prize",
	ActionCollectInheritance:     "collect_inheritance",
	ActionCollectGrandOperaNight: "collect_grand_opera_night",
	ActionCollectBirthday:        "collect_birthday",
	ActionPayChairmanFee:         "pay_chairman_fee",
	ActionChargePoorTax:          "charge_poor_tax",
	ActionChargeDoctorFee:        "charge_doctor_fee",
	ActionChargeHospitalFee:      "charge_hospital_fee",
	ActionChargeSchoolFee:        "charge_school_fee",
	ActionChargeGeneralRepairFee: "charge_general_repair_fee",
	ActionChargeStreetRepairFee:  "charge_street_repair_fee",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// DeckType identifies one of the two card decks.
type DeckType int

const (
	DeckChance DeckType = iota
	DeckCommunityChest
)

func (d DeckType) String() string {
	switch d {
	case DeckChance:
		return "chance"
	case DeckCommunityChest:
		return "community_chest"
	default:
		return "unknown"
	}
}

// TaxType distinguishes the two tax squares.
type TaxType int

const (
	TaxIncome TaxType = iota
	TaxLuxury
)

func (t TaxType) String() string {
	switch t {
	case TaxIncome:
		return "income_tax"
	case TaxLuxury:
		return "luxury_tax"
	default:
		return "unknown"
	}
}

// Board positions referenced by cards and jail logic.
const (
	PosGo                = 0
	PosReadingRailroad   = 5
	PosJail              = 10
	PosStCharlesPlace    = 11
	PosIllinoisAve       = 24
	PosGoToJail          = 30
	PosBoardwalk         = 39
	BoardSize            = 40
	HouseLimit           = 4
	HotelLimit           = 1
	MaxDoubleRoll        = 3
	railroadRentCardMult = 2
	utilityCardMult      = 10
)

var (
	RailroadPositions = []int{5, 15, 25, 35}
	UtilityPositions  = []int{12, 28}
)

// Card cash amounts.
const (
	AmountDividend         = 50
	AmountLoan             = 150
	AmountBankError        = 200
	AmountStockSale        = 50
	AmountHolidayFund      = 100
	AmountTaxRefund        = 20
	AmountInsurance        = 100
	AmountConsultancyFee   = 25
	AmountContestPrize     = 10
	AmountInheritance      = 100
	AmountGrandOperaNight  = 50
	AmountBirthday         = 10
	AmountChairmanFee      = 50
	AmountPoorTax          = 15
	AmountDoctorFee        = 50
	AmountHospitalFee      = 100
	AmountSchoolFee        = 50
	AmountGeneralRepairHse = 25
	AmountGeneralRepairHtl = 100
	AmountStreetRepairHse  = 40
	AmountStreetRepairHtl  = 115
)
