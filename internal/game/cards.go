// internal/game/cards.go
package game

// ChanceCards is the fixed chance card list.
var ChanceCards = []Card{
	{ID: 0, Description: "Advance to Boardwalk.", Action: ActionSendToBoardwalk},
	{ID: 1, Description: "Advance to Go (Collect $200).", Action: ActionSendToGo},
	{ID: 2, Description: "Advance to Illinois Ave. If you pass Go, collect $200.", Action: ActionSendToIllinoisAve},
	{ID: 3, Description: "Advance to St. Charles Place. If you pass Go, collect $200.", Action: ActionSendToStCharlesPlace},
	{ID: 4, Description: "Advance to the nearest Railroad. If unowned, you may buy it from the Bank. If owned, pay the owner twice the rental to which they are otherwise entitled.", Action: ActionSendToNearestRailroad},
	{ID: 5, Description: "Advance to the nearest Railroad. If unowned, you may buy it from the Bank. If owned, pay the owner twice the rental to which they are otherwise entitled.", Action: ActionSendToNearestRailroad},
	{ID: 6, Description: "Advance token to nearest Utility. If unowned, you may buy it from the Bank. If owned, throw dice and pay owner a total ten times amount thrown.", Action: ActionSendToNearestUtility},
	{ID: 7, Description: "Bank pays you dividend of $50.", Action: ActionCollectDividend},
	{ID: 8, Description: "Get out of Jail Free. This card may be kept until needed.", Action: ActionCollectJailCard, Ownable: true},
	{ID: 9, Description: "Go back 3 spaces.", Action: ActionSendBackThreeSpaces},
	{ID: 10, Description: "Go to Jail. Go directly to Jail. Do not pass Go, do not collect $200.", Action: ActionSendToJail},
	{ID: 11, Description: "Make general repairs on all your property. For each house pay $25. For each hotel pay $100.", Action: ActionChargeGeneralRepairFee},
	{ID: 12, Description: "Pay poor tax of $15.", Action: ActionChargePoorTax},
	{ID: 13, Description: "Take a trip to Reading Railroad. If you pass Go, collect $200.", Action: ActionSendToReadingRailroad},
	{ID: 14, Description: "You have been elected Chairman of the Board. Pay each player $50.", Action: ActionPayChairmanFee},
	{ID: 15, Description: "Your building and loan matures. Collect $150.", Action: ActionCollectLoan},
}

// CommunityChestCards is the fixed community chest card list.
var CommunityChestCards = []Card{
	{ID: 100, Description: "Advance to Go (Collect $200).", Action: ActionSendToGo},
	{ID: 101, Description: "Bank error in your favor. Collect $200.", Action: ActionCollectBankError},
	{ID: 102, Description: "Doctor's fee. Pay $50.", Action: ActionChargeDoctorFee},
	{ID: 103, Description: "From sale of stock you get $50.", Action: ActionCollectStockSale},
	{ID: 104, Description: "Get out of Jail Free. This card may be kept until needed.", Action: ActionCollectJailCard, Ownable: true},
	{ID: 105, Description: "Go to Jail. Go directly to Jail. Do not pass Go, do not collect $200.", Action: ActionSendToJail},
	{ID: 106, Description: "Grand Opera Night. Collect $50 from every player for opening night seats.", Action: ActionCollectGrandOperaNight},
	{ID: 107, Description: "Holiday fund matures. Receive $100.", Action: ActionCollectHolidayFund},
	{ID: 108, Description: "Income tax refund. Collect $20.", Action: ActionCollectTaxRefund},
	{ID: 109, Description: "It is your birthday. Collect $10 from every player.", Action: ActionCollectBirthday},
	{ID: 110, Description: "Life insurance matures. Collect $100.", Action: ActionCollectInsurance},
	{ID: 111, Description: "Hospital Fees. Pay $100.", Action: ActionChargeHospitalFee},
	{ID: 112, Description: "School fees. Pay $50.", Action: ActionChargeSchoolFee},
	{ID: 113, Description: "Receive $25 consultancy fee.", Action: ActionCollectConsultancyFee},
	{ID: 114, Description: "You are assessed for street repairs: Pay $40 per house and $115 per hotel you own.", Action: ActionChargeStreetRepairFee},
	{ID: 115, Description: "You have won second prize in a beauty contest. Collect $10.", Action: ActionCollectContestPrize},
	{ID: 116, Description: "You inherit $100.", Action: ActionCollectInheritance},
}
