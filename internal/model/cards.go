// internal/model/cards.go
package model

import (
	"fmt"

	"github.com/jason-s-yu/monopoly/internal/game"
)

// cardTeleports maps advance-to cards to their destination.
var cardTeleports = map[game.Action]int{
	game.ActionSendToBoardwalk:       game.PosBoardwalk,
	game.ActionSendToGo:              game.PosGo,
	game.ActionSendToIllinoisAve:     game.PosIllinoisAve,
	game.ActionSendToStCharlesPlace:  game.PosStCharlesPlace,
	game.ActionSendToReadingRailroad: game.PosReadingRailroad,
}

// cardCredits are paid by the bank to the drawer.
var cardCredits = map[game.Action]int{
	game.ActionCollectDividend:       game.AmountDividend,
	game.ActionCollectLoan:           game.AmountLoan,
	game.ActionCollectBankError:      game.AmountBankError,
	game.ActionCollectStockSale:      game.AmountStockSale,
	game.ActionCollectHolidayFund:    game.AmountHolidayFund,
	game.ActionCollectTaxRefund:      game.AmountTaxRefund,
	game.ActionCollectInsurance:      game.AmountInsurance,
	game.ActionCollectConsultancyFee: game.AmountConsultancyFee,
	game.ActionCollectContestPrize:   game.AmountContestPrize,
	game.ActionCollectInheritance:    game.AmountInheritance,
}

// cardCharges are paid by the drawer to the bank.
var cardCharges = map[game.Action]int{
	game.ActionChargePoorTax:     game.AmountPoorTax,
	game.ActionChargeDoctorFee:   game.AmountDoctorFee,
	game.ActionChargeHospitalFee: game.AmountHospitalFee,
	game.ActionChargeSchoolFee:   game.AmountSchoolFee,
}

// resolveCard applies a drawn card. Cards that move the player chain into another landing,
// which may itself draw a card.
func (m *GameModel) resolveCard(uid int, card game.Card) error {
	p := m.Game.Players[uid]

	switch card.Action {
	case game.ActionSendToBoardwalk, game.ActionSendToGo, game.ActionSendToIllinoisAve,
		game.ActionSendToStCharlesPlace, game.ActionSendToReadingRailroad:
		if err := m.moveTo(uid, cardTeleports[card.Action]); err != nil {
			return err
		}
		return m.resolveLanding(uid, game.ActionNothing)

	case game.ActionSendToNearestRailroad, game.ActionSendToNearestUtility:
		targets := game.RailroadPositions
		if card.Action == game.ActionSendToNearestUtility {
			targets = game.UtilityPositions
		}
		if err := m.moveTo(uid, game.Nearest(p.Position, targets)); err != nil {
			return err
		}
		return m.resolveLanding(uid, card.Action)

	case game.ActionSendBackThreeSpaces:
		if err := m.moveBy(uid, -3); err != nil {
			return err
		}
		return m.resolveLanding(uid, game.ActionNothing)

	case game.ActionSendToJail:
		m.sendToJail(uid)

	case game.ActionCollectJailCard:
		if err := m.Game.AddPlayerJailCard(uid, card); err != nil {
			return err
		}

	case game.ActionCollectDividend, game.ActionCollectLoan, game.ActionCollectBankError,
		game.ActionCollectStockSale, game.ActionCollectHolidayFund, game.ActionCollectTaxRefund,
		game.ActionCollectInsurance, game.ActionCollectConsultancyFee, game.ActionCollectContestPrize,
		game.ActionCollectInheritance:
		m.adjust(uid, cardCredits[card.Action])

	case game.ActionChargePoorTax, game.ActionChargeDoctorFee, game.ActionChargeHospitalFee,
		game.ActionChargeSchoolFee:
		m.adjust(uid, -cardCharges[card.Action])

	case game.ActionCollectGrandOperaNight, game.ActionCollectBirthday:
		amount := game.AmountGrandOperaNight
		if card.Action == game.ActionCollectBirthday {
			amount = game.AmountBirthday
		}
		m.settleWithOthers(uid, amount)

	case game.ActionPayChairmanFee:
		m.settleWithOthers(uid, -game.AmountChairmanFee)

	case game.ActionChargeGeneralRepairFee, game.ActionChargeStreetRepairFee:
		perHouse, perHotel := game.AmountGeneralRepairHse, game.AmountGeneralRepairHtl
		if card.Action == game.ActionChargeStreetRepairFee {
			perHouse, perHotel = game.AmountStreetRepairHse, game.AmountStreetRepairHtl
		}
		houses, hotels := m.Game.CountBuildings(uid)
		m.adjust(uid, -(houses*perHouse + hotels*perHotel))

	default:
		return fmt.Errorf("card %d has unhandled action %s", card.ID, card.Action)
	}

	m.checkDoubleRollOrEnd()
	return nil
}

// adjust changes uid's cash by delta, which may leave it negative.
func (m *GameModel) adjust(uid, delta int) {
	if delta == 0 {
		return
	}
	oldCash := m.Game.Players[uid].Cash
	_ = m.Game.AdjustCash(uid, delta)
	m.emitCash(uid, oldCash)
}

// settleWithOthers moves amount from every other player to uid. A negative amount pays them.
func (m *GameModel) settleWithOthers(uid, amount int) {
	for _, other := range m.Game.Players {
		if other.UID == uid {
			continue
		}
		payer, payee, amt := other.UID, uid, amount
		if amount < 0 {
			payer, payee, amt = uid, other.UID, -amount
		}
		payerCash := m.Game.Players[payer].Cash
		payeeCash := m.Game.Players[payee].Cash
		_ = m.Game.ForceTransferCash(payer, payee, amt)
		m.emitCash(payer, payerCash)
		m.emitCash(payee, payeeCash)
	}
}
