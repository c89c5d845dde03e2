// internal/model/turn.go
package model

import (
	"fmt"

	"github.com/jason-s-yu/monopoly/internal/event"
	"github.com/jason-s-yu/monopoly/internal/game"
	"github.com/jason-s-yu/monopoly/internal/models"
	"github.com/sirupsen/logrus"
)

// RollAndMove rolls for the current player, moves them and resolves where they land.
func (m *GameModel) RollAndMove(uid int) error {
	cmd := string(models.CommandRoll)
	if err := m.requireCurrentPlayer(cmd, uid); err != nil {
		return err
	}
	if err := m.requireState(cmd, StateWaitForRoll); err != nil {
		return err
	}

	d1, d2 := m.Game.RollDice()
	m.emit(event.TypeDiceRoll, event.DiceRoll{Dice1: d1, Dice2: d2})
	m.log.WithFields(logrus.Fields{"player": uid, "dice_1": d1, "dice_2": d2}).Debug("rolled")

	if m.Game.Players[uid].InJail() {
		return m.rollInJail(uid, d1, d2)
	}

	action, err := m.Game.CheckDoubleRoll(d1, d2, uid)
	if err != nil {
		return err
	}
	if action == game.ActionSendToJail {
		m.sendToJail(uid)
		m.checkDoubleRollOrEnd()
		return nil
	}
	if err := m.moveBy(uid, d1+d2); err != nil {
		return err
	}
	return m.resolveLanding(uid, game.ActionNothing)
}

// rollInJail handles a jailed player's roll. Doubles free them without a bonus roll; the
// last allowed failure forces the fine and moves them anyway.
func (m *GameModel) rollInJail(uid, d1, d2 int) error {
	switch {
	case d1 == d2:
		_ = m.Game.ReleaseFromJail(uid)
		m.emit(event.TypeJailRelease, event.JailRelease{PlayerID: uid, Method: "doubles"})
	default:
		n, err := m.Game.AddJailTurn(uid)
		if err != nil {
			return err
		}
		if n < m.Game.Rules.MaxJailTurns {
			m.checkDoubleRollOrEnd()
			return nil
		}
		m.payFine(uid)
	}
	m.Game.ResetDoubleRoll()
	if err := m.moveBy(uid, d1+d2); err != nil {
		return err
	}
	return m.resolveLanding(uid, game.ActionNothing)
}

// moveBy moves uid forward (or back, for negative steps) and pays Go money on a full lap.
func (m *GameModel) moveBy(uid, steps int) error {
	p := m.Game.Players[uid]
	old := p.Position
	if err := m.Game.MovePlayer(uid, game.ByStepsOf(steps)); err != nil {
		return err
	}
	passedGo := m.Game.CheckGoPass(uid) == game.ActionPassGo
	if passedGo {
		m.Game.OffsetGoPos(uid)
	}
	if p.Position < 0 {
		p.Position += m.Game.Map.Size()
	}
	m.emit(event.TypeMove, event.Move{PlayerID: uid, OldPosition: old, NewPosition: p.Position})
	if passedGo {
		m.collectGo(uid)
	}
	return nil
}

// moveTo sends uid straight to pos. Wrapping past Go pays Go money.
func (m *GameModel) moveTo(uid, pos int) error {
	p := m.Game.Players[uid]
	old := p.Position
	if err := m.Game.MovePlayer(uid, game.ToPosition(pos)); err != nil {
		return err
	}
	m.emit(event.TypeMove, event.Move{PlayerID: uid, OldPosition: old, NewPosition: pos})
	if pos < old {
		m.collectGo(uid)
	}
	return nil
}

func (m *GameModel) collectGo(uid int) {
	oldCash := m.Game.Players[uid].Cash
	_ = m.Game.AdjustCash(uid, m.Game.Rules.GoCash)
	m.emitCash(uid, oldCash)
}

func (m *GameModel) sendToJail(uid int) {
	old := m.Game.Players[uid].Position
	_ = m.Game.SendToJail(uid)
	m.emit(event.TypeMove, event.Move{PlayerID: uid, OldPosition: old, NewPosition: game.PosJail})
	m.emit(event.TypeSendToJail, event.Player{PlayerID: uid})
	m.log.WithField("player", uid).Debug("sent to jail")
}

// resolveLanding triggers the square uid stands on. via is the card action that moved
// them there, or ActionNothing after a roll.
func (m *GameModel) resolveLanding(uid int, via game.Action) error {
	action, err := m.Game.TriggerSpace(uid)
	if err != nil {
		return err
	}
	pos := m.Game.Players[uid].Position

	switch action {
	case game.ActionAskToBuy:
		o, err := m.Game.Map.Ownable(pos)
		if err != nil {
			return err
		}
		m.State = StateAskToBuy
		m.emit(event.TypeAskToBuy, event.AskToBuy{PlayerID: uid, PropertyID: pos, Price: o.Price})
		return nil

	case game.ActionPayRent:
		payee, rent, err := m.Game.GetCardRentInfo(via)
		if err != nil {
			return err
		}
		if rent == 0 {
			m.checkDoubleRollOrEnd()
			return nil
		}
		m.rent = &rentDue{payer: uid, payee: payee, amount: rent, property: pos}
		m.State = StateWaitForPayRent
		m.emit(event.TypeAskForRent, event.AskForRent{Payer: uid, Payee: payee, Rent: rent, PropertyID: pos})
		return nil

	case game.ActionDrawChanceCard, game.ActionDrawCCCard:
		var card game.Card
		if action == game.ActionDrawChanceCard {
			card, err = m.Game.DrawChanceCard()
		} else {
			card, err = m.Game.DrawCCCard()
		}
		if err != nil {
			return err
		}
		m.emit(event.TypeDrawCard, event.DrawCard{
			PlayerID:    uid,
			Deck:        card.Deck.String(),
			CardID:      card.ID,
			Description: card.Description,
			Ownable:     card.Ownable,
		})
		return m.resolveCard(uid, card)

	case game.ActionChargeIncomeTax, game.ActionChargeLuxuryTax:
		tax, amount := game.TaxIncome, m.Game.Rules.IncomeTax
		if action == game.ActionChargeLuxuryTax {
			tax, amount = game.TaxLuxury, m.Game.Rules.LuxuryTax
		}
		oldCash := m.Game.Players[uid].Cash
		_ = m.Game.AdjustCash(uid, -amount)
		m.emit(event.TypeChargeTax, event.ChargeTax{PlayerID: uid, Tax: tax.String(), Amount: amount})
		m.emitCash(uid, oldCash)
		m.checkDoubleRollOrEnd()
		return nil

	case game.ActionSendToJail:
		m.sendToJail(uid)
		m.checkDoubleRollOrEnd()
		return nil

	case game.ActionNothing:
		m.checkDoubleRollOrEnd()
		return nil

	default:
		return fmt.Errorf("unexpected landing action %s at %d", action, pos)
	}
}
