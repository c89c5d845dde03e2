// internal/game/deck.go
package game

import (
	"math/rand"
)

// Card is an immutable chance or community chest card.
type Card struct {
	ID          int      `json:"id"`
	Description string   `json:"description"`
	Action      Action   `json:"action"`
	Ownable     bool     `json:"ownable"`
	Deck        DeckType `json:"deck"`
}

// Deck is a cyclic queue of cards of one deck type. Drawn cards that are not ownable go
// straight to the back; ownable cards stay out until AppendOwnedCard returns them.
type Deck struct {
	Type  DeckType
	cards []Card
}

// NewDeck returns an empty deck of the given type.
func NewDeck(t DeckType) *Deck {
	return &Deck{Type: t, cards: []Card{}}
}

// ShuffleAddCards appends a copy of cards in an order fixed by seed.
func (d *Deck) ShuffleAddCards(cards []Card, seed int64) {
	shuffled := make([]Card, len(cards))
	copy(shuffled, cards)
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	for i := range shuffled {
		shuffled[i].Deck = d.Type
	}
	d.cards = append(d.cards, shuffled...)
}

// DrawCard pops the front card.
func (d *Deck) DrawCard() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	if !c.Ownable {
		d.cards = append(d.cards, c)
	}
	return c, nil
}

// AppendOwnedCard puts a previously kept card back at the bottom of the deck.
func (d *Deck) AppendOwnedCard(c Card) {
	d.cards = append(d.cards, c)
}

// Len is the number of cards currently in the deck.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the current deck order, front first.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
