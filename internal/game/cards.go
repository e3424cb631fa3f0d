package game

import (
	"bytes"
	"strings"
)

var (
	CardValueNames = []rune("A23456789_JQK")
	CardKindNames  = []rune("♥♦♣♠")
)

const DeckSize = 52

type Card struct {
	id int
}

// Value is the blackjack value of the card with the ace counted as 11.
func (c Card) Value() int {
	v := c.id % 13
	switch {
	case v == 0:
		return 11
	case v >= 9:
		return 10
	}
	return v + 1
}

func (c Card) IsAce() bool {
	return c.id%13 == 0
}

func (c Card) String() string {
	v := c.id % 13
	bf := bytes.NewBuffer(nil)
	if v == 9 {
		bf.WriteString("10")
	} else {
		bf.WriteRune(CardValueNames[v])
	}
	bf.WriteRune(CardKindNames[c.id/13])
	return bf.String()
}

type Cards []Card

func NewCards(ids ...int) Cards {
	var cs Cards
	for _, id := range ids {
		cs = append(cs, Card{id: id})
	}
	return cs
}

// NewDeck returns a freshly shuffled 52-card deck.
func NewDeck(r Rand) Cards {
	deck := make(Cards, DeckSize)
	for i := 0; i < DeckSize; i++ {
		deck[i] = Card{id: i}
	}
	r.Shuffle(DeckSize, func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// Value sums the hand, softening aces from 11 to 1 one at a time while the
// total is over 21.
func (cs Cards) Value() int {
	sum := 0
	aces := 0
	for _, c := range cs {
		sum += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for sum > 21 && aces > 0 {
		sum -= 10
		aces--
	}
	return sum
}

func (cs Cards) IsBlackJack() bool {
	return len(cs) == 2 && cs.Value() == 21
}

func (cs Cards) IsBusted() bool {
	return cs.Value() > 21
}

func (cs Cards) String() string {
	s := make([]string, len(cs))
	for i := range cs {
		s[i] = cs[i].String()
	}
	return strings.Join(s, ", ")
}

// Censored shows the first card and hides the rest.
func (cs Cards) Censored() string {
	if len(cs) == 0 {
		return ""
	}
	return cs[0].String() + strings.Repeat(", **", len(cs)-1)
}
