package game

import (
	"strconv"
	"strings"
)

type RouletteBetKind string

const (
	BetRed    RouletteBetKind = "red"
	BetBlack  RouletteBetKind = "black"
	BetEven   RouletteBetKind = "even"
	BetOdd    RouletteBetKind = "odd"
	BetLow    RouletteBetKind = "low"
	BetHigh   RouletteBetKind = "high"
	BetNumber RouletteBetKind = "number"
)

const RouletteMaxNumber = 36

var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true, 14: true, 16: true, 18: true,
	19: true, 21: true, 23: true, 25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

type RouletteBet struct {
	Kind   RouletteBetKind
	Number int
}

func ParseRouletteBet(kind string, number int) (RouletteBet, error) {
	b := RouletteBet{Kind: RouletteBetKind(strings.ToLower(strings.TrimSpace(kind)))}
	switch b.Kind {
	case BetRed, BetBlack, BetEven, BetOdd, BetLow, BetHigh:
		return b, nil
	case BetNumber:
		if number < 0 || number > RouletteMaxNumber {
			return RouletteBet{}, ErrInvalidNumber
		}
		b.Number = number
		return b, nil
	}
	return RouletteBet{}, ErrInvalidRouletteBet
}

func RouletteColor(n int) string {
	switch {
	case n == 0:
		return "green"
	case redNumbers[n]:
		return "red"
	}
	return "black"
}

// Wins reports whether the bet wins on the drawn number. Zero only wins an
// exact bet on zero.
func (b RouletteBet) Wins(n int) bool {
	switch b.Kind {
	case BetRed:
		return n != 0 && redNumbers[n]
	case BetBlack:
		return n != 0 && !redNumbers[n]
	case BetEven:
		return n != 0 && n%2 == 0
	case BetOdd:
		return n%2 == 1
	case BetLow:
		return n >= 1 && n <= 18
	case BetHigh:
		return n >= 19 && n <= 36
	case BetNumber:
		return n == b.Number
	}
	return false
}

// Multiplier is the payout factor on a winning bet.
func (b RouletteBet) Multiplier() int64 {
	if b.Kind == BetNumber {
		return 35
	}
	return 2
}

func (b RouletteBet) Payout(n int, bet int64) int64 {
	if !b.Wins(n) {
		return 0
	}
	return b.Multiplier() * bet
}

func (b RouletteBet) String() string {
	if b.Kind == BetNumber {
		return "number " + strconv.Itoa(b.Number)
	}
	return string(b.Kind)
}
