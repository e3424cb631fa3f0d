package game

type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeBlackjack Outcome = "blackjack"
	OutcomePush      Outcome = "push"
	OutcomeSurrender Outcome = "surrender"
	OutcomeBust      Outcome = "bust"
	OutcomeLose      Outcome = "lose"
)

const DealerStandsOn = 17

// Settle decides a finished hand. A two-card 21 dealt to the player beats
// everything, including a surrender and a dealer 21.
func Settle(player, dealer Cards, natural bool, surrender bool) Outcome {
	if natural {
		return OutcomeBlackjack
	}
	if surrender {
		return OutcomeSurrender
	}
	pv, dv := player.Value(), dealer.Value()
	switch {
	case pv > 21:
		return OutcomeBust
	case dv > 21:
		return OutcomeWin
	case pv > dv:
		return OutcomeWin
	case pv == dv:
		return OutcomePush
	}
	return OutcomeLose
}

// BlackjackPayout is the amount credited back for an outcome, bet included.
func BlackjackPayout(o Outcome, bet int64) int64 {
	switch o {
	case OutcomeWin:
		return 2 * bet
	case OutcomeBlackjack:
		return bet * 5 / 2
	case OutcomePush:
		return bet
	case OutcomeSurrender:
		return bet / 2
	}
	return 0
}

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "You win"
	case OutcomeBlackjack:
		return "Blackjack!"
	case OutcomePush:
		return "Push"
	case OutcomeSurrender:
		return "Surrendered"
	case OutcomeBust:
		return "Bust"
	default:
		return "Dealer wins"
	}
}
