package game

type SlotSymbol struct {
	Emoji  string
	Weight int
}

// SlotSymbols is the reel alphabet; weights sum to SlotWeightTotal.
var SlotSymbols = []SlotSymbol{
	{Emoji: "🍒", Weight: 30},
	{Emoji: "🍋", Weight: 25},
	{Emoji: "🍇", Weight: 20},
	{Emoji: "🔔", Weight: 12},
	{Emoji: "⭐", Weight: 8},
	{Emoji: "💎", Weight: 5},
}

const (
	SlotWeightTotal = 100
	SlotReels       = 3
)

// pickSymbol maps a roll in [0, SlotWeightTotal) onto the weighted alphabet.
func pickSymbol(roll int) string {
	for _, s := range SlotSymbols {
		if roll < s.Weight {
			return s.Emoji
		}
		roll -= s.Weight
	}
	return SlotSymbols[len(SlotSymbols)-1].Emoji
}

func spinReels(r Rand) []string {
	reels := make([]string, SlotReels)
	for i := range reels {
		reels[i] = pickSymbol(r.Intn(SlotWeightTotal))
	}
	return reels
}

// SlotsMultiplier is x10 for three of a kind, x2 for any pair, else 0.
func SlotsMultiplier(reels []string) int64 {
	if len(reels) != SlotReels {
		return 0
	}
	a, b, c := reels[0], reels[1], reels[2]
	switch {
	case a == b && b == c:
		return 10
	case a == b || b == c || a == c:
		return 2
	}
	return 0
}
