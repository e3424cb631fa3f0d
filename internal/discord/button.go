package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/psucodervn/vouchbot/internal/game"
)

const blackjackButtonPrefix = "bj"

// BlackjackButtonID encodes a blackjack action and the game owner as
// bj:<action>:<owner-id>.
func BlackjackButtonID(action game.Action, ownerID string) string {
	return blackjackButtonPrefix + ":" + string(action) + ":" + ownerID
}

func ParseBlackjackButtonID(id string) (game.Action, string, error) {
	ar := strings.Split(id, ":")
	if len(ar) != 3 || ar[0] != blackjackButtonPrefix || len(ar[2]) == 0 {
		return "", "", ErrUnknownButton
	}
	action, err := game.ParseAction(ar[1])
	if err != nil {
		return "", "", ErrUnknownButton
	}
	return action, ar[2], nil
}

func MakeBlackjackButtons(ownerID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Hit", Style: discordgo.PrimaryButton, CustomID: BlackjackButtonID(game.ActionHit, ownerID)},
				discordgo.Button{Label: "Stand", Style: discordgo.SecondaryButton, CustomID: BlackjackButtonID(game.ActionStand, ownerID)},
				discordgo.Button{Label: "Double", Style: discordgo.SuccessButton, CustomID: BlackjackButtonID(game.ActionDouble, ownerID)},
				discordgo.Button{Label: "Surrender", Style: discordgo.DangerButton, CustomID: BlackjackButtonID(game.ActionSurrender, ownerID)},
			},
		},
	}
}
