package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestIsImageAttachment(t *testing.T) {
	tests := []struct {
		name string
		a    *discordgo.MessageAttachment
		want bool
	}{
		{name: "content type", a: &discordgo.MessageAttachment{ContentType: "image/png", Filename: "x"}, want: true},
		{name: "extension", a: &discordgo.MessageAttachment{Filename: "proof.JPG"}, want: true},
		{name: "video", a: &discordgo.MessageAttachment{ContentType: "video/mp4", Filename: "clip.mp4"}, want: false},
		{name: "text", a: &discordgo.MessageAttachment{Filename: "notes.txt"}, want: false},
		{name: "nil", a: nil, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsImageAttachment(tt.a); got != tt.want {
				t.Errorf("IsImageAttachment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasImage(t *testing.T) {
	m := &discordgo.Message{Attachments: []*discordgo.MessageAttachment{
		{Filename: "a.txt"},
		{Filename: "b.webp"},
	}}
	assert.True(t, HasImage(m))
	assert.False(t, HasImage(&discordgo.Message{}))
}

func TestMentionedProviders(t *testing.T) {
	author := &discordgo.User{ID: "1"}
	m := &discordgo.Message{
		Author: author,
		Mentions: []*discordgo.User{
			author,
			{ID: "2"},
			{ID: "2"},
			{ID: "3", Bot: true},
			{ID: "4"},
			{ID: "5"},
		},
	}
	providers := map[string]bool{"1": true, "2": true, "3": true, "5": true}

	got := MentionedProviders(m, func(u *discordgo.User) bool { return providers[u.ID] })
	var ids []string
	for _, u := range got {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []string{"2", "5"}, ids)
}

func TestDisplayName(t *testing.T) {
	u := &discordgo.User{ID: "1", Username: "alice", GlobalName: "Alice"}
	assert.Equal(t, "Ali", DisplayName(&discordgo.Member{Nick: "Ali", User: u}, u))
	assert.Equal(t, "Alice", DisplayName(&discordgo.Member{User: u}, nil))
	assert.Equal(t, "bob", DisplayName(nil, &discordgo.User{Username: "bob"}))
	assert.Equal(t, "", DisplayName(nil, nil))
}

func TestOptions(t *testing.T) {
	opts := toOptions([]*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "bet", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(25)},
		{Name: "type", Type: discordgo.ApplicationCommandOptionString, Value: "red"},
		{Name: "user", Type: discordgo.ApplicationCommandOptionUser, Value: "42"},
	})

	bet, ok := opts.Int("bet")
	assert.True(t, ok)
	assert.Equal(t, int64(25), bet)

	kind, ok := opts.String("type")
	assert.True(t, ok)
	assert.Equal(t, "red", kind)

	_, ok = opts.Int("number")
	assert.False(t, ok)

	resolved := &discordgo.ApplicationCommandInteractionDataResolved{
		Users:   map[string]*discordgo.User{"42": {ID: "42", Username: "carol"}},
		Members: map[string]*discordgo.Member{"42": {Nick: "Caz"}},
	}
	u, m, ok := opts.User("user", resolved)
	assert.True(t, ok)
	assert.Equal(t, "carol", u.Username)
	assert.Equal(t, "Caz", DisplayName(m, u))

	u, _, ok = opts.User("user", nil)
	assert.True(t, ok)
	assert.Equal(t, "42", u.ID)
}

func TestSubcommand(t *testing.T) {
	data := discordgo.ApplicationCommandInteractionData{
		Name: "multiplier",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{{
			Name: "set",
			Type: discordgo.ApplicationCommandOptionSubCommand,
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: "value", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(3)},
			},
		}},
	}
	name, opts := subcommand(data)
	assert.Equal(t, "set", name)
	v, ok := opts.Int("value")
	assert.True(t, ok)
	assert.Equal(t, int64(3), v)
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, isAdmin(&discordgo.Interaction{Member: &discordgo.Member{Permissions: discordgo.PermissionAdministrator}}))
	assert.False(t, isAdmin(&discordgo.Interaction{Member: &discordgo.Member{Permissions: discordgo.PermissionSendMessages}}))
	assert.False(t, isAdmin(&discordgo.Interaction{User: &discordgo.User{ID: "1"}}))
}
