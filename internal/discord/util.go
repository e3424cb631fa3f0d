package discord

import (
	"path"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cast"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

func IsImageAttachment(a *discordgo.MessageAttachment) bool {
	if a == nil {
		return false
	}
	if strings.HasPrefix(strings.ToLower(a.ContentType), "image/") {
		return true
	}
	return imageExtensions[strings.ToLower(path.Ext(a.Filename))]
}

// HasImage reports whether m carries at least one image attachment.
func HasImage(m *discordgo.Message) bool {
	for _, a := range m.Attachments {
		if IsImageAttachment(a) {
			return true
		}
	}
	return false
}

// MentionedProviders returns the distinct users mentioned in m that pass
// isProvider. Bots and the author are never returned.
func MentionedProviders(m *discordgo.Message, isProvider func(u *discordgo.User) bool) []*discordgo.User {
	var out []*discordgo.User
	seen := make(map[string]bool)
	for _, u := range m.Mentions {
		if u == nil || u.Bot || seen[u.ID] {
			continue
		}
		if m.Author != nil && u.ID == m.Author.ID {
			continue
		}
		seen[u.ID] = true
		if isProvider(u) {
			out = append(out, u)
		}
	}
	return out
}

func DisplayName(m *discordgo.Member, u *discordgo.User) string {
	if m != nil && len(m.Nick) > 0 {
		return m.Nick
	}
	if u == nil && m != nil {
		u = m.User
	}
	if u == nil {
		return ""
	}
	if len(u.GlobalName) > 0 {
		return u.GlobalName
	}
	return u.Username
}

func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	if i.User != nil {
		return i.User
	}
	return &discordgo.User{}
}

func interactionName(i *discordgo.Interaction) string {
	return DisplayName(i.Member, interactionUser(i))
}

func isAdmin(i *discordgo.Interaction) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0
}

type options map[string]*discordgo.ApplicationCommandInteractionDataOption

func toOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) options {
	m := make(options, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}

func (o options) Int(name string) (int64, bool) {
	v, ok := o[name]
	if !ok {
		return 0, false
	}
	n, err := cast.ToInt64E(v.Value)
	return n, err == nil
}

func (o options) String(name string) (string, bool) {
	v, ok := o[name]
	if !ok {
		return "", false
	}
	return cast.ToString(v.Value), true
}

// User resolves a user option against the resolved data of the interaction.
func (o options) User(name string, resolved *discordgo.ApplicationCommandInteractionDataResolved) (*discordgo.User, *discordgo.Member, bool) {
	id, ok := o.String(name)
	if !ok || len(id) == 0 {
		return nil, nil, false
	}
	u := &discordgo.User{ID: id}
	var m *discordgo.Member
	if resolved != nil {
		if ru, ok := resolved.Users[id]; ok && ru != nil {
			u = ru
		}
		m = resolved.Members[id]
	}
	return u, m, true
}

// subcommand returns the first sub-command of a command and its options.
func subcommand(data discordgo.ApplicationCommandInteractionData) (string, options) {
	for _, o := range data.Options {
		if o.Type == discordgo.ApplicationCommandOptionSubCommand {
			return o.Name, toOptions(o.Options)
		}
	}
	return "", toOptions(data.Options)
}

func mention(id string) string {
	return "<@" + id + ">"
}

func channelMention(id string) string {
	return "<#" + id + ">"
}
