package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/psucodervn/vouchbot/internal/vouch"
)

// maxPageSize is the largest page the message history endpoint returns.
const maxPageSize = 100

// MessagePager fetches up to limit messages older than beforeID, newest first.
type MessagePager func(ctx context.Context, channelID string, limit int, beforeID string) ([]*discordgo.Message, error)

func (h *Handler) channelMessages(ctx context.Context, channelID string, limit int, beforeID string) ([]*discordgo.Message, error) {
	return h.s.ChannelMessages(channelID, limit, beforeID, "", "", discordgo.WithContext(ctx))
}

// ScanHistory pages backwards through a channel, visiting at most limit
// messages. It returns the number of messages visited.
func ScanHistory(ctx context.Context, pager MessagePager, channelID string, limit int, visit func(m *discordgo.Message)) (int, error) {
	seen := 0
	before := ""
	for seen < limit {
		n := limit - seen
		if n > maxPageSize {
			n = maxPageSize
		}
		msgs, err := pager(ctx, channelID, n, before)
		if err != nil {
			return seen, fmt.Errorf("read history of %s: %w", channelID, err)
		}
		for _, m := range msgs {
			visit(m)
		}
		seen += len(msgs)
		if len(msgs) < n {
			break
		}
		before = msgs[len(msgs)-1].ID
	}
	return seen, nil
}

// scanVouchChannels counts the qualifying posts crediting each provider
// across every vouch channel.
func (h *Handler) scanVouchChannels(ctx context.Context, guildID string) ([]vouch.Tally, int, error) {
	var (
		all     [][]vouch.Tally
		scanned int
	)
	for _, channelID := range h.cfg.Discord.VouchChannelIDs {
		var tallies []vouch.Tally
		idx := make(map[string]int)
		n, err := ScanHistory(ctx, h.channelMessages, channelID, h.cfg.RecountMessageLimit, func(m *discordgo.Message) {
			if m.Author == nil || m.Author.Bot {
				return
			}
			for _, p := range h.qualifyingProviders(ctx, guildID, m) {
				if j, ok := idx[p.ID]; ok {
					tallies[j].Count++
					continue
				}
				idx[p.ID] = len(tallies)
				tallies = append(tallies, vouch.Tally{AccountID: p.ID, Name: DisplayName(nil, p), Count: 1})
			}
		})
		if err != nil {
			return nil, scanned, err
		}
		log.Ctx(ctx).Debug().Str("scan_channel_id", channelID).Int("messages", n).Int("providers", len(tallies)).Msg("vouch channel scanned")
		scanned += n
		all = append(all, tallies)
	}
	return vouch.Merge(all...), scanned, nil
}
