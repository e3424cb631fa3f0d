package vouch

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/psucodervn/vouchbot/internal/ledger"
	"github.com/psucodervn/vouchbot/internal/model"
)

type Balance interface {
	ChangeBalance(ctx context.Context, id string, name string, delta int64, c ledger.Change) (int64, error)
	Wipe(ctx context.Context) (int, error)
}

type Multiplier interface {
	Get(ctx context.Context) (int64, error)
}

type Service struct {
	balance    Balance
	multiplier Multiplier
}

// Source identifies the message an award came from.
type Source struct {
	ChannelID string
	MessageID string
}

type Award struct {
	Amount     int64
	Total      int64
	Multiplier int64
}

// Tally is the number of qualifying historical posts crediting one provider.
type Tally struct {
	AccountID string
	Name      string
	Count     int64
}

type RecountResult struct {
	Wiped    int
	Accounts int
	Points   int64
}

func NewService(balance Balance, multiplier Multiplier) *Service {
	return &Service{
		balance:    balance,
		multiplier: multiplier,
	}
}

// Award credits a provider for one qualifying message, scaled by the current
// multiplier.
func (s *Service) Award(ctx context.Context, providerID string, providerName string, src Source) (Award, error) {
	mult, err := s.multiplier.Get(ctx)
	if err != nil {
		return Award{}, err
	}
	amount := mult
	if amount < 1 {
		amount = 1
	}
	total, err := s.balance.ChangeBalance(ctx, providerID, providerName, amount, ledger.Change{
		Reason: model.ReasonAward,
		Metadata: &model.Metadata{Award: &model.AwardDetail{
			Multiplier: mult,
			ChannelID:  src.ChannelID,
			MessageID:  src.MessageID,
		}},
	})
	if err != nil {
		return Award{}, err
	}
	log.Ctx(ctx).Info().Str("provider_id", providerID).Int64("amount", amount).Int64("total", total).Msg("vouch awarded")
	return Award{Amount: amount, Total: total, Multiplier: mult}, nil
}

// Recount wipes every account and credits one point per tallied post. The
// multiplier does not apply to historical posts.
func (s *Service) Recount(ctx context.Context, tallies []Tally) (RecountResult, error) {
	wiped, err := s.balance.Wipe(ctx)
	if err != nil {
		return RecountResult{}, err
	}
	res := RecountResult{Wiped: wiped}

	sort.Slice(tallies, func(i, j int) bool { return tallies[i].AccountID < tallies[j].AccountID })
	for _, t := range tallies {
		if t.Count < 1 {
			continue
		}
		if _, err := s.balance.ChangeBalance(ctx, t.AccountID, t.Name, t.Count, ledger.Change{Reason: model.ReasonRecount}); err != nil {
			return res, fmt.Errorf("recount %s: %w", t.AccountID, err)
		}
		res.Accounts++
		res.Points += t.Count
	}
	log.Ctx(ctx).Info().Int("accounts", res.Accounts).Int64("points", res.Points).Msg("recount finished")
	return res, nil
}

// Merge sums tallies of the same account.
func Merge(tallies ...[]Tally) []Tally {
	idx := make(map[string]int)
	var out []Tally
	for _, ts := range tallies {
		for _, t := range ts {
			if i, ok := idx[t.AccountID]; ok {
				out[i].Count += t.Count
				if len(out[i].Name) == 0 {
					out[i].Name = t.Name
				}
				continue
			}
			idx[t.AccountID] = len(out)
			out = append(out, t)
		}
	}
	return out
}
