package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/psucodervn/vouchbot/internal/model"
	"github.com/psucodervn/vouchbot/internal/storage"
)

func newTestService(t *testing.T) (*Service, *storage.BadgerHoldStorage) {
	t.Helper()
	st, err := storage.NewBadgerHoldStorage(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return NewService(st), st
}

func TestService_ChangeBalance_Clamps(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		start  int64
		deltas []int64
		want   []int64
	}{
		{name: "debit below zero then credit", start: 2, deltas: []int64{-5, 3}, want: []int64{0, 3}},
		{name: "credit then debit below zero", start: 2, deltas: []int64{3, -5}, want: []int64{5, 0}},
		{name: "plain", start: 0, deltas: []int64{4, -1}, want: []int64{4, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestService(t)
			if tt.start > 0 {
				_, err := s.ChangeBalance(ctx, "1", "alice", tt.start, Change{Reason: model.ReasonAward})
				require.NoError(t, err)
			}
			for i, d := range tt.deltas {
				got, err := s.ChangeBalance(ctx, "1", "alice", d, Change{Reason: model.ReasonAdminAdjust})
				require.NoError(t, err)
				assert.Equal(t, tt.want[i], got)
			}
			bal, err := s.Balance(ctx, "1")
			require.NoError(t, err)
			assert.Equal(t, tt.want[len(tt.want)-1], bal)
		})
	}
}

func TestService_ChangeBalance_Concurrent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.ChangeBalance(ctx, "1", "alice", 1, Change{Reason: model.ReasonAward}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	bal, err := s.Balance(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(n), bal)
	entries, err := s.History(ctx, "1", 0)
	require.NoError(t, err)
	assert.Len(t, entries, n)
}

func TestService_ChangeBalance_WritesEntry(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	_, err := s.ChangeBalance(ctx, "1", "alice", -5, Change{
		Reason:   model.ReasonGameBet,
		Game:     model.GameSlots,
		Metadata: &model.Metadata{Slots: &model.SlotsDetail{Symbols: []string{"🍒"}}},
	})
	require.NoError(t, err)

	entries, err := s.History(ctx, "1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "1", e.AccountID)
	assert.Equal(t, int64(-5), e.Delta)
	assert.Equal(t, model.ReasonGameBet, e.Reason)
	assert.True(t, e.IsWager())
	require.NotNil(t, e.Metadata)
	assert.Equal(t, []string{"🍒"}, e.Metadata.Slots.Symbols)
}

func TestService_Balance_Unknown(t *testing.T) {
	s, _ := newTestService(t)
	bal, err := s.Balance(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, int64(0), bal)
}

func TestService_AdminPoints(t *testing.T) {
	ctx := context.Background()
	s, st := newTestService(t)

	got, err := s.AddPoints(ctx, "admin", "1", "alice", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got)
	a, err := st.GetAccount(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "alice", a.Name)

	got, err = s.RemovePoints(ctx, "admin", "1", "", 25)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)

	entries, err := s.History(ctx, "1", 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, model.ReasonAdminAdjust, e.Reason)
		assert.Equal(t, "admin", e.Metadata.Admin.AdminID)
	}

	_, err = s.AddPoints(ctx, "admin", "1", "alice", 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = s.RemovePoints(ctx, "admin", "1", "alice", -3)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = s.AddPoints(ctx, "admin", "", "", 3)
	assert.ErrorIs(t, err, ErrMissingUser)
	assert.True(t, model.IsValidation(err))
}

func TestService_Wipe(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)
	for _, id := range []string{"1", "2"} {
		_, err := s.ChangeBalance(ctx, id, "", 3, Change{Reason: model.ReasonAward})
		require.NoError(t, err)
	}

	n, err := s.Wipe(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	bal, err := s.Balance(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), bal)

	n, err = s.Wipe(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestService_TopBalances(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)
	for id, pts := range map[string]int64{"1": 5, "2": 50, "3": 20} {
		name := ""
		if id != "2" {
			name = "user" + id
		}
		_, err := s.ChangeBalance(ctx, id, name, pts, Change{Reason: model.ReasonAward})
		require.NoError(t, err)
	}

	var looked []string
	lookup := func(ctx context.Context, id string) (string, error) {
		looked = append(looked, id)
		return "fetched" + id, nil
	}
	got, err := s.TopBalances(ctx, 2, lookup)
	require.NoError(t, err)
	assert.Equal(t, []Standing{
		{AccountID: "2", Name: "fetched2", Points: 50},
		{AccountID: "3", Name: "user3", Points: 20},
	}, got)
	assert.Equal(t, []string{"2"}, looked)
}

func TestService_TopGamblers(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)
	changes := []struct {
		id    string
		delta int64
		c     Change
	}{
		{id: "1", delta: 100, c: Change{Reason: model.ReasonAward}},
		{id: "1", delta: -10, c: Change{Reason: model.ReasonGameBet, Game: model.GameSlots}},
		{id: "2", delta: -10, c: Change{Reason: model.ReasonGameBet, Game: model.GameRoulette}},
		{id: "2", delta: 350, c: Change{Reason: model.ReasonGamePayout, Game: model.GameRoulette}},
		{id: "3", delta: -5, c: Change{Reason: model.ReasonGameBet, Game: model.GameBlackjack}},
	}
	for _, c := range changes {
		_, err := s.ChangeBalance(ctx, c.id, "u"+c.id, c.delta, c.c)
		require.NoError(t, err)
	}

	got, err := s.TopGamblers(ctx, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, []Standing{
		{AccountID: "2", Name: "u2", Points: 340},
		{AccountID: "3", Name: "u3", Points: -5},
		{AccountID: "1", Name: "u1", Points: -10},
	}, got)

	got, err = s.TopGamblers(ctx, 1, nil)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

type mockStorage struct {
	Storage
	mock.Mock
}

func (m *mockStorage) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*model.Account)
	return a, args.Error(1)
}

func (m *mockStorage) UpdateAccount(ctx context.Context, id string, entry *model.LedgerEntry, fn func(a *model.Account) error) (*model.Account, error) {
	args := m.Called(ctx, id, entry, fn)
	a, _ := args.Get(0).(*model.Account)
	return a, args.Error(1)
}

func TestService_StorageFailure(t *testing.T) {
	ctx := context.Background()
	st := new(mockStorage)
	st.On("UpdateAccount", mock.Anything, "1", mock.Anything, mock.Anything).Return(nil, assert.AnError)
	st.On("GetAccount", mock.Anything, "1").Return(nil, assert.AnError)
	s := NewService(st)

	_, err := s.AddPoints(ctx, "admin", "1", "alice", 5)
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, model.IsValidation(err))

	_, err = s.Balance(ctx, "1")
	assert.True(t, errors.Is(err, assert.AnError))
	st.AssertExpectations(t)
}
