package multiplier

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
	"go.uber.org/atomic"

	"github.com/psucodervn/vouchbot/internal/model"
	"github.com/psucodervn/vouchbot/pkg/logger"
)

const (
	KeyValue           = "multiplier"
	KeyExpiresAt       = "multiplier_expires_at"
	KeyAnnounceChannel = "multiplier_announce_channel"
)

type Storage interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key string, value string) error
	DeleteSetting(ctx context.Context, key string) error
}

// Announcer broadcasts a message to a channel.
type Announcer interface {
	Announce(ctx context.Context, channelID string, msg string) error
}

type State struct {
	Value           int64
	ExpiresAt       *time.Time
	AnnounceChannel string
}

// Manager owns the award multiplier and the single scheduled reversion.
type Manager struct {
	store     Storage
	announcer Announcer
	now       func() time.Time

	mu    sync.Mutex
	timer *time.Timer
	gen   atomic.Uint64
}

func NewManager(store Storage, announcer Announcer) *Manager {
	return &Manager{
		store:     store,
		announcer: announcer,
		now:       time.Now,
	}
}

// Get returns the current multiplier. A missing or invalid stored value is
// reset to 1.
func (m *Manager) Get(ctx context.Context) (int64, error) {
	raw, err := m.store.GetSetting(ctx, KeyValue)
	if err != nil && !model.IsNotFound(err) {
		return 0, fmt.Errorf("get multiplier: %w", err)
	}
	if v, ok := parseValue(raw); ok {
		return v, nil
	}
	if err := m.store.SetSetting(ctx, KeyValue, "1"); err != nil {
		return 0, fmt.Errorf("reset multiplier: %w", err)
	}
	log.Ctx(ctx).Warn().Str("stored", raw).Msg("invalid multiplier reset to 1")
	return 1, nil
}

func parseValue(raw string) (int64, bool) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 1 {
		return 0, false
	}
	return int64(math.Floor(f)), true
}

func (m *Manager) expiresAt(ctx context.Context) (*time.Time, error) {
	raw, err := m.store.GetSetting(ctx, KeyExpiresAt)
	if err != nil {
		if model.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get multiplier expiry: %w", err)
	}
	sec, err := cast.ToInt64E(raw)
	if err != nil || sec <= 0 {
		return nil, nil
	}
	t := time.Unix(sec, 0)
	return &t, nil
}

func (m *Manager) State(ctx context.Context) (State, error) {
	v, err := m.Get(ctx)
	if err != nil {
		return State{}, err
	}
	exp, err := m.expiresAt(ctx)
	if err != nil {
		return State{}, err
	}
	ch, err := m.store.GetSetting(ctx, KeyAnnounceChannel)
	if err != nil && !model.IsNotFound(err) {
		return State{}, fmt.Errorf("get announce channel: %w", err)
	}
	return State{Value: v, ExpiresAt: exp, AnnounceChannel: ch}, nil
}

// Set stores value (floored at 1) and an expiry of durationMinutes from now,
// then replaces the pending reversion. Without a positive duration the expiry
// is cleared and the multiplier reverts to 1 right away.
func (m *Manager) Set(ctx context.Context, value int64, durationMinutes int64) (State, error) {
	if value < 1 {
		value = 1
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelLocked()

	if err := m.store.SetSetting(ctx, KeyValue, strconv.FormatInt(value, 10)); err != nil {
		return State{}, fmt.Errorf("set multiplier: %w", err)
	}
	st := State{Value: value}
	if durationMinutes > 0 {
		exp := m.now().Add(time.Duration(durationMinutes) * time.Minute)
		if err := m.store.SetSetting(ctx, KeyExpiresAt, strconv.FormatInt(exp.Unix(), 10)); err != nil {
			return State{}, fmt.Errorf("set multiplier expiry: %w", err)
		}
		st.ExpiresAt = &exp
	} else {
		if err := m.store.DeleteSetting(ctx, KeyExpiresAt); err != nil {
			return State{}, fmt.Errorf("clear multiplier expiry: %w", err)
		}
		st.Value = 1
	}
	log.Ctx(ctx).Info().Int64("value", value).Int64("minutes", durationMinutes).Msg("multiplier set")

	if err := m.scheduleLocked(ctx); err != nil {
		return State{}, err
	}
	return st, nil
}

// SetAnnounceChannel sets the channel receiving expiry notices, or clears it
// when channelID is empty.
func (m *Manager) SetAnnounceChannel(ctx context.Context, channelID string) error {
	if len(channelID) == 0 {
		return m.store.DeleteSetting(ctx, KeyAnnounceChannel)
	}
	return m.store.SetSetting(ctx, KeyAnnounceChannel, channelID)
}

// ScheduleReversionIfNeeded replaces any pending reversion with one firing at
// the stored expiry. A missing or past expiry reverts to 1 immediately.
func (m *Manager) ScheduleReversionIfNeeded(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scheduleLocked(ctx)
}

// cancelLocked invalidates the pending reversion. m.mu must be held.
func (m *Manager) cancelLocked() uint64 {
	gen := m.gen.Inc()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	return gen
}

func (m *Manager) scheduleLocked(ctx context.Context) error {
	gen := m.cancelLocked()

	exp, err := m.expiresAt(ctx)
	if err != nil {
		return err
	}
	if exp == nil || !exp.After(m.now()) {
		return m.forceDefault(ctx)
	}

	delay := exp.Sub(m.now())
	m.timer = time.AfterFunc(delay, func() {
		m.expire(gen)
	})
	log.Ctx(ctx).Debug().Time("expires_at", *exp).Msg("multiplier reversion scheduled")
	return nil
}

// forceDefault resets the multiplier to 1; a no-op when it already is.
func (m *Manager) forceDefault(ctx context.Context) error {
	if err := m.store.DeleteSetting(ctx, KeyExpiresAt); err != nil {
		return fmt.Errorf("clear multiplier expiry: %w", err)
	}
	v, err := m.Get(ctx)
	if err != nil {
		return err
	}
	if v == 1 {
		return nil
	}
	if err := m.store.SetSetting(ctx, KeyValue, "1"); err != nil {
		return fmt.Errorf("reset multiplier: %w", err)
	}
	log.Ctx(ctx).Info().Int64("previous", v).Msg("multiplier reverted to x1")
	return nil
}

func (m *Manager) expire(gen uint64) {
	ctx := logger.NewContext("component", "multiplier")

	m.mu.Lock()
	if m.gen.Load() != gen {
		m.mu.Unlock()
		return
	}
	m.timer = nil
	err := m.store.SetSetting(ctx, KeyValue, "1")
	if err == nil {
		err = m.store.DeleteSetting(ctx, KeyExpiresAt)
	}
	m.mu.Unlock()

	if err != nil {
		log.Ctx(ctx).Err(err).Msg("revert multiplier failed")
		return
	}
	log.Ctx(ctx).Info().Msg("multiplier expired")

	ch, err := m.store.GetSetting(ctx, KeyAnnounceChannel)
	if err != nil || len(ch) == 0 || m.announcer == nil {
		return
	}
	if err := m.announcer.Announce(ctx, ch, "@everyone The points multiplier has expired and is back to x1."); err != nil {
		log.Ctx(ctx).Err(err).Str("channel_id", ch).Msg("announce multiplier expiry failed")
	}
}

// Stop cancels the pending reversion, if any.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelLocked()
}
