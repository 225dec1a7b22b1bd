package tournament

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"tournament-flow/internal/store"
)

const (
	KeyTournaments = "tournamentflow_tournaments"
	KeyPayouts     = "tournamentflow_payouts"
	KeyPlayers     = "tournamentflow_players"

	persistTimeout = 10 * time.Second
)

// Load replaces the in-memory catalog with the stored one. A missing or
// unreadable record starts empty and is logged.
func (m *Manager) Load(ctx context.Context) {
	var (
		tournaments []*Tournament
		payouts     []Payout
		players     []*PlayerProfile
	)
	m.loadKey(ctx, KeyTournaments, &tournaments)
	m.loadKey(ctx, KeyPayouts, &payouts)
	m.loadKey(ctx, KeyPlayers, &players)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournaments = make(map[string]*Tournament, len(tournaments))
	for _, t := range tournaments {
		if t == nil || t.ID == "" {
			continue
		}
		if t.RegisteredPlayers == nil {
			t.RegisteredPlayers = []Player{}
		}
		m.tournaments[t.ID] = t
	}
	m.payouts = payouts
	m.players = make(map[string]*PlayerProfile, len(players))
	for _, p := range players {
		if p == nil || p.Address == "" {
			continue
		}
		m.players[p.Address] = p
	}
	log.Info().Int("tournaments", len(m.tournaments)).Int("payouts", len(m.payouts)).Int("players", len(m.players)).Msg("catalog loaded")
}

func (m *Manager) loadKey(ctx context.Context, key string, dst any) {
	raw, err := m.kv.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("load catalog record failed, starting empty")
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("decode catalog record failed, starting empty")
	}
}

// persistLocked writes the whole catalog. It reports a persistence_warning
// event when any record could not be written. The write is detached from the
// caller's cancellation: once the mutation is applied it must reach storage.
func (m *Manager) persistLocked(ctx context.Context) (Event, bool) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	tournaments := make([]*Tournament, 0, len(m.tournaments))
	for _, t := range m.tournaments {
		tournaments = append(tournaments, t)
	}
	sortTournaments(tournaments)
	players := make([]*PlayerProfile, 0, len(m.players))
	for _, p := range m.players {
		players = append(players, p)
	}
	sortProfiles(players)
	payouts := m.payouts
	if payouts == nil {
		payouts = []Payout{}
	}

	var first *PersistenceWarning
	for _, rec := range []struct {
		key string
		val any
	}{
		{KeyTournaments, tournaments},
		{KeyPayouts, payouts},
		{KeyPlayers, players},
	} {
		if err := m.put(ctx, rec.key, rec.val); err != nil {
			m.persistFailures++
			log.Warn().Err(err).Str("key", rec.key).Msg("persist catalog failed")
			if first == nil {
				first = &PersistenceWarning{Key: rec.key, Err: err}
			}
		}
	}
	m.warning = first
	if first == nil {
		return Event{}, false
	}
	return Event{Name: EventPersistenceWarning, Warning: first.Error(), At: m.now()}, true
}

func (m *Manager) put(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return m.kv.Put(ctx, key, raw)
}

// PersistenceWarning returns the failure from the most recent write of the
// catalog, or nil when it succeeded.
func (m *Manager) PersistenceWarning() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.warning == nil {
		return nil
	}
	return m.warning
}

func (m *Manager) PersistFailures() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.persistFailures
}
