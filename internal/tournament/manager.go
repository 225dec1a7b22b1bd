package tournament

import (
	"context"
	"encoding/hex"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"

	"tournament-flow/internal/store"
)

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithRand sets the source used for bracket seeding, payout hashes and
// simulated winners. It is only used under the manager lock.
func WithRand(rng *rand.Rand) Option {
	return func(m *Manager) { m.rng = rng }
}

func WithIDFunc(fn func() string) Option {
	return func(m *Manager) { m.newID = fn }
}

// Manager owns the tournament catalog. Every operation holds one lock, so
// there is a single logical writer. Events are published after the lock is
// released, in mutation order.
type Manager struct {
	kv    store.KV
	bus   *Bus
	now   func() time.Time
	rng   *rand.Rand
	newID func() string

	mu              sync.Mutex
	tournaments     map[string]*Tournament
	payouts         []Payout
	players         map[string]*PlayerProfile
	warning         *PersistenceWarning
	persistFailures int64

	// pending holds events in mutation order until the active drainer
	// publishes them.
	pending  []Event
	draining bool
}

func NewManager(kv store.KV, bus *Bus, opts ...Option) *Manager {
	m := &Manager{
		kv:          kv,
		bus:         bus,
		now:         time.Now,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		newID:       store.NewID,
		tournaments: map[string]*Tournament{},
		players:     map[string]*PlayerProfile{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Bus() *Bus {
	return m.bus
}

// apply runs fn under the lock, persists the catalog when fn succeeds and
// queues the collected events. Events are published outside the lock, in the
// order their mutations were applied.
func (m *Manager) apply(ctx context.Context, fn func() ([]Event, error)) error {
	m.mu.Lock()
	events, err := fn()
	if err == nil {
		if ev, failed := m.persistLocked(ctx); failed {
			events = append(events, ev)
		}
	}
	m.pending = append(m.pending, events...)
	m.mu.Unlock()

	m.drain()
	return err
}

// drain publishes queued events. Only one goroutine drains at a time; a
// caller that finds a drainer active leaves its events to it. Handlers may
// call back into the manager, including mutations.
func (m *Manager) drain() {
	m.mu.Lock()
	if m.draining {
		m.mu.Unlock()
		return
	}
	m.draining = true
	for len(m.pending) > 0 {
		batch := m.pending
		m.pending = nil
		m.mu.Unlock()
		for _, ev := range batch {
			m.bus.Publish(ev)
		}
		m.mu.Lock()
	}
	m.draining = false
	m.mu.Unlock()
}

func (m *Manager) CreateTournament(ctx context.Context, in CreateInput) (*Tournament, error) {
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		return nil, invalidf("name is required")
	case in.MaxPlayers < 2:
		return nil, invalidf("maxPlayers must be at least 2, got %d", in.MaxPlayers)
	case in.EntryFee < 0 || math.IsNaN(in.EntryFee) || math.IsInf(in.EntryFee, 0):
		return nil, invalidf("entryFee must be a non-negative amount")
	}

	var out *Tournament
	err := m.apply(ctx, func() ([]Event, error) {
		id := strings.TrimSpace(in.ID)
		if id == "" {
			id = m.newID()
		}
		if _, ok := m.tournaments[id]; ok {
			return nil, invalidf("tournament %s already exists", id)
		}
		t := &Tournament{
			ID:                id,
			Name:              name,
			Slug:              slug.Make(name),
			Creator:           in.Creator,
			MaxPlayers:        in.MaxPlayers,
			EntryFee:          in.EntryFee,
			GameType:          in.GameType,
			Status:            StatusFilling,
			RegisteredPlayers: []Player{},
			CreatedAt:         m.now(),
		}
		m.tournaments[id] = t
		out = t.clone()
		log.Info().Str("tournament_id", id).Str("name", name).Int("max_players", t.MaxPlayers).Msg("tournament created")
		return []Event{{Name: EventTournamentCreated, TournamentID: id, Tournament: t.clone(), At: t.CreatedAt}}, nil
	})
	return out, err
}

func (m *Manager) RegisterPlayer(ctx context.Context, tournamentID string, in PlayerInput) (*Tournament, error) {
	var out *Tournament
	err := m.apply(ctx, func() ([]Event, error) {
		t, err := m.lookupLocked(tournamentID)
		if err != nil {
			return nil, err
		}
		address := strings.TrimSpace(in.Address)
		if address == "" {
			return nil, invalidf("address is required")
		}
		if t.IsFull() {
			return nil, fmt.Errorf("%w: tournament %s has %d players", ErrFull, t.ID, t.MaxPlayers)
		}
		if t.Status != StatusFilling {
			return nil, stateErr(t, StatusFilling)
		}
		if _, ok := t.player(address); ok {
			return nil, fmt.Errorf("%w: %s in tournament %s", ErrDuplicateRegistration, address, t.ID)
		}

		now := m.now()
		p := Player{
			Address:      address,
			Username:     strings.TrimSpace(in.Username),
			RegisteredAt: now,
		}
		if p.Username == "" {
			p.Username = DefaultUsername(address)
		}
		t.RegisteredPlayers = append(t.RegisteredPlayers, p)
		t.PrizePool += t.EntryFee

		profile := m.profileLocked(address)
		profile.Username = p.Username
		profile.TournamentsPlayed++

		log.Info().Str("tournament_id", t.ID).Str("address", address).Int("players", len(t.RegisteredPlayers)).Msg("player registered")
		events := []Event{{Name: EventPlayerRegistered, TournamentID: t.ID, Player: p.clone(), At: now}}
		if t.IsFull() {
			events = append(events, m.startLocked(t))
		}
		events[0].Tournament = t.clone()
		out = t.clone()
		return events, nil
	})
	return out, err
}

func (m *Manager) StartTournament(ctx context.Context, tournamentID string) (*Tournament, error) {
	var out *Tournament
	err := m.apply(ctx, func() ([]Event, error) {
		t, err := m.lookupLocked(tournamentID)
		if err != nil {
			return nil, err
		}
		if t.Status != StatusFilling {
			return nil, stateErr(t, StatusFilling)
		}
		if len(t.RegisteredPlayers) < 2 {
			return nil, fmt.Errorf("%w: tournament %s has %d players", ErrNotEnoughPlayers, t.ID, len(t.RegisteredPlayers))
		}
		ev := m.startLocked(t)
		out = t.clone()
		return []Event{ev}, nil
	})
	return out, err
}

func (m *Manager) startLocked(t *Tournament) Event {
	now := m.now()
	t.Status = StatusActive
	t.StartedAt = &now
	t.Bracket = generateBracket(t.RegisteredPlayers, m.rng)
	log.Info().Str("tournament_id", t.ID).Int("players", len(t.RegisteredPlayers)).Int("rounds", len(t.Bracket.Rounds)).Msg("tournament started")
	return Event{Name: EventTournamentStarted, TournamentID: t.ID, Tournament: t.clone(), At: now}
}

func (m *Manager) CompleteTournament(ctx context.Context, tournamentID, winnerAddress string) (*Completion, error) {
	var out *Completion
	err := m.apply(ctx, func() ([]Event, error) {
		t, err := m.lookupLocked(tournamentID)
		if err != nil {
			return nil, err
		}
		idx, ok := t.player(winnerAddress)
		if !ok {
			return nil, fmt.Errorf("%w: %s in tournament %s", ErrWinnerNotRegistered, winnerAddress, t.ID)
		}
		if t.Status != StatusActive {
			return nil, stateErr(t, StatusActive)
		}
		c, ev := m.completeLocked(t, idx)
		out = c
		return []Event{ev}, nil
	})
	return out, err
}

// completeLocked finishes t with the player at roster index idx as winner.
func (m *Manager) completeLocked(t *Tournament, idx int) (*Completion, Event) {
	now := m.now()
	for i := range t.RegisteredPlayers {
		t.RegisteredPlayers[i].IsEliminated = i != idx
	}
	winner := t.RegisteredPlayers[idx]
	t.Status = StatusCompleted
	t.CompletedAt = &now
	t.Winner = winner.clone()

	prize := t.PrizePool * winnerShare
	payout := Payout{
		ID:              m.newID(),
		TournamentID:    t.ID,
		TournamentName:  t.Name,
		Winner:          winner,
		PrizeAmount:     prize,
		PlatformFee:     t.PrizePool - prize,
		Position:        FirstPlace,
		TransactionHash: m.txHashLocked(),
		Timestamp:       now,
		GameType:        t.GameType,
	}
	m.payouts = append([]Payout{payout}, m.payouts...)

	profile := m.profileLocked(winner.Address)
	if profile.Username == "" {
		profile.Username = winner.Username
	}
	profile.TournamentsWon++
	profile.TotalEarnings += prize

	log.Info().Str("tournament_id", t.ID).Str("winner", winner.Address).Float64("prize", prize).Msg("tournament completed")
	c := &Completion{Tournament: t.clone(), Payout: payout}
	p := payout
	return c, Event{Name: EventTournamentCompleted, TournamentID: t.ID, Tournament: t.clone(), Player: winner.clone(), Payout: &p, At: now}
}

// ReportMatchResult records the winner of one bracket match and advances it.
// Deciding the final completes the tournament.
func (m *Manager) ReportMatchResult(ctx context.Context, tournamentID string, round, order int, winnerAddress string) (*MatchReport, error) {
	var out *MatchReport
	err := m.apply(ctx, func() ([]Event, error) {
		t, err := m.lookupLocked(tournamentID)
		if err != nil {
			return nil, err
		}
		if t.Status != StatusActive {
			return nil, stateErr(t, StatusActive)
		}
		match, ok := t.Bracket.Match(round, order)
		if !ok {
			return nil, fmt.Errorf("%w: round %d match %d", ErrMatchNotFound, round, order)
		}
		switch {
		case match.Completed:
			return nil, fmt.Errorf("%w: round %d match %d", ErrMatchDecided, round, order)
		case !match.Ready():
			return nil, fmt.Errorf("%w: round %d match %d", ErrMatchNotReady, round, order)
		case !match.has(winnerAddress):
			return nil, fmt.Errorf("%w: %s", ErrWinnerNotInMatch, winnerAddress)
		}

		loser := match.opponent(winnerAddress)
		if i, ok := t.player(loser.Address); ok {
			t.RegisteredPlayers[i].IsEliminated = true
		}
		winnerIdx, _ := t.player(winnerAddress)
		final := t.Bracket.decide(round-1, order-1, &t.RegisteredPlayers[winnerIdx])

		log.Info().Str("tournament_id", t.ID).Int("round", round).Int("order", order).Str("winner", winnerAddress).Msg("match reported")
		report := &MatchReport{Match: *match.clone()}
		events := []Event{{Name: EventMatchReported, TournamentID: t.ID, Match: match.clone(), At: m.now()}}
		if final {
			c, ev := m.completeLocked(t, winnerIdx)
			report.Completion = c
			events = append(events, ev)
		}
		events[0].Tournament = t.clone()
		report.Tournament = t.clone()
		out = report
		return events, nil
	})
	return out, err
}

// SimulateCompletion completes an active tournament with a random registered
// player, ignoring the bracket.
func (m *Manager) SimulateCompletion(ctx context.Context, tournamentID string) (*Completion, error) {
	var out *Completion
	err := m.apply(ctx, func() ([]Event, error) {
		t, err := m.lookupLocked(tournamentID)
		if err != nil {
			return nil, err
		}
		if t.Status != StatusActive {
			return nil, stateErr(t, StatusActive)
		}
		c, ev := m.completeLocked(t, m.rng.Intn(len(t.RegisteredPlayers)))
		out = c
		return []Event{ev}, nil
	})
	return out, err
}

func (m *Manager) lookupLocked(id string) (*Tournament, error) {
	t, ok := m.tournaments[id]
	if !ok {
		return nil, fmt.Errorf("%w: tournament %s", ErrNotFound, id)
	}
	return t, nil
}

func (m *Manager) profileLocked(address string) *PlayerProfile {
	p, ok := m.players[address]
	if !ok {
		p = &PlayerProfile{Address: address}
		m.players[address] = p
	}
	return p
}

func (m *Manager) txHashLocked() string {
	buf := make([]byte, 32)
	m.rng.Read(buf)
	return "0x" + hex.EncodeToString(buf)
}

// DefaultUsername is the display name used when a player registers without
// one.
func DefaultUsername(address string) string {
	if r := []rune(address); len(r) > 4 {
		address = string(r[len(r)-4:])
	}
	return "Player_" + address
}
