package tournament

import (
	"context"
	"errors"
	"testing"

	"tournament-flow/internal/store"
	"tournament-flow/internal/testutil"
)

type failingKV struct {
	store.KV
	fail bool
}

var errDiskFull = errors.New("disk full")

func (f *failingKV) Put(ctx context.Context, key string, value []byte) error {
	if f.fail {
		return errDiskFull
	}
	return f.KV.Put(ctx, key, value)
}

func TestLoadRestoresCatalog(t *testing.T) {
	kv := store.NewMemory()
	m, _ := newTestManager(t, kv)
	done := mustCreate(t, m, 2, 10)
	mustRegister(t, m, done.ID, "0xA", "0xB")
	if _, err := m.CompleteTournament(context.Background(), done.ID, "0xB"); err != nil {
		t.Fatalf("CompleteTournament() error = %v", err)
	}
	open := mustCreate(t, m, 4, 1)
	mustRegister(t, m, open.ID, "0xC")

	restored, _ := newTestManager(t, kv)
	restored.Load(context.Background())

	if got := len(restored.Tournaments()); got != 2 {
		t.Fatalf("len(Tournaments()) = %d, want 2", got)
	}
	got, err := restored.Tournament(done.ID)
	if err != nil {
		t.Fatalf("Tournament() error = %v", err)
	}
	if got.Status != StatusCompleted || got.Winner == nil || got.Winner.Address != "0xB" || got.Bracket == nil {
		t.Fatalf("restored tournament = %+v", got)
	}
	if payouts := restored.Payouts(); len(payouts) != 1 || payouts[0].PrizeAmount != 18 {
		t.Fatalf("restored payouts = %+v", payouts)
	}
	if stats := restored.PlayerStats("0xB"); stats.TournamentsWon != 1 || stats.TotalEarnings != 18 {
		t.Fatalf("restored stats = %+v", stats)
	}
	if _, err := restored.RegisterPlayer(context.Background(), open.ID, PlayerInput{Address: "0xC"}); !errors.Is(err, ErrDuplicateRegistration) {
		t.Fatalf("RegisterPlayer() after load error = %v, want ErrDuplicateRegistration", err)
	}
}

func TestLoadToleratesMissingAndCorruptRecords(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()
	if err := kv.Put(ctx, KeyTournaments, []byte("{not json")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := kv.Put(ctx, KeyPlayers, []byte(`[{"address":"0xA","tournamentsPlayed":2}]`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	m, _ := newTestManager(t, kv)
	m.Load(ctx)

	if got := len(m.Tournaments()); got != 0 {
		t.Fatalf("len(Tournaments()) = %d, want 0", got)
	}
	if got := len(m.Payouts()); got != 0 {
		t.Fatalf("len(Payouts()) = %d, want 0", got)
	}
	if got := m.PlayerStats("0xA").TournamentsPlayed; got != 2 {
		t.Fatalf("TournamentsPlayed = %d, want 2", got)
	}
}

func TestPersistFailureKeepsStateAndWarns(t *testing.T) {
	kv := &failingKV{KV: store.NewMemory(), fail: true}
	m, events := newTestManager(t, kv)

	tr := mustCreate(t, m, 2, 1)
	if _, err := m.Tournament(tr.ID); err != nil {
		t.Fatalf("Tournament() error = %v, want state kept in memory", err)
	}

	var warn *PersistenceWarning
	if err := m.PersistenceWarning(); !errors.As(err, &warn) || !errors.Is(err, errDiskFull) {
		t.Fatalf("PersistenceWarning() = %v, want wrapped disk full", err)
	}
	if warn.Key != KeyTournaments {
		t.Fatalf("warning key = %q, want %q", warn.Key, KeyTournaments)
	}
	if got := m.PersistFailures(); got != 3 {
		t.Fatalf("PersistFailures() = %d, want 3", got)
	}
	names := eventNames(*events)
	if len(names) != 2 || names[0] != EventTournamentCreated || names[1] != EventPersistenceWarning {
		t.Fatalf("events = %v, want created then persistence_warning", names)
	}

	kv.fail = false
	mustRegister(t, m, tr.ID, "0xA")
	if err := m.PersistenceWarning(); err != nil {
		t.Fatalf("PersistenceWarning() after recovery = %v, want nil", err)
	}
}

func TestFailedOperationDoesNotPersist(t *testing.T) {
	kv := &failingKV{KV: store.NewMemory()}
	m, _ := newTestManager(t, kv)
	kv.fail = true
	if _, err := m.RegisterPlayer(context.Background(), "missing", PlayerInput{Address: "0xA"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if m.PersistenceWarning() != nil || m.PersistFailures() != 0 {
		t.Fatalf("rejected operation attempted a write")
	}
}

func TestPostgresRoundTrip(t *testing.T) {
	kv := testutil.OpenTestKV(t)
	m, _ := newTestManager(t, kv)
	tr := mustCreate(t, m, 2, 3)
	mustRegister(t, m, tr.ID, "0xA", "0xB")
	if err := m.PersistenceWarning(); err != nil {
		t.Fatalf("PersistenceWarning() = %v", err)
	}

	restored, _ := newTestManager(t, kv)
	restored.Load(context.Background())
	got, err := restored.Tournament(tr.ID)
	if err != nil {
		t.Fatalf("Tournament() error = %v", err)
	}
	if got.Status != StatusActive || got.PrizePool != 6 || got.Bracket == nil {
		t.Fatalf("restored = %+v", got)
	}
}

// ctxKV fails writes whose context is already done, like the network stores.
type ctxKV struct {
	store.KV
}

func (c ctxKV) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.KV.Put(ctx, key, value)
}

func TestPersistSurvivesCancelledCaller(t *testing.T) {
	mem := store.NewMemory()
	m, _ := newTestManager(t, ctxKV{KV: mem})
	tr := mustCreate(t, m, 4, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.RegisterPlayer(ctx, tr.ID, PlayerInput{Address: "0xA"}); err != nil {
		t.Fatalf("RegisterPlayer() error = %v", err)
	}
	if err := m.PersistenceWarning(); err != nil {
		t.Fatalf("PersistenceWarning() = %v, want nil", err)
	}
	if n := m.PersistFailures(); n != 0 {
		t.Fatalf("PersistFailures() = %d, want 0", n)
	}

	restored, _ := newTestManager(t, mem)
	restored.Load(context.Background())
	got, err := restored.Tournament(tr.ID)
	if err != nil {
		t.Fatalf("Tournament() error = %v", err)
	}
	if len(got.RegisteredPlayers) != 1 || got.RegisteredPlayers[0].Address != "0xA" {
		t.Fatalf("stored roster = %+v, want [0xA]", got.RegisteredPlayers)
	}
}
