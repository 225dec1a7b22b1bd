package autoplay

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tournament-flow/internal/config"
	"tournament-flow/internal/store"
	"tournament-flow/internal/tournament"
)

func startedTournament(t *testing.T, mgr *tournament.Manager, id string, players int) {
	t.Helper()
	ctx := context.Background()
	if _, err := mgr.CreateTournament(ctx, tournament.CreateInput{ID: id, Name: id, MaxPlayers: players, EntryFee: 1}); err != nil {
		t.Fatalf("CreateTournament() error = %v", err)
	}
	for i := 0; i < players; i++ {
		if _, err := mgr.RegisterPlayer(ctx, id, tournament.PlayerInput{Address: fmt.Sprintf("0x%s%02d", id, i)}); err != nil {
			t.Fatalf("RegisterPlayer() error = %v", err)
		}
	}
}

func TestSweepPlaysOutBracket(t *testing.T) {
	mgr := tournament.NewManager(store.NewMemory(), tournament.NewBus())
	startedTournament(t, mgr, "five", 5)
	startedTournament(t, mgr, "two", 2)

	w := New(mgr, config.AutoplayConfig{Enabled: true, MinActive: 0})
	if played := w.Sweep(context.Background()); played != 5 {
		t.Fatalf("Sweep() = %d matches, want 5", played)
	}
	for _, id := range []string{"five", "two"} {
		got, err := mgr.Tournament(id)
		if err != nil {
			t.Fatalf("Tournament(%s) error = %v", id, err)
		}
		if got.Status != tournament.StatusCompleted || got.Winner == nil {
			t.Fatalf("%s not completed: %+v", id, got)
		}
	}
	if n := len(mgr.Payouts()); n != 2 {
		t.Fatalf("len(Payouts()) = %d, want 2", n)
	}
	if played := w.Sweep(context.Background()); played != 0 {
		t.Fatalf("second Sweep() = %d, want 0", played)
	}
}

func TestSweepWaitsForMinActive(t *testing.T) {
	mgr := tournament.NewManager(store.NewMemory(), tournament.NewBus())
	startedTournament(t, mgr, "fresh", 2)

	w := New(mgr, config.AutoplayConfig{Enabled: true, MinActive: time.Hour})
	if played := w.Sweep(context.Background()); played != 0 {
		t.Fatalf("Sweep() = %d, want 0 before MinActive", played)
	}
	w.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if played := w.Sweep(context.Background()); played != 1 {
		t.Fatalf("Sweep() = %d, want 1 after MinActive", played)
	}
}

func TestStartDisabledIsNoop(t *testing.T) {
	w := New(nil, config.AutoplayConfig{})
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
}

func TestStartRunsScheduledSweeps(t *testing.T) {
	mgr := tournament.NewManager(store.NewMemory(), tournament.NewBus())
	startedTournament(t, mgr, "sched", 4)

	w := New(mgr, config.AutoplayConfig{Enabled: true, Interval: 20 * time.Millisecond})
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() { _ = w.Stop() }()

	deadline := time.Now().Add(3 * time.Second)
	for {
		got, _ := mgr.Tournament("sched")
		if got.Status == tournament.StatusCompleted {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("scheduled sweep never completed the tournament")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
