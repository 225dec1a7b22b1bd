package main

import (
	"strings"
	"testing"
	"time"

	"tournament-flow/internal/config"
	"tournament-flow/internal/tournament"
)

func TestDescribe(t *testing.T) {
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	tour := &tournament.Tournament{ID: "t1", Name: "Friday Cup", GameType: "chess", MaxPlayers: 4, EntryFee: 10,
		RegisteredPlayers: []tournament.Player{{Address: "0x1234567890abcdef"}}}
	winner := &tournament.Player{Address: "0xaaaaaaaaaaaa9999"}

	cases := []struct {
		name string
		ev   tournament.Event
		want []string
	}{
		{"created", tournament.Event{Name: tournament.EventTournamentCreated, Tournament: tour, At: now}, []string{"Just now", "Friday Cup", "4 seats"}},
		{"registered", tournament.Event{Name: tournament.EventPlayerRegistered, Tournament: tour, Player: &tour.RegisteredPlayers[0], At: now.Add(-5 * time.Minute)},
			[]string{"5 minutes ago", "0x1234...cdef joined Friday Cup 1/4"}},
		{"match", tournament.Event{Name: tournament.EventMatchReported, TournamentID: "t1", Match: &tournament.Match{Round: 2, Order: 1, Winner: winner}, At: now},
			[]string{"t1 round 2 match 1 won by 0xaaaa...9999"}},
		{"completed", tournament.Event{Name: tournament.EventTournamentCompleted, Tournament: tour, Payout: &tournament.Payout{Winner: *winner, PrizeAmount: 36}, At: now},
			[]string{"Friday Cup won by 0xaaaa...9999, prize 36.00"}},
		{"warning", tournament.Event{Name: tournament.EventPersistenceWarning, Warning: "disk full", At: now}, []string{"disk full"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := describe(tc.ev, now)
			for _, w := range tc.want {
				if !strings.Contains(got, w) {
					t.Fatalf("describe = %q, want substring %q", got, w)
				}
			}
		})
	}
}

func TestFeedURL(t *testing.T) {
	got, err := feedURL(config.WatchConfig{WSURL: "ws://localhost:4000/ws", Room: "t1"})
	if err != nil {
		t.Fatalf("feedURL: %v", err)
	}
	if got != "ws://localhost:4000/ws?room=t1" {
		t.Fatalf("feedURL = %q, want ws://localhost:4000/ws?room=t1", got)
	}
}
