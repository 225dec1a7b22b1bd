package announce

import (
	"testing"
	"time"

	"tournament-flow/internal/tournament"
)

func TestFormatMessage(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tour := &tournament.Tournament{Name: "Cup", GameType: "chess", MaxPlayers: 8, EntryFee: 2.5, PrizePool: 20,
		RegisteredPlayers: make([]tournament.Player, 8)}
	winner := tournament.Player{Address: "0x1234567890abcdef", Username: "Player_cdef"}

	cases := []struct {
		name      string
		ev        tournament.Event
		wantTitle string
		wantDesc  string
		wantColor int
	}{
		{"created", tournament.Event{Name: tournament.EventTournamentCreated, Tournament: tour, At: at},
			"New tournament · Cup", "Cup is open for registration.", colorCreated},
		{"started", tournament.Event{Name: tournament.EventTournamentStarted, Tournament: tour, At: at},
			"Tournament started · Cup", "8 players are competing.", colorStarted},
		{"match", tournament.Event{Name: tournament.EventMatchReported, Tournament: tour, Match: &tournament.Match{Round: 1, Order: 3, Winner: &winner}, At: at},
			"Round 1 · match 3 · Cup", "Player_cdef advances.", colorMatch},
		{"completed", tournament.Event{Name: tournament.EventTournamentCompleted, Payout: &tournament.Payout{TournamentName: "Cup", Winner: winner, PrizeAmount: 18}, At: at},
			"Champion · Cup", "Player_cdef wins 18.00.", colorCompleted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg, ok := FormatMessage(tc.ev)
			if !ok {
				t.Fatal("FormatMessage() ok = false")
			}
			if msg.Title != tc.wantTitle || msg.Description != tc.wantDesc || msg.Color != tc.wantColor {
				t.Fatalf("msg = %+v, want title %q desc %q", msg, tc.wantTitle, tc.wantDesc)
			}
			if msg.Timestamp != "2026-03-01T10:00:00Z" {
				t.Fatalf("Timestamp = %q", msg.Timestamp)
			}
		})
	}
}

func TestFormatMessageSkipsIncompleteEvents(t *testing.T) {
	for _, ev := range []tournament.Event{
		{Name: tournament.EventTournamentCreated},
		{Name: tournament.EventMatchReported, Match: &tournament.Match{}},
		{Name: tournament.EventTournamentCompleted},
		{Name: "unknown"},
	} {
		if _, ok := FormatMessage(ev); ok {
			t.Fatalf("FormatMessage(%s) ok = true, want false", ev.Name)
		}
	}
}
