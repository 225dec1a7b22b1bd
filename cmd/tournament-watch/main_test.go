package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tournament-flow/internal/config"
	"tournament-flow/internal/feed"
	"tournament-flow/internal/tournament"
)

func TestWatchEndsCleanlyWhenServerCloses(t *testing.T) {
	hub := feed.NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	cfg := config.WatchConfig{WSURL: "ws" + strings.TrimPrefix(srv.URL, "http"), Room: feed.LobbyRoom}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() { done <- watch(ctx, cfg, &out) }()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount(feed.LobbyRoom) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("watcher never joined the lobby")
		}
		time.Sleep(5 * time.Millisecond)
	}
	hub.Broadcast(feed.LobbyRoom, feed.Message{
		Type: tournament.EventTournamentCreated,
		Payload: tournament.Event{
			Name:       tournament.EventTournamentCreated,
			Tournament: &tournament.Tournament{ID: "t1", Name: "Friday Cup", MaxPlayers: 4},
			At:         time.Now(),
		},
	})
	hub.Close()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watch() error = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watch() did not return after the hub closed")
	}
	if !strings.Contains(out.String(), "Friday Cup") {
		t.Fatalf("output = %q, want the created tournament", out.String())
	}
}
