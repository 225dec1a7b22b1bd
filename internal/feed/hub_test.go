package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"tournament-flow/internal/store"
	"tournament-flow/internal/tournament"
)

func dialRoom(t *testing.T, srv *httptest.Server, hub *Hub, room string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	if room != "" {
		url += "?room=" + room
	}
	before := hub.ClientCount(roomOrLobby(room))
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount(roomOrLobby(room)) == before {
		if time.Now().After(deadline) {
			t.Fatalf("client never joined room %q", room)
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

func roomOrLobby(room string) string {
	if room == "" {
		return LobbyRoom
	}
	return room
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("decode message: %v", err)
	}
	return msg
}

func TestHubBroadcastToRoom(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()
	defer hub.Close()

	lobby := dialRoom(t, srv, hub, "")
	room := dialRoom(t, srv, hub, "t1")

	hub.Broadcast("t1", Message{Type: "match_reported"})
	if msg := readMessage(t, room); msg.Type != "match_reported" || msg.RoomID != "t1" {
		t.Fatalf("room message = %+v", msg)
	}

	hub.Broadcast(LobbyRoom, Message{Type: "tournament_created"})
	if msg := readMessage(t, lobby); msg.Type != "tournament_created" {
		t.Fatalf("lobby message = %+v, want tournament_created", msg)
	}
}

func TestBridgeForwardsManagerEvents(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()
	defer hub.Close()

	bus := tournament.NewBus()
	buf := NewEventBuffer(10)
	bridge := NewBridge(bus, buf, hub)
	defer bridge.Close()
	lobby := dialRoom(t, srv, hub, LobbyRoom)

	m := tournament.NewManager(store.NewMemory(), bus)
	tr, err := m.CreateTournament(context.Background(), tournament.CreateInput{Name: "Cup", MaxPlayers: 2})
	if err != nil {
		t.Fatalf("CreateTournament() error = %v", err)
	}

	msg := readMessage(t, lobby)
	if msg.Type != tournament.EventTournamentCreated {
		t.Fatalf("lobby message type = %q", msg.Type)
	}
	replay := buf.ReplayAfter("", "")
	if len(replay) != 1 || replay[0].TournamentID != tr.ID {
		t.Fatalf("buffer = %+v, want one event for %s", replay, tr.ID)
	}

	bridge.Close()
	if _, err := m.CreateTournament(context.Background(), tournament.CreateInput{Name: "Cup 2", MaxPlayers: 2}); err != nil {
		t.Fatalf("CreateTournament() error = %v", err)
	}
	if got := len(buf.ReplayAfter("", "")); got != 1 {
		t.Fatalf("buffer grew after bridge closed: %d events", got)
	}
}

func TestHubCloseDisconnectsClients(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	conn := dialRoom(t, srv, hub, "")
	hub.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Fatalf("ReadMessage() error = %v, want going away", err)
	}
	if n := hub.ClientCount(LobbyRoom); n != 0 {
		t.Fatalf("ClientCount() = %d, want 0", n)
	}
}
