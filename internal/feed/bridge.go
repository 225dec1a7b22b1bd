package feed

import (
	"tournament-flow/internal/tournament"
)

// Bridge forwards every bus event to the replay buffer and the hub.
type Bridge struct {
	bus *tournament.Bus
	buf *EventBuffer
	hub *Hub
	sub tournament.SubscriptionID
}

func NewBridge(bus *tournament.Bus, buf *EventBuffer, hub *Hub) *Bridge {
	b := &Bridge{bus: bus, buf: buf, hub: hub}
	b.sub = bus.Subscribe(tournament.AllEvents, b.forward)
	return b
}

func (b *Bridge) forward(ev tournament.Event) error {
	if b.buf != nil {
		b.buf.Append(ev.Name, ev.TournamentID, ev)
	}
	if b.hub != nil {
		msg := Message{Type: ev.Name, Payload: ev}
		b.hub.Broadcast(LobbyRoom, msg)
		if ev.TournamentID != "" && ev.TournamentID != LobbyRoom {
			b.hub.Broadcast(ev.TournamentID, msg)
		}
	}
	return nil
}

func (b *Bridge) Close() {
	b.bus.Unsubscribe(tournament.AllEvents, b.sub)
}
