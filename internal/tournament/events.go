package tournament

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	EventTournamentCreated   = "tournament_created"
	EventPlayerRegistered    = "player_registered"
	EventTournamentStarted   = "tournament_started"
	EventMatchReported       = "match_reported"
	EventTournamentCompleted = "tournament_completed"
	EventPersistenceWarning  = "persistence_warning"

	// AllEvents subscribes to every event name.
	AllEvents = "*"
)

// Event carries a snapshot of the state touched by one transition. Only the
// fields relevant to Name are set.
type Event struct {
	Name         string      `json:"event"`
	TournamentID string      `json:"tournamentId,omitempty"`
	Tournament   *Tournament `json:"tournament,omitempty"`
	Player       *Player     `json:"player,omitempty"`
	Match        *Match      `json:"match,omitempty"`
	Payout       *Payout     `json:"payout,omitempty"`
	Warning      string      `json:"warning,omitempty"`
	At           time.Time   `json:"at"`
}

type Handler func(Event) error

type SubscriptionID uint64

type subscription struct {
	id SubscriptionID
	fn Handler
}

// Bus dispatches events synchronously, in subscription order. A failing or
// panicking handler is logged and skipped.
type Bus struct {
	mu   sync.Mutex
	next SubscriptionID
	subs map[string][]subscription
}

func NewBus() *Bus {
	return &Bus{subs: map[string][]subscription{}}
}

func (b *Bus) Subscribe(name string, fn Handler) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	b.subs[name] = append(b.subs[name], subscription{id: b.next, fn: fn})
	return b.next
}

// Unsubscribe removes the first subscription with id under name.
func (b *Bus) Unsubscribe(name string, id SubscriptionID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.subs[name]
	for i, s := range list {
		if s.id != id {
			continue
		}
		b.subs[name] = append(list[:i:i], list[i+1:]...)
		if len(b.subs[name]) == 0 {
			delete(b.subs, name)
		}
		return true
	}
	return false
}

func (b *Bus) Publish(ev Event) {
	if b == nil {
		return
	}
	b.mu.Lock()
	targets := make([]subscription, 0, len(b.subs[ev.Name])+len(b.subs[AllEvents]))
	targets = append(targets, b.subs[ev.Name]...)
	if ev.Name != AllEvents {
		targets = append(targets, b.subs[AllEvents]...)
	}
	b.mu.Unlock()

	for _, s := range targets {
		if err := invoke(s.fn, ev); err != nil {
			log.Error().Err(err).Str("event", ev.Name).Uint64("subscription", uint64(s.id)).Msg("event handler failed")
		}
	}
}

func invoke(fn Handler, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ev)
}
