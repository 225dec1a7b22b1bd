package feed

import (
	"sort"
	"strconv"
	"sync"
	"time"
)

const (
	defaultBufferSize = 500
	watcherBuffer     = 32
)

type StreamEvent struct {
	EventID      string `json:"event_id"`
	Event        string `json:"event"`
	TournamentID string `json:"tournament_id,omitempty"`
	ServerTS     int64  `json:"server_ts"`
	Data         any    `json:"data"`
}

// ParseCursor reads a Last-Event-ID value. Empty or malformed ids start from
// the beginning of the buffer.
func ParseCursor(id string) int64 {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// matches reports whether an event for eventTournament passes a tournament
// filter. An empty filter passes everything; a filtered stream also receives
// catalog-wide events such as persistence warnings.
func matches(filter, eventTournament string) bool {
	return filter == "" || eventTournament == "" || eventTournament == filter
}

type record struct {
	seq int64
	ev  StreamEvent
}

// EventBuffer numbers feed events, keeps the newest for Last-Event-ID
// replay and fans new ones out to filtered watchers. A watcher whose channel
// is full misses the event.
type EventBuffer struct {
	mu       sync.Mutex
	seq      int64
	max      int
	records  []record
	watchers map[chan StreamEvent]string
	closed   bool
}

func NewEventBuffer(max int) *EventBuffer {
	if max <= 0 {
		max = defaultBufferSize
	}
	return &EventBuffer{
		max:      max,
		watchers: map[chan StreamEvent]string{},
	}
}

// Append assigns the next id to the event and delivers it. It returns the
// zero event once the buffer is closed.
func (b *EventBuffer) Append(event, tournamentID string, data any) StreamEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return StreamEvent{}
	}
	b.seq++
	ev := StreamEvent{
		EventID:      strconv.FormatInt(b.seq, 10),
		Event:        event,
		TournamentID: tournamentID,
		ServerTS:     time.Now().UnixMilli(),
		Data:         data,
	}
	b.records = append(b.records, record{seq: b.seq, ev: ev})
	if over := len(b.records) - b.max; over > 0 {
		b.records = append(b.records[:0:0], b.records[over:]...)
	}
	for ch, filter := range b.watchers {
		if !matches(filter, tournamentID) {
			continue
		}
		select {
		case ch <- ev:
		default:
		}
	}
	return ev
}

// ReplayAfter returns buffered events newer than lastEventID for tournamentID.
// An empty tournamentID replays every tournament.
func (b *EventBuffer) ReplayAfter(lastEventID, tournamentID string) []StreamEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.replayLocked(ParseCursor(lastEventID), tournamentID)
}

func (b *EventBuffer) replayLocked(after int64, tournamentID string) []StreamEvent {
	start := sort.Search(len(b.records), func(i int) bool { return b.records[i].seq > after })
	out := make([]StreamEvent, 0, len(b.records)-start)
	for _, r := range b.records[start:] {
		if matches(tournamentID, r.ev.TournamentID) {
			out = append(out, r.ev)
		}
	}
	return out
}

// Subscribe returns a channel of new events for tournamentID, or for every
// tournament when it is empty.
func (b *EventBuffer) Subscribe(tournamentID string) chan StreamEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.subscribeLocked(tournamentID)
}

func (b *EventBuffer) subscribeLocked(tournamentID string) chan StreamEvent {
	ch := make(chan StreamEvent, watcherBuffer)
	if b.closed {
		close(ch)
		return ch
	}
	b.watchers[ch] = tournamentID
	return ch
}

// Resume replays events after lastEventID and subscribes in one step, so an
// event lands in exactly one of the two results.
func (b *EventBuffer) Resume(lastEventID, tournamentID string) ([]StreamEvent, chan StreamEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.replayLocked(ParseCursor(lastEventID), tournamentID), b.subscribeLocked(tournamentID)
}

func (b *EventBuffer) Unsubscribe(ch chan StreamEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.watchers[ch]; ok {
		delete(b.watchers, ch)
		close(ch)
	}
}

// Close ends every subscription and drops later appends.
func (b *EventBuffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.watchers {
		close(ch)
		delete(b.watchers, ch)
	}
}
