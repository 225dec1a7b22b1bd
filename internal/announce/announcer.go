package announce

import (
	"context"
	"errors"
	"sync"
	"time"

	"tournament-flow/internal/config"
	"tournament-flow/internal/tournament"

	"github.com/rs/zerolog/log"
)

const (
	dispatchBuffer      = 256
	failureThreshold    = 3
	circuitOpenDuration = 30 * time.Second
)

var errCircuitOpen = errors.New("circuit_open")

type breakerState struct {
	consecutiveFailures int
	openUntil           time.Time
}

type subscription struct {
	name string
	id   tournament.SubscriptionID
}

// Announcer posts selected bus events to Discord webhooks from a small worker
// pool. Failed deliveries are retried with exponential backoff and an endpoint
// that keeps failing is paused by a circuit breaker.
type Announcer struct {
	cfg    config.AnnounceConfig
	sender Sender
	now    func() time.Time

	dispatchCh chan job
	retryQ     *retryQueue
	done       chan struct{}
	stopOnce   sync.Once

	mu      sync.Mutex
	started bool
	bus     *tournament.Bus
	subs    []subscription
	breaker map[string]breakerState
}

func New(cfg config.AnnounceConfig) *Announcer {
	return NewWithSender(cfg, NewDiscordSender(NewHTTPClient(cfg.RequestTimeout)))
}

func NewWithSender(cfg config.AnnounceConfig, sender Sender) *Announcer {
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = 500 * time.Millisecond
	}
	a := &Announcer{
		cfg:        cfg,
		sender:     sender,
		now:        time.Now,
		dispatchCh: make(chan job, dispatchBuffer),
		done:       make(chan struct{}),
		breaker:    map[string]breakerState{},
	}
	a.retryQ = newRetryQueue(a.dispatchCh, a.done)
	return a
}

// Start subscribes to the configured events on bus and launches the workers.
// It does nothing when announcing is disabled.
func (a *Announcer) Start(ctx context.Context, bus *tournament.Bus) {
	if !a.cfg.Enabled {
		return
	}
	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		return
	}
	a.started = true
	a.bus = bus
	for _, name := range a.cfg.Events {
		id := bus.Subscribe(name, a.enqueue)
		a.subs = append(a.subs, subscription{name: name, id: id})
	}
	a.mu.Unlock()

	for i := 0; i < a.cfg.Workers; i++ {
		go a.worker(ctx)
	}
	go func() {
		select {
		case <-ctx.Done():
			a.Stop()
		case <-a.done:
		}
	}()
	log.Info().Int("webhooks", len(a.cfg.DiscordWebhooks)).Strs("events", a.cfg.Events).Msg("announcer started")
}

// Stop unsubscribes from the bus and halts the workers. Queued jobs are dropped.
func (a *Announcer) Stop() {
	a.stopOnce.Do(func() {
		a.mu.Lock()
		for _, s := range a.subs {
			a.bus.Unsubscribe(s.name, s.id)
		}
		a.subs = nil
		a.mu.Unlock()
		close(a.done)
	})
}

func (a *Announcer) enqueue(ev tournament.Event) error {
	msg, ok := FormatMessage(ev)
	if !ok {
		return nil
	}
	for _, endpoint := range a.cfg.DiscordWebhooks {
		select {
		case a.dispatchCh <- job{Endpoint: endpoint, Message: msg}:
			metricQueuedTotal.Add(1)
			metricQueueLen.Set(int64(len(a.dispatchCh)))
		default:
			metricDroppedTotal.Add(1)
			log.Warn().Str("event", ev.Name).Msg("announce queue full, dropping")
		}
	}
	return nil
}

func (a *Announcer) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-a.done:
			return
		case j := <-a.dispatchCh:
			metricQueueLen.Set(int64(len(a.dispatchCh)))
			a.process(ctx, j)
		}
	}
}

func (a *Announcer) process(ctx context.Context, j job) {
	if err := a.beforeSend(j.Endpoint, a.now()); err != nil {
		metricCircuitOpenTotal.Add(1)
		a.retryOrDrop(j, err)
		return
	}
	if err := a.sender.Send(ctx, j.Endpoint, j.Message); err != nil {
		metricFailedTotal.Add(1)
		a.afterFailure(j.Endpoint, a.now())
		a.retryOrDrop(j, err)
		return
	}
	metricSentTotal.Add(1)
	a.afterSuccess(j.Endpoint)
}

func (a *Announcer) retryOrDrop(j job, err error) bool {
	if j.Attempt >= a.cfg.RetryMax {
		metricRetryDroppedTotal.Add(1)
		log.Warn().Err(err).Str("title", j.Message.Title).Int("attempts", j.Attempt+1).Msg("announce dropped")
		return false
	}
	j.Attempt++
	metricRetryTotal.Add(1)
	delay := a.cfg.RetryBase * time.Duration(1<<(j.Attempt-1))
	a.retryQ.Enqueue(j, delay)
	return true
}

func (a *Announcer) beforeSend(endpoint string, now time.Time) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	state := a.breaker[endpoint]
	if !state.openUntil.IsZero() && now.Before(state.openUntil) {
		return errCircuitOpen
	}
	return nil
}

func (a *Announcer) afterFailure(endpoint string, now time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	state := a.breaker[endpoint]
	state.consecutiveFailures++
	if state.consecutiveFailures >= failureThreshold {
		state.openUntil = now.Add(circuitOpenDuration)
		state.consecutiveFailures = 0
	}
	a.breaker[endpoint] = state
}

func (a *Announcer) afterSuccess(endpoint string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.breaker[endpoint] = breakerState{}
}
