package autoplay

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"tournament-flow/internal/config"
	"tournament-flow/internal/tournament"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// Worker plays out active brackets with random winners so demo tournaments
// finish without manual reporting.
type Worker struct {
	mgr *tournament.Manager
	cfg config.AutoplayConfig
	now func() time.Time

	mu    sync.Mutex
	rng   *rand.Rand
	sched gocron.Scheduler
}

func New(mgr *tournament.Manager, cfg config.AutoplayConfig) *Worker {
	return &Worker{
		mgr: mgr,
		cfg: cfg,
		now: time.Now,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (w *Worker) Start(ctx context.Context) error {
	if !w.cfg.Enabled {
		return nil
	}
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	_, err = sched.NewJob(
		gocron.DurationJob(w.cfg.Interval),
		gocron.NewTask(func() { w.Sweep(ctx) }),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = sched.Shutdown()
		return err
	}
	sched.Start()
	w.sched = sched
	log.Info().Dur("interval", w.cfg.Interval).Dur("min_active", w.cfg.MinActive).Msg("autoplay started")
	return nil
}

func (w *Worker) Stop() error {
	if w.sched == nil {
		return nil
	}
	return w.sched.Shutdown()
}

// Sweep reports random winners for every ready match of tournaments that
// have been active for at least MinActive. It returns the number of matches
// reported.
func (w *Worker) Sweep(ctx context.Context) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	cutoff := w.now().Add(-w.cfg.MinActive)
	played := 0
	for _, t := range w.mgr.ActiveTournaments() {
		if t.Status != tournament.StatusActive || t.StartedAt == nil || t.StartedAt.After(cutoff) {
			continue
		}
		played += w.playOut(ctx, t)
	}
	return played
}

func (w *Worker) playOut(ctx context.Context, t *tournament.Tournament) int {
	played := 0
	for t.Status == tournament.StatusActive {
		ready := t.Bracket.ReadyMatches()
		if len(ready) == 0 {
			break
		}
		for _, m := range ready {
			if ctx.Err() != nil {
				return played
			}
			winner := m.Player1
			if w.rng.Intn(2) == 1 {
				winner = m.Player2
			}
			rep, err := w.mgr.ReportMatchResult(ctx, t.ID, m.Round, m.Order, winner.Address)
			if err != nil {
				log.Warn().Err(err).Str("tournament_id", t.ID).Int("round", m.Round).Int("order", m.Order).Msg("autoplay report failed")
				return played
			}
			played++
			t = rep.Tournament
		}
	}
	if t.Status == tournament.StatusCompleted && t.Winner != nil {
		log.Info().Str("tournament_id", t.ID).Str("winner", t.Winner.Address).Int("matches", played).Msg("autoplay finished tournament")
	}
	return played
}
