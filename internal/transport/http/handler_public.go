package httptransport

import (
	"context"
	"net/http"

	"tournament-flow/internal/store"
	"tournament-flow/internal/tournament"

	"github.com/go-chi/chi/v5"
)

type PublicHandlers struct {
	mgr *tournament.Manager
	kv  store.KV
}

func NewPublicHandlers(mgr *tournament.Manager, kv store.KV) *PublicHandlers {
	return &PublicHandlers{mgr: mgr, kv: kv}
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Health reports storage reachability and the last persistence failure.
func (h *PublicHandlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{"ok": true, "storage": "up"}
		if p, ok := h.kv.(pinger); ok {
			if err := p.Ping(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false, "storage": "down"})
				return
			}
		}
		if err := h.mgr.PersistenceWarning(); err != nil {
			resp["persistence_warning"] = err.Error()
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *PublicHandlers) Payouts() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"items": h.mgr.Payouts()})
	}
}

func (h *PublicHandlers) Player() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, h.mgr.PlayerStats(chi.URLParam(r, "address")))
	}
}

func (h *PublicHandlers) Leaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, h.mgr.Leaderboard())
	}
}

func (h *PublicHandlers) Statistics() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, h.mgr.Statistics())
	}
}
