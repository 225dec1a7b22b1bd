package httptransport

import (
	"encoding/json"
	"net/http"

	"tournament-flow/internal/tournament"

	"github.com/go-chi/chi/v5"
)

type TournamentHandlers struct {
	mgr *tournament.Manager
}

func NewTournamentHandlers(mgr *tournament.Manager) *TournamentHandlers {
	return &TournamentHandlers{mgr: mgr}
}

func (h *TournamentHandlers) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var items []*tournament.Tournament
		switch r.URL.Query().Get("status") {
		case "", "all":
			items = h.mgr.Tournaments()
		case "active":
			items = h.mgr.ActiveTournaments()
		case "completed":
			items = h.mgr.CompletedTournaments()
		default:
			WriteHTTPError(w, http.StatusBadRequest, "invalid_status")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	}
}

func (h *TournamentHandlers) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in tournament.CreateInput
		if !decodeBody(w, r, &in) {
			return
		}
		t, err := h.mgr.CreateTournament(r.Context(), in)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		metricTournamentsCreated.Add(1)
		writeJSON(w, http.StatusCreated, t)
	}
}

func (h *TournamentHandlers) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := h.mgr.Tournament(chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

func (h *TournamentHandlers) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in tournament.PlayerInput
		if !decodeBody(w, r, &in) {
			return
		}
		t, err := h.mgr.RegisterPlayer(r.Context(), chi.URLParam(r, "id"), in)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		metricRegistrations.Add(1)
		writeJSON(w, http.StatusOK, t)
	}
}

func (h *TournamentHandlers) Start() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := h.mgr.StartTournament(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

type completeRequest struct {
	Winner string `json:"winner"`
}

func (h *TournamentHandlers) Complete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req completeRequest
		if !decodeBody(w, r, &req) {
			return
		}
		c, err := h.mgr.CompleteTournament(r.Context(), chi.URLParam(r, "id"), req.Winner)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		metricTournamentsCompleted.Add(1)
		writeJSON(w, http.StatusOK, c)
	}
}

func (h *TournamentHandlers) Simulate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := h.mgr.SimulateCompletion(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		metricTournamentsCompleted.Add(1)
		writeJSON(w, http.StatusOK, c)
	}
}

type matchRequest struct {
	Round  int    `json:"round"`
	Order  int    `json:"order"`
	Winner string `json:"winner"`
}

func (h *TournamentHandlers) ReportMatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req matchRequest
		if !decodeBody(w, r, &req) {
			return
		}
		rep, err := h.mgr.ReportMatchResult(r.Context(), chi.URLParam(r, "id"), req.Round, req.Order, req.Winner)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		metricMatchesReported.Add(1)
		if rep.Completion != nil {
			metricTournamentsCompleted.Add(1)
		}
		writeJSON(w, http.StatusOK, rep)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(dst); err != nil {
		WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
		return false
	}
	return true
}
