package httptransport

import (
	"errors"
	"net/http"

	"tournament-flow/internal/tournament"

	"github.com/rs/zerolog/log"
)

var domainErrors = []struct {
	err    error
	status int
}{
	{tournament.ErrNotFound, http.StatusNotFound},
	{tournament.ErrInvalidRequest, http.StatusBadRequest},
	{tournament.ErrFull, http.StatusConflict},
	{tournament.ErrDuplicateRegistration, http.StatusConflict},
	{tournament.ErrInvalidState, http.StatusConflict},
	{tournament.ErrNotEnoughPlayers, http.StatusConflict},
	{tournament.ErrMatchNotFound, http.StatusConflict},
	{tournament.ErrMatchNotReady, http.StatusConflict},
	{tournament.ErrMatchDecided, http.StatusConflict},
	{tournament.ErrWinnerNotRegistered, http.StatusUnprocessableEntity},
	{tournament.ErrWinnerNotInMatch, http.StatusUnprocessableEntity},
}

// writeDomainError maps manager errors to a status and the sentinel's code.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	for _, d := range domainErrors {
		if errors.Is(err, d.err) {
			metricDomainErrors.Add(d.err.Error(), 1)
			WriteHTTPError(w, d.status, d.err.Error())
			return
		}
	}
	metricDomainErrors.Add("internal_error", 1)
	log.Error().Err(err).Str("path", r.URL.Path).Msg("unexpected manager error")
	WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
}
