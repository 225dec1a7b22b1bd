package httptransport

import (
	"net/http"
	"time"

	"tournament-flow/internal/feed"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

var ssePingInterval = 15 * time.Second

// EventsSSEHandler replays buffered events after Last-Event-ID and then
// streams new ones. An optional tournament_id query narrows both to one
// tournament plus catalog-wide events.
func EventsSSEHandler(buf *feed.EventBuffer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			WriteHTTPError(w, http.StatusInternalServerError, "stream_not_supported")
			return
		}
		tournamentID := r.URL.Query().Get("tournament_id")

		metricSSEConnectionsTotal.Add(1)
		metricSSEConnectionsActive.Add(1)
		defer metricSSEConnectionsActive.Add(-1)

		replay, ch := buf.Resume(r.Header.Get("Last-Event-ID"), tournamentID)
		defer buf.Unsubscribe(ch)

		feed.SetSSEHeaders(w)
		log.Info().
			Str("request_id", chimw.GetReqID(r.Context())).
			Str("tournament_id", tournamentID).
			Msg("sse stream opened")

		for _, ev := range replay {
			if err := feed.WriteSSE(w, ev); err != nil {
				return
			}
		}
		flusher.Flush()

		ticker := time.NewTicker(ssePingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-r.Context().Done():
				return
			case ev, ok := <-ch:
				if !ok {
					return
				}
				if err := feed.WriteSSE(w, ev); err != nil {
					return
				}
				flusher.Flush()
			case <-ticker.C:
				ping := feed.StreamEvent{Event: "ping", ServerTS: time.Now().UnixMilli()}
				if err := feed.WriteSSE(w, ping); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}
