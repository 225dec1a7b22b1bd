package httptransport

import (
	"expvar"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"tournament-flow/internal/config"
	"tournament-flow/internal/feed"
	"tournament-flow/internal/store"
	"tournament-flow/internal/tournament"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// Deps are the collaborators the router serves. MCP may be nil.
type Deps struct {
	Manager *tournament.Manager
	KV      store.KV
	Events  *feed.EventBuffer
	Hub     *feed.Hub
	MCP     http.Handler
}

func NewRouter(cfg config.ServerConfig, deps Deps) *chi.Mux {
	tournaments := NewTournamentHandlers(deps.Manager)
	public := NewPublicHandlers(deps.Manager, deps.KV)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", public.Health())

	if deps.MCP != nil {
		r.With(APILogMiddleware()).MethodFunc(http.MethodOptions, "/mcp", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Allow", "POST, GET, DELETE, OPTIONS")
			w.WriteHeader(http.StatusNoContent)
		})
		r.With(APILogMiddleware()).Method(http.MethodPost, "/mcp", deps.MCP)
		r.With(APILogMiddleware()).Method(http.MethodGet, "/mcp", deps.MCP)
		r.With(APILogMiddleware()).Method(http.MethodDelete, "/mcp", deps.MCP)
	}

	if deps.Hub != nil {
		r.Get("/ws", deps.Hub.ServeWS)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(CORSMiddleware(cfg.CORSAllowedOrigins))
		r.Use(APILogMiddleware())

		r.Get("/tournaments", tournaments.List())
		r.Post("/tournaments", tournaments.Create())
		r.Get("/tournaments/{id}", tournaments.Get())
		r.Post("/tournaments/{id}/players", tournaments.Register())

		r.Get("/payouts", public.Payouts())
		r.Get("/players/{address}", public.Player())
		r.Get("/leaderboard", public.Leaderboard())
		r.Get("/statistics", public.Statistics())
		if deps.Events != nil {
			r.Get("/events", EventsSSEHandler(deps.Events))
		}

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminAPIKey))
			r.Use(BodyCaptureMiddleware(4096))
			r.Post("/tournaments/{id}/start", tournaments.Start())
			r.Post("/tournaments/{id}/complete", tournaments.Complete())
			r.Post("/tournaments/{id}/simulate", tournaments.Simulate())
			r.Post("/tournaments/{id}/matches", tournaments.ReportMatch())
			r.Get("/debug/vars", expvar.Handler().ServeHTTP)
		})
	})

	static := StaticHandler(cfg.WebRoot)
	r.Get("/*", static)
	r.Head("/*", static)
	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 32)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}
