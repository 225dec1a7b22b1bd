package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tournament-flow/internal/announce"
	"tournament-flow/internal/autoplay"
	"tournament-flow/internal/config"
	"tournament-flow/internal/feed"
	"tournament-flow/internal/logging"
	"tournament-flow/internal/mcpserver"
	"tournament-flow/internal/store"
	"tournament-flow/internal/tournament"
	httptransport "tournament-flow/internal/transport/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const eventBufferSize = 500

var pages = []string{"/", "/tournaments.html", "/rewards.html", "/docs.html"}

func main() {
	config.LoadDotEnv()
	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(cfg.Log)
	defer logging.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		logging.Close()
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg config.AppConfig) error {
	kv, err := store.Open(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(kv); err != nil {
			log.Warn().Err(err).Msg("close storage failed")
		}
	}()

	mgr := tournament.NewManager(kv, tournament.NewBus())
	mgr.Load(ctx)

	events := feed.NewEventBuffer(eventBufferSize)
	defer events.Close()
	hub := feed.NewHub()
	defer hub.Close()
	bridge := feed.NewBridge(mgr.Bus(), events, hub)
	defer bridge.Close()

	deps := httptransport.Deps{
		Manager: mgr,
		KV:      kv,
		Events:  events,
		Hub:     hub,
	}
	if cfg.Server.MCPEnabled {
		deps.MCP = mcpserver.New(mgr).Handler()
	}

	announcer := announce.New(cfg.Announce)
	announcer.Start(ctx, mgr.Bus())
	defer announcer.Stop()

	worker := autoplay.New(mgr, cfg.Autoplay)
	if err := worker.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := worker.Stop(); err != nil {
			log.Warn().Err(err).Msg("stop autoplay failed")
		}
	}()

	r := httptransport.NewRouter(cfg.Server, deps)
	httptransport.LogRoutes(r)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	// Event streams outlive Shutdown's idle wait unless their feeds close.
	server.RegisterOnShutdown(events.Close)
	server.RegisterOnShutdown(hub.Close)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logBanner(cfg)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func logBanner(cfg config.AppConfig) {
	base := "http://localhost" + cfg.Server.Addr()
	log.Info().
		Str("addr", cfg.Server.Addr()).
		Str("storage", cfg.Storage.Backend).
		Bool("mcp", cfg.Server.MCPEnabled).
		Bool("autoplay", cfg.Autoplay.Enabled).
		Bool("announce", cfg.Announce.Enabled).
		Msg("TournamentFlow listening")
	for _, p := range pages {
		log.Info().Str("url", base+p).Msg("page")
	}
}
