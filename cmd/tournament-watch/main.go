package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tournament-flow/internal/config"
	"tournament-flow/internal/logging"
	"tournament-flow/internal/tournament"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// closedByPeer are the close codes a server sends when it ends the feed
// cleanly. 1005 covers peers that close with an empty payload.
var closedByPeer = []int{
	websocket.CloseNormalClosure,
	websocket.CloseGoingAway,
	websocket.CloseNoStatusReceived,
}

type message struct {
	Type    string           `json:"type"`
	Payload tournament.Event `json:"payload"`
}

func main() {
	config.LoadDotEnv()
	logCfg, err := config.LoadLog()
	if err != nil {
		panic(err)
	}
	logging.Init(logCfg)
	cfg, err := config.LoadWatch()
	if err != nil {
		log.Fatal().Err(err).Msg("load watch config failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := watch(ctx, cfg, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("watch stopped")
	}
}

func watch(ctx context.Context, cfg config.WatchConfig, out io.Writer) error {
	target, err := feedURL(cfg)
	if err != nil {
		return err
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, target, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Info().Str("url", target).Msg("watching")

	go func() {
		<-ctx.Done()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, closedByPeer...) {
				return nil
			}
			return err
		}
		var msg message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Debug().Err(err).Msg("skip undecodable message")
			continue
		}
		fmt.Fprintln(out, describe(msg.Payload, time.Now()))
	}
}

func feedURL(cfg config.WatchConfig) (string, error) {
	u, err := url.Parse(cfg.WSURL)
	if err != nil {
		return "", err
	}
	if cfg.Room != "" {
		q := u.Query()
		q.Set("room", cfg.Room)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
