package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tournament-flow/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInitLevelAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	Init(config.LogConfig{Level: "WARN", File: path, MaxMB: 1})
	t.Cleanup(func() {
		_ = Close()
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})

	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Fatalf("global level = %v, want warn", zerolog.GlobalLevel())
	}
	log.Info().Msg("hidden")
	log.Warn().Str("tournament_id", "t1").Msg("persist failed")

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	out := string(b)
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %s", out)
	}
	if !strings.Contains(out, `"tournament_id":"t1"`) {
		t.Fatalf("warn line missing from file: %s", out)
	}
	if Writer() == os.Stdout {
		t.Fatal("Writer() should tee into the log file")
	}
}

func TestInitUnknownLevelFallsBackToInfo(t *testing.T) {
	Init(config.LogConfig{Level: "loud"})
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Fatalf("global level = %v, want info", zerolog.GlobalLevel())
	}
	if Writer() != os.Stdout {
		t.Fatal("Writer() should be stdout without a log file")
	}
}
