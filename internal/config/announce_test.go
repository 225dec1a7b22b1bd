package config

import (
	"testing"
	"time"
)

func TestLoadAnnounceDefaults(t *testing.T) {
	cfg, err := LoadAnnounce()
	if err != nil {
		t.Fatalf("LoadAnnounce() error = %v", err)
	}
	if cfg.Enabled {
		t.Fatal("Enabled = true, want false")
	}
	if len(cfg.Events) != 2 || cfg.Events[0] != "tournament_started" || cfg.Events[1] != "tournament_completed" {
		t.Fatalf("Events = %v, want started and completed", cfg.Events)
	}
	if cfg.RetryBase != 500*time.Millisecond {
		t.Fatalf("RetryBase = %v, want 500ms", cfg.RetryBase)
	}
}

func TestLoadAnnounceRequiresWebhook(t *testing.T) {
	t.Setenv("ANNOUNCE_ENABLED", "true")
	t.Setenv("ANNOUNCE_DISCORD_WEBHOOKS", " , ")
	if _, err := LoadAnnounce(); err == nil {
		t.Fatal("LoadAnnounce() error = nil, want missing webhook error")
	}
}

func TestLoadAnnounceNormalizesLists(t *testing.T) {
	t.Setenv("ANNOUNCE_ENABLED", "true")
	t.Setenv("ANNOUNCE_DISCORD_WEBHOOKS", "https://discord.test/api/webhooks/1/a, ")
	t.Setenv("ANNOUNCE_EVENTS", " Tournament_Created ,,match_reported")
	cfg, err := LoadAnnounce()
	if err != nil {
		t.Fatalf("LoadAnnounce() error = %v", err)
	}
	if len(cfg.DiscordWebhooks) != 1 {
		t.Fatalf("DiscordWebhooks = %v, want one entry", cfg.DiscordWebhooks)
	}
	if len(cfg.Events) != 2 || cfg.Events[0] != "tournament_created" || cfg.Events[1] != "match_reported" {
		t.Fatalf("Events = %v", cfg.Events)
	}
}
