package config

import (
	"testing"
	"time"
)

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.Port != 4000 {
		t.Fatalf("Port = %d, want 4000", cfg.Port)
	}
	if cfg.Addr() != ":4000" {
		t.Fatalf("Addr() = %q, want :4000", cfg.Addr())
	}
	if cfg.WebRoot != "web" {
		t.Fatalf("WebRoot = %q, want web", cfg.WebRoot)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("CORSAllowedOrigins = %v, want [*]", cfg.CORSAllowedOrigins)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout)
	}
	if !cfg.MCPEnabled {
		t.Fatal("MCPEnabled = false, want true")
	}
}

func TestLoadServerParseTypes(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("ADMIN_API_KEY", "admin")
	t.Setenv("MCP_ENABLED", "false")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.Port != 8088 {
		t.Fatalf("Port = %d, want 8088", cfg.Port)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "http://b.test" {
		t.Fatalf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("ShutdownTimeout = %v, want 3s", cfg.ShutdownTimeout)
	}
	if cfg.AdminAPIKey != "admin" || cfg.MCPEnabled {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
}

func TestLoadServerRejectsBadPort(t *testing.T) {
	for _, v := range []string{"0", "70000", "abc"} {
		t.Setenv("PORT", v)
		if _, err := LoadServer(); err == nil {
			t.Fatalf("LoadServer() with PORT=%s expected error", v)
		}
	}
}
