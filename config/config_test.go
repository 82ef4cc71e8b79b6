package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("PORT", "")
	t.Setenv("SESSION_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != "3000" {
		t.Errorf("expected default port 3000, got %q", cfg.Server.Port)
	}
	if cfg.Session.ExpiryHours != 168 {
		t.Errorf("expected default session expiry 168h, got %d", cfg.Session.ExpiryHours)
	}
	if cfg.API.RateLimitWritesPerSec != 5 {
		t.Errorf("expected default write rate 5/s, got %d", cfg.API.RateLimitWritesPerSec)
	}
	if cfg.GetRedisAddr() != "localhost:6379" {
		t.Errorf("expected default redis addr, got %q", cfg.GetRedisAddr())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("PORT", "8080")
	t.Setenv("SESSION_EXPIRY_HOURS", "24")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Server.Port)
	}
	if cfg.Session.ExpiryHours != 24 {
		t.Errorf("expected expiry 24, got %d", cfg.Session.ExpiryHours)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins: %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("DISCORD_CLIENT_ID", "cid")
	t.Setenv("DISCORD_CLIENT_SECRET", "csecret")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when SESSION_SECRET unset in production")
	}

	t.Setenv("SESSION_SECRET", "real-secret")
	t.Setenv("DISCORD_CLIENT_ID", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when Discord credentials unset in production")
	}

	t.Setenv("DISCORD_CLIENT_ID", "cid")
	if _, err := Load(); err != nil {
		t.Fatalf("expected production config to load, got %v", err)
	}
}
