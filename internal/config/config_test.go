package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Port)
	}
	if cfg.DevMode {
		t.Error("dev mode should default to false")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GW_PORT", "9090")
	t.Setenv("GW_DEV_MODE", "true")
	t.Setenv("GW_PARTNER_FEED_URL", "https://feed.example.com/v1")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Port)
	}
	if !cfg.DevMode {
		t.Error("dev mode should be true")
	}
	if cfg.PartnerFeedURL != "https://feed.example.com/v1" {
		t.Errorf("feed url = %q", cfg.PartnerFeedURL)
	}
}

func TestInvalidIntFallsBack(t *testing.T) {
	t.Setenv("GW_PORT", "not-a-number")

	cfg := Load()
	if cfg.Port != 8080 {
		t.Errorf("port = %d, want fallback 8080", cfg.Port)
	}
}
