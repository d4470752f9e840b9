package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("expected dev env, got=%q", cfg.AppEnv)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default addr :8080, got=%q", cfg.HTTPAddr)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Fatalf("expected 5m cache TTL, got=%s", cfg.CacheTTL)
	}
	if cfg.DisplayTimezone != "America/New_York" {
		t.Fatalf("expected default display timezone, got=%q", cfg.DisplayTimezone)
	}
	if cfg.FootballDataEnabled {
		t.Fatal("expected live provider disabled by default")
	}
	if cfg.FootballDataCompetitions != "PL,PD,CL,BL1,SA,FL1" {
		t.Fatalf("unexpected default competitions: %q", cfg.FootballDataCompetitions)
	}
	if cfg.RequestMinSpacing != time.Second {
		t.Fatalf("expected 1s request spacing, got=%s", cfg.RequestMinSpacing)
	}
	if cfg.RequestSettleDelay != 800*time.Millisecond {
		t.Fatalf("expected 800ms settle delay, got=%s", cfg.RequestSettleDelay)
	}
	if cfg.DiscoveryWorkers != 4 {
		t.Fatalf("expected 4 discovery workers, got=%d", cfg.DiscoveryWorkers)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORS defaults: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_EnabledProviderRequiresToken(t *testing.T) {
	t.Setenv("FOOTBALLDATA_ENABLED", "true")
	t.Setenv("FOOTBALLDATA_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when provider enabled without token")
	}

	t.Setenv("FOOTBALLDATA_TOKEN", "token-123")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !cfg.FootballDataEnabled || cfg.FootballDataToken != "token-123" {
		t.Fatalf("unexpected provider config: enabled=%v token=%q", cfg.FootballDataEnabled, cfg.FootballDataToken)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := []struct {
		key   string
		value string
	}{
		{"APP_ENV", "production"},
		{"CACHE_TTL", "five minutes"},
		{"CACHE_TTL", "-1m"},
		{"DISPLAY_TIMEZONE", "Mars/Olympus"},
		{"FOOTBALLDATA_MAX_RETRIES", "-1"},
		{"DISCOVERY_WORKERS", "0"},
		{"UPTRACE_ENABLED", "maybe"},
	}

	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev/123"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/123" {
		t.Fatalf("unexpected DSN: %q", cfg.UptraceDSN)
	}
}
