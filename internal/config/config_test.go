package config

import (
	"math"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "HTTP_PORT", "LOG_LEVEL", "SHUTDOWN_TIMEOUT", "SEED_PATIENTS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "TRUST_PROXY_HEADERS"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Env != "dev" || cfg.HTTPPort != "8080" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("expected 10s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
	if cfg.SeedPatients != 0 || cfg.RateLimitRPS != 50 || cfg.RateLimitBurst != 100 {
		t.Fatalf("unexpected numeric defaults: %+v", cfg)
	}
	if cfg.TrustProxyHeaders {
		t.Fatal("proxy headers must not be trusted by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "3")
	t.Setenv("SEED_PATIENTS", "25")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("TRUST_PROXY_HEADERS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Env != "prod" || cfg.HTTPPort != "9090" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("expected bare integer to mean seconds, got %s", cfg.ShutdownTimeout)
	}
	if cfg.SeedPatients != 25 || cfg.RateLimitRPS != 2.5 || cfg.RateLimitBurst != 5 {
		t.Fatalf("unexpected numeric overrides: %+v", cfg)
	}
	if !cfg.TrustProxyHeaders {
		t.Fatal("expected TRUST_PROXY_HEADERS=true to be honoured")
	}
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	tests := map[string]string{
		"SEED_PATIENTS":       "many",
		"RATE_LIMIT_RPS":      "0",
		"RATE_LIMIT_BURST":    "-1",
		"SHUTDOWN_TIMEOUT":    "soon",
		"TRUST_PROXY_HEADERS": "maybe",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, val)
			}
		})
	}
}

func TestGetDuration(t *testing.T) {
	tests := []struct {
		val     string
		want    time.Duration
		wantErr bool
	}{
		{"", time.Second, false},
		{"1m30s", 90 * time.Second, false},
		{"45", 45 * time.Second, false},
		{"soon", 0, true},
		{"-5s", 0, true},
		{"-3", 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.val, func(t *testing.T) {
			t.Setenv("SOME_TIMEOUT", tc.val)
			d, err := getDuration("SOME_TIMEOUT", time.Second)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %s", tc.val, d)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, d)
			}
		})
	}
}

func TestLoadRejectsNonPositiveShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero SHUTDOWN_TIMEOUT")
	}
}

func TestLoadSimulationNormalisesRatios(t *testing.T) {
	t.Setenv("SIM_WORKERS", "4")
	t.Setenv("SIM_DURATION", "5s")
	t.Setenv("SIM_REGISTER_RATIO", "1")
	t.Setenv("SIM_SCHEDULE_RATIO", "2")
	t.Setenv("SIM_READ_RATIO", "1")
	t.Setenv("SIM_INVALID_RATIO", "0.25")

	cfg, err := LoadSimulation()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Workers != 4 || cfg.Duration != 5*time.Second || cfg.InvalidRatio != 0.25 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	sum := cfg.RegisterRatio + cfg.ScheduleRatio + cfg.ReadRatio
	if math.Abs(sum-1) > 1e-9 || math.Abs(cfg.ScheduleRatio-0.5) > 1e-9 {
		t.Fatalf("ratios not normalised: %+v", cfg)
	}
}

func TestLoadSimulationValidates(t *testing.T) {
	t.Setenv("SIM_WORKERS", "0")
	if _, err := LoadSimulation(); err == nil {
		t.Fatal("expected error for zero workers")
	}

	t.Setenv("SIM_WORKERS", "1")
	t.Setenv("SIM_DURATION", "-10s")
	if _, err := LoadSimulation(); err == nil {
		t.Fatal("expected error for negative duration")
	}

	t.Setenv("SIM_DURATION", "later")
	if _, err := LoadSimulation(); err == nil {
		t.Fatal("expected error for unparsable duration")
	}

	t.Setenv("SIM_DURATION", "5s")
	t.Setenv("SIM_REGISTER_RATIO", "0")
	t.Setenv("SIM_SCHEDULE_RATIO", "0")
	t.Setenv("SIM_READ_RATIO", "0")
	if _, err := LoadSimulation(); err == nil {
		t.Fatal("expected error when all ratios are zero")
	}
}
