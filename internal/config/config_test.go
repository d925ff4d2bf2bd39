package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "5000" || cfg.SessionBackend != SessionBackendMemory || cfg.BookingStore != BookingStoreSQLite {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.SessionTTL != 30*time.Minute || cfg.AITimeout != 3*time.Second {
		t.Fatalf("unexpected durations: ttl=%s ai=%s", cfg.SessionTTL, cfg.AITimeout)
	}
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("COMPLETION_WORKERS", "8")
	t.Setenv("SESSION_TTL", "5m")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.SessionBackend != "redis" || cfg.CompletionWorkers != 8 || cfg.SessionTTL != 5*time.Minute {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		SessionBackend: SessionBackendMemory,
		BookingStore:   BookingStoreLog,
		AIProvider:     AIProviderRule,
		TelephonyMode:  TelephonySimulated,
		SessionTTL:     time.Minute,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	bad := base
	bad.BookingStore = BookingStorePostgres
	bad.TelephonyMode = TelephonyTwilio
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected missing DATABASE_URL and Twilio credentials to fail")
	}

	bad = base
	bad.AIProvider = "magic"
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected unknown provider to fail")
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
