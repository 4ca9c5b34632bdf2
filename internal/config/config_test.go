package config

import (
	"os"
	"testing"
)

func TestConfigLoad_Defaults(t *testing.T) {
	_ = os.Unsetenv("FOCUSFLOW_HTTP_PORT")
	_ = os.Unsetenv("FOCUSFLOW_DB_DRIVER")
	_ = os.Unsetenv("FOCUSFLOW_HISTORY_WINDOW")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.HTTPPort != 11500 || cfg.DBDriver != "sqlite" || cfg.HistoryWindow != 10 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.SQLitePath == "" {
		t.Fatal("expected sqlite path to be derived")
	}
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	_ = os.Setenv("FOCUSFLOW_DB_DRIVER", "memory")
	_ = os.Setenv("FOCUSFLOW_HISTORY_WINDOW", "5")
	defer func() {
		_ = os.Unsetenv("FOCUSFLOW_DB_DRIVER")
		_ = os.Unsetenv("FOCUSFLOW_HISTORY_WINDOW")
	}()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.DBDriver != "memory" {
		t.Fatalf("db driver env override failed, got %s", cfg.DBDriver)
	}
	if cfg.HistoryWindow != 5 {
		t.Fatalf("history window env override failed, got %d", cfg.HistoryWindow)
	}
}

func TestResolveDefaults_RejectsUnknownDriver(t *testing.T) {
	cfg := NewForTesting()
	cfg.DBDriver = "postgres"
	if err := cfg.ResolveDefaults(); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestResolveDefaults_RejectsBadBounds(t *testing.T) {
	cfg := NewForTesting()
	cfg.StoreMaxAttempts = 0
	if err := cfg.ResolveDefaults(); err == nil {
		t.Fatal("expected error for zero store attempts")
	}

	cfg = NewForTesting()
	cfg.HistoryWindow = 0
	if err := cfg.ResolveDefaults(); err == nil {
		t.Fatal("expected error for zero history window")
	}
}

func TestGetHTTPAddr(t *testing.T) {
	cfg := NewForTesting()
	if got := cfg.GetHTTPAddr(); got != ":11500" {
		t.Fatalf("unexpected addr %s", got)
	}
}
