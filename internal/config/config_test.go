package config

import "testing"

func TestLoadUsesDefaultsWhenUnset(t *testing.T) {
	t.Setenv("VIEWER_PORT", "")
	t.Setenv("TICK_SPEED", "")
	t.Setenv("DEFAULT_SEED", "")

	cfg := Load()
	if cfg.ViewerPort != "8009" {
		t.Fatalf("ViewerPort = %q, want default 8009", cfg.ViewerPort)
	}
	if cfg.TickSpeed != 5.0 {
		t.Fatalf("TickSpeed = %v, want default 5.0", cfg.TickSpeed)
	}
	if cfg.DefaultSeed != 0 {
		t.Fatalf("DefaultSeed = %v, want default 0", cfg.DefaultSeed)
	}
}

func TestLoadReadsOverrides(t *testing.T) {
	t.Setenv("VIEWER_PORT", "9100")
	t.Setenv("TICK_SPEED", "12.5")
	t.Setenv("DEFAULT_SEED", "42")

	cfg := Load()
	if cfg.ViewerPort != "9100" {
		t.Fatalf("ViewerPort = %q, want 9100", cfg.ViewerPort)
	}
	if cfg.TickSpeed != 12.5 {
		t.Fatalf("TickSpeed = %v, want 12.5", cfg.TickSpeed)
	}
	if cfg.DefaultSeed != 42 {
		t.Fatalf("DefaultSeed = %v, want 42", cfg.DefaultSeed)
	}
}

func TestLoadFallsBackOnUnparsableNumbers(t *testing.T) {
	t.Setenv("TICK_SPEED", "not-a-number")
	t.Setenv("DEFAULT_SEED", "not-a-number")

	cfg := Load()
	if cfg.TickSpeed != 5.0 {
		t.Fatalf("TickSpeed = %v, want fallback 5.0 on parse error", cfg.TickSpeed)
	}
	if cfg.DefaultSeed != 0 {
		t.Fatalf("DefaultSeed = %v, want fallback 0 on parse error", cfg.DefaultSeed)
	}
}
