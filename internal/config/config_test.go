package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("VOTE_BURST", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port == "" || cfg.JWTIssuer == "" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.VoteBurst != 3 {
		t.Fatalf("expected default burst 3, got %d", cfg.VoteBurst)
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestLoadRejectsBadInt(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("VOTE_RATE_PER_MIN", "ten")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-numeric rate")
	}
}

func TestLoadPicksDriverDSN(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBDSN != "votee.db" {
		t.Fatalf("expected sqlite default dsn, got %q", cfg.DBDSN)
	}
}
