package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestCredentialsPath(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		username string
		exeDir   string
		want     string
	}{
		{"explicit wins", "/etc/creds.json", "suhail", "/opt/app", "/etc/creds.json"},
		{"from username", "", "suhail", "/opt/app", "/home/suhail/career-visualizer/google-creds.json"},
		{"next to binary", "", "", "/opt/app", filepath.Join("/opt/app", "google-creds.json")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CredentialsPath(tt.explicit, tt.username, tt.exeDir); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "SHEET_ID", "SHEET_TAB", "CORS_ORIGINS", "RECORD_BACKEND",
		"LOGIN_MAX_FAILURES", "LOGIN_LOCKOUT_WINDOW", "SPEECH_LANGUAGE", "SPEECH_MODEL"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.SheetID != DefaultSheetID || cfg.SheetTab != "Sheet1" {
		t.Fatalf("unexpected sheet %s/%s", cfg.SheetID, cfg.SheetTab)
	}
	if len(cfg.AllowedOrigins) != 4 {
		t.Fatalf("expected 4 default origins, got %v", cfg.AllowedOrigins)
	}
	if cfg.RecordBackend != "sheets" {
		t.Fatalf("expected sheets backend, got %s", cfg.RecordBackend)
	}
	if cfg.LoginMaxFailures != 5 || cfg.LoginLockoutWindow != 15*time.Minute {
		t.Fatalf("unexpected throttle settings %d/%s", cfg.LoginMaxFailures, cfg.LoginLockoutWindow)
	}
	if cfg.SpeechLanguage != "en-IN" || cfg.SpeechModel != "latest_long" {
		t.Fatalf("unexpected speech settings %s/%s", cfg.SpeechLanguage, cfg.SpeechModel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("LOGIN_MAX_FAILURES", "0")
	t.Setenv("LOGIN_LOCKOUT_WINDOW", "2m")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")

	cfg := Load()
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "https://a.example" || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if cfg.LoginMaxFailures != 0 {
		t.Fatalf("expected throttle disabled, got %d", cfg.LoginMaxFailures)
	}
	if cfg.LoginLockoutWindow != 2*time.Minute {
		t.Fatalf("expected 2m window, got %s", cfg.LoginLockoutWindow)
	}
	if cfg.RateLimitPerMinute != 120 {
		t.Fatalf("expected fallback rate limit, got %d", cfg.RateLimitPerMinute)
	}
}
