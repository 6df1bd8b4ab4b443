package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RECORD_STORE_BASE_ID", "app123")
	t.Setenv("RECORD_STORE_TOKEN", "pat.secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q, want 0.0.0.0:8080", cfg.App.Addr())
	}
	if cfg.RecordStore.BaseURL != "https://api.airtable.com/v0" {
		t.Errorf("BaseURL = %q", cfg.RecordStore.BaseURL)
	}
	if cfg.RecordStore.TicketsTable != "Tickets" || cfg.RecordStore.CommentsTable != "Comments" {
		t.Errorf("tables = %q/%q", cfg.RecordStore.TicketsTable, cfg.RecordStore.CommentsTable)
	}
	if cfg.RecordStore.PageSize != 100 {
		t.Errorf("PageSize = %d, want 100", cfg.RecordStore.PageSize)
	}
	if cfg.Redis.Enabled() {
		t.Error("Redis should be disabled without REDIS_ADDR")
	}
	if cfg.Cache.TicketTTL() != 0 {
		t.Errorf("TicketTTL() = %v, want 0", cfg.Cache.TicketTTL())
	}
	if cfg.Session.TTL() != time.Hour {
		t.Errorf("Session TTL = %v, want 1h", cfg.Session.TTL())
	}
	if cfg.Display.Location() != time.UTC {
		t.Errorf("Location() = %v, want UTC", cfg.Display.Location())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("RECORD_STORE_BASE_URL", "http://localhost:4010/v0/")
	t.Setenv("RECORD_STORE_PAGE_SIZE", "25")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("TICKET_CACHE_TTL_SECONDS", "45")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App.Port != "9090" {
		t.Errorf("Port = %q", cfg.App.Port)
	}
	if cfg.RecordStore.BaseURL != "http://localhost:4010/v0" {
		t.Errorf("BaseURL = %q, trailing slash should be trimmed", cfg.RecordStore.BaseURL)
	}
	if cfg.RecordStore.PageSize != 25 {
		t.Errorf("PageSize = %d", cfg.RecordStore.PageSize)
	}
	if !cfg.Redis.Enabled() {
		t.Error("Redis should be enabled")
	}
	if cfg.Cache.TicketTTL() != 45*time.Second {
		t.Errorf("TicketTTL() = %v", cfg.Cache.TicketTTL())
	}
	if !cfg.Session.CookieSecure {
		t.Error("CookieSecure should be true")
	}
	if cfg.App.RequestTimeout() != 30*time.Second {
		t.Errorf("RequestTimeout() = %v, invalid values should fall back", cfg.App.RequestTimeout())
	}
}

func TestLoadInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "zero")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid REDIS_DB")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing base id",
			mutate:  func(c *Config) { c.RecordStore.BaseID = "" },
			wantErr: "RECORD_STORE_BASE_ID",
		},
		{
			name:    "missing token",
			mutate:  func(c *Config) { c.RecordStore.Token = "" },
			wantErr: "RECORD_STORE_TOKEN",
		},
		{
			name:    "page size too large",
			mutate:  func(c *Config) { c.RecordStore.PageSize = 500 },
			wantErr: "RECORD_STORE_PAGE_SIZE",
		},
		{
			name:    "bad timezone",
			mutate:  func(c *Config) { c.Display.Timezone = "Mars/Olympus" },
			wantErr: "DISPLAY_TIMEZONE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				RecordStore: RecordStoreConfig{BaseID: "app1", Token: "tok", PageSize: 100},
				Display:     DisplayConfig{Timezone: "UTC"},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}
