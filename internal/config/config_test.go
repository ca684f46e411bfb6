package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:           "8080",
		StoreBackend:   "memory",
		SQLiteDBPath:   "./data/test.db",
		AMQPExchange:   "sunsetflow",
		AMQPQueue:      "sunsetflow_events",
		RecalcInterval: time.Minute,
		CacheTTL:       30 * time.Second,
		CacheMaxSize:   64,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Port = "http" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "between 1 and 65535"},
		{"unknown backend", func(c *Config) { c.StoreBackend = "postgres" }, "must be sqlite or memory"},
		{"sqlite without path", func(c *Config) { c.StoreBackend = "sqlite"; c.SQLiteDBPath = "" }, "SQLITE_DB_PATH"},
		{"bad amqp scheme", func(c *Config) { c.AMQPURL = "http://localhost" }, "must be amqp or amqps"},
		{"amqp without queue", func(c *Config) { c.AMQPURL = "amqp://localhost:5672/"; c.AMQPQueue = "" }, "AMQP_QUEUE"},
		{"export without credentials", func(c *Config) { c.GoogleSpreadsheetID = "sheet-id" }, "GOOGLE_CREDENTIALS"},
		{"recalc too fast", func(c *Config) { c.RecalcInterval = 100 * time.Millisecond }, "at least 1 second"},
		{"zero cache", func(c *Config) { c.CacheMaxSize = 0 }, "cache max size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Port)
	}
	if cfg.StoreBackend != "sqlite" {
		t.Errorf("backend = %q, want sqlite", cfg.StoreBackend)
	}
	if cfg.ExportEnabled() {
		t.Error("export enabled without spreadsheet id")
	}
}
