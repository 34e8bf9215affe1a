package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWithMemoryDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("APP_PORT", "")
	t.Setenv("ALERT_DEFAULT_THRESHOLD", "")
	t.Setenv("ALERT_DEFAULT_LIMIT", "")
	t.Setenv("CODE_ALLOCATION_MAX_ATTEMPTS", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "4000" {
		t.Fatalf("port = %q, want 4000", cfg.Server.Port)
	}
	if cfg.Alerts.DefaultThreshold != 10 || cfg.Alerts.DefaultLimit != 10 {
		t.Fatalf("unexpected alert defaults: %+v", cfg.Alerts)
	}
	if cfg.Allocation.MaxAttempts != 5 {
		t.Fatalf("max attempts = %d, want 5", cfg.Allocation.MaxAttempts)
	}
	if cfg.Sheets.Enabled() {
		t.Fatal("sheets export should be disabled without credentials")
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := strings.Join([]string{
		"STORE_DRIVER=memory",
		"APP_PORT=9090",
		"ALERT_DEFAULT_THRESHOLD=25",
		"CODE_ALLOCATION_MAX_ATTEMPTS=8",
	}, "\n")
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	// godotenv never overrides variables already present, so clear them for the test.
	for _, key := range []string{"STORE_DRIVER", "APP_PORT", "ALERT_DEFAULT_THRESHOLD", "CODE_ALLOCATION_MAX_ATTEMPTS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Alerts.DefaultThreshold != 25 || cfg.Allocation.MaxAttempts != 8 {
		t.Fatalf("env file not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:     ServerConfig{Port: "4000"},
			Store:      StoreConfig{Driver: DriverMongo},
			MongoDB:    MongoDBConfig{URI: "mongodb://localhost:27017", DBName: "stockroom"},
			Alerts:     AlertsConfig{DefaultThreshold: 10, DefaultLimit: 10},
			Allocation: AllocationConfig{MaxAttempts: 5},
			Reporting:  ReportingConfig{DigestSchedule: "0 8 * * *", SnapshotSchedule: "0 20 * * *", Timezone: "UTC"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "mongo without uri", mutate: func(c *Config) { c.MongoDB.URI = "" }, wantErr: "MONGODB_URI"},
		{name: "memory without uri", mutate: func(c *Config) { c.Store.Driver = DriverMemory; c.MongoDB.URI = "" }},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "postgres" }, wantErr: "STORE_DRIVER"},
		{name: "limit out of range", mutate: func(c *Config) { c.Alerts.DefaultLimit = 500 }, wantErr: "ALERT_DEFAULT_LIMIT"},
		{name: "no attempts", mutate: func(c *Config) { c.Allocation.MaxAttempts = 0 }, wantErr: "CODE_ALLOCATION_MAX_ATTEMPTS"},
		{name: "half sheets config", mutate: func(c *Config) { c.Sheets.SpreadsheetID = "abc" }, wantErr: "GOOGLE_SHEETS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}
