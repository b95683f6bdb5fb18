package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testYAML = `
service:
  name: habit-analytics
http:
  port: 8080
storage:
  driver: sqlite
sqlite:
  path: /tmp/habits.db
database:
  host: db
  port: 5432
  user: u
  password: p
  database: habits
  ssl_mode: disable
scheduler:
  enabled: true
  reconcile_interval: 30m
analytics:
  timezone: Europe/Berlin
logging:
  level: info
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, testYAML))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Storage.Driver != DriverSQLite || cfg.SQLite.Path != "/tmp/habits.db" {
		t.Fatalf("unexpected storage config %+v %+v", cfg.Storage, cfg.SQLite)
	}
	if cfg.Scheduler.ReconcileInterval != 30*time.Minute {
		t.Fatalf("ReconcileInterval = %s", cfg.Scheduler.ReconcileInterval)
	}

	loc, err := cfg.Analytics.Location()
	if err != nil || loc.String() != "Europe/Berlin" {
		t.Fatalf("Location() = %v, %v", loc, err)
	}
}

func TestLoadFileEnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DATABASE_HOST", "pg.internal")
	t.Setenv("KAFKA_BROKER", "k1:9092,k2:9092")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadFile(writeConfig(t, testYAML))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Storage.Driver != DriverPostgres {
		t.Fatalf("driver = %s", cfg.Storage.Driver)
	}
	if got := cfg.Database.GetDSN(); got != "postgres://u:p@pg.internal:5432/habits?sslmode=disable" {
		t.Fatalf("GetDSN() = %s", got)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Fatalf("brokers = %v", cfg.Kafka.Brokers)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level = %s", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mysql" }},
		{"sqlite without path", func(c *Config) { c.SQLite.Path = "" }},
		{"bad timezone", func(c *Config) { c.Analytics.Timezone = "Mars/Olympus" }},
		{"kafka without topic", func(c *Config) { c.Kafka.Enabled = true }},
		{"zero interval", func(c *Config) { c.Scheduler.ReconcileInterval = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Storage:   StorageConfig{Driver: DriverSQLite},
				SQLite:    SQLiteConfig{Path: "habits.db"},
				Scheduler: SchedulerConfig{Enabled: true, ReconcileInterval: time.Hour},
			}
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadReadsConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, testYAML))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Service.Name != "habit-analytics" {
		t.Fatalf("Service.Name = %q", cfg.Service.Name)
	}
}
