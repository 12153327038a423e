package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"HTTP_ADDR", "TLS_CERT_FILE", "TLS_KEY_FILE", "LOG_LEVEL", "COLLATION_LOCALE", "STORAGE_BACKEND", "STORAGE_KEY",
		"STORAGE_DIR", "REDIS_ADDR", "REDIS_PREFIX", "DATABASE_URL", "DYNAMODB_TABLE",
		"AWS_REGION", "OTEL_HOST", "OTEL_PROBABILITY",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.Storage.Backend != BackendFile || cfg.Storage.Key != "orders" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.CollationLocale != "und" || cfg.Otel.Probability != 1 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("STORAGE_BACKEND")
	os.Unsetenv("REDIS_ADDR")

	path := filepath.Join(t.TempDir(), "test.env")
	data := "STORAGE_BACKEND=redis\nREDIS_ADDR=localhost:6379\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv("STORAGE_BACKEND")
		os.Unsetenv("REDIS_ADDR")
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Backend != BackendRedis || cfg.Storage.RedisAddr != "localhost:6379" {
		t.Fatalf("env file not applied: %+v", cfg.Storage)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"STORAGE_BACKEND": "sqlite"}},
		{"redis without addr", map[string]string{"STORAGE_BACKEND": "redis"}},
		{"postgres without url", map[string]string{"STORAGE_BACKEND": "postgres"}},
		{"dynamodb without table", map[string]string{"STORAGE_BACKEND": "dynamodb"}},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}},
		{"bad probability", map[string]string{"OTEL_PROBABILITY": "2"}},
		{"unparsable probability", map[string]string{"OTEL_PROBABILITY": "often"}},
		{"cert without key", map[string]string{"TLS_CERT_FILE": "certs/server.crt"}},
		{"bad locale", map[string]string{"COLLATION_LOCALE": "not a tag"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
