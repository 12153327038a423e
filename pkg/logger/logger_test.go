package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestLoggerWritesServiceAndTraceID(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelInfo, "bookorders", func(context.Context) string { return "abc123" })

	log.Info(context.Background(), "order added", "index", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["msg"] != "order added" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["service"] != "bookorders" {
		t.Fatalf("unexpected service: %v", entry["service"])
	}
	if entry["trace_id"] != "abc123" {
		t.Fatalf("unexpected trace_id: %v", entry["trace_id"])
	}
	if entry["index"] != float64(3) {
		t.Fatalf("unexpected index: %v", entry["index"])
	}
}

func TestLoggerSkipsBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelWarn, "bookorders", nil)

	log.Info(context.Background(), "ignored")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
	log.Warn(context.Background(), "kept")
	if buf.Len() == 0 {
		t.Fatal("expected warn line")
	}
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if lvl != LevelDebug {
		t.Fatalf("expected debug, got %v", lvl)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
