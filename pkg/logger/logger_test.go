package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoggerEmitsContextFields(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Level: zerolog.InfoLevel, Output: &buf})

	ctx := logg.WithGameID(context.Background(), "game-1")
	ctx = logg.WithField(ctx, "unit", "euro")
	logg.Info(ctx, "reconcile.start")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json log line: %v", err)
	}
	if entry["service"] != "test" {
		t.Fatalf("missing service field: %v", entry)
	}
	if entry["game_id"] != "game-1" {
		t.Fatalf("missing game_id field: %v", entry)
	}
	if entry["unit"] != "euro" {
		t.Fatalf("missing unit field: %v", entry)
	}
	if entry["message"] != "reconcile.start" {
		t.Fatalf("unexpected message: %v", entry["message"])
	}
}

func TestErrorIncludesStack(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf})

	logg.Error(context.Background(), "boom", errors.New("bad"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json log line: %v", err)
	}
	if entry["stack"] == nil || entry["stack"] == "" {
		t.Fatal("expected stack field on error logs")
	}
	if entry["error"] != "bad" {
		t.Fatalf("expected error field, got %v", entry["error"])
	}
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	if got := ParseLevel("warn"); got != zerolog.WarnLevel {
		t.Fatalf("ParseLevel(warn) = %v", got)
	}
	if got := ParseLevel("garbage"); got != zerolog.InfoLevel {
		t.Fatalf("ParseLevel(garbage) = %v", got)
	}
	if got := ParseLevel(""); got != zerolog.InfoLevel {
		t.Fatalf("ParseLevel(empty) = %v", got)
	}
}
