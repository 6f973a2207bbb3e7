package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/goliatone/go-betriebsanweisung/instruction"
)

func TestErrorfAttachesErrorAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "json")

	err := instruction.NewError(instruction.KindUnknownCategory, `unknown category "x"`, nil)
	logger.Errorf("render failed: %v", err)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["level"] != "ERROR" {
		t.Fatalf("unexpected level %v", entry["level"])
	}
	if entry["text_code"] != "unknown_category" {
		t.Fatalf("expected text_code attribute, got %v", entry["text_code"])
	}
	if entry["category"] != "validation" {
		t.Fatalf("expected validation category, got %v", entry["category"])
	}
	if !strings.Contains(entry["msg"].(string), "render failed") {
		t.Fatalf("unexpected message %v", entry["msg"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "text")
	logger.Debugf("hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("expected debug to be filtered, got %q", buf.String())
	}
	logger.Infof("fallback to %s", "taetigkeit")
	if !strings.Contains(buf.String(), "fallback to taetigkeit") {
		t.Fatalf("expected info line, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("%q: expected %v, got %v", in, want, got)
		}
	}
}
