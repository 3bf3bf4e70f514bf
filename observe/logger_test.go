package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("failed to parse log output as JSON: %v\nOutput: %s", err, line)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "authorization granted", String("principal", "user-123"))

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]

	if entry["msg"] != "authorization granted" {
		t.Errorf("msg = %v, want 'authorization granted'", entry["msg"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry["principal"] != "user-123" {
		t.Errorf("principal = %v, want user-123", entry["principal"])
	}
	if _, ok := entry["timestamp"].(string); !ok {
		t.Errorf("timestamp missing: %v", entry)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("warn", &buf)
	ctx := context.Background()

	logger.Debug(ctx, "debug")
	logger.Info(ctx, "info")
	logger.Warn(ctx, "warn")
	logger.Error(ctx, "error")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0]["level"] != "warn" || entries[1]["level"] != "error" {
		t.Errorf("levels = %v, %v, want warn, error", entries[0]["level"], entries[1]["level"])
	}
}

func TestLogger_Redaction(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("debug", &buf).With(String("secret", "mysecret"))

	logger.Warn(context.Background(), "authorization denied",
		String("token", "eyJhbGciOiJIUzI1NiJ9.e30.sig"),
		String("reason", "token_invalid"),
	)

	output := buf.String()
	if strings.Contains(output, "mysecret") || strings.Contains(output, "eyJhbGci") {
		t.Fatalf("sensitive values leaked into log output: %s", output)
	}

	entry := decodeLines(t, &buf)[0]
	if entry["token"] != "[REDACTED]" || entry["secret"] != "[REDACTED]" {
		t.Errorf("expected redacted fields, got token=%v secret=%v", entry["token"], entry["secret"])
	}
	if entry["reason"] != "token_invalid" {
		t.Errorf("reason = %v, want token_invalid", entry["reason"])
	}
}

func TestLogger_WithDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLoggerWithWriter("info", &buf)
	child := parent.With(String("request_id", "req-1"))

	child.Info(context.Background(), "child")
	parent.Info(context.Background(), "parent")

	entries := decodeLines(t, &buf)
	if entries[0]["request_id"] != "req-1" {
		t.Errorf("child request_id = %v, want req-1", entries[0]["request_id"])
	}
	if _, ok := entries[1]["request_id"]; ok {
		t.Errorf("parent logger should not carry child fields: %v", entries[1])
	}
}

func TestLogger_ErrField(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Error(context.Background(), "fetch failed", Err(errors.New("access denied")))

	entry := decodeLines(t, &buf)[0]
	if entry["error"] != "access denied" {
		t.Errorf("error = %v, want 'access denied'", entry["error"])
	}
}

func TestLogger_ConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.With(String("k", "v")).Info(context.Background(), "concurrent")
		}()
	}
	wg.Wait()

	if got := len(decodeLines(t, &buf)); got != 20 {
		t.Errorf("expected 20 entries, got %d", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
