package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestSetupRenamesKeysAndFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := setup(&buf, Options{Service: "groledgerd", Env: "test", Level: "warn"})
	logger.Info("dropped")
	logger.Warn("kept", "op", "vesting.exit")

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if line["message"] != "kept" || line["severity"] != "WARN" || line["service"] != "groledgerd" || line["env"] != "test" {
		t.Fatalf("unexpected log line: %v", line)
	}
	if _, ok := line["timestamp"]; !ok {
		t.Fatalf("missing timestamp: %v", line)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{"debug": slog.LevelDebug, "WARN": slog.LevelWarn, "error": slog.LevelError, "": slog.LevelInfo}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q): got %v want %v", in, got, want)
		}
	}
}

func TestMaskHeaders(t *testing.T) {
	attrs := MaskHeaders(map[string]string{"Authorization": "Bearer x", "b": ""})
	if len(attrs) != 2 {
		t.Fatalf("expected two attrs, got %d", len(attrs))
	}
	first := attrs[0].(slog.Attr)
	if first.Key != "header.Authorization" || first.Value.String() != RedactedValue {
		t.Fatalf("unexpected attr %v", first)
	}
	if second := attrs[1].(slog.Attr); second.Value.String() != "" {
		t.Fatalf("expected empty value to pass through, got %v", second)
	}
}
