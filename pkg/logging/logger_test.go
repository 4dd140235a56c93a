package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewWithWriterLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn")

	logger.Info("should be dropped")
	logger.Warn("kept", "key", "value")

	out := buf.String()
	if strings.Contains(out, "should be dropped") {
		t.Fatalf("info record emitted at warn level: %s", out)
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(out), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["msg"] != "kept" {
		t.Fatalf("msg = %v, want kept", record["msg"])
	}
	if record["key"] != "value" {
		t.Fatalf("key = %v, want value", record["key"])
	}
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "verbose")

	logger.Debug("dropped")
	logger.Info("kept")

	if strings.Contains(buf.String(), "dropped") {
		t.Fatal("debug record emitted at default level")
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Fatal("info record missing at default level")
	}
}

func TestWithAddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "info").With("component", "catalog")

	logger.Info("hello")

	if !strings.Contains(buf.String(), `"component":"catalog"`) {
		t.Fatalf("missing bound attribute: %s", buf.String())
	}
}
