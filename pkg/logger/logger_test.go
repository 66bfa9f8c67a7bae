package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestInit_StampsServiceField(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	log := Init(Options{Level: "info", Env: "production", Output: &buf})

	log.Info().Msg("hello")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON output in production, got %q", buf.String())
	}
	if record["service"] != "auth-service" {
		t.Fatalf("missing service field: %v", record)
	}
	if record["message"] != "hello" {
		t.Fatalf("unexpected record: %v", record)
	}
}

func TestInit_LevelFiltering(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	log := Init(Options{Level: "warn", Env: "production", Output: &buf})

	log.Info().Msg("suppressed")
	log.Warn().Msg("kept")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("info record leaked past warn level: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestInit_OnlyFirstCallWins(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Level: "info", Env: "production", Output: &first})
	log := Init(Options{Level: "info", Env: "production", Output: &second})

	log.Info().Msg("routed")

	if second.Len() != 0 {
		t.Fatalf("second Init must not rewire the singleton: %q", second.String())
	}
	if !strings.Contains(first.String(), "routed") {
		t.Fatalf("record did not reach the first writer: %q", first.String())
	}
}
