package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_LevelFollowsVerbose(t *testing.T) {
	var buf bytes.Buffer
	quiet := New(&buf, false)
	quiet.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug output written without verbose: %q", buf.String())
	}

	verbose := New(&buf, true)
	verbose.Debug().Msg("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("verbose logger dropped debug message: %q", buf.String())
	}
}

func TestComponent_AddsField(t *testing.T) {
	var buf bytes.Buffer
	l := Component(NewJSON(&buf, zerolog.DebugLevel), "refresh")
	l.Info().Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["component"] != "refresh" {
		t.Errorf("component = %v, want refresh", entry["component"])
	}
}
