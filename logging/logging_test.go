package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{" info ", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"Warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var console, jsonOut bytes.Buffer
	log := New(&console, "warn", &jsonOut)

	log.Info().Msg("hidden")
	log.Warn().Str("map", "Level1").Msg("orphaned object dropped")

	if strings.Contains(console.String(), "hidden") || strings.Contains(jsonOut.String(), "hidden") {
		t.Fatalf("info line leaked through warn level")
	}
	if !strings.Contains(console.String(), "orphaned object dropped") {
		t.Fatalf("console missing warning: %q", console.String())
	}
	if !strings.Contains(jsonOut.String(), `"level":"warn"`) || !strings.Contains(jsonOut.String(), `"map":"Level1"`) {
		t.Fatalf("json writer missing warning: %q", jsonOut.String())
	}
}
