package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// The value Init returns must be usable directly for chained event calls
// once bound to a variable, since callers log through it before Get exists.
func TestInit_ReturnedLoggerIsUsable(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	log := Init(Options{Level: "info", Output: &buf})
	log.Info().Str("component", "boot").Msg("starting")

	out := buf.String()
	if !strings.Contains(out, `"component":"boot"`) || !strings.Contains(out, "starting") {
		t.Fatalf("unexpected log output: %s", out)
	}
}

func TestInit_OnlyFirstCallWins(t *testing.T) {
	Reset()
	defer Reset()

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})

	log := Get()
	log.Info().Msg("hello")

	if first.Len() == 0 {
		t.Fatalf("expected output on the first writer")
	}
	if second.Len() != 0 {
		t.Fatalf("second Init should have no effect, got: %s", second.String())
	}
}

func TestGet_WithoutInitUsesDefaults(t *testing.T) {
	Reset()
	defer Reset()

	log := Get()
	if log.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("expected info level, got %v", log.GetLevel())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"info":    zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
