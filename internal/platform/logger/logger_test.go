package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        Info,
		"debug":   Debug,
		" WARN ":  Warn,
		"warning": Warn,
		"error":   Error,
		"bogus":   Info,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Output: &buf})

	l.Info("hidden", nil)
	l.Warn("shown", Fields{"k": "v"})

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "k=v") {
		t.Fatalf("expected warn line with fields, got %q", out)
	}
}

func TestLogger_JSONWithFieldsAndErrors(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Format: FormatJSON, App: "pet-adoption-hub", Output: &buf}).
		With(Fields{"component": "cache"})

	l.Error("refresh failed", Fields{"err": errors.New("boom")})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json line %q: %v", buf.String(), err)
	}
	if entry["app"] != "pet-adoption-hub" || entry["component"] != "cache" {
		t.Fatalf("missing base fields: %#v", entry)
	}
	if entry["err"] != "boom" {
		t.Fatalf("expected error rendered as string, got %#v", entry["err"])
	}
	if entry["level"] != "error" {
		t.Fatalf("expected level error, got %#v", entry["level"])
	}
}

func TestNop_IsSilent(t *testing.T) {
	l := OrNop(nil)
	l.With(Fields{"a": 1}).Error("nothing", nil)
}
