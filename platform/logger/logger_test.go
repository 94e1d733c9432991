package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"trace", "trace"},
		{"info", "info"},
		{"WARN", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"bogus", "debug"}, // unknown falls back to debug
		{"", "debug"},
	}
	for _, c := range cases {
		if got := parseLevel(c.in).String(); got != c.want {
			t.Errorf("parseLevel(%q)=%q want %q", c.in, got, c.want)
		}
	}
}

func TestRequestIDContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if RequestID(ctx) != "" {
		t.Fatal("bare context carries an id")
	}

	ctx = WithRequest(ctx, "req-9")
	if got := RequestID(ctx); got != "req-9" {
		t.Fatalf("RequestID=%q", got)
	}

	// empty ids are not stashed
	if got := RequestID(WithRequest(context.Background(), "")); got != "" {
		t.Fatalf("empty id stored: %q", got)
	}
}

func TestContextChildCarriesRequestID(t *testing.T) {
	// Init is once-per-process; route output to a buffer for inspection
	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: "json", Writer: &buf})

	ctx := WithRequest(context.Background(), "req-42")
	C(ctx).Info().Msg("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line not json: %v (%q)", err, buf.String())
	}
	if line["request_id"] != "req-42" || line["message"] != "hello" {
		t.Fatalf("line=%v", line)
	}
}
