package strutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestParseBool(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   any
		want bool
		ok   bool
	}{
		{true, true, true},
		{1, true, true},
		{int64(1), true, true},
		{"1", true, true},
		{"true", true, true},
		{"True", true, true},
		{"no", false, true}, // any other string is falsy
		{0, false, true},
		{3.14, false, false}, // not bool-like at all
		{nil, false, false},
	}
	for _, c := range cases {
		got, ok := ParseBool(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseBool(%#v)=%v,%v want %v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestParseInt(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   any
		want int
		ok   bool
	}{
		{42, 42, true},
		{int64(7), 7, true},
		{3.9, 3, true}, // numeric input truncates
		{"17", 17, true},
		{" 17 ", 17, true}, // whitespace tolerated
		{"1.5", 0, false},
		{"x", 0, false},
		{nil, 0, false},
	}
	for _, c := range cases {
		got, ok := ParseInt(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseInt(%#v)=%v,%v want %v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestParseUUID(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	if got, ok := ParseUUID(id); !ok || got != id {
		t.Fatalf("typed uuid rejected")
	}
	if got, ok := ParseUUID(id.String()); !ok || got != id {
		t.Fatalf("uuid string rejected")
	}
	if _, ok := ParseUUID("not-a-uuid"); ok {
		t.Fatal("garbage accepted")
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in string
		ok bool
	}{
		{"2024-03-01T10:30:00Z", true},
		{"2024-03-01T10:30:00+02:00", true},
		{"2024-03-01T10:30:00", true},
		{"2024-03-01 10:30:00", true},
		{"2024-03-01", true},
		{"01/03/2024", false},
		{"", false},
	}
	for _, c := range cases {
		if _, ok := ParseDate(c.in); ok != c.ok {
			t.Errorf("ParseDate(%q) ok=%v want %v", c.in, ok, c.ok)
		}
	}

	// already-typed times pass through
	now := time.Now()
	if got, ok := ParseDate(now); !ok || !got.Equal(now) {
		t.Fatal("typed time rejected")
	}
}

func TestParsePhone(t *testing.T) {
	t.Parallel()

	if _, ok := ParsePhone("+48 123 456 789", false); !ok {
		t.Fatal("permissive number rejected")
	}
	if _, ok := ParsePhone("call me", false); ok {
		t.Fatal("letters accepted")
	}
	if _, ok := ParsePhone("123456789", true); !ok {
		t.Fatal("nine digits rejected in strict mode")
	}
	if _, ok := ParsePhone("1234567890", true); ok {
		t.Fatal("ten digits accepted in strict mode")
	}
}

func TestRemoveTags(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"<b>bold</b>", "bold"},
		{"a <!-- hidden --> b", "a  b"},
		{"no markup", "no markup"},
		{"<script>x</script>1 < 2", "x1 &lt; 2"}, // leftover angle escaped
		{"", ""},
	}
	for _, c := range cases {
		if got := RemoveTags(c.in); got != c.want {
			t.Errorf("RemoveTags(%q)=%q want %q", c.in, got, c.want)
		}
	}
}

func TestFold(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"zażółć gęślą jaźń", "zazolc gesla jazn"},
		{"ŁÓDŹ", "LODZ"},
		{"café", "cafe"},
		{"plain", "plain"},
	}
	for _, c := range cases {
		if got := Fold(c.in); got != c.want {
			t.Errorf("Fold(%q)=%q want %q", c.in, got, c.want)
		}
	}
}

func TestRandomToken(t *testing.T) {
	t.Parallel()

	got := RandomToken(32)
	if len(got) != 32 {
		t.Fatalf("len=%d want 32", len(got))
	}
	for _, r := range got {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			t.Fatalf("character %q outside alphabet", r)
		}
	}
	if RandomToken(16) == RandomToken(16) {
		t.Fatal("two tokens collided")
	}
}

func TestFilterFields(t *testing.T) {
	t.Parallel()

	in := map[string]any{"a": 1, "b": 2, "c": 3}
	got := FilterFields(in, "a", "c", "missing")
	if len(got) != 2 || got["a"] != 1 || got["c"] != 3 {
		t.Fatalf("FilterFields=%#v", got)
	}
}
