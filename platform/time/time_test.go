package time

import (
	"testing"
	stdtime "time"
)

func TestPtr(t *testing.T) {
	t.Parallel()

	if Ptr(stdtime.Time{}) != nil {
		t.Fatal("zero time should yield nil")
	}
	now := stdtime.Now()
	if p := Ptr(now); p == nil || !p.Equal(now) {
		t.Fatalf("Ptr=%v", p)
	}
}

func TestUnixRoundTrip(t *testing.T) {
	t.Parallel()

	at := stdtime.Date(2024, 3, 1, 10, 30, 0, 0, stdtime.UTC)
	ts := Unix(at)
	if ts != at.Unix() {
		t.Fatalf("Unix=%d", ts)
	}
	if got := FromUnix(ts); !got.Equal(at) || got.Location() != stdtime.UTC {
		t.Fatalf("FromUnix=%v", got)
	}
}

func TestUTS(t *testing.T) {
	t.Parallel()

	at := stdtime.Date(2024, 3, 1, 10, 30, 0, 0, stdtime.UTC)
	if got := UTS(at.Unix()); got != "2024-03-01T10:30:00Z" {
		t.Fatalf("UTS=%q", got)
	}
	if UTS(0) != "" {
		t.Fatal("zero should yield empty string")
	}
}
