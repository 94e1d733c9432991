package config

import (
	"testing"
	"time"
)

// t.Setenv precludes t.Parallel in this file

func TestPrefixScoping(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost")
	t.Setenv("URI", "wrong")

	cfg := New().Prefix("MONGO_")
	if got := cfg.MustString("URI"); got != "mongodb://localhost" {
		t.Fatalf("got %q", got)
	}
}

func TestMustStringPanicsOnMissing(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("no panic for missing key")
		}
	}()
	New().MustString("DOCKIT_TEST_DEFINITELY_UNSET")
}

func TestMayGetters(t *testing.T) {
	t.Setenv("API_PORT", ":8080")
	t.Setenv("API_WORKERS", "4")
	t.Setenv("API_DEBUG", "true")
	t.Setenv("API_TIMEOUT", "250ms")
	t.Setenv("API_ORIGINS", "a.example, b.example")

	cfg := New().Prefix("API_")

	if got := cfg.MayString("PORT", ":4000"); got != ":8080" {
		t.Errorf("MayString=%q", got)
	}
	if got := cfg.MayString("MISSING", ":4000"); got != ":4000" {
		t.Errorf("MayString default=%q", got)
	}
	if got := cfg.MayInt("WORKERS", 1); got != 4 {
		t.Errorf("MayInt=%d", got)
	}
	if got := cfg.MayBool("DEBUG", false); !got {
		t.Error("MayBool=false")
	}
	if got := cfg.MayDuration("TIMEOUT", time.Second); got != 250*time.Millisecond {
		t.Errorf("MayDuration=%v", got)
	}
	if got := cfg.MayCSV("ORIGINS", nil); len(got) != 2 || got[1] != "b.example" {
		t.Errorf("MayCSV=%#v", got)
	}
}

func TestMayIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("API_WORKERS", "many")

	if got := New().Prefix("API_").MayInt("WORKERS", 3); got != 3 {
		t.Fatalf("got %d want default", got)
	}
}

func TestMayEnum(t *testing.T) {
	t.Setenv("API_MODE", "strict")

	cfg := New().Prefix("API_")
	if got := cfg.MayEnum("MODE", "lax", "lax", "strict"); got != "strict" {
		t.Errorf("MayEnum=%q", got)
	}

	t.Setenv("API_MODE", "bogus")
	defer func() {
		if recover() == nil {
			t.Fatal("no panic for off-list value")
		}
	}()
	cfg.MayEnum("MODE", "lax", "lax", "strict")
}
