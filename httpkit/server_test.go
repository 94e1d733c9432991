package httpkit

import (
	"context"
	"testing"
	"time"

	"dockit/platform/config"
)

// uses t.Setenv, so no t.Parallel
func TestRunStopsOnCancel(t *testing.T) {
	t.Setenv("HTTPTEST_API_PORT", "127.0.0.1:0")
	s := NewServer(config.New().Prefix("HTTPTEST_"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	// let the listener come up before pulling the plug
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}
