package scoreboard

import (
	"testing"
	"time"

	"dugout/internal/testsupport"
)

func TestNewTimeoutFromConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.API.RequestTimeout = 5

	client, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if client.http.Timeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", client.http.Timeout)
	}
}

func TestNewTimeoutDefault(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.API.RequestTimeout = 0

	client, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if client.http.Timeout != 30*time.Second {
		t.Fatalf("expected 30s default timeout, got %s", client.http.Timeout)
	}
}
