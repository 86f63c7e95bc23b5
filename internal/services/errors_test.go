package services_test

import (
	"errors"
	"testing"

	"dugout/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("exit status 1")
	err := services.Wrap(services.ErrExternalTool, "ytdlp", "enumerate", "channel listing failed", base)

	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("marker lost: %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("cause lost: %v", err)
	}
	want := "external tool error: ytdlp: enumerate: channel listing failed: exit status 1"
	if err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestWrapNilMarkerDefaultsTransient(t *testing.T) {
	err := services.Wrap(nil, "metadata", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := services.Wrap(services.ErrValidation, "", "", "", nil)
	if err.Error() != "validation error: service failure" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestIsQuotaExhausted(t *testing.T) {
	err := services.Wrap(services.ErrQuotaExceeded, "ytapi", "videos.list", "daily quota exhausted", nil)
	if !services.IsQuotaExhausted(err) {
		t.Fatal("quota marker not detected")
	}
	if services.IsQuotaExhausted(errors.New("plain")) {
		t.Fatal("false positive")
	}
}
