package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
	"time"
)

func TestNotConfiguredError(t *testing.T) {
	err := NewNotConfiguredError("OpenAI", "OPENAI_API_KEY")

	expected := "OpenAI is not configured (missing OPENAI_API_KEY)"
	if err.Error() != expected {
		t.Fatalf("Error message = %q, want %q", err.Error(), expected)
	}

	if !IsNotConfiguredError(err) {
		t.Fatalf("IsNotConfiguredError returned false for NotConfiguredError")
	}

	wrapped := fmt.Errorf("generating titles: %w", err)
	if !IsNotConfiguredError(wrapped) {
		t.Fatalf("IsNotConfiguredError returned false for wrapped NotConfiguredError")
	}

	if IsUpstreamError(err) {
		t.Fatalf("IsUpstreamError returned true for NotConfiguredError")
	}
}

func TestUpstreamError(t *testing.T) {
	err := NewUpstreamError("RAWG", 503, "service unavailable")

	expected := "RAWG request failed (HTTP 503): service unavailable"
	if err.Error() != expected {
		t.Fatalf("Error message = %q, want %q", err.Error(), expected)
	}

	if !IsUpstreamError(err) {
		t.Fatalf("IsUpstreamError returned false for UpstreamError")
	}

	wrapped := stdErrors.Join(err)
	if !IsUpstreamError(wrapped) {
		t.Fatalf("IsUpstreamError returned false for wrapped UpstreamError")
	}
}

func TestUpstreamError_TransportLevel(t *testing.T) {
	err := NewUpstreamError("OpenAI", 0, "connection refused")

	expected := "OpenAI request failed: connection refused"
	if err.Error() != expected {
		t.Fatalf("Error message = %q, want %q", err.Error(), expected)
	}
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("Half-Life 3")

	expected := `game not found: "Half-Life 3"`
	if err.Error() != expected {
		t.Fatalf("Error message = %q, want %q", err.Error(), expected)
	}

	if !IsNotFoundError(err) {
		t.Fatalf("IsNotFoundError returned false for NotFoundError")
	}

	if IsUpstreamError(err) {
		t.Fatalf("IsUpstreamError returned true for NotFoundError")
	}

	wrapped := fmt.Errorf("details: %w", err)
	if !IsNotFoundError(wrapped) {
		t.Fatalf("IsNotFoundError returned false for wrapped NotFoundError")
	}
}

func TestRateLimitError(t *testing.T) {
	err := NewRateLimitError("slow down")

	if err.Error() != "slow down" {
		t.Fatalf("Error message = %q, want %q", err.Error(), "slow down")
	}

	if !IsRateLimitError(err) {
		t.Fatalf("IsRateLimitError returned false for RateLimitError")
	}
}

func TestRateLimitErrorWithRetry(t *testing.T) {
	err := NewRateLimitErrorWithRetry("too many requests", 2*time.Minute)

	expected := "too many requests (retry after 2m0s)"
	if err.Error() != expected {
		t.Fatalf("Error message = %q, want %q", err.Error(), expected)
	}
}
