package ledger_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/jmallard/countersign/internal/ledger"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func clientFor(t *testing.T, url string, maxAttempts int) *ledger.Client {
	t.Helper()
	cfg := ledger.Config{
		Endpoint:     url,
		Timeout:      "2s",
		MaxAttempts:  maxAttempts,
		RetryBackoff: "1ms",
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	return ledger.NewClient(cfg, discard())
}

func TestAnchorSuccess(t *testing.T) {
	var gotFingerprint string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/anchors" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Fingerprint string `json:"fingerprint"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		gotFingerprint = body.Fingerprint

		json.NewEncoder(w).Encode(map[string]string{"ref": "chain-0xfeed"})
	}))
	defer server.Close()

	client := clientFor(t, server.URL, 3)
	ref, err := client.Anchor(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("anchor failed: %v", err)
	}
	if ref != "chain-0xfeed" {
		t.Errorf("ref = %q", ref)
	}
	if gotFingerprint != "abc123" {
		t.Errorf("fingerprint sent = %q", gotFingerprint)
	}
}

func TestAnchorRetriesServerErrors(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"ref": "chain-0xretry"})
	}))
	defer server.Close()

	client := clientFor(t, server.URL, 3)
	ref, err := client.Anchor(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("anchor failed after retries: %v", err)
	}
	if ref != "chain-0xretry" {
		t.Errorf("ref = %q", ref)
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestAnchorExhaustedRetriesAreTransient(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := clientFor(t, server.URL, 3)
	_, err := client.Anchor(context.Background(), "abc123")
	if !errors.Is(err, ledger.ErrTransient) {
		t.Fatalf("err = %v, want transient", err)
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestAnchorRejectionDoesNotRetry(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := clientFor(t, server.URL, 3)
	_, err := client.Anchor(context.Background(), "abc123")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ledger.ErrTransient) {
		t.Error("rejection must not be reported as transient")
	}
	if got := attempts.Load(); got != 1 {
		t.Errorf("attempts = %d, want 1", got)
	}
}

func TestAnchorCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := clientFor(t, server.URL, 3)
	_, err := client.Anchor(ctx, "abc123")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := ledger.Config{Endpoint: "http://ledger.local"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.MaxAttempts)
	}
	if cfg.Timeout != "5s" {
		t.Errorf("Timeout = %q, want 5s", cfg.Timeout)
	}
}

func TestConfigRequiresEndpoint(t *testing.T) {
	cfg := ledger.Config{}
	if err := cfg.Finalize(nil); err == nil {
		t.Fatal("expected endpoint validation error")
	}
}
