package lifecycle_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jmallard/countersign/pkg/lifecycle"
)

func TestStartupHooksRun(t *testing.T) {
	lc := lifecycle.New()

	var ran atomic.Int32
	lc.OnStartup(func() error {
		ran.Add(1)
		return nil
	})
	lc.OnStartup(func() error {
		ran.Add(1)
		return nil
	})

	if err := lc.WaitForStartup(); err != nil {
		t.Fatalf("startup failed: %v", err)
	}
	if got := ran.Load(); got != 2 {
		t.Errorf("hooks ran = %d, want 2", got)
	}
	if !lc.Ready() {
		t.Error("coordinator should be ready")
	}
}

func TestStartupFailureLeavesNotReady(t *testing.T) {
	lc := lifecycle.New()

	boom := errors.New("boom")
	lc.OnStartup(func() error { return boom })

	if err := lc.WaitForStartup(); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if lc.Ready() {
		t.Error("coordinator must not be ready after a failed hook")
	}
}

func TestShutdownCancelsContextAndWaits(t *testing.T) {
	lc := lifecycle.New()

	done := make(chan struct{})
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		close(done)
	})

	if err := lc.Shutdown(time.Second); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	select {
	case <-done:
	default:
		t.Error("shutdown hook did not complete")
	}
}

func TestShutdownTimeout(t *testing.T) {
	lc := lifecycle.New()

	release := make(chan struct{})
	lc.OnShutdown(func() {
		<-release
	})

	if err := lc.Shutdown(10 * time.Millisecond); err == nil {
		t.Error("expected timeout error")
	}
	close(release)
}
