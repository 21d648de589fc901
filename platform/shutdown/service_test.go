package shutdown

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunHooksCompletes(t *testing.T) {
	resetHooks()
	defer resetHooks()

	var ran atomic.Int32
	RegisterHook("first", func(time.Duration) error {
		ran.Add(1)
		return nil
	})
	RegisterHook("failing", func(time.Duration) error {
		ran.Add(1)
		return errors.New("close failed")
	})

	if ok := RunHooks(time.Second); !ok {
		t.Error("Expected hooks to finish within the grace period")
	}
	if ran.Load() != 2 {
		t.Errorf("Expected 2 hooks to run, got %d", ran.Load())
	}
}

func TestRunHooksTimesOut(t *testing.T) {
	resetHooks()
	defer resetHooks()

	release := make(chan struct{})
	defer close(release)
	RegisterHook("stuck", func(time.Duration) error {
		<-release
		return nil
	})

	start := time.Now()
	if ok := RunHooks(20 * time.Millisecond); ok {
		t.Error("Expected a stuck hook to time out")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("RunHooks waited too long: %v", elapsed)
	}
}

func TestCheckShutdown(t *testing.T) {
	if CheckShutdown() {
		t.Fatal("Expected no shutdown at start")
	}
	setShutdown()
	defer shuttingDown.Store(false)
	if !CheckShutdown() {
		t.Error("Expected shutdown flag to be set")
	}
}
