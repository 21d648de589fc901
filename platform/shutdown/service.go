package shutdown

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rohanthewiz/logger"
)

// DefaultGracePeriod bounds how long hooks may run once shutdown starts.
const DefaultGracePeriod = 15 * time.Second

// HookFunc releases a resource. It receives the grace period it must finish within.
type HookFunc func(grace time.Duration) error

type hook struct {
	name string
	fn   HookFunc
}

type shutdownHooks struct {
	hooks []hook
	lock  sync.Mutex
}

var registry shutdownHooks

// RegisterHook adds a named hook to run on shutdown.
func RegisterHook(name string, fn HookFunc) {
	registry.lock.Lock()
	defer registry.lock.Unlock()
	registry.hooks = append(registry.hooks, hook{name: name, fn: fn})
	logger.Debug("Registered shutdown hook", "name", name, "count", len(registry.hooks))
}

// InitShutdownService waits for SIGINT or SIGTERM, runs all hooks and then
// closes done so the app can exit.
func InitShutdownService(done chan struct{}, grace time.Duration) {
	if grace <= 0 {
		grace = DefaultGracePeriod
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer close(done)

		sig := <-sigChan
		logger.Info("Received shutdown signal", "signal", sig.String())
		setShutdown()

		RunHooks(grace)
		logger.Info("Shutdown service done")
	}()
}

// RunHooks runs every registered hook concurrently and waits for them, or
// for the grace period to pass. It reports whether all hooks finished in time.
func RunHooks(grace time.Duration) bool {
	registry.lock.Lock()
	hooks := append([]hook(nil), registry.hooks...)
	registry.lock.Unlock()

	logger.Info("Running shutdown hooks", "count", len(hooks), "grace", grace.String())

	var wg sync.WaitGroup
	for _, h := range hooks {
		wg.Add(1)
		go func(h hook) {
			defer wg.Done()
			if err := h.fn(grace); err != nil {
				logger.LogErr(err, "shutdown hook failed", "hook", h.name)
				return
			}
			logger.Debug("Shutdown hook completed", "hook", h.name)
		}(h)
	}

	finished := make(chan struct{})
	go func() {
		wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return true
	case <-time.After(grace):
		logger.Warn("Shutdown hooks timed out", "grace", grace.String())
		return false
	}
}

// resetHooks clears the registry. Tests use it between cases.
func resetHooks() {
	registry.lock.Lock()
	registry.hooks = nil
	registry.lock.Unlock()
}
