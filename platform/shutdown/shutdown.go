// Package shutdown coordinates graceful application shutdown.
// Once a termination signal arrives, request handlers see CheckShutdown
// report true and stop taking new work, while registered hooks (closing the
// database, for example) run within a grace period.
package shutdown

import (
	"sync/atomic"
)

var shuttingDown atomic.Bool

// CheckShutdown reports whether shutdown has started.
func CheckShutdown() bool {
	return shuttingDown.Load()
}

func setShutdown() {
	shuttingDown.Store(true)
}
